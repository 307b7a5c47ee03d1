package transport

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateProductRequest uses pointers so a missing field is told apart from
// zero; price and stock ranges are checked by the service.
type CreateProductRequest struct {
	Name        *string `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"required"`
	Stock       *int64  `json:"stock" validate:"required"`
	CategoryID  *uint   `json:"category_id" validate:"required"`
	BrandID     *uint   `json:"brand_id" validate:"required"`
}

type PatchProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	CategoryID  *uint   `json:"category_id"`
	BrandID     *uint   `json:"brand_id"`
}

type CartRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Quantity  *int64 `json:"quantity" validate:"required"`
}

type UserData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
