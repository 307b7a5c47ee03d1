package models

import (
	"time"

	"github.com/Skotchmaster/shop_catalog/internal/softdelete"
)

// Lifecycle is embedded by every soft-deletable row. Timestamps are set by
// the caller's clock, never by gorm.
type Lifecycle struct {
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index"                         json:"deleted_at"`
}

func (l Lifecycle) State() softdelete.State {
	return softdelete.FromNullable(l.DeletedAt)
}

func (l *Lifecycle) SetState(s softdelete.State) {
	l.DeletedAt = s.Nullable()
}

// Touch stamps updated_at, and created_at on first write.
func (l *Lifecycle) Touch(at time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = at
	}
	l.UpdatedAt = at
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;uniqueIndex"     json:"name"`
	Lifecycle
}

func (c *Category) GetID() uint     { return c.ID }
func (c *Category) GetName() string { return c.Name }

type Brand struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;uniqueIndex"     json:"name"`
	Lifecycle
}

func (b *Brand) GetID() uint     { return b.ID }
func (b *Brand) GetName() string { return b.Name }

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex"     json:"name"`
	Description *string   `json:"description"`
	Price       int64     `gorm:"not null"                 json:"price"`
	Stock       int64     `gorm:"not null"                 json:"stock"`
	CategoryID  uint      `gorm:"not null;index"           json:"category_id"`
	BrandID     uint      `gorm:"not null;index"           json:"brand_id"`
	Category    *Category `gorm:"foreignKey:CategoryID"    json:"category,omitempty"`
	Brand       *Brand    `gorm:"foreignKey:BrandID"       json:"brand,omitempty"`
	Lifecycle
}

func (p *Product) GetID() uint     { return p.ID }
func (p *Product) GetName() string { return p.Name }

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"not null;uniqueIndex"     json:"username"`
	Email        string    `gorm:"not null;uniqueIndex"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CartLine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                  json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null"                                  json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"             json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"             json:"updated_at"`
	Product   *Product  `gorm:"foreignKey:ProductID"                      json:"product,omitempty"`
}

// All lists every table the service owns, in migration order.
func All() []any {
	return []any{&User{}, &Category{}, &Brand{}, &Product{}, &CartLine{}}
}
