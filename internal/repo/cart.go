package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shop_catalog/internal/models"
)

type CartRepo struct {
	DB *gorm.DB
}

func (r *CartRepo) FindLine(ctx context.Context, userID, productID uint) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (r *CartRepo) InsertLine(ctx context.Context, line *models.CartLine) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(line).Error)
}

func (r *CartRepo) UpdateLine(ctx context.Context, line *models.CartLine) error {
	return translate(r.DB.WithContext(ctx).
		Model(&models.CartLine{ID: line.ID}).
		Updates(map[string]any{"quantity": line.Quantity, "updated_at": line.UpdatedAt}).Error)
}

func (r *CartRepo) ListLines(ctx context.Context, userID uint, offset, limit int) ([]models.CartLine, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lines []models.CartLine
	if err := r.DB.WithContext(ctx).
		Preload("Product.Category").
		Preload("Product.Brand").
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&lines).Error; err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}
