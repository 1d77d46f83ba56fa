package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

type AdvantageRepositoryImpl interface {
	Create(ctx context.Context, advantage *models.Advantage) error
	ListByProduct(ctx context.Context, productID string) ([]models.Advantage, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
}

type advantageRepository struct {
	db *gorm.DB
}

func NewAdvantageRepository(db *gorm.DB) AdvantageRepositoryImpl {
	return &advantageRepository{db}
}

func (r *advantageRepository) Create(ctx context.Context, advantage *models.Advantage) error {
	return r.db.WithContext(ctx).Create(advantage).Error
}

func (r *advantageRepository) ListByProduct(ctx context.Context, productID string) ([]models.Advantage, error) {
	var advantages []models.Advantage
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at").Find(&advantages).Error
	return advantages, err
}

func (r *advantageRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Advantage{}).Where("product_id = ?", productID).Count(&total).Error
	return total, err
}
