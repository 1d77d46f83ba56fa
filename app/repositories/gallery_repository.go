package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

type GalleryRepositoryImpl interface {
	Create(ctx context.Context, image *models.ImageGallery) error
	ListByProduct(ctx context.Context, productID string) ([]models.ImageGallery, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	CountsByProduct(ctx context.Context) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepositoryImpl {
	return &galleryRepository{db}
}

func (r *galleryRepository) Create(ctx context.Context, image *models.ImageGallery) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *galleryRepository) ListByProduct(ctx context.Context, productID string) ([]models.ImageGallery, error) {
	var images []models.ImageGallery
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at").Find(&images).Error
	return images, err
}

func (r *galleryRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ImageGallery{}).Where("product_id = ?", productID).Count(&total).Error
	return total, err
}

func (r *galleryRepository) CountsByProduct(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		ProductID string
		Total     int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.ImageGallery{}).
		Select("product_id, COUNT(*) AS total").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count gallery images per product: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.Total
	}
	return counts, nil
}

func (r *galleryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ImageGallery{}).Count(&total).Error
	return total, err
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ImageGallery{}, "id = ?", id).Error
}
