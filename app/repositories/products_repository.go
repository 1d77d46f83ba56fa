package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl interface {
	ListPaginated(ctx context.Context, categorySlug string, limit, offset int) ([]models.Product, int64, error)
	CountInCategory(ctx context.Context, categorySlug string) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, filter AdminProductFilter) ([]models.Product, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, product *models.Product, changes ProductChanges) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

// AdminProductFilter narrows the admin product list.
type AdminProductFilter struct {
	Query      string
	CategoryID string
}

// ProductChanges are the inline collections written together with a product.
// A nil Advantages slice leaves the existing advantages untouched.
type ProductChanges struct {
	Advantages      []string
	AddGallery      []string
	RemoveGalleryID []string
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

var productsByName = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Table: clause.CurrentTable, Name: "name"}},
	{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}},
}}

func (p *productRepository) inCategory(tx *gorm.DB, categorySlug string) *gorm.DB {
	if categorySlug == "" {
		return tx
	}
	sub := p.db.Model(&models.Category{}).Select("id").Where("slug = ?", categorySlug)
	return tx.Where("category_id IN (?)", sub)
}

func (p *productRepository) CountInCategory(ctx context.Context, categorySlug string) (int64, error) {
	var total int64
	err := p.inCategory(p.db.WithContext(ctx).Model(&models.Product{}), categorySlug).Count(&total).Error
	return total, err
}

// ListPaginated returns one page of products ordered by name, optionally
// narrowed to a category slug, together with the unpaginated total.
func (p *productRepository) ListPaginated(ctx context.Context, categorySlug string, limit, offset int) ([]models.Product, int64, error) {
	total, err := p.CountInCategory(ctx, categorySlug)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err = p.inCategory(p.db.WithContext(ctx).Joins("Category"), categorySlug).
		Clauses(productsByName).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return p.first(ctx, clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "slug"}, Value: slug})
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return p.first(ctx, clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id})
}

func (p *productRepository) first(ctx context.Context, cond clause.Eq) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Joins("Category").
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Advantages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where(cond).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Search lists products for the admin, ordered by category then name.
func (p *productRepository) Search(ctx context.Context, filter AdminProductFilter) ([]models.Product, error) {
	tx := p.db.WithContext(ctx).
		Joins("Category").
		Preload("GalleryImages").
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Table: "Category", Name: "name"}},
			{Column: clause.Column{Table: clause.CurrentTable, Name: "name"}},
		}})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			p.db.Where(clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []interface{}{clause.Column{Table: clause.CurrentTable, Name: "name"}, like}}).
				Or(clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []interface{}{clause.Column{Table: clause.CurrentTable, Name: "description"}, like}}),
		)
	}
	if filter.CategoryID != "" {
		tx = tx.Where("category_id = ?", filter.CategoryID)
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (p *productRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var total int64
	tx := p.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

// Save creates or updates the product and applies its inline changes in one
// transaction.
func (p *productRepository) Save(ctx context.Context, product *models.Product, changes ProductChanges) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The category is referenced by ID only.
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}

		if changes.Advantages != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Advantage{}).Error; err != nil {
				return fmt.Errorf("failed to clear advantages: %w", err)
			}
			for _, description := range changes.Advantages {
				advantage := models.Advantage{ProductID: product.ID, Description: description}
				if err := tx.Create(&advantage).Error; err != nil {
					return fmt.Errorf("failed to create advantage: %w", err)
				}
			}
		}

		if len(changes.RemoveGalleryID) > 0 {
			err := tx.Where("product_id = ? AND id IN ?", product.ID, changes.RemoveGalleryID).
				Delete(&models.ImageGallery{}).Error
			if err != nil {
				return fmt.Errorf("failed to remove gallery images: %w", err)
			}
		}

		for _, ref := range changes.AddGallery {
			image := models.ImageGallery{ProductID: product.ID, Image: ref}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to add gallery image: %w", err)
			}
		}

		return nil
	})
}

func (p *productRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	res := p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).UpdateColumn("price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the product. Gallery images and advantages cascade.
func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
