package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/db/fakers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"gorm.io/gorm"
)

type Options struct {
	Categories          int
	ProductsPerCategory int
}

// DBSeed fills the catalog with fake categories, products and, when missing,
// the contact record.
func DBSeed(ctx context.Context, db *gorm.DB, opts Options) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < opts.Categories; i++ {
			category := fakers.CategoryFaker()
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("failed to seed category: %w", err)
			}

			for j := 0; j < opts.ProductsPerCategory; j++ {
				if err := tx.Create(fakers.ProductFaker(category)).Error; err != nil {
					return fmt.Errorf("failed to seed product: %w", err)
				}
			}
			logger.Info(ctx).Str("category", category.Name).Int("products", opts.ProductsPerCategory).Msg("Seeded category")
		}

		var contacts int64
		if err := tx.Model(&models.ContactInfo{}).Count(&contacts).Error; err != nil {
			return err
		}
		if contacts == 0 {
			if err := tx.Create(fakers.ContactInfoFaker()).Error; err != nil {
				return fmt.Errorf("failed to seed contact info: %w", err)
			}
		}
		return nil
	})
}
