package migrations

import (
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ImageGallery{},
		&models.Advantage{},
		&models.ContactInfo{},
		&models.AdminUser{},
	)
}
