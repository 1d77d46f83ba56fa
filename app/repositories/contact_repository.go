package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

type ContactInfoRepositoryImpl interface {
	First(ctx context.Context) (*models.ContactInfo, error)
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, contact *models.ContactInfo) error
	Update(ctx context.Context, contact *models.ContactInfo) error
}

type contactInfoRepository struct {
	db *gorm.DB
}

func NewContactInfoRepository(db *gorm.DB) ContactInfoRepositoryImpl {
	return &contactInfoRepository{db}
}

func (r *contactInfoRepository) First(ctx context.Context) (*models.ContactInfo, error) {
	var contact models.ContactInfo
	err := r.db.WithContext(ctx).Order("id").First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactInfoRepository) Exists(ctx context.Context) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactInfo{}).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *contactInfoRepository) Create(ctx context.Context, contact *models.ContactInfo) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactInfoRepository) Update(ctx context.Context, contact *models.ContactInfo) error {
	return r.db.WithContext(ctx).Save(contact).Error
}
