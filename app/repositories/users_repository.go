package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminUserRepositoryImpl interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepositoryImpl {
	return &adminUserRepository{db}
}

// Create hashes the plain-text password in user.Password before inserting.
func (r *adminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	hashPass, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashPass)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepository) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
