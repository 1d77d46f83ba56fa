package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
)

var (
	ErrContactInfoExists      = errors.New("contact info already exists, only one record is allowed")
	ErrContactInfoUndeletable = errors.New("contact info cannot be deleted")
)

type ContactService interface {
	Get(ctx context.Context) (*models.ContactInfo, error)
	CanCreate(ctx context.Context) (bool, error)
	Create(ctx context.Context, contact *models.ContactInfo) error
	Update(ctx context.Context, contact *models.ContactInfo) error
	Delete(ctx context.Context) error
}

type contactService struct {
	repo repositories.ContactInfoRepositoryImpl
}

func NewContactService(repo repositories.ContactInfoRepositoryImpl) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Get(ctx context.Context) (*models.ContactInfo, error) {
	return s.repo.First(ctx)
}

func (s *contactService) CanCreate(ctx context.Context) (bool, error) {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *contactService) Create(ctx context.Context, contact *models.ContactInfo) error {
	ok, err := s.CanCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to check contact info: %w", err)
	}
	if !ok {
		return ErrContactInfoExists
	}
	return s.repo.Create(ctx, contact)
}

func (s *contactService) Update(ctx context.Context, contact *models.ContactInfo) error {
	return s.repo.Update(ctx, contact)
}

func (s *contactService) Delete(ctx context.Context) error {
	return ErrContactInfoUndeletable
}
