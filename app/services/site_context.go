package services

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
)

// SiteContext is the navigation data every rendered page receives.
type SiteContext struct {
	Categories  []models.Category
	ContactInfo *models.ContactInfo
}

type SiteContextProvider interface {
	Load(ctx context.Context) SiteContext
}

type siteContextProvider struct {
	categories repositories.CategoryRepositoryImpl
	contacts   repositories.ContactInfoRepositoryImpl
}

func NewSiteContextProvider(c repositories.CategoryRepositoryImpl, ci repositories.ContactInfoRepositoryImpl) SiteContextProvider {
	return &siteContextProvider{categories: c, contacts: ci}
}

// Load reads the current store state. A failed read degrades to empty
// navigation rather than failing the page.
func (p *siteContextProvider) Load(ctx context.Context) SiteContext {
	var site SiteContext

	categories, err := p.categories.GetAll(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("SiteContext: failed to load categories")
	} else {
		site.Categories = categories
	}

	contact, err := p.contacts.First(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("SiteContext: failed to load contact info")
	} else {
		site.ContactInfo = contact
	}

	return site
}
