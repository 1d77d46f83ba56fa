package other

import (
	"html/template"
	"net/url"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
)

type AdminForTemplate struct {
	ID    string
	Name  string
	Email string
}

type BasePageData struct {
	Title         string
	Admin         *AdminForTemplate
	IsLoggedIn    bool
	CSRFField     template.HTML
	Message       string
	MessageStatus string
	Query         url.Values
	Breadcrumbs   []breadcrumb.Breadcrumb
	CurrentPath   string
	IsAdminPage   bool
	Categories    []models.Category
	ContactInfo   *models.ContactInfo
}
