package admin

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/models/other"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/Rakhulsr/go-catalog/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	validator    *validator.Validate
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	galleryRepo  repositories.GalleryRepositoryImpl
	adminRepo    repositories.AdminUserRepositoryImpl
	contactSvc   services.ContactService
	assets       storage.AssetStore
	sessionStore sessions.SessionStore
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	galleryRepo repositories.GalleryRepositoryImpl,
	adminRepo repositories.AdminUserRepositoryImpl,
	contactSvc services.ContactService,
	assets storage.AssetStore,
	sessionStore sessions.SessionStore,
) *AdminHandler {
	return &AdminHandler{
		render:       render,
		validator:    validator,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		galleryRepo:  galleryRepo,
		adminRepo:    adminRepo,
		contactSvc:   contactSvc,
		assets:       assets,
		sessionStore: sessionStore,
	}
}

type AdminPageData struct {
	other.BasePageData
	TotalCategories int64
	TotalProducts   int64
	TotalGallery    int64
	HasContactInfo  bool
}

type CategoryRow struct {
	Category     models.Category
	ProductCount int64
}

type AdminCategoryPageData struct {
	other.BasePageData
	Rows         []CategoryRow
	CategoryData *CategoryForm
	IsEdit       bool
	FormAction   string
	Errors       map[string]string
	SearchQuery  string
}

type CategoryForm struct {
	ID    string
	Name  string `form:"name" validate:"required,max=100"`
	Slug  string `form:"slug" validate:"omitempty,max=100,slug"`
	Image string
}

type ProductRow struct {
	Product      models.Product
	GalleryCount int64
}

type AdminProductPageData struct {
	other.BasePageData
	Rows             []ProductRow
	ProductData      *ProductForm
	Gallery          []models.ImageGallery
	IsEdit           bool
	FormAction       string
	Errors           map[string]string
	AllCategories    []models.Category
	SearchQuery      string
	CategoryFilterID string
}

type ProductForm struct {
	ID          string
	Name        string `form:"name" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"omitempty,max=200,slug"`
	CategoryID  string `form:"category_id" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	Description string `form:"description"`
	Advantages  string `form:"advantages"`
	Image       string
}

type AdminContactPageData struct {
	other.BasePageData
	Contacts    []models.ContactInfo
	ContactData *ContactForm
	CanCreate   bool
	IsEdit      bool
	FormAction  string
	Errors      map[string]string
}

type ContactForm struct {
	PhoneNumber    string `form:"phone_number" validate:"required,max=20"`
	WhatsAppNumber string `form:"whatsapp_number" validate:"required,max=20"`
	Email          string `form:"email" validate:"required,email"`
}

type AdminLoginPageData struct {
	other.BasePageData
	Email  string
	Next   string
	Errors map[string]string
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, base *other.BasePageData) {
	baseDataMap := helpers.GetBaseData(r, nil)

	if title, ok := baseDataMap["Title"].(string); ok && base.Title == "" {
		base.Title = title
	}
	if message, ok := baseDataMap["Message"].(string); ok {
		base.Message = message
	}
	if messageStatus, ok := baseDataMap["MessageStatus"].(string); ok {
		base.MessageStatus = messageStatus
	}
	if query, ok := baseDataMap["Query"].(url.Values); ok {
		base.Query = query
	}
	if categories, ok := baseDataMap["Categories"].([]models.Category); ok {
		base.Categories = categories
	}
	if contact, ok := baseDataMap["ContactInfo"].(*models.ContactInfo); ok {
		base.ContactInfo = contact
	}
	if base.Breadcrumbs == nil {
		base.Breadcrumbs = []breadcrumb.Breadcrumb{}
	}

	if admin, ok := r.Context().Value(helpers.ContextKeyAdmin).(*models.AdminUser); ok && admin != nil {
		base.Admin = &other.AdminForTemplate{ID: admin.ID, Name: admin.Name, Email: admin.Email}
		base.IsLoggedIn = true
	}

	base.CSRFField = helpers.CSRFField(r)
	base.CurrentPath = r.URL.Path
	base.IsAdminPage = true
}

func adminCrumbs(extra ...breadcrumb.Breadcrumb) []breadcrumb.Breadcrumb {
	return append([]breadcrumb.Breadcrumb{{Name: "Админка", URL: "/admin/"}}, extra...)
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, message string) {
	http.Redirect(w, r, fmt.Sprintf("%s?status=%s&message=%s", path, status, url.QueryEscape(message)), http.StatusSeeOther)
}

// storeUpload saves the multipart file in field under folder. It returns an
// empty reference when no file was sent.
func (h *AdminHandler) storeUpload(r *http.Request, field, folder string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read upload %s: %w", field, err)
	}
	defer file.Close()

	ref, err := h.assets.Put(r.Context(), storage.ObjectKey(folder, header.Filename), header.Header.Get("Content-Type"), file)
	if err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", header.Filename, err)
	}
	logger.Info(r.Context()).Str("ref", ref).Msg("Stored uploaded image")
	return ref, nil
}

// storeUploads saves every file sent under field.
func (h *AdminHandler) storeUploads(r *http.Request, field, folder string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	refs := make([]string, 0, len(r.MultipartForm.File[field]))
	for _, header := range r.MultipartForm.File[field] {
		file, err := header.Open()
		if err != nil {
			return refs, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
		}
		ref, err := h.assets.Put(r.Context(), storage.ObjectKey(folder, header.Filename), header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			return refs, fmt.Errorf("failed to store upload %s: %w", header.Filename, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

const maxUploadMemory = 32 << 20

// parseAdminForm accepts both urlencoded and multipart bodies.
func parseAdminForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}
