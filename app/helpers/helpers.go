package helpers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
)

type contextKey string

const (
	ContextKeyAdminID contextKey = "adminID"
	ContextKeyAdmin   contextKey = "adminObject"
	SiteContextKey    contextKey = "siteContext"
)

// ImagePlaceholder is shown wherever an image cannot be resolved.
const ImagePlaceholder = "-"

const defaultTitle = "Каталог"

func WithSiteContext(ctx context.Context, site services.SiteContext) context.Context {
	return context.WithValue(ctx, SiteContextKey, site)
}

func SiteContextFrom(ctx context.Context) services.SiteContext {
	site, _ := ctx.Value(SiteContextKey).(services.SiteContext)
	return site
}

// GetBaseData fills the keys every public template expects.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = defaultTitle
	}
	if _, exists := pageSpecificData["Breadcrumbs"]; !exists {
		pageSpecificData["Breadcrumbs"] = []breadcrumb.Breadcrumb{}
	}
	if _, exists := pageSpecificData["CurrentCategory"]; !exists {
		pageSpecificData["CurrentCategory"] = ""
	}

	site := SiteContextFrom(r.Context())
	pageSpecificData["Categories"] = site.Categories
	pageSpecificData["ContactInfo"] = site.ContactInfo

	pageSpecificData["Query"] = r.URL.Query()
	pageSpecificData["CurrentPath"] = r.URL.Path
	pageSpecificData["MessageStatus"] = r.URL.Query().Get("status")
	pageSpecificData["Message"] = r.URL.Query().Get("message")

	return pageSpecificData
}

// CSRFField returns the hidden token input, or nothing when CSRF is disabled.
func CSRFField(r *http.Request) template.HTML {
	if csrf.Token(r) == "" {
		return ""
	}
	return csrf.TemplateField(r)
}

// ImageURL resolves ref through the asset store, returning "" when it cannot.
func ImageURL(store storage.AssetStore, ref string) string {
	if store == nil || ref == "" {
		return ""
	}
	u, err := store.URL(ref)
	if err != nil {
		return ""
	}
	return u
}

// ImageTag renders a preview image, or the placeholder when the asset is
// absent or unreadable.
func ImageTag(store storage.AssetStore, ref string, maxHeight int) template.HTML {
	u := ImageURL(store, ref)
	if u == "" {
		return template.HTML(ImagePlaceholder)
	}
	return template.HTML(fmt.Sprintf(`<img src="%s" style="max-height:%dpx;" />`,
		template.HTMLEscapeString(u), maxHeight))
}

func FormatValidationErrors(err error) map[string]string {
	errorMessages := make(map[string]string)

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		errorMessages["form"] = err.Error()
		return errorMessages
	}

	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("Поле %s обязательно.", e.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("Поле %s должно содержать корректный email.", e.Field())
		case "numeric", "decimal":
			errorMessages[field] = fmt.Sprintf("Поле %s должно быть числом.", e.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("Поле %s: минимум %s символов.", e.Field(), e.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("Поле %s: максимум %s символов.", e.Field(), e.Param())
		case "slug":
			errorMessages[field] = fmt.Sprintf("Поле %s может содержать только строчные латинские буквы, цифры и дефисы.", e.Field())
		default:
			errorMessages[field] = fmt.Sprintf("Поле %s не прошло проверку %s.", e.Field(), e.Tag())
		}
	}
	return errorMessages
}

// SplitLines returns the trimmed, non-empty lines of s.
func SplitLines(s string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewValidator returns a validator with the catalog's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}
