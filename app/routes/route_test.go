package routes_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/routes"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/renderer"
	"github.com/Rakhulsr/go-catalog/app/utils/sessions"
	"github.com/Rakhulsr/go-catalog/app/utils/testdb"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	db      *gorm.DB
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testdb.New(t)
	assets := storage.NewLocalStore(t.TempDir(), "/media/")

	handler := routes.NewRouter(routes.Deps{
		DB:           db,
		Render:       renderer.New(renderer.Options{Directory: "../../templates", Assets: assets}),
		Assets:       assets,
		SessionStore: sessions.NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
	})
	return &testApp{db: db, handler: handler}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (a *testApp) seed(t *testing.T) {
	t.Helper()
	masks := &models.Category{Name: "Маски", Slug: "masks"}
	soaps := &models.Category{Name: "Мыло", Slug: "soaps"}
	require.NoError(t, a.db.Create(masks).Error)
	require.NoError(t, a.db.Create(soaps).Error)

	require.NoError(t, a.db.Create(&models.Product{
		Name:        "Глиняная маска",
		Slug:        "glinyanaya-maska",
		Description: "Очищающая маска",
		Price:       decimal.RequireFromString("149.99"),
		CategoryID:  masks.ID,
		Advantages:  []models.Advantage{{Description: "Натуральный состав"}},
	}).Error)
	require.NoError(t, a.db.Create(&models.Product{
		Name:       "Оливковое мыло",
		Slug:       "olive-soap",
		Price:      decimal.RequireFromString("49.50"),
		CategoryID: soaps.ID,
	}).Error)
	require.NoError(t, a.db.Create(&models.ContactInfo{
		PhoneNumber:    "+998 90 123 45 67",
		WhatsAppNumber: "+998 90-123-4567",
		Email:          "info@example.com",
	}).Error)
}

func TestRootRedirectsPermanently(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/catalog/", rec.Header().Get("Location"))
}

func TestProductDetail(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get(t, "/catalog/product/glinyanaya-maska/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Глиняная маска")
	assert.Contains(t, body, "149.99")
	assert.Contains(t, body, "Натуральный состав")
	// Site-wide context.
	assert.Contains(t, body, "/catalog/category/soaps/")
	assert.Contains(t, body, "https://wa.me/998901234567")
}

func TestProductDetailUnknownSlug(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get(t, "/catalog/product/does-not-exist/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestCatalogList(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get(t, "/catalog/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Глиняная маска")
	assert.Contains(t, rec.Body.String(), "Оливковое мыло")
}

func TestCatalogCategoryFilter(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get(t, "/catalog/category/masks/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "glinyanaya-maska")
	assert.NotContains(t, rec.Body.String(), "olive-soap")

	rec = app.get(t, "/catalog/?category=soaps")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "olive-soap")
	assert.NotContains(t, rec.Body.String(), "glinyanaya-maska")
}

func TestCatalogQueryParamWinsOverPath(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get(t, "/catalog/category/masks/?category=soaps")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "olive-soap")
	assert.NotContains(t, rec.Body.String(), "glinyanaya-maska")
}

func TestCatalogPageParsing(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	assert.Equal(t, http.StatusOK, app.get(t, "/catalog/?page=1").Code)
	assert.Equal(t, http.StatusOK, app.get(t, "/catalog/?page=last").Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/?page=2").Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/?page=0").Code)
	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/?page=abc").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	app.get(t, "/catalog/")
	rec = app.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_http_requests_total{method="GET",route="/catalog/",status="200"}`)
}

func TestAdminRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/admin/products")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/admin/login"))

	rec = app.get(t, "/admin/login")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func (a *testApp) login(t *testing.T) []*http.Cookie {
	t.Helper()
	admins := repositories.NewAdminUserRepository(a.db)
	require.NoError(t, admins.Create(t.Context(), &models.AdminUser{Name: "Admin", Email: "admin@example.com", Password: "secret-password"}))

	form := url.Values{"email": {"admin@example.com"}, "password": {"secret-password"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := a.do(t, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (a *testApp) postForm(t *testing.T, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(t, req)
}

func (a *testApp) getAuthed(t *testing.T, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(t, req)
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	rec := app.postForm(t, "/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminDashboardAndLists(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)
	cookies := app.login(t)

	rec := app.getAuthed(t, "/admin/", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.getAuthed(t, "/admin/categories", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 товаров")

	rec = app.getAuthed(t, "/admin/products", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "0 фото")
	// No image uploaded, so the preview is the placeholder.
	assert.Contains(t, body, "<td>-</td>")
}

func TestAdminCreatesCategoryWithDerivedSlug(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t)

	rec := app.postForm(t, "/admin/categories/add", url.Values{"name": {"Face Care"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	category, err := repositories.NewCategoryRepository(app.db).GetBySlug(t.Context(), "face-care")
	require.NoError(t, err)
	require.NotNil(t, category)

	rec = app.postForm(t, "/admin/categories/add", url.Values{"name": {"Another"}, "slug": {"face-care"}}, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "face-care")

	rec = app.postForm(t, "/admin/categories/add", url.Values{"name": {""}}, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "field-error")
}

func TestAdminCreatesProductWithAdvantages(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)
	cookies := app.login(t)

	masks, err := repositories.NewCategoryRepository(app.db).GetBySlug(t.Context(), "masks")
	require.NoError(t, err)

	form := url.Values{
		"name":        {"Mud Mask"},
		"category_id": {masks.ID},
		"price":       {"99.90"},
		"advantages":  {"Natural\n\nVegan\n"},
	}
	rec := app.postForm(t, "/admin/products/add", form, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	product, err := repositories.NewProductRepository(app.db).GetBySlug(t.Context(), "mud-mask")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Len(t, product.Advantages, 2)
	assert.Equal(t, "99.9", product.Price.String())

	rec = app.postForm(t, "/admin/products/"+product.ID+"/price", url.Values{"price": {"120"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	product, err = repositories.NewProductRepository(app.db).GetBySlug(t.Context(), "mud-mask")
	require.NoError(t, err)
	assert.Equal(t, "120", product.Price.String())

	rec = app.postForm(t, "/admin/products/add", url.Values{"name": {"Bad"}, "category_id": {masks.ID}, "price": {"abc"}}, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "field-error")
}

func TestAdminDeleteCategoryCascades(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)
	cookies := app.login(t)

	masks, err := repositories.NewCategoryRepository(app.db).GetBySlug(t.Context(), "masks")
	require.NoError(t, err)

	rec := app.postForm(t, "/admin/categories/"+masks.ID, url.Values{"_method": {"DELETE"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, http.StatusNotFound, app.get(t, "/catalog/product/glinyanaya-maska/").Code)
}

func TestAdminContactCannotBeDeletedOrDuplicated(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)
	cookies := app.login(t)

	rec := app.postForm(t, "/admin/contact", url.Values{"_method": {"DELETE"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "status=error")

	rec = app.postForm(t, "/admin/contact/add", url.Values{
		"phone_number":    {"1"},
		"whatsapp_number": {"2"},
		"email":           {"x@example.com"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "status=error")

	var total int64
	require.NoError(t, app.db.Model(&models.ContactInfo{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	rec = app.getAuthed(t, "/admin/contact", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/admin/contact/add")
}
