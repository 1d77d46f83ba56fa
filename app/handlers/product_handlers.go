package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

var errBadPage = errors.New("page is not an integer")

type ProductHandler struct {
	catalog services.CatalogService
	render  *render.Render
}

func NewProductHandler(catalog services.CatalogService, r *render.Render) *ProductHandler {
	return &ProductHandler{catalog: catalog, render: r}
}

// categoryFromRequest prefers the ?category= query parameter over the path segment.
func categoryFromRequest(r *http.Request) string {
	if slug := r.URL.Query().Get("category"); slug != "" {
		return slug
	}
	return mux.Vars(r)["category_slug"]
}

func (h *ProductHandler) pageFromRequest(r *http.Request, categorySlug string) (int, error) {
	pageStr := r.URL.Query().Get("page")
	switch pageStr {
	case "":
		return 1, nil
	case "last":
		return h.catalog.LastPage(r.Context(), categorySlug)
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, errBadPage
	}
	return page, nil
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	categorySlug := categoryFromRequest(r)

	page, err := h.pageFromRequest(r, categorySlug)
	if errors.Is(err, errBadPage) {
		NotFound(h.render, w, r)
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Products: failed to resolve last page")
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	productPage, err := h.catalog.List(r.Context(), services.ListParams{CategorySlug: categorySlug, Page: page})
	if errors.Is(err, services.ErrPageOutOfRange) {
		NotFound(h.render, w, r)
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("category", categorySlug).Int("page", page).Msg("Products: failed to list products")
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Главная", URL: "/"},
		{Name: "Каталог", URL: "/catalog/"},
	}
	title := "Каталог"
	for _, c := range helpers.SiteContextFrom(r.Context()).Categories {
		if c.Slug == categorySlug {
			title = c.Name
			breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{Name: c.Name, URL: "/catalog/category/" + c.Slug + "/"})
			break
		}
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           title,
		"Products":        productPage.Products,
		"Page":            productPage,
		"CurrentCategory": categorySlug,
		"Breadcrumbs":     breadcrumbs,
	})

	_ = h.render.HTML(w, http.StatusOK, "catalog/list", data)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productSlug := mux.Vars(r)["slug"]

	product, err := h.catalog.Detail(r.Context(), productSlug)
	if errors.Is(err, services.ErrProductNotFound) {
		NotFound(h.render, w, r)
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("slug", productSlug).Msg("ProductDetail: failed to get product")
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Главная", URL: "/"},
		{Name: "Каталог", URL: "/catalog/"},
		{Name: product.Category.Name, URL: "/catalog/category/" + product.Category.Slug + "/"},
		{Name: product.Name, URL: "/catalog/product/" + product.Slug + "/"},
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           product.Name,
		"Product":         product,
		"CurrentCategory": categoryFromRequest(r),
		"Breadcrumbs":     breadcrumbs,
	})

	_ = h.render.HTML(w, http.StatusOK, "catalog/detail", data)
}
