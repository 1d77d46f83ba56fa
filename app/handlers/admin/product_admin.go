package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	filter := repositories.AdminProductFilter{
		Query:      strings.TrimSpace(r.URL.Query().Get("q")),
		CategoryID: r.URL.Query().Get("category"),
	}

	data := &AdminProductPageData{SearchQuery: filter.Query, CategoryFilterID: filter.CategoryID}
	data.Title = "Товары"
	data.Breadcrumbs = adminCrumbs(breadcrumb.Breadcrumb{Name: "Товары", URL: "/admin/products"})
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.AllCategories = data.Categories

	products, err := h.productRepo.Search(r.Context(), filter)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("GetProductsPage: failed to list products")
		data.Message = "Не удалось загрузить товары."
		data.MessageStatus = "error"
	}

	counts, err := h.galleryRepo.CountsByProduct(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("GetProductsPage: failed to count gallery images")
	}

	data.Rows = make([]ProductRow, 0, len(products))
	for _, p := range products {
		data.Rows = append(data.Rows, ProductRow{Product: p, GalleryCount: counts[p.ID]})
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, data *AdminProductPageData) {
	if data.IsEdit {
		data.Title = "Редактирование товара"
	} else {
		data.Title = "Новый товар"
	}
	data.Breadcrumbs = adminCrumbs(
		breadcrumb.Breadcrumb{Name: "Товары", URL: "/admin/products"},
		breadcrumb.Breadcrumb{Name: data.Title, URL: data.FormAction},
	)
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.AllCategories = data.Categories
	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, &AdminProductPageData{
		FormAction:  "/admin/products/add",
		ProductData: &ProductForm{CategoryID: r.URL.Query().Get("category")},
	})
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, &models.Product{}, "/admin/products/add")
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		logger.Warn(r.Context()).Err(err).Str("product_id", productID).Msg("EditProductPage: product not found")
		redirectWithMessage(w, r, "/admin/products", "error", "Товар не найден.")
		return
	}

	advantages := make([]string, 0, len(product.Advantages))
	for _, a := range product.Advantages {
		advantages = append(advantages, a.Description)
	}

	h.renderProductForm(w, r, &AdminProductPageData{
		FormAction: fmt.Sprintf("/admin/products/edit/%s", product.ID),
		IsEdit:     true,
		Gallery:    product.GalleryImages,
		ProductData: &ProductForm{
			ID:          product.ID,
			Name:        product.Name,
			Slug:        product.Slug,
			CategoryID:  product.CategoryID,
			Price:       product.Price.StringFixed(2),
			Description: product.Description,
			Advantages:  strings.Join(advantages, "\n"),
			Image:       product.Image,
		},
	})
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		logger.Warn(r.Context()).Err(err).Str("product_id", productID).Msg("EditProductPost: product not found")
		redirectWithMessage(w, r, "/admin/products", "error", "Товар не найден.")
		return
	}

	h.saveProduct(w, r, product, fmt.Sprintf("/admin/products/edit/%s", product.ID))
}

// saveProduct validates the posted form and writes the product together with
// its advantages and gallery changes.
func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, product *models.Product, formAction string) {
	isEdit := product.ID != ""

	if err := parseAdminForm(r); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("saveProduct: failed to parse form")
		redirectWithMessage(w, r, formAction, "error", "Не удалось обработать форму.")
		return
	}

	form := ProductForm{
		ID:          product.ID,
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Slug:        strings.TrimSpace(r.PostFormValue("slug")),
		CategoryID:  r.PostFormValue("category_id"),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Description: r.PostFormValue("description"),
		Advantages:  r.PostFormValue("advantages"),
		Image:       product.Image,
	}
	data := &AdminProductPageData{
		FormAction:  formAction,
		IsEdit:      isEdit,
		ProductData: &form,
		Gallery:     product.GalleryImages,
	}

	if err := h.validator.Struct(&form); err != nil {
		data.Errors = helpers.FormatValidationErrors(err)
		h.renderProductForm(w, r, data)
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		data.Errors = map[string]string{"price": "Цена должна быть числом."}
		h.renderProductForm(w, r, data)
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), form.CategoryID)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveProduct: failed to look up category")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		data.Errors = map[string]string{"categoryid": "Выберите существующую категорию."}
		h.renderProductForm(w, r, data)
		return
	}

	slugValue, err := models.EnsureSlug(form.Slug, form.Name)
	if err != nil {
		data.Errors = map[string]string{"slug": "Не удалось получить slug из названия, укажите его вручную."}
		h.renderProductForm(w, r, data)
		return
	}

	exists, err := h.productRepo.SlugExists(r.Context(), slugValue, product.ID)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveProduct: failed to check slug")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		data.Errors = map[string]string{"slug": fmt.Sprintf("Товар со slug %q уже существует.", slugValue)}
		h.renderProductForm(w, r, data)
		return
	}

	imageRef, err := h.storeUpload(r, "image", "products")
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveProduct: failed to store image")
		data.Errors = map[string]string{"image": "Не удалось сохранить изображение."}
		h.renderProductForm(w, r, data)
		return
	}

	galleryRefs, err := h.storeUploads(r, "gallery", "gallery")
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveProduct: failed to store gallery images")
		data.Errors = map[string]string{"gallery": "Не удалось сохранить фото галереи."}
		h.renderProductForm(w, r, data)
		return
	}

	if price.IsNegative() {
		logger.Warn(r.Context()).Str("slug", slugValue).Str("price", price.String()).Msg("saveProduct: saving product with negative price")
	}

	product.Name = form.Name
	product.Slug = slugValue
	product.CategoryID = category.ID
	product.Price = price
	product.Description = form.Description
	if imageRef != "" {
		product.Image = imageRef
	}

	changes := repositories.ProductChanges{
		Advantages:      helpers.SplitLines(form.Advantages),
		AddGallery:      galleryRefs,
		RemoveGalleryID: r.PostForm["remove_gallery"],
	}

	if err := h.productRepo.Save(r.Context(), product, changes); err != nil {
		logger.Error(r.Context()).Err(err).Str("slug", slugValue).Msg("saveProduct: failed to save product")
		redirectWithMessage(w, r, formAction, "error", "Не удалось сохранить товар.")
		return
	}

	logger.Info(r.Context()).Str("product_id", product.ID).Bool("edit", isEdit).
		Int("gallery_added", len(galleryRefs)).Int("gallery_removed", len(changes.RemoveGalleryID)).
		Msg("Product saved")
	redirectWithMessage(w, r, "/admin/products", "success", fmt.Sprintf("Товар «%s» сохранён.", product.Name))
}

// UpdateProductPrice handles the inline price editor on the product list.
func (h *AdminHandler) UpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/admin/products", "error", "Не удалось обработать форму.")
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("price")))
	if err != nil {
		redirectWithMessage(w, r, "/admin/products", "error", "Цена должна быть числом.")
		return
	}
	if price.IsNegative() {
		logger.Warn(r.Context()).Str("product_id", productID).Str("price", price.String()).Msg("UpdateProductPrice: negative price")
	}

	err = h.productRepo.UpdatePrice(r.Context(), productID, price.Round(2))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		redirectWithMessage(w, r, "/admin/products", "error", "Товар не найден.")
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("product_id", productID).Msg("UpdateProductPrice: failed to update price")
		redirectWithMessage(w, r, "/admin/products", "error", "Не удалось обновить цену.")
		return
	}

	redirectWithMessage(w, r, "/admin/products", "success", "Цена обновлена.")
}

// DeleteProduct removes the product; gallery images and advantages go with it.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := h.productRepo.Delete(r.Context(), productID); err != nil {
		logger.Error(r.Context()).Err(err).Str("product_id", productID).Msg("DeleteProduct: failed to delete product")
		redirectWithMessage(w, r, "/admin/products", "error", "Не удалось удалить товар.")
		return
	}

	logger.Info(r.Context()).Str("product_id", productID).Msg("Product deleted")
	redirectWithMessage(w, r, "/admin/products", "success", "Товар удалён.")
}
