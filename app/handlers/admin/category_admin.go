package admin

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := &AdminCategoryPageData{SearchQuery: query}
	data.Title = "Категории"
	data.Breadcrumbs = adminCrumbs(breadcrumb.Breadcrumb{Name: "Категории", URL: "/admin/categories"})
	h.populateBaseDataForAdmin(r, &data.BasePageData)

	categories, err := h.categoryRepo.Search(r.Context(), query)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("GetCategoriesPage: failed to list categories")
		data.Message = "Не удалось загрузить категории."
		data.MessageStatus = "error"
	}

	counts, err := h.categoryRepo.ProductCounts(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("GetCategoriesPage: failed to count products")
	}

	data.Rows = make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		data.Rows = append(data.Rows, CategoryRow{Category: c, ProductCount: counts[c.ID]})
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, data *AdminCategoryPageData) {
	if data.IsEdit {
		data.Title = "Редактирование категории"
	} else {
		data.Title = "Новая категория"
	}
	data.Breadcrumbs = adminCrumbs(
		breadcrumb.Breadcrumb{Name: "Категории", URL: "/admin/categories"},
		breadcrumb.Breadcrumb{Name: data.Title, URL: data.FormAction},
	)
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, &AdminCategoryPageData{
		FormAction:   "/admin/categories/add",
		CategoryData: &CategoryForm{},
	})
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, &models.Category{}, "/admin/categories/add")
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		logger.Warn(r.Context()).Err(err).Str("category_id", categoryID).Msg("EditCategoryPage: category not found")
		redirectWithMessage(w, r, "/admin/categories", "error", "Категория не найдена.")
		return
	}

	h.renderCategoryForm(w, r, &AdminCategoryPageData{
		FormAction: fmt.Sprintf("/admin/categories/edit/%s", category.ID),
		IsEdit:     true,
		CategoryData: &CategoryForm{
			ID:    category.ID,
			Name:  category.Name,
			Slug:  category.Slug,
			Image: category.Image,
		},
	})
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		logger.Warn(r.Context()).Err(err).Str("category_id", categoryID).Msg("EditCategoryPost: category not found")
		redirectWithMessage(w, r, "/admin/categories", "error", "Категория не найдена.")
		return
	}

	h.saveCategory(w, r, category, fmt.Sprintf("/admin/categories/edit/%s", category.ID))
}

// saveCategory validates the posted form and creates or updates category.
func (h *AdminHandler) saveCategory(w http.ResponseWriter, r *http.Request, category *models.Category, formAction string) {
	isEdit := category.ID != ""

	if err := parseAdminForm(r); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("saveCategory: failed to parse form")
		redirectWithMessage(w, r, formAction, "error", "Не удалось обработать форму.")
		return
	}

	form := CategoryForm{
		ID:    category.ID,
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Slug:  strings.TrimSpace(r.PostFormValue("slug")),
		Image: category.Image,
	}
	data := &AdminCategoryPageData{FormAction: formAction, IsEdit: isEdit, CategoryData: &form}

	if err := h.validator.Struct(&form); err != nil {
		data.Errors = helpers.FormatValidationErrors(err)
		h.renderCategoryForm(w, r, data)
		return
	}

	slugValue, err := models.EnsureSlug(form.Slug, form.Name)
	if err != nil {
		data.Errors = map[string]string{"slug": "Не удалось получить slug из названия, укажите его вручную."}
		h.renderCategoryForm(w, r, data)
		return
	}

	exists, err := h.categoryRepo.SlugExists(r.Context(), slugValue, category.ID)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveCategory: failed to check slug")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		data.Errors = map[string]string{"slug": fmt.Sprintf("Категория со slug %q уже существует.", slugValue)}
		h.renderCategoryForm(w, r, data)
		return
	}

	imageRef, err := h.storeUpload(r, "image", "categories")
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("saveCategory: failed to store image")
		data.Errors = map[string]string{"image": "Не удалось сохранить изображение."}
		h.renderCategoryForm(w, r, data)
		return
	}
	if imageRef != "" {
		category.Image = imageRef
	}

	category.Name = form.Name
	category.Slug = slugValue

	if isEdit {
		err = h.categoryRepo.Update(r.Context(), category)
	} else {
		err = h.categoryRepo.Create(r.Context(), category)
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("slug", slugValue).Msg("saveCategory: failed to save category")
		redirectWithMessage(w, r, formAction, "error", "Не удалось сохранить категорию.")
		return
	}

	logger.Info(r.Context()).Str("category_id", category.ID).Bool("edit", isEdit).Msg("Category saved")
	redirectWithMessage(w, r, "/admin/categories", "success", fmt.Sprintf("Категория «%s» сохранена.", category.Name))
}

// DeleteCategory removes the category; its products go with it.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	if err := h.categoryRepo.Delete(r.Context(), categoryID); err != nil {
		logger.Error(r.Context()).Err(err).Str("category_id", categoryID).Msg("DeleteCategory: failed to delete category")
		redirectWithMessage(w, r, "/admin/categories", "error", "Не удалось удалить категорию.")
		return
	}

	logger.Info(r.Context()).Str("category_id", categoryID).Msg("Category deleted")
	redirectWithMessage(w, r, "/admin/categories", "success", "Категория удалена.")
}
