package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/utils/logger"
)

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := &AdminPageData{}
	data.Title = "Панель управления"
	data.Breadcrumbs = adminCrumbs()
	h.populateBaseDataForAdmin(r, &data.BasePageData)

	var err error
	if data.TotalCategories, err = h.categoryRepo.Count(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Dashboard: failed to count categories")
	}
	if data.TotalProducts, err = h.productRepo.Count(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Dashboard: failed to count products")
	}
	if data.TotalGallery, err = h.galleryRepo.Count(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Dashboard: failed to count gallery images")
	}
	data.HasContactInfo = data.ContactInfo != nil

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
