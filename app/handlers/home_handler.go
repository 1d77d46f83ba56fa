package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/unrolled/render"
)

// Home permanently redirects the site root to the catalog listing.
func Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog/", http.StatusMovedPermanently)
}

// NotFound renders the 404 page with the site-wide context.
func NotFound(rnd *render.Render, w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Страница не найдена",
	})
	_ = rnd.HTML(w, http.StatusNotFound, "errors/404", data)
}

func NotFoundHandler(rnd *render.Render) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NotFound(rnd, w, r)
	})
}
