package middlewares

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/Rakhulsr/go-catalog/app/utils/sessions"
)

func AdminAuthMiddleware(store sessions.SessionStore, adminRepo repositories.AdminUserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loginURL := "/admin/login?next=" + url.QueryEscape(r.URL.RequestURI())

			adminID := store.GetAdminID(r)
			if adminID == "" {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			admin, err := adminRepo.FindByID(r.Context(), adminID)
			if err != nil || admin == nil {
				logger.Warn(r.Context()).Err(err).Str("admin_id", adminID).Msg("AdminAuthMiddleware: admin not found, redirecting to login")
				_ = store.ClearSession(w, r)
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyAdminID, admin.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
