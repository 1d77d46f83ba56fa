package admin

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"golang.org/x/crypto/bcrypt"
)

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// safeNext only allows redirects back into the admin area.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/admin/"
}

func (h *AdminHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data *AdminLoginPageData) {
	data.Title = "Вход в админку"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{{Name: "Вход", URL: "/admin/login"}}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	_ = h.render.HTML(w, status, "admin/login", data)
}

func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sessionStore.GetAdminID(r) != "" {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, &AdminLoginPageData{
		Next:   r.URL.Query().Get("next"),
		Errors: map[string]string{},
	})
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("LoginPost: failed to parse form")
		redirectWithMessage(w, r, "/admin/login", "error", "Не удалось обработать форму.")
		return
	}

	form := LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := &AdminLoginPageData{Email: form.Email, Next: r.PostFormValue("next")}

	if err := h.validator.Struct(&form); err != nil {
		data.Errors = helpers.FormatValidationErrors(err)
		h.renderLogin(w, r, http.StatusOK, data)
		return
	}

	admin, err := h.adminRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("LoginPost: failed to look up admin")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(form.Password)) != nil {
		logger.Warn(r.Context()).Str("email", form.Email).Msg("LoginPost: invalid credentials")
		data.Errors = map[string]string{"form": "Неверный email или пароль."}
		h.renderLogin(w, r, http.StatusUnauthorized, data)
		return
	}

	if err := h.sessionStore.SetAdminID(w, r, admin.ID); err != nil {
		logger.Error(r.Context()).Err(err).Msg("LoginPost: failed to save session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info(r.Context()).Str("admin_id", admin.ID).Msg("Admin logged in")
	http.Redirect(w, r, safeNext(data.Next), http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Logout: failed to clear session")
	}
	redirectWithMessage(w, r, "/admin/login", "success", "Вы вышли из админки.")
}
