package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
)

func (h *AdminHandler) GetContactPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminContactPageData{}
	data.Title = "Контактная информация"
	data.Breadcrumbs = adminCrumbs(breadcrumb.Breadcrumb{Name: "Контакты", URL: "/admin/contact"})
	h.populateBaseDataForAdmin(r, &data.BasePageData)

	contact, err := h.contactSvc.Get(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("GetContactPage: failed to load contact info")
		data.Message = "Не удалось загрузить контакты."
		data.MessageStatus = "error"
	}
	if contact != nil {
		data.Contacts = []models.ContactInfo{*contact}
	}
	data.CanCreate = contact == nil && err == nil

	_ = h.render.HTML(w, http.StatusOK, "admin/contact/index", data)
}

func (h *AdminHandler) renderContactForm(w http.ResponseWriter, r *http.Request, data *AdminContactPageData) {
	if data.IsEdit {
		data.Title = "Редактирование контактов"
		data.FormAction = "/admin/contact/edit"
	} else {
		data.Title = "Добавление контактов"
		data.FormAction = "/admin/contact/add"
	}
	data.Breadcrumbs = adminCrumbs(
		breadcrumb.Breadcrumb{Name: "Контакты", URL: "/admin/contact"},
		breadcrumb.Breadcrumb{Name: data.Title, URL: data.FormAction},
	)
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	_ = h.render.HTML(w, http.StatusOK, "admin/contact/form", data)
}

func contactFormFromRequest(r *http.Request) ContactForm {
	return ContactForm{
		PhoneNumber:    strings.TrimSpace(r.PostFormValue("phone_number")),
		WhatsAppNumber: strings.TrimSpace(r.PostFormValue("whatsapp_number")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
	}
}

func (h *AdminHandler) AddContactPage(w http.ResponseWriter, r *http.Request) {
	canCreate, err := h.contactSvc.CanCreate(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("AddContactPage: failed to check contact info")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !canCreate {
		redirectWithMessage(w, r, "/admin/contact", "error", services.ErrContactInfoExists.Error())
		return
	}
	h.renderContactForm(w, r, &AdminContactPageData{ContactData: &ContactForm{}})
}

func (h *AdminHandler) AddContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/admin/contact/add", "error", "Не удалось обработать форму.")
		return
	}

	form := contactFormFromRequest(r)
	data := &AdminContactPageData{ContactData: &form}
	if err := h.validator.Struct(&form); err != nil {
		data.Errors = helpers.FormatValidationErrors(err)
		h.renderContactForm(w, r, data)
		return
	}

	contact := &models.ContactInfo{
		PhoneNumber:    form.PhoneNumber,
		WhatsAppNumber: form.WhatsAppNumber,
		Email:          form.Email,
	}
	err := h.contactSvc.Create(r.Context(), contact)
	if errors.Is(err, services.ErrContactInfoExists) {
		logger.Warn(r.Context()).Msg("AddContactPost: contact info already exists")
		redirectWithMessage(w, r, "/admin/contact", "error", err.Error())
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("AddContactPost: failed to create contact info")
		redirectWithMessage(w, r, "/admin/contact", "error", "Не удалось сохранить контакты.")
		return
	}

	redirectWithMessage(w, r, "/admin/contact", "success", "Контакты сохранены.")
}

func (h *AdminHandler) EditContactPage(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactSvc.Get(r.Context())
	if err != nil || contact == nil {
		logger.Warn(r.Context()).Err(err).Msg("EditContactPage: contact info not found")
		redirectWithMessage(w, r, "/admin/contact", "error", "Контактная информация ещё не создана.")
		return
	}

	h.renderContactForm(w, r, &AdminContactPageData{
		IsEdit: true,
		ContactData: &ContactForm{
			PhoneNumber:    contact.PhoneNumber,
			WhatsAppNumber: contact.WhatsAppNumber,
			Email:          contact.Email,
		},
	})
}

func (h *AdminHandler) EditContactPost(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactSvc.Get(r.Context())
	if err != nil || contact == nil {
		logger.Warn(r.Context()).Err(err).Msg("EditContactPost: contact info not found")
		redirectWithMessage(w, r, "/admin/contact", "error", "Контактная информация ещё не создана.")
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/admin/contact/edit", "error", "Не удалось обработать форму.")
		return
	}

	form := contactFormFromRequest(r)
	data := &AdminContactPageData{IsEdit: true, ContactData: &form}
	if err := h.validator.Struct(&form); err != nil {
		data.Errors = helpers.FormatValidationErrors(err)
		h.renderContactForm(w, r, data)
		return
	}

	contact.PhoneNumber = form.PhoneNumber
	contact.WhatsAppNumber = form.WhatsAppNumber
	contact.Email = form.Email

	if err := h.contactSvc.Update(r.Context(), contact); err != nil {
		logger.Error(r.Context()).Err(err).Msg("EditContactPost: failed to update contact info")
		redirectWithMessage(w, r, "/admin/contact", "error", "Не удалось сохранить контакты.")
		return
	}

	redirectWithMessage(w, r, "/admin/contact", "success", "Контакты обновлены.")
}

// DeleteContact never removes the record; it reports why.
func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	err := h.contactSvc.Delete(r.Context())
	logger.Warn(r.Context()).Err(err).Msg("DeleteContact: rejected")
	redirectWithMessage(w, r, "/admin/contact", "error", err.Error())
}
