package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dmuuo/portfolio-backend/database"
	"github.com/dmuuo/portfolio-backend/errs"
	"github.com/dmuuo/portfolio-backend/models"
	"github.com/dmuuo/portfolio-backend/services"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
}

func newContactHandler(contactRepo *database.ContactRepo) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
	}
}

type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// submitContactForm accepts the public contact form. All four fields are
// required. The owner notification goes out fire and forget once the
// message is persisted.
func (h contactHandler) submitContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form contactForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		for _, field := range []struct{ name, value string }{
			{"name", form.Name},
			{"email", form.Email},
			{"subject", form.Subject},
			{"message", form.Message},
		} {
			if strings.TrimSpace(field.value) == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field.name))
				return
			}
		}

		contact := models.Contact{
			Name:    form.Name,
			Email:   form.Email,
			Subject: form.Subject,
			Message: form.Message,
			Status:  models.DefaultContactStatus,
		}

		if err := h.contactRepo.Add(&contact); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact", err))
			return
		}

		go services.NotifyContact(contact)

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "Message sent successfully",
			"contact": contact,
		})
	}
}

// getAllContacts lists every submitted message, newest first.
func (h contactHandler) getAllContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := h.contactRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contacts", err))
			return
		}
		h.responder.WriteJSON(w, contacts)
	}
}

// updateContactStatus transitions a message to any of the four statuses.
// Enum membership is the only rule; no transition ordering is enforced.
func (h contactHandler) updateContactStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uuid.Parse(chi.URLParam(r, "contactID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if !models.ValidContactStatus(body.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "not an accepted value"))
			return
		}

		contact, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact", err))
			return
		}
		if contact == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("contact not found"))
			return
		}

		if err := h.contactRepo.UpdateStatus(contactID, body.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "contact", err))
			return
		}

		contact.Status = body.Status
		h.responder.WriteJSON(w, contact)
	}
}

// deleteContact removes a message.
func (h contactHandler) deleteContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uuid.Parse(chi.URLParam(r, "contactID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
			return
		}

		contact, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact", err))
			return
		}
		if contact == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("contact not found"))
			return
		}

		if err := h.contactRepo.Delete(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "Contact deleted successfully",
			"id":      contactID.String(),
		})
	}
}
