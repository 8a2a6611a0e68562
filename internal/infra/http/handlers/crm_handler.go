package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jatinenterprises/site-backend/internal/infra/database"
	"github.com/jatinenterprises/site-backend/internal/infra/http/middleware"
	"github.com/jatinenterprises/site-backend/internal/usecase"
)

type CRMHandler struct {
	Console *usecase.TriageConsole
}

func NewCRMHandler(console *usecase.TriageConsole) *CRMHandler {
	return &CRMHandler{Console: console}
}

type crmErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListContacts handles GET /crm/contacts?page=&page_size=.
func (h *CRMHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	if err := h.Console.EnsureLoaded(r.Context(), viewer); err != nil {
		h.writeError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.Console.Page(viewer, page, size)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CreateContact handles POST /crm/contacts (manual admin entry).
func (h *CRMHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	var form usecase.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, crmErrorResponse{Error: "INVALID_JSON", Message: "Invalid JSON"})
		return
	}
	form.ID = ""

	id, err := h.Console.Save(r.Context(), viewer, form)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.RecordLeadCaptured("admin")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateContact handles PUT /crm/contacts/{id} (the edit dialog save).
func (h *CRMHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	var form usecase.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, crmErrorResponse{Error: "INVALID_JSON", Message: "Invalid JSON"})
		return
	}
	form.ID = chi.URLParam(r, "id")

	id, err := h.Console.Save(r.Context(), viewer, form)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// EditForm handles GET /crm/contacts/{id}/form, pre-filling the dialog
// with notes flattened back into the text block.
func (h *CRMHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	form, err := h.Console.EditForm(viewer, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// ChangeStatus handles PATCH /crm/contacts/{id}/status.
func (h *CRMHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, crmErrorResponse{Error: "INVALID_JSON", Message: "Invalid JSON"})
		return
	}

	if err := h.Console.ChangeStatus(r.Context(), viewer, chi.URLParam(r, "id"), body.Status); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// DeleteContact handles DELETE /crm/contacts/{id}?confirm=true. The
// confirm parameter is the explicit confirmation step.
func (h *CRMHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromContext(r.Context())

	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.Console.Delete(r.Context(), viewer, chi.URLParam(r, "id"), confirmed); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CRMHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAccessDenied):
		writeJSON(w, http.StatusForbidden, crmErrorResponse{
			Error:   "ACCESS_DENIED",
			Message: "Admin access required. Please login with an admin account.",
		})
	case errors.Is(err, usecase.ErrConfirmationRequired):
		writeJSON(w, http.StatusBadRequest, crmErrorResponse{
			Error:   "CONFIRMATION_REQUIRED",
			Message: "Deleting a contact requires confirmation.",
		})
	case errors.Is(err, database.ErrContactNotFound):
		writeJSON(w, http.StatusNotFound, crmErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Contact not found.",
		})
	default:
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeJSON(w, http.StatusBadRequest, crmErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
			return
		}

		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) {
			status := http.StatusServiceUnavailable
			if techErr.Code == "PERMISSION_DENIED" {
				status = http.StatusForbidden
			}
			writeJSON(w, status, crmErrorResponse{Error: techErr.Code, Message: techErr.Message})
			return
		}

		writeJSON(w, http.StatusInternalServerError, crmErrorResponse{Error: "INTERNAL", Message: "Something went wrong."})
	}
}
