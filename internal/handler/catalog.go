package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"scankey-catalog/internal/model"
	"scankey-catalog/internal/service"
)

const maxBodyBytes = 1 << 20

type CatalogHandler struct {
	svc      *service.CatalogService
	validate *validator.Validate
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Match resolves OCR text to catalog references
func (h *CatalogHandler) Match(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Match(r.Context(), req))
}

// Hint returns the compact catalog summary for OCR text
func (h *CatalogHandler) Hint(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Hint(r.Context(), req))
}

// Display renders one reference
func (h *CatalogHandler) Display(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing_param", "Parameter 'ref' is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Display(r.Context(), ref))
}

// Stats describes the loaded catalog
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}

func (h *CatalogHandler) decode(w http.ResponseWriter, r *http.Request) (model.MatchRequest, bool) {
	var req model.MatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return req, false
	}
	return req, true
}
