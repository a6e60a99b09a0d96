package share

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/momentumapp/momentum-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrShareNotFound), errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrRecipientNotFound), errors.Is(err, ErrInvalidID):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrRecipientNotReady):
		config.JSON(w, http.StatusConflict, map[string]string{
			"error": "RECIPIENT_NOT_ENCRYPTION_READY",
		})
	case errors.Is(err, ErrTooManyItems), errors.Is(err, ErrInvalidItemType),
		errors.Is(err, ErrMissingContentKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateShareDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	shares, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, shares)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	shares, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, shares)
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Revoke(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Access(w http.ResponseWriter, r *http.Request) {
	sh, err := h.service.Access(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, sh)
}
