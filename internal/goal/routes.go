package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/archive", h.Archive)
	r.Post("/{id}/activities", h.LogActivity)
	r.Get("/{id}/activities", h.ListActivities)
	r.Get("/{id}/progress", h.GetProgress)
	r.Get("/{id}/streak", h.GetStreak)

	return r
}
