package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(svc *Service) http.Handler {
	r := chi.NewRouter()
	h := NewHandlers(svc)

	r.Get("/status", h.GetStatus)
	r.Post("/", h.PostSearch)

	return r
}
