package profiles

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(store Store, knownRegion RegionChecker) http.Handler {
	r := chi.NewRouter()
	h := NewHandlers(store, knownRegion)

	r.Get("/", h.ListProfiles)
	r.Get("/{client}", h.GetProfile)
	r.Put("/{client}", h.PutProfile)
	r.Delete("/{client}", h.DeleteProfile)
	r.Post("/{client}/dismissed", h.DismissListing)

	return r
}
