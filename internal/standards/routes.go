package standards

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(reg *Registry) http.Handler {
	r := chi.NewRouter()
	h := NewHandlers(reg)

	r.Get("/regions", h.ListRegions)
	r.Get("/regions/{region}", h.GetRegion)
	r.Get("/regions/{region}/towns", h.GetTowns)
	r.Get("/regions/{region}/zips", h.GetZips)
	r.Get("/regions/{region}/zips/{zip}", h.GetStandard)
	r.Get("/regions/{region}/resolve", h.Resolve)
	r.Get("/issues", h.ListIssues)

	return r
}
