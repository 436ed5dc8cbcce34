package standards

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type RegionOut struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Authority     string `json:"authority"`
	EffectiveDate string `json:"effective_date"`
	Scheme        Scheme `json:"scheme"`
	URLSlug       string `json:"url_slug"`
	Explainer     string `json:"explainer,omitempty"`
	TownCount     int    `json:"town_count"`
	ZipCount      int    `json:"zip_count"`
}

type StandardOut struct {
	Region   string         `json:"region"`
	Zip      string         `json:"zip"`
	Tier     string         `json:"tier,omitempty"`
	Amounts  map[string]int `json:"amounts,omitempty"`
	Bedrooms *int           `json:"bedrooms,omitempty"`
	Amount   *int           `json:"amount,omitempty"`
}

type ResolveOut struct {
	Region string   `json:"region"`
	Query  string   `json:"query"`
	Zips   []string `json:"zips"`
}

func toRegionOut(r *Region, detail bool) RegionOut {
	out := RegionOut{
		Key:           r.Key,
		Name:          r.Name,
		Authority:     r.Authority,
		EffectiveDate: r.EffectiveDate.Format(DateLayout),
		Scheme:        r.Scheme,
		URLSlug:       r.URLSlug,
		TownCount:     len(r.towns),
		ZipCount:      len(r.ZipCodes()),
	}
	if detail {
		out.Explainer = r.Explainer
	}
	return out
}

// Handlers serves read-only reference data from one Registry.
type Handlers struct {
	reg *Registry
}

func NewHandlers(reg *Registry) *Handlers {
	return &Handlers{reg: reg}
}

func (h *Handlers) region(w http.ResponseWriter, r *http.Request) (*Region, bool) {
	key := chi.URLParam(r, "region")
	region, ok := h.reg.Region(key)
	if !ok {
		http.Error(w, "Region not found", http.StatusNotFound)
		return nil, false
	}
	return region, true
}

func (h *Handlers) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions := h.reg.Regions()
	out := make([]RegionOut, 0, len(regions))
	for _, region := range regions {
		out = append(out, toRegionOut(region, false))
	}
	writeJSON(w, out)
}

func (h *Handlers) GetRegion(w http.ResponseWriter, r *http.Request) {
	region, ok := h.region(w, r)
	if !ok {
		return
	}
	writeJSON(w, toRegionOut(region, true))
}

func (h *Handlers) GetTowns(w http.ResponseWriter, r *http.Request) {
	region, ok := h.region(w, r)
	if !ok {
		return
	}
	writeJSON(w, region.Towns())
}

func (h *Handlers) GetZips(w http.ResponseWriter, r *http.Request) {
	region, ok := h.region(w, r)
	if !ok {
		return
	}
	writeJSON(w, region.ZipCodes())
}

// GetStandard returns every category amount for a ZIP, or a single amount
// when ?bedrooms= is given.
func (h *Handlers) GetStandard(w http.ResponseWriter, r *http.Request) {
	region, ok := h.region(w, r)
	if !ok {
		return
	}
	zip := chi.URLParam(r, "zip")
	if !IsZip5(zip) {
		http.Error(w, "Missing or invalid zip parameter", http.StatusBadRequest)
		return
	}

	amounts, err := region.AmountsFor(zip)
	if err != nil {
		http.Error(w, "No payment standard for zip "+zip, http.StatusNotFound)
		return
	}

	out := StandardOut{Region: region.Key, Zip: zip}
	if tier, ok := region.Tier(zip); ok {
		out.Tier = tier
	}

	if raw := r.URL.Query().Get("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid bedrooms parameter", http.StatusBadRequest)
			return
		}
		amount := amounts.For(n)
		out.Bedrooms = &n
		out.Amount = &amount
		writeJSON(w, out)
		return
	}

	out.Amounts = make(map[string]int, NumCategories)
	for i, a := range amounts {
		out.Amounts[BedroomCategory(i).String()] = a
	}
	writeJSON(w, out)
}

func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	region, ok := h.region(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	writeJSON(w, ResolveOut{Region: region.Key, Query: q, Zips: region.Resolve(q)})
}

func (h *Handlers) ListIssues(w http.ResponseWriter, r *http.Request) {
	issues := h.reg.Issues()
	if issues == nil {
		issues = []Issue{}
	}
	writeJSON(w, issues)
}
