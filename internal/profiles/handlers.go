package profiles

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

// RegionChecker reports whether a region key exists.
type RegionChecker func(key string) bool

type ProfileIn struct {
	Region          string   `json:"region"`
	VoucherBedrooms int      `json:"voucher_bedrooms"`
	DesiredBedrooms []int    `json:"desired_bedrooms"`
	PreferredTowns  []string `json:"preferred_towns"`
	Notes           string   `json:"notes"`
}

type DismissIn struct {
	ListingID string `json:"listing_id"`
}

type Handlers struct {
	store       Store
	knownRegion RegionChecker
}

func NewHandlers(store Store, knownRegion RegionChecker) *Handlers {
	return &Handlers{store: store, knownRegion: knownRegion}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		http.Error(w, "Profile not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidClient):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[profiles] %s: %v", op, err)
		http.Error(w, "Failed to "+op+" profile", http.StatusInternalServerError)
	}
}

func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.storeError(w, "list", err)
		return
	}
	if list == nil {
		list = []Profile{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Load(r.Context(), chi.URLParam(r, "client"))
	if err != nil {
		h.storeError(w, "load", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutProfile creates or replaces a client's profile. Dismissed listings
// survive the replace.
func (h *Handlers) PutProfile(w http.ResponseWriter, r *http.Request) {
	client := chi.URLParam(r, "client")

	var in ProfileIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if msg := h.validate(in); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p := &Profile{
		ClientName:      client,
		Region:          strings.TrimSpace(in.Region),
		VoucherBedrooms: in.VoucherBedrooms,
		PreferredTowns:  pq.StringArray(in.PreferredTowns),
		Notes:           in.Notes,
	}
	for _, b := range in.DesiredBedrooms {
		p.DesiredBedrooms = append(p.DesiredBedrooms, int64(b))
	}

	prev, err := h.store.Load(r.Context(), client)
	switch {
	case err == nil:
		p.DismissedListings = prev.DismissedListings
	case !errors.Is(err, ErrProfileNotFound):
		h.storeError(w, "load", err)
		return
	}

	if err := h.store.Save(r.Context(), p); err != nil {
		h.storeError(w, "save", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "client")); err != nil {
		h.storeError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DismissListing(w http.ResponseWriter, r *http.Request) {
	var in DismissIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(in.ListingID)
	if id == "" {
		http.Error(w, "listing_id is required", http.StatusBadRequest)
		return
	}

	p, err := h.store.Dismiss(r.Context(), chi.URLParam(r, "client"), id)
	if err != nil {
		h.storeError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) validate(in ProfileIn) string {
	if in.Region != "" && h.knownRegion != nil && !h.knownRegion(strings.TrimSpace(in.Region)) {
		return "Unknown region " + in.Region
	}
	if in.VoucherBedrooms < 0 || in.VoucherBedrooms > 4 {
		return "voucher_bedrooms must be between 0 and 4"
	}
	for _, b := range in.DesiredBedrooms {
		if b < 0 || b > 4 {
			return "desired_bedrooms must be between 0 and 4"
		}
	}
	return ""
}
