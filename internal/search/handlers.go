package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

type errorOut struct {
	Error   string `json:"error"`
	Warning string `json:"warning,omitempty"`
}

type Handlers struct {
	svc *Service
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func addServerTiming(w http.ResponseWriter, kv ...[2]string) {
	// kv: [][2]string{{"search","812.4"}}
	if len(kv) == 0 {
		return
	}
	val := ""
	for i, p := range kv {
		if i > 0 {
			val += ", "
		}
		val += fmt.Sprintf("%s;dur=%s", p[0], p[1])
	}
	w.Header().Add("Server-Timing", val)
}

func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// PostSearch runs a search from a JSON Request body.
func (h *Handlers) PostSearch(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorOut{Error: "Invalid JSON body"})
		return
	}

	start := time.Now()
	resp, err := h.svc.Search(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorOut{Error: err.Error()})
		return
	case errors.Is(err, ErrUnknownRegion):
		writeJSON(w, http.StatusNotFound, errorOut{Error: err.Error()})
		return
	case errors.Is(err, ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorOut{Error: err.Error(), Warning: NotConfiguredWarning})
		return
	case err != nil:
		log.Printf("[search] unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorOut{Error: "Search failed"})
		return
	}

	addServerTiming(w, [2]string{"search", fmt.Sprintf("%.1f", float64(time.Since(start).Microseconds())/1000)})
	w.Header().Set("X-Search-ID", resp.SearchID)
	writeJSON(w, http.StatusOK, resp)
}
