package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// Handler exposes the aggregate views under /api/dashboard.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the dashboard endpoints.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/dashboard"), "/") {
	case "stats":
		h.handleStats(w, r)
	case "equipment-by-category":
		h.handleByCategory(w, r)
	case "equipment-by-status":
		h.handleByStatus(w, r)
	case "equipment-by-location":
		h.handleByLocation(w, r)
	case "recent-activity":
		h.handleRecentActivity(w, r)
	case "maintenance-due":
		h.handleMaintenanceDue(w, r)
	case "equipment-value":
		h.handleEquipmentValue(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ByCategory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) handleByStatus(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ByStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) handleByLocation(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ByLocation(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r, "limit", DefaultActivityLimit)

	activity, err := h.service.RecentActivity(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *Handler) handleMaintenanceDue(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r, "days", DefaultMaintenanceDays)

	due, err := h.service.MaintenanceDue(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}

func (h *Handler) handleEquipmentValue(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.EquipmentValue(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// intQueryParam reads a positive integer query parameter, falling back to a
// default for missing or malformed values.
func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func writeServiceError(w http.ResponseWriter, err error) {
	log.Printf("[DASHBOARD] request failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
