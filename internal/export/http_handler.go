package export

import (
	"fmt"
	"net/http"

	"github.com/rpattn/equipo/internal/domain"
)

// Handler exposes report downloads as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a GET endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	format := Format(query.Get("format"))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		http.Error(w, fmt.Sprintf("unsupported export format %q: expected csv or xlsx", format), http.StatusBadRequest)
		return
	}

	filter := domain.EquipmentFilter{
		Status:   query.Get("status"),
		Category: query.Get("category"),
		Location: query.Get("location"),
		Search:   query.Get("search"),
	}

	report, err := h.service.Export(r.Context(), filter, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Content)
}
