package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
	"github.com/AnaFlavia-corretora/pcd/internal/service"
	"github.com/AnaFlavia-corretora/pcd/pkg/httputil"
)

// CatalogHandler handles the JSON API for the vehicle catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Response DTOs ---

// vehicleRow is one listing entry. The annotation keys are only present for
// the orderings that produce them: inicia_grupo under marca_asc, the discount
// pair under desconto_desc.
type vehicleRow struct {
	domain.Vehicle
	IniciaGrupo        bool     `json:"inicia_grupo,omitempty"`
	Desconto           *float64 `json:"desconto,omitempty"`
	DescontoPercentual *float64 `json:"desconto_percentual,omitempty"`
}

// listResponse echoes the applied sort mode alongside the rows.
type listResponse struct {
	Modo     domain.SortMode `json:"modo"`
	Total    int             `json:"total"`
	Veiculos []vehicleRow    `json:"veiculos"`
}

// --- Handlers ---

// ListVehicles handles GET /api/v1/veiculos?ordenar=<mode>.
// Unknown ordering values fall back to the default order rather than 400.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	mode := domain.ParseSortMode(r.URL.Query().Get("ordenar"))

	rows, err := h.service.ListRows(r.Context(), mode)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out := make([]vehicleRow, len(rows))
	for i, row := range rows {
		vr := vehicleRow{Vehicle: row.Vehicle, IniciaGrupo: row.OpensGroup}
		if row.Discount != nil {
			amount := row.Discount.Amount
			percent := row.Discount.Percent
			vr.Desconto = &amount
			vr.DescontoPercentual = &percent
		}
		out[i] = vr
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: listResponse{
		Modo:     mode,
		Total:    len(out),
		Veiculos: out,
	}})
}

// GetVehicle handles GET /api/v1/veiculos/{id}.
func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "vehicle id is required"},
		})
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: v})
}
