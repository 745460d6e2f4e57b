package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/AnaFlavia-corretora/pcd/internal/catalog"
	"github.com/AnaFlavia-corretora/pcd/internal/domain"
	"github.com/AnaFlavia-corretora/pcd/internal/service"
	"github.com/AnaFlavia-corretora/pcd/pkg/currency"
	apperrors "github.com/AnaFlavia-corretora/pcd/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageHandler serves the server-rendered listing and detail pages.
type PageHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
	tmpl    *template.Template
	phone   string
}

// NewPageHandler creates the page handler with all templates parsed from the
// embedded filesystem. phone is the WhatsApp destination used by the CTAs.
func NewPageHandler(svc *service.CatalogService, phone string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service: svc,
		logger:  logger,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
		phone:   phone,
	}
}

// --- View models ---

type sortOption struct {
	Value    domain.SortMode
	Label    string
	Selected bool
}

type listingRow struct {
	ID          string
	Marca       string
	Modelo      string
	Categoria   string
	Cidade      string
	Image       string
	OpensGroup  bool
	Price       string
	HasPair     bool
	PublicPrice string
	PCDPrice    string
	Badge       string
	DetailURL   string
	WhatsAppURL string
}

type listingPage struct {
	Options []sortOption
	Rows    []listingRow
	Total   int
}

type detailPage struct {
	Marca       string
	Modelo      string
	Categoria   string
	Cidade      string
	Imagens     []string
	Descricao   []string
	Price       string
	HasPair     bool
	PublicPrice string
	PCDPrice    string
	Economy     string
	Percent     string
	Area        *int
	Quartos     *int
	Vagas       *int
	Suites      *int
	WhatsAppURL string
}

var sortLabels = []struct {
	Value domain.SortMode
	Label string
}{
	{domain.SortDefault, "Relevância"},
	{domain.SortValorAsc, "Menor preço"},
	{domain.SortMarcaAsc, "Marca (A-Z)"},
	{domain.SortDescontoDesc, "Maior desconto"},
}

// --- Handlers ---

// Listing handles GET /; the ordenar query parameter selects the sort mode,
// unknown values behave as the default order.
func (h *PageHandler) Listing(w http.ResponseWriter, r *http.Request) {
	mode := domain.ParseSortMode(r.URL.Query().Get("ordenar"))

	rows, err := h.service.ListRows(r.Context(), mode)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	page := listingPage{
		Total: len(rows),
		Rows:  make([]listingRow, len(rows)),
	}
	for _, opt := range sortLabels {
		page.Options = append(page.Options, sortOption{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == mode,
		})
	}
	for i, row := range rows {
		page.Rows[i] = h.listingRow(row)
	}

	h.render(w, r, http.StatusOK, "listing.html.tmpl", page)
}

// Detail handles GET /veiculo?id=<id>. An unknown id renders the not-found
// page with a 404 status; it is a normal outcome, not a fault.
func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.render(w, r, http.StatusNotFound, "notfound.html.tmpl", nil)
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "detail.html.tmpl", h.detailPage(*v))
}

// --- View model builders ---

func (h *PageHandler) listingRow(row catalog.Row) listingRow {
	v := row.Vehicle
	lr := listingRow{
		ID:          v.ID,
		Marca:       v.Marca,
		Modelo:      v.Modelo,
		Categoria:   v.Categoria,
		Cidade:      v.Cidade,
		OpensGroup:  row.OpensGroup,
		DetailURL:   "/veiculo?id=" + url.QueryEscape(v.ID),
		WhatsAppURL: h.whatsappLink(v),
	}

	if len(v.Imagens) > 0 {
		lr.Image = v.Imagens[0]
	}

	if v.HasDiscountPrices() {
		lr.HasPair = true
		lr.PublicPrice = displayPrice(v.PrecoPublico)
		lr.PCDPrice = displayPrice(v.PrecoPCD)
	}
	lr.Price = displayPrice(v.PrimaryPrice())

	if row.Discount != nil && row.Discount.Amount > 0 {
		lr.Badge = fmt.Sprintf("Economia de %s (%s%%)",
			currency.FormatBRL(row.Discount.Amount), formatPercent(row.Discount.Percent))
	}

	return lr
}

func (h *PageHandler) detailPage(v domain.Vehicle) detailPage {
	dp := detailPage{
		Marca:       v.Marca,
		Modelo:      v.Modelo,
		Categoria:   v.Categoria,
		Cidade:      v.Cidade,
		Imagens:     v.Imagens,
		Descricao:   v.Descricao,
		Price:       displayPrice(v.PrimaryPrice()),
		Area:        v.Area,
		Quartos:     v.Quartos,
		Vagas:       v.Vagas,
		Suites:      v.Suites,
		WhatsAppURL: h.whatsappLink(v),
	}

	if v.HasDiscountPrices() {
		dp.HasPair = true
		dp.PublicPrice = displayPrice(v.PrecoPublico)
		dp.PCDPrice = displayPrice(v.PrecoPCD)

		d := domain.CalculateDiscount(v)
		if d.Amount > 0 {
			dp.Economy = currency.FormatBRL(d.Amount)
			dp.Percent = formatPercent(d.Percent)
		}
	}

	return dp
}

// --- Rendering helpers ---

// render executes the named template into a buffer before touching the
// ResponseWriter, so a template failure becomes a clean 500 instead of a
// half-written page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "template render failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "erro interno ao montar a página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderServiceError maps catalog unavailability to the dedicated notice page
// and everything else to a logged 500.
func (h *PageHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperrors.ErrServiceUnavail) {
		h.render(w, r, http.StatusServiceUnavailable, "unavailable.html.tmpl", nil)
		return
	}

	h.logger.ErrorContext(r.Context(), "page request failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
	)
	http.Error(w, "erro interno", http.StatusInternalServerError)
}

func (h *PageHandler) whatsappLink(v domain.Vehicle) string {
	msg := fmt.Sprintf("Olá! Tenho interesse no veículo %s %s.", v.Marca, v.Modelo)
	return "https://wa.me/" + h.phone + "?" + url.Values{"text": {msg}}.Encode()
}

// displayPrice normalizes a snapshot price string for display. Inconsistent
// authoring ("R$84.990", "84990,00") all renders as "R$ 84.990,00"; a record
// with no price at all shows a contact prompt instead of R$ 0,00.
func displayPrice(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Consulte"
	}
	return currency.FormatBRL(currency.ParseBRL(raw))
}

func formatPercent(p float64) string {
	return strings.Replace(strconv.FormatFloat(p, 'f', 2, 64), ".", ",", 1)
}
