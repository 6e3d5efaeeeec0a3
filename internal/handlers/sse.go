package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/INTeniola/monie-hackathon/internal/clients/insights"
	"github.com/INTeniola/monie-hackathon/internal/models"
	"github.com/INTeniola/monie-hackathon/internal/services"
)

// maxBatchCards caps the rendered fragment; one card per uploaded file, a
// month of shop-days at most.
const maxBatchCards = 31

var metricsCardsTemplate = template.Must(template.New("metricsCards").Parse(`
<div id="metrics-content">
{{range .Batches}}<section class="metrics-card">
<h3>Metrics for {{.Date}}</h3>
<ul>
<li>Highest sales volume: <strong>{{.HighestVolumeDay.TotalUnitsSold}} units</strong> on {{.HighestVolumeDay.Day}}</li>
<li>Highest sales value: <strong>&#8358;{{printf "%.2f" .HighestValueDay.TotalAmount}}</strong> on {{.HighestValueDay.Day}}</li>
<li>Most sold product: <strong>ID {{.MostSoldProduct.ProductID}}</strong> ({{.MostSoldProduct.TotalQuantity}} units sold)</li>
<li>Peak sales hour: <strong>{{.PeakHour.Hour}}:00</strong> (avg {{printf "%.2f" .PeakHour.AvgUnitsPerTransaction}} units/transaction)</li>
</ul>
<table class="staff-table">
<thead><tr><th>Month</th><th>Top staff</th></tr></thead>
<tbody>
{{range .TopStaffByMonth}}<tr><td>{{.Month}}</td><td>Staff #{{.StaffID}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}{{if not .Batches}}<p class="empty">No batches yet. Upload transaction files to see metrics.</p>{{end}}
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	insights  insights.Client
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, insightsClient insights.Client, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		insights:  insightsClient,
		logger:    logger,
	}
}

type metricsTemplateData struct {
	Batches []models.BatchMetrics
}

func (h *SSEHandlers) renderMetricsCards(batches []models.BatchMetrics) (string, error) {
	if len(batches) > maxBatchCards {
		batches = batches[:maxBatchCards]
	}

	var buf strings.Builder
	err := metricsCardsTemplate.Execute(&buf, metricsTemplateData{Batches: batches})
	return buf.String(), err
}

// HandleMetrics pushes the current batch metrics to the dashboard, both as
// a rendered fragment and as a signal for chart consumers.
func (h *SSEHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	batches := h.analytics.Metrics()
	html, err := h.renderMetricsCards(batches)
	if err != nil {
		h.logger.Error("render metrics cards", "error", err)
		return
	}
	sse.PatchElements(html)

	jsonData, err := json.Marshal(map[string]any{
		"batchesData": batches,
	})
	if err != nil {
		h.logger.Error("marshal batches data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleInsights fetches the remote pre-aggregated report and pushes it to
// the dashboard. Any fetch failure collapses to a single generic message.
func (h *SSEHandlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	report, err := h.insights.Fetch(r.Context())
	if err != nil {
		h.logger.Error("insights fetch failed", "error", err)
		sse.PatchElements(`<div id="insights-content">Failed to fetch data</div>`)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"insightsData": report,
	})
	if err != nil {
		h.logger.Error("marshal insights data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="insights-content">Insights data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
