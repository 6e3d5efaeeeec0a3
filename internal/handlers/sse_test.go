package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/INTeniola/monie-hackathon/internal/models"
	"github.com/INTeniola/monie-hackathon/internal/services"
)

func newTestSSEHandlers(analytics *services.Analytics, insights *stubInsights) *SSEHandlers {
	return NewSSEHandlers(analytics, insights, testLogger())
}

func TestRenderMetricsCards(t *testing.T) {
	h := newTestSSEHandlers(services.NewAnalytics(), &stubInsights{})

	batches := []models.BatchMetrics{
		{
			Date:             "2024-01-10",
			HighestVolumeDay: models.DayVolume{Day: "2024-01-10", TotalUnitsSold: 6},
			HighestValueDay:  models.DayValue{Day: "2024-01-11", TotalAmount: 500.00},
			MostSoldProduct:  models.ProductTotal{ProductID: "B", TotalQuantity: 6},
			TopStaffByMonth:  []models.StaffMonth{{Month: "2024-01", StaffID: 1}},
			PeakHour:         models.HourAverage{Hour: 10, AvgUnitsPerTransaction: 5},
		},
	}

	html, err := h.renderMetricsCards(batches)
	if err != nil {
		t.Fatalf("renderMetricsCards() error = %v", err)
	}

	for _, want := range []string{
		`id="metrics-content"`,
		"Metrics for 2024-01-10",
		"6 units",
		"500.00",
		"ID B",
		"10:00",
		"Staff #1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("fragment missing %q:\n%s", want, html)
		}
	}
}

func TestRenderMetricsCards_Empty(t *testing.T) {
	h := newTestSSEHandlers(services.NewAnalytics(), &stubInsights{})

	html, err := h.renderMetricsCards(nil)
	if err != nil {
		t.Fatalf("renderMetricsCards() error = %v", err)
	}

	if !strings.Contains(html, "No batches yet") {
		t.Errorf("empty fragment should show the placeholder:\n%s", html)
	}
}

func TestRenderMetricsCards_CapsCardCount(t *testing.T) {
	h := newTestSSEHandlers(services.NewAnalytics(), &stubInsights{})

	batches := make([]models.BatchMetrics, maxBatchCards+10)
	for i := range batches {
		batches[i] = models.BatchMetrics{Date: "2024-01-10"}
	}

	html, err := h.renderMetricsCards(batches)
	if err != nil {
		t.Fatalf("renderMetricsCards() error = %v", err)
	}

	if got := strings.Count(html, "<section"); got != maxBatchCards {
		t.Errorf("rendered %d cards, want %d", got, maxBatchCards)
	}
}

func TestSSEHandleMetrics(t *testing.T) {
	analytics := services.NewAnalytics()
	batches := []services.NamedBatch{
		{Name: "day.txt", Content: strings.NewReader("1,2024-01-10T09:00:00,[A:2],150.00\n")},
	}
	if _, _, err := analytics.ProcessFiles(context.Background(), batches); err != nil {
		t.Fatal(err)
	}
	h := newTestSSEHandlers(analytics, &stubInsights{})

	req := httptest.NewRequest(http.MethodGet, "/sse/metrics", nil)
	w := httptest.NewRecorder()
	h.HandleMetrics(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("Content-Type = %s, want text/event-stream", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "metrics-content") {
		t.Errorf("stream should patch the metrics fragment:\n%s", body)
	}
	if !strings.Contains(body, "batchesData") {
		t.Errorf("stream should patch the batches signal:\n%s", body)
	}
}

func TestSSEHandleInsights(t *testing.T) {
	report := &models.InsightsReport{
		HighestSalesVolumeDay: models.VolumeDayInsight{Date: "2024-01-10", TotalVolume: 42},
	}
	h := newTestSSEHandlers(services.NewAnalytics(), &stubInsights{report: report})

	req := httptest.NewRequest(http.MethodGet, "/sse/insights", nil)
	w := httptest.NewRecorder()
	h.HandleInsights(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "insightsData") {
		t.Errorf("stream should patch the insights signal:\n%s", body)
	}
	if !strings.Contains(body, "Insights data loaded") {
		t.Errorf("stream should confirm the load:\n%s", body)
	}
}

func TestSSEHandleInsights_FetchError(t *testing.T) {
	h := newTestSSEHandlers(services.NewAnalytics(), &stubInsights{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/sse/insights", nil)
	w := httptest.NewRecorder()
	h.HandleInsights(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Failed to fetch data") {
		t.Errorf("stream should show the generic failure message:\n%s", body)
	}
	if strings.Contains(body, "connection refused") {
		t.Errorf("stream should not leak the fetch error:\n%s", body)
	}
}
