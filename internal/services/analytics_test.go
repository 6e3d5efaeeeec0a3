package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics()
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.batches == nil {
		t.Error("batches should be initialized")
	}
	if a.logger == nil {
		t.Error("logger should be initialized")
	}
}

func TestAnalytics_ProcessBatch(t *testing.T) {
	a := NewAnalytics()

	metrics, err := a.ProcessBatch("day.txt", strings.NewReader("1,2024-01-10T09:00:00,[A:2|B:1],150.00\n"))
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if metrics.Date != "2024-01-10" {
		t.Errorf("batch date = %s, want 2024-01-10", metrics.Date)
	}
	if metrics.MostSoldProduct.ProductID != "A" {
		t.Errorf("most sold product = %s, want A", metrics.MostSoldProduct.ProductID)
	}
}

func TestAnalytics_ProcessBatch_EmptyFile(t *testing.T) {
	a := NewAnalytics()

	metrics, err := a.ProcessBatch("empty.txt", strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty batch should not fail, got %v", err)
	}

	if metrics.Date != "" || metrics.HighestVolumeDay.TotalUnitsSold != 0 {
		t.Errorf("empty batch should yield zero metrics, got %+v", metrics)
	}
	if len(metrics.TopStaffByMonth) != 0 {
		t.Errorf("empty batch should have no month entries, got %d", len(metrics.TopStaffByMonth))
	}
}

func TestAnalytics_ProcessFiles_IsolatesFailures(t *testing.T) {
	a := NewAnalytics()

	batches := []NamedBatch{
		{Name: "good-1.txt", Content: strings.NewReader("1,2024-02-01T09:00:00,[A:2],150.00\n")},
		{Name: "bad.txt", Content: strings.NewReader("not,a,valid\n")},
		{Name: "good-2.txt", Content: strings.NewReader("2,2024-01-15T10:00:00,[B:3],300.00\n")},
	}

	results, failures, err := a.ProcessFiles(context.Background(), batches)
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}

	if failures[0].File != "bad.txt" {
		t.Errorf("failure should name the offending file, got %q", failures[0].File)
	}
	if strings.Contains(failures[0].Reason, "valid") {
		t.Errorf("failure reason should not leak parse detail, got %q", failures[0].Reason)
	}
}

func TestAnalytics_ProcessFiles_SortedByDate(t *testing.T) {
	a := NewAnalytics()

	batches := []NamedBatch{
		{Name: "feb.txt", Content: strings.NewReader("1,2024-02-01T09:00:00,[A:2],150.00\n")},
		{Name: "jan.txt", Content: strings.NewReader("2,2024-01-15T10:00:00,[B:3],300.00\n")},
		{Name: "mar.txt", Content: strings.NewReader("3,2024-03-10T11:00:00,[C:1],80.00\n")},
	}

	results, _, err := a.ProcessFiles(context.Background(), batches)
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	wantDates := []string{"2024-01-15", "2024-02-01", "2024-03-10"}
	if len(results) != len(wantDates) {
		t.Fatalf("expected %d results, got %d", len(wantDates), len(results))
	}
	for i, want := range wantDates {
		if results[i].Date != want {
			t.Errorf("results[%d].Date = %s, want %s", i, results[i].Date, want)
		}
	}

	held := a.Metrics()
	for i, want := range wantDates {
		if held[i].Date != want {
			t.Errorf("held metrics[%d].Date = %s, want %s", i, held[i].Date, want)
		}
	}
}

func TestAnalytics_ProcessFiles_AllFailKeepsHeldState(t *testing.T) {
	a := NewAnalytics()

	good := []NamedBatch{
		{Name: "good.txt", Content: strings.NewReader("1,2024-01-10T09:00:00,[A:2],150.00\n")},
	}
	if _, _, err := a.ProcessFiles(context.Background(), good); err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	bad := []NamedBatch{
		{Name: "bad.txt", Content: strings.NewReader("garbage\n")},
	}
	results, failures, err := a.ProcessFiles(context.Background(), bad)
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	if len(results) != 0 || len(failures) != 1 {
		t.Fatalf("expected 0 results and 1 failure, got %d and %d", len(results), len(failures))
	}

	held := a.Metrics()
	if len(held) != 1 || held[0].Date != "2024-01-10" {
		t.Errorf("failed upload should not clear held metrics, got %+v", held)
	}
}

func TestAnalytics_ProcessFiles_ContextCanceled(t *testing.T) {
	a := NewAnalytics()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batches := []NamedBatch{
		{Name: "day.txt", Content: strings.NewReader("1,2024-01-10T09:00:00,[A:2],150.00\n")},
	}
	if _, _, err := a.ProcessFiles(ctx, batches); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestAnalytics_LoadFromDir(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("day-1.txt", "1,2024-01-10T09:00:00,[A:2],150.00\n")
	writeFile("day-2.txt", "2,2024-01-11T10:00:00,[B:3],300.00\n")
	writeFile("notes.csv", "this file is ignored\n")

	a := NewAnalytics()
	if err := a.LoadFromDir(context.Background(), dir); err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}

	held := a.Metrics()
	if len(held) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(held))
	}
	if held[0].Date != "2024-01-10" || held[1].Date != "2024-01-11" {
		t.Errorf("batches out of order: %s, %s", held[0].Date, held[1].Date)
	}
}

func TestAnalytics_LoadFromDir_MissingDir(t *testing.T) {
	a := NewAnalytics()
	if err := a.LoadFromDir(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestAnalytics_Metrics_Empty(t *testing.T) {
	a := NewAnalytics()

	held := a.Metrics()
	if held == nil {
		t.Error("Metrics() should return an empty slice, not nil")
	}
	if len(held) != 0 {
		t.Errorf("expected no batches, got %d", len(held))
	}
}

func TestAnalytics_Stats(t *testing.T) {
	a := NewAnalytics()

	batches := []NamedBatch{
		{Name: "day.txt", Content: strings.NewReader("1,2024-01-10T09:00:00,[A:2],150.00\n2,2024-01-10T10:00:00,[B:1],80.00\n")},
	}
	if _, _, err := a.ProcessFiles(context.Background(), batches); err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	stats := a.Stats()
	if stats["batches"] != 1 {
		t.Errorf("stats batches = %v, want 1", stats["batches"])
	}
	if stats["records_processed"] != int64(2) {
		t.Errorf("stats records_processed = %v, want 2", stats["records_processed"])
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	a := NewAnalytics()

	batches := []NamedBatch{
		{Name: "day.txt", Content: strings.NewReader("1,2024-01-10T09:00:00,[A:2],150.00\n")},
	}
	if _, _, err := a.ProcessFiles(context.Background(), batches); err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			_ = a.Metrics()
			_ = a.Stats()
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
