package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/INTeniola/monie-hackathon/internal/models"
)

const maxWorkers = 10

// failureMessage is the only detail surfaced to callers for a bad file;
// the underlying parse error goes to the log.
const failureMessage = "file could not be processed"

// NamedBatch couples a batch's source name with its raw content.
type NamedBatch struct {
	Name    string
	Content io.Reader
}

// BatchFailure identifies one file that could not be processed.
type BatchFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Analytics holds the batch metrics currently served by the dashboard.
// Batches are replaced wholesale by each successful upload or preload.
type Analytics struct {
	mu        sync.RWMutex
	batches   []models.BatchMetrics
	updatedAt time.Time
	processed atomic.Int64
	logger    *slog.Logger
}

func NewAnalytics() *Analytics {
	return &Analytics{
		batches: []models.BatchMetrics{},
		logger:  slog.Default(),
	}
}

// ProcessBatch parses and aggregates one batch. It does not touch the held
// result set; callers that want the results served go through ProcessFiles.
func (a *Analytics) ProcessBatch(name string, r io.Reader) (models.BatchMetrics, error) {
	txs, err := ParseTransactions(r)
	if err != nil {
		return models.BatchMetrics{}, fmt.Errorf("parse %s: %w", name, err)
	}

	a.processed.Add(int64(len(txs)))
	return ComputeMetrics(txs), nil
}

// ProcessFiles parses and aggregates each named batch independently, up to
// maxWorkers at a time. A bad file never fails its siblings: successes are
// collected and failures reported separately. When at least one batch
// succeeds, the held result set is replaced with the successes, sorted by
// batch date ascending.
func (a *Analytics) ProcessFiles(ctx context.Context, batches []NamedBatch) ([]models.BatchMetrics, []BatchFailure, error) {
	start := time.Now()

	var (
		mu       sync.Mutex
		results  []models.BatchMetrics
		failures []BatchFailure
	)

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for _, batch := range batches {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			metrics, err := a.ProcessBatch(batch.Name, batch.Content)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("batch rejected", "file", batch.Name, "error", err)
				failures = append(failures, BatchFailure{File: batch.Name, Reason: failureMessage})
				return nil
			}
			results = append(results, metrics)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("process files: %w", err)
	}

	slices.SortStableFunc(results, func(x, y models.BatchMetrics) int {
		return strings.Compare(x.Date, y.Date)
	})
	slices.SortFunc(failures, func(x, y BatchFailure) int {
		return strings.Compare(x.File, y.File)
	})

	if len(results) > 0 {
		a.mu.Lock()
		a.batches = results
		a.updatedAt = time.Now()
		a.mu.Unlock()
	}

	a.logger.Info("batches processed",
		"files", len(batches),
		"succeeded", len(results),
		"failed", len(failures),
		"duration", time.Since(start),
	)

	return results, failures, nil
}

// LoadFromDir processes every .txt file in dir as one batch each. An empty
// directory is not an error; the service simply starts with no batches.
func (a *Analytics) LoadFromDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read data dir: %w", err)
	}

	var batches []NamedBatch
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("open %s: %w", entry.Name(), err)
		}
		closers = append(closers, f)
		batches = append(batches, NamedBatch{Name: entry.Name(), Content: f})
	}

	if len(batches) == 0 {
		a.logger.Info("no transaction files in data dir", "dir", dir)
		return nil
	}

	_, failures, err := a.ProcessFiles(ctx, batches)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		a.logger.Warn("preload skipped file", "file", failure.File)
	}
	return nil
}

// Metrics returns the held batch results, sorted by batch date ascending.
func (a *Analytics) Metrics() []models.BatchMetrics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.batches
}

// Stats reports operational counters for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"batches":           len(a.batches),
		"records_processed": a.processed.Load(),
		"last_updated":      a.updatedAt,
	}
}
