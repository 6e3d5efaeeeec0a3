package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/INTeniola/monie-hackathon/internal/clients/insights"
	"github.com/INTeniola/monie-hackathon/internal/config"
	"github.com/INTeniola/monie-hackathon/internal/errors"
	"github.com/INTeniola/monie-hackathon/internal/models"
	"github.com/INTeniola/monie-hackathon/internal/observability"
	"github.com/INTeniola/monie-hackathon/internal/services"
)

// multipartMemoryLimit is the in-memory threshold for multipart parsing;
// larger parts spill to temp files.
const multipartMemoryLimit = 32 << 20

// insightsCacheControl bounds how long clients may reuse the remote report.
const insightsCacheControl = "public, max-age=60"

type APIHandlers struct {
	analytics *services.Analytics
	insights  insights.Client
	upload    config.UploadConfig
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, insightsClient insights.Client, upload config.UploadConfig, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		insights:  insightsClient,
		upload:    upload,
		logger:    logger,
	}
}

// UploadResult lists the processed batches alongside the files that were
// rejected. A bad file never fails its siblings.
type UploadResult struct {
	Results  []models.BatchMetrics   `json:"results"`
	Failures []services.BatchFailure `json:"failures"`
}

func (h *APIHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "could not read upload"), requestID)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		errors.WriteError(w, h.logger, errors.BadRequest("no files uploaded"), requestID)
		return
	}
	if len(files) > h.upload.MaxFiles {
		errors.WriteError(w, h.logger, errors.Validation(fmt.Sprintf("too many files, limit is %d", h.upload.MaxFiles)), requestID)
		return
	}

	var batches []services.NamedBatch
	var failures []services.BatchFailure
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, fh := range files {
		if fh.Size > h.upload.MaxFileBytes {
			failures = append(failures, services.BatchFailure{File: fh.Filename, Reason: "file too large"})
			continue
		}
		f, err := fh.Open()
		if err != nil {
			h.logger.Warn("could not open uploaded file", "file", fh.Filename, "error", err, "request_id", requestID)
			failures = append(failures, services.BatchFailure{File: fh.Filename, Reason: "file could not be processed"})
			continue
		}
		closers = append(closers, f)
		batches = append(batches, services.NamedBatch{Name: fh.Filename, Content: f})
	}

	ctx, span := observability.StartSpan(r.Context(), "process upload")
	defer span.Finish()
	span.SetTag("files", strconv.Itoa(len(files)))

	results, processFailures, err := h.analytics.ProcessFiles(ctx, batches)
	if err != nil {
		span.SetError(err)
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "upload processing failed"), requestID)
		return
	}

	failures = append(failures, processFailures...)
	slices.SortFunc(failures, func(x, y services.BatchFailure) int {
		return strings.Compare(x.File, y.File)
	})

	if len(results) == 0 {
		appErr := errors.Validation("no uploaded file could be processed")
		appErr.Details = rejectedFiles(failures)
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	errors.WriteSuccess(w, UploadResult{Results: results, Failures: failures})
}

func rejectedFiles(failures []services.BatchFailure) string {
	names := make([]string, len(failures))
	for i, f := range failures {
		names[i] = f.File
	}
	return "rejected: " + strings.Join(names, ", ")
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	data := h.analytics.Metrics()

	errors.WriteSuccess(w, data)
}

func (h *APIHandlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	report, err := h.insights.Fetch(r.Context())
	if err != nil {
		errors.WriteError(w, h.logger, errors.BadGatewayWrap(err, "Failed to fetch data"), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, report, map[string]string{
		"Cache-Control": insightsCacheControl,
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.analytics.Stats()

	errors.WriteSuccess(w, stats)
}
