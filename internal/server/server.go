package server

import (
	"log/slog"
	"net/http"

	"github.com/INTeniola/monie-hackathon/internal/clients/insights"
	"github.com/INTeniola/monie-hackathon/internal/config"
	"github.com/INTeniola/monie-hackathon/internal/handlers"
	"github.com/INTeniola/monie-hackathon/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, insightsClient insights.Client, upload config.UploadConfig, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, insightsClient, upload, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, insightsClient, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("POST /api/upload", s.apiHandlers.HandleUpload)
	s.mux.HandleFunc("GET /api/metrics", s.apiHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /api/insights", s.apiHandlers.HandleInsights)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/metrics", s.sseHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /sse/insights", s.sseHandlers.HandleInsights)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
