package chi

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
	dashboarduc "github.com/timothywarner/ai900/internal/usecase/dashboard"
	healthuc "github.com/timothywarner/ai900/internal/usecase/health"
	"github.com/timothywarner/ai900/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardService resolves the user and their usage metrics.
type DashboardService interface {
	User(ctx context.Context) (domain.UserProfile, error)
	Metrics(ctx context.Context, days int) (dashboarduc.Metrics, error)
}

// HealthService aggregates dependency checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// RouterConfig holds router-level settings.
type RouterConfig struct {
	APIKeys        []string // bearer keys for /api; empty disables auth
	AllowedOrigins []string // CORS origins for /api; empty allows any
}

// Server serves the metrics dashboard pages and JSON API.
type Server struct {
	dashboard DashboardService
	health    HealthService
	pages     *template.Template
	logger    *zap.Logger
}

// NewServer creates the dashboard HTTP server.
func NewServer(dashboard DashboardService, health HealthService, logger *zap.Logger) *Server {
	return &Server{
		dashboard: dashboard,
		health:    health,
		pages:     template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

// Router wires middleware and routes.
func (s *Server) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/", s.Index)
	r.Get("/dashboard", s.Dashboard)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Use(BearerAuthMiddleware(cfg.APIKeys))
		r.Get("/metrics", s.APIMetrics)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "page not found")
	})
	return r
}

type indexPage struct {
	User *domain.UserProfile
}

// Index handles GET /. The user is shown when the token resolves.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{}
	user, err := s.dashboard.User(r.Context())
	switch {
	case err == nil:
		page.User = &user
	case !errors.Is(err, domain.ErrUnauthenticated):
		s.logger.Warn("User lookup failed", zap.Error(err))
	}
	s.render(w, r, http.StatusOK, "index.html", page)
}

type dashboardPage struct {
	User    domain.UserProfile
	Metrics dashboarduc.Metrics
}

// Dashboard handles GET /dashboard. Unauthenticated visitors go back to the landing page.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := s.dashboard.User(r.Context())
	if errors.Is(err, domain.ErrUnauthenticated) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		s.logger.Error("User lookup failed", zap.Error(err))
		s.renderError(w, r, http.StatusBadGateway, "could not reach GitHub")
		return
	}

	m, err := s.dashboard.Metrics(r.Context(), dashboarduc.DefaultDays)
	if err != nil {
		s.logger.Error("Metrics failed", zap.Error(err))
		s.renderError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	s.render(w, r, http.StatusOK, "dashboard.html", dashboardPage{User: user, Metrics: m})
}

type metricsQuery struct {
	Days int `json:"days" validate:"gte=1,lte=365"`
}

// APIMetrics handles GET /api/metrics?days=N.
// A missing or non-numeric days falls back to the default window.
func (s *Server) APIMetrics(w http.ResponseWriter, r *http.Request) {
	q := metricsQuery{Days: dashboarduc.DefaultDays}
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Days = n
		}
	}
	if err := validation.Struct(q); err != nil {
		s.handleError(w, err)
		return
	}

	m, err := s.dashboard.Metrics(r.Context(), q.Days)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

type errorPage struct {
	Code    int
	Message string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template render failed",
			zap.String("template", name),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, "error.html", errorPage{Code: status, Message: msg})
}

var templateFuncs = template.FuncMap{
	"pct": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" },
}
