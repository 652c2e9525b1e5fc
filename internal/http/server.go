package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"hisab/internal/app"
	"hisab/internal/cache"
	"hisab/internal/confirm"
	"hisab/internal/core"
	"hisab/internal/log"
	"hisab/internal/metrics"
	"hisab/internal/middleware/ratelimit"
	"hisab/internal/middleware/security"
	"hisab/internal/middleware/trace"
	appweb "hisab/web"
)

const (
	maxPendingConfirmations = 256
	cacheCleanupInterval    = time.Minute
	staticMaxAge            = 3600
)

// Deps are the collaborators of the web server. Controller is required;
// everything else has a usable default.
type Deps struct {
	Controller *app.Controller
	Metrics    *metrics.Metrics
	Logger     *log.Logger

	// Ready reports whether the backing store is reachable.
	Ready func(ctx context.Context) error

	ConfirmTTL         time.Duration
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	ctrl      *app.Controller
	guard     *confirm.Guard
	metrics   *metrics.Metrics
	logger    *log.Logger
	templates *template.Template
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	caches    *cache.Manager
	ready     func(ctx context.Context) error
	today     func() core.Date
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	if deps.ConfirmTTL <= 0 {
		deps.ConfirmTTL = 5 * time.Minute
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.Config{Handler: slog.Default().Handler(), Component: log.ComponentHTTP})
	}

	s := &Server{
		ctrl:    deps.Controller,
		guard:   confirm.NewGuard(maxPendingConfirmations, deps.ConfirmTTL),
		metrics: deps.Metrics,
		logger:  deps.Logger,
		limiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		caches:  cache.NewManager(),
		ready:   deps.Ready,
		today:   core.Today,
		started: time.Now(),
	}
	s.detector = security.NewDetector(func(*http.Request) {
		s.metrics.ObserveRejected("suspicious")
	})

	s.caches.Register(s.guard.Cache())
	s.caches.StartCleanup(cacheCleanupInterval)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
		t = nil
	}
	s.templates = t

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.detector.Middleware)
	r.Use(trace.NewMiddleware(s.detector.ExtractClientIP, s.metrics).Middleware)
	r.Use(log.Middleware(s.logger))
	r.Use(log.RequestIDMiddleware(trace.RequestIDFromRequest))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", s.metrics.Handler())

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(staticMaxAge)).Handle("/static/*", static)
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)

		r.Get("/", s.handleIndex)
		r.Get("/tab/{tab}", s.handleSelectTab)
		r.Get("/api/state", s.handleState)
		r.Get("/api/stats", s.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited))

			r.Post("/confirm", s.handleConfirm)
			r.Post("/market/{id}/toggle", s.handleToggle)
			r.Post("/{kind}", s.handleAdd)
			r.Post("/{kind}/{id}", s.handleUpdate)
			r.Post("/{kind}/{id}/delete", s.handleDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("পাতাটি পাওয়া যায়নি").Write(w)
	})
	return r
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.ObserveRejected("rate_limit")
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "অনেক বেশি অনুরোধ, একটু পরে চেষ্টা করুন").Write(w)
}
