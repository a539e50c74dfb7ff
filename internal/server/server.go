package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/DowntimeForge/internal/crafting"
	"github.com/osse101/DowntimeForge/internal/database"
	"github.com/osse101/DowntimeForge/internal/handler"
	"github.com/osse101/DowntimeForge/internal/logger"
	"github.com/osse101/DowntimeForge/internal/metrics"
	"github.com/osse101/DowntimeForge/internal/research"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	craftingService crafting.Service
	researchService research.Service
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, craftingService crafting.Service, researchService research.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(trustedProxies, dbPool, craftingService, researchService),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:          dbPool,
		craftingService: craftingService,
		researchService: researchService,
	}
}

// NewRouter builds the HTTP route tree
func NewRouter(trustedProxies []string, dbPool database.Pool, craftingService crafting.Service, researchService research.Service) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, NewRateLimiter(RateLimitPerWindow, RateLimitWindow)))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	craftingHandler := handler.NewCraftingHandler(craftingService)
	researchHandler := handler.NewResearchHandler(researchService)

	r.Route("/api/v1/characters/{"+handler.ParamCharacterID+"}", func(r chi.Router) {
		r.Get("/recipes", craftingHandler.HandleListRecipes)
		r.Get("/competencies", craftingHandler.HandleListCompetencies)

		r.Route("/crafting", func(r chi.Router) {
			r.Post("/", craftingHandler.HandleStart)
			r.Get("/", craftingHandler.HandleListSessions)
			r.Route("/{"+handler.ParamSessionID+"}", func(r chi.Router) {
				r.Get("/", craftingHandler.HandleGetSession)
				r.Post("/roll", craftingHandler.HandleRoll)
				r.Post("/pause", craftingHandler.HandlePause)
				r.Post("/resume", craftingHandler.HandleResume)
			})
		})

		r.Route("/research", func(r chi.Router) {
			r.Post("/", researchHandler.HandleStart)
			r.Get("/", researchHandler.HandleList)
			r.Get("/{"+handler.ParamResearchID+"}", researchHandler.HandleGet)
			r.Post("/{"+handler.ParamResearchID+"}/roll", researchHandler.HandleRoll)
		})
		r.Get("/unlocked-recipes", researchHandler.HandleListUnlocked)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Honour an upstream request id so logs correlate across hops
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
