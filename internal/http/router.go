// Package httpapi wires the HTTP transport (Gin) to the bot service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting, and
// serves the frontend build for every non-API path.
package httpapi

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-bots-backend/docs"
	"github.com/tbourn/go-bots-backend/internal/config"
	"github.com/tbourn/go-bots-backend/internal/domain"
	"github.com/tbourn/go-bots-backend/internal/http/handlers"
	"github.com/tbourn/go-bots-backend/internal/http/middleware"
	"github.com/tbourn/go-bots-backend/internal/repo"
	"github.com/tbourn/go-bots-backend/internal/services"
)

const (
	// readyTimeout bounds the database ping behind GET /ready.
	readyTimeout = 2 * time.Second
	// maxBodyBytes caps every request body.
	maxBodyBytes = 1 << 20
)

// botRepoShim adapts the repository free functions to the services.BotRepo
// interface expected by the BotService.
type botRepoShim struct{}

// ListBots proxies repo.ListBots.
func (botRepoShim) ListBots(ctx context.Context, db *gorm.DB) ([]domain.Bot, error) {
	return repo.ListBots(ctx, db)
}

// GetBot proxies repo.GetBot.
func (botRepoShim) GetBot(ctx context.Context, db *gorm.DB, id int64) (*domain.Bot, error) {
	return repo.GetBot(ctx, db, id)
}

// CreateBot proxies repo.CreateBot.
func (botRepoShim) CreateBot(ctx context.Context, db *gorm.DB, f domain.BotFields) (*domain.Bot, error) {
	return repo.CreateBot(ctx, db, f)
}

// UpdateBot proxies repo.UpdateBot.
func (botRepoShim) UpdateBot(ctx context.Context, db *gorm.DB, id int64, f domain.BotFields) (*domain.Bot, error) {
	return repo.UpdateBot(ctx, db, id, f)
}

// DeleteBot proxies repo.DeleteBot.
func (botRepoShim) DeleteBot(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteBot(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the bots API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Body size limiter: caps every later read, the body logger included
//  4. RedactingLogger: structured logs with token and header masking
//  5. Recovery: capture panics after logger
//  6. Metrics (/metrics is registered before compression)
//  7. Gzip
//  8. CORS allow-list
//
// The API group adds security headers, the idempotency validator and the rate
// limiter, in that order, so a replayed create bypasses rate limiting.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Global body size limit (1 MiB)
	r.Use(limitBody(maxBodyBytes))

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders:  []string{"X-API-Key"},
		LogBody:      cfg.LogRequestBody,
		MaxBodyBytes: cfg.LogBodyMaxBytes,
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compression (promhttp negotiates its own encoding)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) CORS allow-list; an empty list leaves cross-origin requests unannotated
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey, "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", handlers.HeaderIdempotentReplay},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Liveness/readiness
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := repo.Ping(ctx, db); err != nil {
			handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Fallbacks
	apiBase := cfg.APIBasePath
	r.NoRoute(spaFallback(cfg.StaticDir, apiBase))
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: services ← repo/db
	botSvc := services.NewBotService(db, botRepoShim{})
	if cfg.IdempotencyTTL > 0 {
		botSvc.IdempotencyTTL = cfg.IdempotencyTTL
	}
	h := handlers.New(botSvc)

	// Public API
	api := groupWithPrefix(r, apiBase)
	api.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))
	api.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, services.CreateScope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	api.Use(rl.Handler())
	{
		api.GET("/bots", h.ListBots)
		api.POST("/bots", h.CreateBot)
		api.GET("/bots/:id", h.GetBot)
		api.PUT("/bots/:id", h.UpdateBot)
		api.DELETE("/bots/:id", h.DeleteBot)
	}
}

// spaFallback answers requests that match no route. API paths always get a
// JSON 404. Other GET/HEAD requests are served from staticDir: an existing
// file is sent as-is, anything else receives index.html so the frontend router
// can resolve it (for example /widget/42). With no staticDir every unmatched
// path is a JSON 404.
func spaFallback(staticDir, apiBase string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if staticDir == "" || isAPIPath(p, apiBase) ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
			return
		}
		// path.Clean on a rooted path drops any ".." segments.
		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if fi, err := os.Stat(file); err == nil && fi.Mode().IsRegular() {
			c.File(file)
			return
		}
		if _, err := os.Stat(index); err != nil {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
			return
		}
		c.File(index)
	}
}

// isAPIPath reports whether p falls under the API mount point.
func isAPIPath(p, apiBase string) bool {
	if apiBase == "" || apiBase == "/" {
		return true
	}
	return p == apiBase || strings.HasPrefix(p, apiBase+"/")
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
