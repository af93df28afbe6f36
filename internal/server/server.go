// file: internal/server/server.go
// version: 2.0.0
// guid: 2b3c4d5e-6f7a-8b9c-0d1e-2f3a4b5c6d7e

package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdfalk/catalog-search/internal/catalog"
	"github.com/jdfalk/catalog-search/internal/metrics"
	"github.com/jdfalk/catalog-search/internal/models"
	"github.com/jdfalk/catalog-search/internal/realtime"
	"github.com/jdfalk/catalog-search/internal/search"
	"github.com/jdfalk/catalog-search/internal/server/middleware"
	"github.com/jdfalk/catalog-search/internal/watcher"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	engine     search.Engine
	catalog    *CatalogService
	events     *realtime.EventHub
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	CacheTTL           time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int

	// WatchDir, when set, reloads the catalog whenever its files change.
	WatchDir string
}

// GetDefaultServerConfig returns sane defaults for local use.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Host:               "localhost",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		CacheTTL:           30 * time.Second,
		RateLimitPerMinute: 600,
		RateLimitBurst:     50,
	}
}

// NewServer creates a new server instance. The holder should already have
// a snapshot; requests made before the first load answer 503.
func NewServer(holder *catalog.Holder, engine search.Engine, cfg ServerConfig) *Server {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware())
	router.Use(middleware.MaxRequestBodySize(1 << 20))

	metrics.Register()

	s := &Server{
		router:  router,
		engine:  engine,
		catalog: NewCatalogService(holder, engine, cfg.CacheTTL),
		events:  realtime.NewEventHub(),
	}
	holder.OnReload(func(cat *models.Catalog) {
		s.events.CatalogReloaded(cat)
	})

	s.setupRoutes(cfg)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes(cfg ServerConfig) {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/api/v1/health", s.healthCheck)
	s.router.GET("/api/v1/events", s.events.HandleSSE)

	api := s.router.Group("/api/v1")
	if cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst).Middleware())
	}
	{
		api.GET("/catalog/stats", s.catalogStats)
		api.POST("/catalog/reload", s.reloadCatalog)

		api.GET("/:kind/search", s.searchEntities)
		api.GET("/:kind/suggest", s.suggestEntities)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// reloadFromWatcher is the watcher callback.
func (s *Server) reloadFromWatcher(dir string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.catalog.Reload(ctx, "watcher"); err != nil {
		s.events.CatalogReloadFailed(err)
		log.Printf("[WARN] server: keeping previous catalog after change in %s", dir)
	}
}

// Start starts the HTTP server and blocks until SIGINT or SIGTERM.
func (s *Server) Start(cfg ServerConfig) error {
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
		BaseContext:    func(net.Listener) context.Context { return baseCtx },
	}

	if cfg.WatchDir != "" {
		w := watcher.New(s.reloadFromWatcher, 0)
		if err := w.Start(cfg.WatchDir); err != nil {
			log.Printf("[WARN] server: catalog watcher disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Println("[INFO] Shutting down server...")

	// Open SSE streams only end when their request context does.
	cancelBase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server exited")
	return nil
}
