package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tabhoarder/backend/internal/config"
	"github.com/tabhoarder/backend/internal/domain/archive"
	apphttp "github.com/tabhoarder/backend/internal/http"
	"github.com/tabhoarder/backend/internal/logging"
	"github.com/tabhoarder/backend/internal/middleware"
	"github.com/tabhoarder/backend/internal/monitoring"
	"github.com/tabhoarder/backend/internal/session"
	"github.com/tabhoarder/backend/internal/storage"
	"github.com/tabhoarder/backend/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	logger  *logging.Logger
	manager *session.Manager
	hub     *ws.Hub
	httpSrv *http.Server
}

// New builds a server from configuration: file-backed persistence, the
// session manager, the browser bridge, and all routes.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	kv, err := storage.NewFileKV(cfg.Storage.Dir, cfg.Storage.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	metrics := monitoring.NewMetrics()
	hub := ws.NewHub(logger, metrics, time.Duration(cfg.Bridge.CommandTimeoutSeconds)*time.Second)

	store := archive.NewStore()
	manager := session.NewManager(store, kv, hub, hub, session.Config{
		ChunkSize: cfg.Batch.ChunkSize,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load session archive: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apphttp.NewHandlers(manager, hub)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", metrics.Handler())

	// Window operations
	router.GET("/tabs", handlers.ListTabs)
	router.GET("/tabs/domains", handlers.DomainStats)
	router.GET("/tabs/sort", handlers.SortPreview)
	router.POST("/tabs/sort", handlers.ApplySort)
	router.GET("/tabs/duplicates", handlers.ListDuplicates)
	router.POST("/tabs/deduplicate", handlers.Deduplicate)

	// Session archive
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/search", handlers.SearchSessions)
	router.GET("/sessions/export", handlers.ExportSessions)
	router.POST("/sessions/collapse", handlers.Collapse)
	router.GET("/sessions/:id", handlers.GetSession)
	router.PUT("/sessions/:id", handlers.RenameSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)
	router.POST("/sessions/:id/restore", handlers.RestoreSession)

	router.GET("/storage/usage", handlers.StorageUsage)

	// Browser bridge
	router.GET("/bridge", hub.HandleConnection)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	return &Server{
		router:  router,
		logger:  logger,
		manager: manager,
		hub:     hub,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run starts serving until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpSrv.Shutdown(ctx)
}
