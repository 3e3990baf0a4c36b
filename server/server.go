package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlens-org/ledgerlens/config"
)

// ============================================================================
// HTTP SERVER
// ============================================================================
// Thin stateless transport over the analysis core. Every request parses,
// analyzes, answers, and discards; nothing is persisted between calls.
// ============================================================================

// Server wires the HTTP routes to the analysis core.
type Server struct {
	router *gin.Engine
	cfg    config.Config
	log    *slog.Logger
}

// New creates a server from application config.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		cfg:    cfg,
		log:    logger,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLog())
	s.router.Use(cors())
	s.router.MaxMultipartMemory = cfg.UploadLimitBytes()

	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/upload", s.handleUpload)
		api.POST("/analyze-text", s.handleAnalyzeText)
		api.POST("/view", s.handleView)
	}
	return s
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.log.Info("listening", "addr", s.cfg.ListenAddr)
	return s.router.Run(s.cfg.ListenAddr)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
