// Package server exposes the conversion service over HTTP.
//
// The surface is small: a health probe, the fixed theme list, and the
// render endpoint. Live preview routes appear only when a watch file is
// configured. Every response carries the CORS header triple.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	md2wechat "github.com/alnah/go-md2wechat"
)

// Config holds server wiring options.
type Config struct {
	Port         int
	MaxBodyBytes int64
	WatchFile    string // enables the live preview routes when non-empty
}

// Server routes conversion requests to a shared Service.
type Server struct {
	cfg        Config
	svc        *md2wechat.Service
	router     *gin.Engine
	httpServer *http.Server
	preview    *previewHub // nil unless watching
}

// New creates a Server around svc.
func New(cfg Config, svc *md2wechat.Service) *Server {
	s := &Server{cfg: cfg, svc: svc}
	if cfg.WatchFile != "" {
		s.preview = newPreviewHub(svc, cfg.WatchFile)
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates the gin engine with middleware and routes.
func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	_ = router.SetTrustedProxies(nil)

	router.Use(RequestID())
	router.Use(Logger())
	router.Use(Cors())
	router.Use(gin.Recovery())

	// Unmatched method or path
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	router.GET("/health", s.handleHealth)
	router.GET("/themes", s.handleThemes)
	router.POST("/render", BodyLimit(s.cfg.MaxBodyBytes), s.handleRender)

	if s.preview != nil {
		router.GET("/preview", s.handlePreview)
		router.GET("/preview/ws", s.preview.handleWS)
	}

	return router
}

// Router returns the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Start begins listening on the configured port and blocks until the
// server stops. A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.preview != nil {
		go s.preview.watch()
	}

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.preview != nil {
		s.preview.stop()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
