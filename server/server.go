package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the listening HTTP server around a gin engine
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	cfg        Config
}

// New creates the server
func New(cfg Config, engine *gin.Engine) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
	}
}

// Engine exposes the gin engine, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start begins listening without blocking.
// It waits briefly for the listener to come up so that address-binding
// errors surface to the caller instead of dying in a goroutine.
func (s *Server) Start() error {
	if err := s.checkAddrAvailable(); err != nil {
		return fmt.Errorf("address %s unavailable: %w", s.cfg.Addr, err)
	}

	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		logger.InfoCtx(context.Background(), "server", "HTTP server starting",
			zap.String("addr", s.cfg.Addr),
			zap.String("mode", s.cfg.Mode))

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		logger.ErrorCtx(context.Background(), "server", "HTTP server start failed", zap.Error(err))
		return err
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func (s *Server) checkAddrAvailable() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return ln.Close()
}

// Shutdown drains in-flight requests and closes the listener
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	logger.InfoCtx(ctx, "server", "shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}

// ShutdownWithTimeout graceful shutdown bounded by the configured deadline
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
