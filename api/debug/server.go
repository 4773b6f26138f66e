package debug

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/arpgcore/config"
	mw "github.com/kasuganosora/arpgcore/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the gin engine with the standard middleware chain.
func NewRouter(h *Handler, sec config.SecurityConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(sec.RateLimitRPS), sec.RateLimitBurst))
	h.Register(r)
	return r
}

// Server runs the inspector on its own goroutine.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger *zap.Logger
	done   chan error
}

// Listen binds addr; port 0 picks a free port.
func Listen(addr string, handler http.Handler, logger *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen %s: %w", addr, err)
	}
	return &Server{
		srv:    &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		ln:     ln,
		logger: logger,
		done:   make(chan error, 1),
	}, nil
}

func (s *Server) Addr() string { return s.ln.Addr().String() }

// Start serves in the background.
func (s *Server) Start() {
	s.logger.Info("debug server listening", zap.String("addr", s.Addr()))
	go func() {
		err := s.srv.Serve(s.ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("debug server shutdown: %w", err)
	}
	if err := <-s.done; err != nil {
		return fmt.Errorf("debug server: %w", err)
	}
	return nil
}
