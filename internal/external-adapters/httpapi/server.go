package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ochairo/alignscan/internal/domain/interfaces"
)

const readHeaderTimeout = 10 * time.Second

// Server serves HTTP/1.1 and cleartext HTTP/2 on one listener
type Server struct {
	httpServer *http.Server
	logger     interfaces.Logger
}

// NewServer creates a server for handler on addr
func NewServer(addr string, handler http.Handler, logger interfaces.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           h2c.NewHandler(handler, &http2.Server{}),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: interfaces.OrNoOp(logger),
	}
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address and blocks until shutdown
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln and blocks until shutdown
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting API server", interfaces.F("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight scans
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
