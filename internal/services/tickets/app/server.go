// Package server wires the ticketdesk runtime: storage, HTTP API and gRPC
// health lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	platformgrpc "github.com/louisbranch/ticketdesk/internal/platform/grpc"
	"github.com/louisbranch/ticketdesk/internal/platform/timeouts"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/api/httpapi"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/session"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/ticket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// HealthServiceName is the gRPC health entry for the ticket API.
const HealthServiceName = "ticketdesk.v1.TicketService"

// Config holds everything the server needs to start.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	Storage     StorageConfig
	SeedOnStart bool
	Auth        session.Config
}

// Server hosts the HTTP API, the gRPC health service and the slot backend.
type Server struct {
	httpListener net.Listener
	grpcListener net.Listener
	httpServer   *http.Server
	grpcServer   *grpc.Server
	health       *health.Server
	slots        SlotBackend
}

// New opens storage, seeds it when asked and binds both listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	slots, err := OpenSlots(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	auth, err := session.NewAuthenticator(slots, cfg.Auth)
	if err != nil {
		_ = slots.Close()
		return nil, fmt.Errorf("build authenticator: %w", err)
	}
	tickets := ticket.NewStore(slots, nil)
	if cfg.SeedOnStart {
		seeded, err := tickets.SeedIfEmpty(ctx)
		if err != nil {
			_ = slots.Close()
			return nil, fmt.Errorf("seed tickets: %w", err)
		}
		if seeded {
			log.Printf("seeded example tickets")
		}
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = slots.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		_ = slots.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	api := httpapi.NewHandler(auth, tickets)
	httpServer := &http.Server{
		Handler:           otelhttp.NewHandler(api.Routes(), "ticketdesk"),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	grpcServer, healthServer := platformgrpc.NewHealthServer(HealthServiceName)

	return &Server{
		httpListener: httpListener,
		grpcListener: grpcListener,
		httpServer:   httpServer,
		grpcServer:   grpcServer,
		health:       healthServer,
		slots:        slots,
	}, nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound gRPC address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves a ticketdesk server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs both servers until ctx is cancelled or one of them fails.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("http listening at %v", s.httpListener.Addr())
	log.Printf("grpc health listening at %v", s.grpcListener.Addr())

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()
	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- s.grpcServer.Serve(s.grpcListener)
	}()

	select {
	case <-ctx.Done():
		return s.shutdown(httpErr, grpcErr)
	case err := <-httpErr:
		s.grpcServer.Stop()
		<-grpcErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-grpcErr:
		_ = s.httpServer.Close()
		<-httpErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

func (s *Server) shutdown(httpErr, grpcErr <-chan error) error {
	s.health.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		shutdownErr = fmt.Errorf("shutdown http: %w", err)
	}
	s.grpcServer.GracefulStop()

	if err := <-httpErr; err != nil && !errors.Is(err, http.ErrServerClosed) && shutdownErr == nil {
		shutdownErr = fmt.Errorf("serve http: %w", err)
	}
	if err := <-grpcErr; err != nil && !errors.Is(err, grpc.ErrServerStopped) && shutdownErr == nil {
		shutdownErr = fmt.Errorf("serve gRPC: %w", err)
	}
	return shutdownErr
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.slots != nil {
		if err := s.slots.Close(); err != nil {
			log.Printf("close slot store: %v", err)
		}
	}
}
