package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestProbeServing(t *testing.T) {
	addr, _ := startHealthServer(t, "ticketdesk.v1.TicketService")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Probe(ctx, addr, "ticketdesk.v1.TicketService", nil); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if err := Probe(ctx, addr, "", nil); err != nil {
		t.Fatalf("probe overall: %v", err)
	}
}

func TestProbeTransitionsToServing(t *testing.T) {
	addr, healthServer := startHealthServer(t)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	go func() {
		time.Sleep(200 * time.Millisecond)
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var waits int
	logf := func(string, ...any) { waits++ }
	if err := Probe(ctx, addr, "", logf); err != nil {
		t.Fatalf("probe after transition: %v", err)
	}
	if waits == 0 {
		t.Fatal("expected at least one waiting log line")
	}
}

func TestProbeRespectsContext(t *testing.T) {
	addr, _ := startHealthServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := Probe(ctx, addr, "unknown.Service", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestWaitForHealthRequiresConn(t *testing.T) {
	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected error")
	}
}

func startHealthServer(t *testing.T, services ...string) (string, *health.Server) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	grpcServer, healthServer := NewHealthServer(services...)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(listener)
	}()
	t.Cleanup(func() {
		grpcServer.GracefulStop()
		_ = listener.Close()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})

	return listener.Addr().String(), healthServer
}
