package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/ticketdesk/internal/services/tickets/session"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfig(t *testing.T, storage StorageConfig) Config {
	t.Helper()
	return Config{
		HTTPAddr:    "127.0.0.1:0",
		GRPCAddr:    "127.0.0.1:0",
		Storage:     storage,
		SeedOnStart: true,
		Auth: session.Config{
			Latency:     -1,
			TokenSecret: "test-secret",
			HashCost:    bcrypt.MinCost,
		},
	}
}

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv
}

func TestServerServesAPIAndHealth(t *testing.T) {
	srv := startServer(t, testConfig(t, StorageConfig{Backend: BackendMemory}))
	base := "http://" + srv.HTTPAddr()

	body, _ := json.Marshal(map[string]string{"email": "test@example.com", "password": "password123"})
	resp, err := http.Post(base+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var signedIn session.Session
	if err := json.NewDecoder(resp.Body).Decode(&signedIn); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || signedIn.Token == "" {
		t.Fatalf("login status = %d session = %+v", resp.StatusCode, signedIn)
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/tickets", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+signedIn.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	var tickets []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		t.Fatalf("decode tickets: %v", err)
	}
	_ = resp.Body.Close()
	if len(tickets) != 3 {
		t.Fatalf("tickets = %d, want seeded 3", len(tickets))
	}

	conn, err := grpc.NewClient(srv.GRPCAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})
	health, err := grpc_health_v1.NewHealthClient(conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: HealthServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if health.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("health = %v", health.GetStatus())
	}
}

func TestServerSeedsSQLiteOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ticketdesk.db")
	cfg := testConfig(t, StorageConfig{Backend: BackendSQLite, DBPath: dbPath})

	first, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	first.Close()

	second, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen server: %v", err)
	}
	defer second.Close()
}

func TestOpenSlots(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{name: "memory", cfg: StorageConfig{Backend: "memory"}},
		{name: "sqlite default case", cfg: StorageConfig{Backend: "SQLite", DBPath: filepath.Join(t.TempDir(), "a.db")}},
		{name: "postgres without dsn", cfg: StorageConfig{Backend: "postgres"}, wantErr: true},
		{name: "unknown", cfg: StorageConfig{Backend: "redis"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := OpenSlots(context.Background(), tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open slots: %v", err)
			}
			if err := slots.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
		})
	}
}

func TestNewRejectsMissingSecret(t *testing.T) {
	cfg := testConfig(t, StorageConfig{Backend: BackendMemory})
	cfg.Auth.TokenSecret = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestServeNilServer(t *testing.T) {
	var srv *Server
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if srv.HTTPAddr() != "" || srv.GRPCAddr() != "" {
		t.Fatal("expected empty addresses")
	}
}
