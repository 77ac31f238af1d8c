// Package ticketdesk parses ticketdesk service flags and launches the service.
package ticketdesk

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/ticketdesk/internal/platform/cmd"
	server "github.com/louisbranch/ticketdesk/internal/services/tickets/app"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/session"
)

// Config holds ticketdesk command configuration.
type Config struct {
	HTTPAddr     string        `env:"TICKETDESK_HTTP_ADDR" envDefault:"localhost:8090"`
	Port         int           `env:"TICKETDESK_GRPC_PORT" envDefault:"8091"`
	Storage      string        `env:"TICKETDESK_STORAGE" envDefault:"sqlite"`
	DBPath       string        `env:"TICKETDESK_DB_PATH" envDefault:"data/ticketdesk.db"`
	PostgresDSN  string        `env:"TICKETDESK_POSTGRES_DSN"`
	SeedOnStart  bool          `env:"TICKETDESK_SEED_ON_START" envDefault:"true"`
	LoginLatency time.Duration `env:"TICKETDESK_LOGIN_LATENCY" envDefault:"800ms"`
	TokenSecret  string        `env:"TICKETDESK_TOKEN_SECRET" envDefault:"ticketdesk-dev-secret"`
	DemoEmail    string        `env:"TICKETDESK_DEMO_EMAIL" envDefault:"test@example.com"`
	DemoPassword string        `env:"TICKETDESK_DEMO_PASSWORD" envDefault:"password123"`
	DemoName     string        `env:"TICKETDESK_DEMO_NAME" envDefault:"Test User"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseCommand(fs, args, func(cfg *Config, fs *flag.FlagSet) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP API listen address")
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The gRPC health server port")
		fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Slot backend: sqlite, postgres or memory")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
		fs.BoolVar(&cfg.SeedOnStart, "seed", cfg.SeedOnStart, "Seed example tickets when the collection is empty")
		fs.DurationVar(&cfg.LoginLatency, "login-latency", cfg.LoginLatency, "Simulated latency for login and signup")
	})
}

// ServerConfig maps command configuration onto the server runtime.
func (c Config) ServerConfig() server.Config {
	latency := c.LoginLatency
	if latency <= 0 {
		// The authenticator treats zero as "use the default".
		latency = -1
	}
	return server.Config{
		HTTPAddr: c.HTTPAddr,
		GRPCAddr: fmt.Sprintf(":%d", c.Port),
		Storage: server.StorageConfig{
			Backend:     c.Storage,
			DBPath:      c.DBPath,
			PostgresDSN: c.PostgresDSN,
		},
		SeedOnStart: c.SeedOnStart,
		Auth: session.Config{
			Latency:      latency,
			DemoEmail:    c.DemoEmail,
			DemoPassword: c.DemoPassword,
			DemoName:     c.DemoName,
			TokenSecret:  c.TokenSecret,
		},
	}
}

// Run starts the ticketdesk HTTP API and health service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTicketdesk, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
