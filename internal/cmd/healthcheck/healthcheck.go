// Package healthcheck probes a running ticketdesk gRPC health endpoint.
package healthcheck

import (
	"context"
	"flag"
	"log"
	"time"

	entrypoint "github.com/louisbranch/ticketdesk/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/ticketdesk/internal/platform/grpc"
	server "github.com/louisbranch/ticketdesk/internal/services/tickets/app"
)

// Config holds healthcheck command configuration.
type Config struct {
	Addr    string        `env:"TICKETDESK_HEALTH_ADDR" envDefault:"localhost:8091"`
	Service string        `env:"TICKETDESK_HEALTH_SERVICE"`
	Timeout time.Duration `env:"TICKETDESK_HEALTH_TIMEOUT" envDefault:"3s"`
	Verbose bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseCommand(fs, args, func(cfg *Config, fs *flag.FlagSet) {
		if cfg.Service == "" {
			cfg.Service = server.HealthServiceName
		}
		fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "gRPC health address")
		fs.StringVar(&cfg.Service, "service", cfg.Service, "Health service name; empty checks the whole server")
		fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "How long to wait for SERVING")
		fs.BoolVar(&cfg.Verbose, "v", false, "Log each unsuccessful attempt")
	})
}

// Run waits until the configured service reports SERVING.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	var logf func(string, ...any)
	if cfg.Verbose {
		logf = log.Printf
	}
	return platformgrpc.Probe(ctx, cfg.Addr, cfg.Service, logf)
}
