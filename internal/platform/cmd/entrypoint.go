// Package cmd holds the startup plumbing shared by ticketdesk commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/ticketdesk/internal/platform/config"
	"github.com/louisbranch/ticketdesk/internal/platform/otel"
)

// telemetryFlushTimeout bounds the exporter flush after a command returns.
const telemetryFlushTimeout = 5 * time.Second

// Command names, used for tracing resources and log prefixes.
const (
	ServiceTicketdesk  = "ticketdesk"
	ServiceSeed        = "seed"
	ServiceHealthcheck = "healthcheck"
)

// ParseCommand builds a command configuration: environment defaults first,
// then the flags registered by bind, parsed from args.
func ParseCommand[T any](fs *flag.FlagSet, args []string, bind func(*T, *flag.FlagSet)) (T, error) {
	var cfg T
	if fs == nil {
		return cfg, errors.New("flag set is required")
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if bind != nil {
		bind(&cfg, fs)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LogPrefix returns the log prefix for a command, e.g. "[SEED] ".
func LogPrefix(service string) string {
	return "[" + strings.ToUpper(strings.TrimSpace(service)) + "] "
}

// RunWithTelemetry registers tracing for service, runs fn and flushes the
// exporter once fn returns.
func RunWithTelemetry(ctx context.Context, service string, fn func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case fn == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("flush telemetry: %v", err)
		}
	}()
	return fn(ctx)
}
