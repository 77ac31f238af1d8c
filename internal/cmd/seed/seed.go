// Package seed parses seed command flags and loads example tickets into the
// configured slot backend.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/louisbranch/ticketdesk/internal/platform/cmd"
	server "github.com/louisbranch/ticketdesk/internal/services/tickets/app"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/ticket"
)

// Config holds seed command configuration.
type Config struct {
	Storage     string `env:"TICKETDESK_STORAGE" envDefault:"sqlite"`
	DBPath      string `env:"TICKETDESK_DB_PATH" envDefault:"data/ticketdesk.db"`
	PostgresDSN string `env:"TICKETDESK_POSTGRES_DSN"`
	Reset       bool
	Stats       bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseCommand(fs, args, func(cfg *Config, fs *flag.FlagSet) {
		fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Slot backend: sqlite, postgres or memory")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
		fs.BoolVar(&cfg.Reset, "reset", false, "Remove tickets, sequences and the session before seeding")
		fs.BoolVar(&cfg.Stats, "stats", false, "Print ticket counts after seeding")
	})
}

// resetKeys are the slots cleared by -reset.
var resetKeys = []string{
	storage.TicketsKey,
	storage.TicketSequenceKey,
	storage.SessionKey,
	storage.SessionSequenceKey,
}

// Run opens the slot backend and seeds it.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		slots, err := server.OpenSlots(ctx, server.StorageConfig{
			Backend:     cfg.Storage,
			DBPath:      cfg.DBPath,
			PostgresDSN: cfg.PostgresDSN,
		})
		if err != nil {
			return err
		}
		runErr := Seed(ctx, slots, cfg, out)
		return errors.Join(runErr, slots.Close())
	})
}

// Seed loads the example tickets into slots and reports what it did to out.
func Seed(ctx context.Context, slots storage.SlotStore, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	if cfg.Reset {
		for _, key := range resetKeys {
			if err := slots.DeleteSlot(ctx, key); err != nil {
				return fmt.Errorf("reset %s: %w", key, err)
			}
		}
		fmt.Fprintln(out, "Cleared tickets and session")
	}

	tickets := ticket.NewStore(slots, nil)
	seeded, err := tickets.SeedIfEmpty(ctx)
	if err != nil {
		return fmt.Errorf("seed tickets: %w", err)
	}
	if seeded {
		fmt.Fprintln(out, "Seeded example tickets")
	} else {
		fmt.Fprintln(out, "Tickets already present; nothing to seed")
	}

	if cfg.Stats {
		stats, err := tickets.Stats(ctx)
		if err != nil {
			return fmt.Errorf("ticket stats: %w", err)
		}
		fmt.Fprintf(out, "total=%d open=%d in_progress=%d closed=%d\n", stats.Total, stats.Open, stats.InProgress, stats.Closed)
	}
	return nil
}
