// Package main exits non-zero unless the ticketdesk health service is SERVING.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	healthcheckcmd "github.com/louisbranch/ticketdesk/internal/cmd/healthcheck"
	entrypoint "github.com/louisbranch/ticketdesk/internal/platform/cmd"
	"github.com/louisbranch/ticketdesk/internal/platform/config"
)

func main() {
	cfg, err := healthcheckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceHealthcheck))

	if err := healthcheckcmd.Run(context.Background(), cfg); err != nil {
		config.Exitf("unhealthy: %v", err)
	}
}
