// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// StorageOpen caps how long a command waits for its slot backend to answer
// the first ping.
const StorageOpen = 10 * time.Second
