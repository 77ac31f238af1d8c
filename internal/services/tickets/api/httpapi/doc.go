// Package httpapi exposes the session and ticket stores as a JSON HTTP API.
package httpapi
