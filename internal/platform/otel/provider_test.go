package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/ticketdesk/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("TICKETDESK_OTEL_ENDPOINT", "")
	t.Setenv("TICKETDESK_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("TICKETDESK_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("TICKETDESK_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsMalformedSampleRatio(t *testing.T) {
	t.Setenv("TICKETDESK_OTEL_SAMPLE_RATIO", "often")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected sample ratio parse error")
	}
}

func TestSetupWithEnv_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export ever lands.
	shutdown, err := otel.SetupWithEnv(context.Background(), "test-service", otel.Env{
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupWithEnv_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.SetupWithEnv(context.Background(), "noop-test", otel.Env{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}
