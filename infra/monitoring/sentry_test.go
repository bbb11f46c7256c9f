package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/kilianp07/solarsim/config"
	coremon "github.com/kilianp07/solarsim/core/monitoring"
)

func TestNewSentryMonitor_EmptyDSN(t *testing.T) {
	m, err := NewSentryMonitor(config.SentryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor got %T", m)
	}
	m.CaptureException(errors.New("ignored"), nil)
	m.Flush(time.Millisecond)
}

func TestNewSentryMonitor_InvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(config.SentryConfig{DSN: "not a dsn"}); err == nil {
		t.Fatal("expected error for invalid DSN")
	}
}
