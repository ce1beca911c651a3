package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second})
	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default", Medium())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(Reset)
	t.Setenv("CAMPANION_TIMEOUT_EXTRACT", "90s")
	t.Setenv("CAMPANION_TIMEOUT_PING", "nonsense")
	t.Setenv("CAMPANION_TIMEOUT_BATCH", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() = %d, want 1", n)
	}
	if Extract() != 90*time.Second {
		t.Errorf("Extract() = %v, want 90s", Extract())
	}
	if Ping() != DefaultPing || Batch() != DefaultBatch {
		t.Error("invalid values should leave defaults in place")
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, log, "slow op")
	<-ctx.Done()
	cancel()

	if logs.FilterMessage("operation timed out").Len() != 1 {
		t.Errorf("expected one timeout warning, got %d entries", logs.Len())
	}
}

func TestWithTimeout_QuietOnCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := WithTimeout(context.Background(), time.Hour, zap.New(core), "fast op")
	cancel()
	<-ctx.Done()
	if logs.Len() != 0 {
		t.Errorf("expected no warning, got %d", logs.Len())
	}
}
