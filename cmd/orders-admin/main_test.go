package main

import (
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { setupLogger(log.InfoLevel) })

	setupLogger(log.DebugLevel)

	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	formatter, ok := log.StandardLogger().Formatter.(*log.TextFormatter)
	if !ok {
		t.Fatalf("expected text formatter, got %T", log.StandardLogger().Formatter)
	}
	if !formatter.FullTimestamp {
		t.Fatal("expected full timestamps")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Cleanup(func() { setupLogger(log.InfoLevel) })
	t.Setenv("OMS_ADMIN_LOG_LEVEL", "loud")

	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRun_MissingSeedFile(t *testing.T) {
	t.Cleanup(func() { setupLogger(log.InfoLevel) })
	t.Setenv("OMS_ADMIN_SEED_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("OMS_ADMIN_HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("OMS_ADMIN_GRPC_ADDR", "127.0.0.1:0")
	t.Setenv("OMS_ADMIN_METRICS_ADDR", "127.0.0.1:0")

	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
