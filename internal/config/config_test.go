package config

import (
	"testing"
	"time"
)

func TestLoadStoreConfigFromEnv(t *testing.T) {
	t.Setenv("LOCO_DB_DSN", "postgres://u:p@localhost:5432/loco?sslmode=disable")
	t.Setenv("LOCO_DB_MAX_OPEN_CONNS", "20")
	t.Setenv("LOCO_DB_CONN_MAX_LIFETIME", "5m")

	cfg, err := LoadStoreConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadStoreConfigFromEnv: %v", err)
	}
	if cfg.DSN != "postgres://u:p@localhost:5432/loco?sslmode=disable" {
		t.Errorf("DSN = %q", cfg.DSN)
	}
	if cfg.MaxOpenConns != 20 {
		t.Errorf("MaxOpenConns = %d, want 20", cfg.MaxOpenConns)
	}
	// Unset keys fall back to defaults.
	if cfg.MaxIdleConns != 5 {
		t.Errorf("MaxIdleConns = %d, want default 5", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 5m", cfg.ConnMaxLifetime)
	}
}

func TestLoadStoreConfigRequiresDSN(t *testing.T) {
	t.Setenv("LOCO_DB_DSN", "")
	if _, err := LoadStoreConfigFromEnv(); err == nil {
		t.Fatal("expected error when LOCO_DB_DSN is unset")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LOCO_TEST_INT", "7")
	if got := getEnvInt("LOCO_TEST_INT", 3); got != 7 {
		t.Errorf("set key: got %d, want 7", got)
	}
	t.Setenv("LOCO_TEST_INT", "not-a-number")
	if got := getEnvInt("LOCO_TEST_INT", 3); got != 3 {
		t.Errorf("garbage value: got %d, want default 3", got)
	}
	t.Setenv("LOCO_TEST_INT", "-1")
	if got := getEnvInt("LOCO_TEST_INT", 3); got != 3 {
		t.Errorf("negative value: got %d, want default 3", got)
	}
	if got := getEnvInt("LOCO_TEST_INT_UNSET", 3); got != 3 {
		t.Errorf("unset key: got %d, want default 3", got)
	}
}
