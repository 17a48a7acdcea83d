package config_test

import (
	"testing"

	"pageflow/config"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pageflow_test")
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	cfg := config.Load()
	if cfg.Port != "8080" || cfg.Env != "dev" || cfg.JWTSecret != "local_dev_secret" {
		t.Fatalf("defaults wrong: %+v", cfg)
	}

	t.Setenv("APP_PORT", "9999")
	t.Setenv("APP_ENV", "prod")
	cfg = config.Load()
	if cfg.Port != "9999" || cfg.Env != "prod" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
}

func TestLoad_MissingDSNPanics(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	defer func() {
		if recover() == nil {
			t.Fatal("missing DATABASE_URL must panic")
		}
	}()
	config.Load()
}
