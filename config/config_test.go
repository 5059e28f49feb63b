package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want disable", cfg.Database.SSLMode)
	}
	if cfg.JWT.ExpirationHours != 24 {
		t.Errorf("ExpirationHours = %d, want 24", cfg.JWT.ExpirationHours)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")

	cfg := Load()

	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.JWT.ExpirationDuration() != 72*time.Hour {
		t.Errorf("ExpirationDuration = %v, want 72h", cfg.JWT.ExpirationDuration())
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: "5432",
		User: "ledgerbase", Password: "secret",
		Name: "ledgerbase", SSLMode: "disable",
	}

	want := "host=localhost port=5432 user=ledgerbase password=secret dbname=ledgerbase sslmode=disable"
	if got := db.ConnectionString(); got != want {
		t.Errorf("ConnectionString = %q, want %q", got, want)
	}
}
