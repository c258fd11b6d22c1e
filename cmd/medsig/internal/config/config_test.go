package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Precision != 4 {
		t.Errorf("expected default precision 4, got %d", cfg.Precision)
	}
	if cfg.AuditCapacity != 1000 {
		t.Errorf("expected default audit capacity 1000, got %d", cfg.AuditCapacity)
	}
}

func TestValidateRejectsNegativePrecision(t *testing.T) {
	c := &Config{LogLevel: "info", Precision: -1, AuditCapacity: 1000}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative precision")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	c := &Config{LogLevel: "verbose", Precision: 4, AuditCapacity: 1000}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unrecognized log level")
	}
}

func TestValidateRejectsZeroAuditCapacity(t *testing.T) {
	c := &Config{LogLevel: "info", Precision: 4, AuditCapacity: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-positive audit capacity")
	}
}
