package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "population.tif")
	if err := os.WriteFile(path, []byte("II*\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := touch(t)
	t.Setenv("GEOPOP_RASTER_PATH", path)

	cfg, err := Load("geopop-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8083" {
		t.Errorf("expected 0.0.0.0:8083, got %s", cfg.Server.Addr())
	}
	if cfg.Raster.Path != path {
		t.Errorf("expected raster path %s, got %s", path, cfg.Raster.Path)
	}
	if cfg.Raster.Band != 1 || cfg.Raster.StripRows != 256 {
		t.Errorf("unexpected raster defaults %+v", cfg.Raster)
	}
	if cfg.Telemetry.ServiceName != "geopop-test" {
		t.Errorf("expected service name geopop-test, got %s", cfg.Telemetry.ServiceName)
	}
	if cfg.Valkey.Enabled {
		t.Error("valkey should be disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEOPOP_RASTER_PATH", touch(t))
	t.Setenv("GEOPOP_SERVER_PORT", "9090")
	t.Setenv("GEOPOP_LOG_LEVEL", "debug")

	cfg, err := Load("geopop-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoad_MissingRaster(t *testing.T) {
	t.Setenv("GEOPOP_RASTER_PATH", filepath.Join(t.TempDir(), "missing.tif"))

	_, err := Load("geopop-test")
	if err == nil {
		t.Fatal("expected error for missing raster")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: 0, ReadTimeout: 0, WriteTimeout: 1},
		Raster: RasterConfig{Path: "", Band: 0, StripRows: 1},
		Valkey: ValkeyConfig{Enabled: true},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "server.read_timeout", "raster.path", "raster.band", "valkey.addr", "valkey.ttl_seconds"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}
