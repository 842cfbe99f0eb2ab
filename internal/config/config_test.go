package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8090},
		Weaviate: WeaviateConfig{Endpoint: "http://localhost:8080"},
		Session:  SessionConfig{Driver: SessionDriverMemory},
		Ingest:   IngestConfig{ReplicationFactor: 3, BatchSize: 1000},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }, "http.port must be between 1 and 65535, got 0"},
		{"endpoint", func(c *Config) { c.Weaviate.Endpoint = "" }, "weaviate.endpoint is required"},
		{"driver", func(c *Config) { c.Session.Driver = "redis" }, `session.driver must be "memory" or "valkey", got "redis"`},
		{"valkey addrs", func(c *Config) { c.Session.Driver = SessionDriverValkey }, `session.addrs is required for driver "valkey"`},
		{"batch size", func(c *Config) { c.Ingest.BatchSize = 20000 }, "ingest.batch_size must be at most 10000, got 20000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Session.Driver != SessionDriverMemory {
		t.Errorf("session driver = %q", cfg.Session.Driver)
	}
	if cfg.Session.TTLSec != 3600 {
		t.Errorf("session ttl = %d", cfg.Session.TTLSec)
	}
	if cfg.Weaviate.TimeoutSec != 20 {
		t.Errorf("weaviate timeout = %d", cfg.Weaviate.TimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("shutdown = %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Ingest.ReplicationFactor != 3 || cfg.Ingest.BatchSize != 1000 {
		t.Errorf("ingest = %+v", cfg.Ingest)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("WV_TEST_SET", "value")

	in := "a: ${WV_TEST_SET}\nb: ${WV_TEST_UNSET:-fallback}\nc: ${WV_TEST_UNSET}\n"
	got := string(expandEnvVars([]byte(in)))
	want := "a: value\nb: fallback\nc: \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: 9000
weaviate:
  endpoint: ${WV_TEST_ENDPOINT:-http://weaviate:8080}
  headers:
    X-OpenAI-Api-Key: secret
session:
  driver: valkey
  addrs: ["valkey:6379"]
ingest:
  replication_factor: 1
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9000 || cfg.Weaviate.Endpoint != "http://weaviate:8080" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Weaviate.Headers["X-OpenAI-Api-Key"] != "secret" {
		t.Errorf("headers = %v", cfg.Weaviate.Headers)
	}
	if cfg.Session.TTLSec != 3600 || cfg.Ingest.BatchSize != 1000 {
		t.Error("defaults must be applied after parsing")
	}
	if cfg.Ingest.ReplicationFactor != 1 {
		t.Errorf("replication factor = %d", cfg.Ingest.ReplicationFactor)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "bad.yaml"), []byte("http:\n  port: 8090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	_, err := Load("bad")
	if err == nil || !strings.Contains(err.Error(), "weaviate.endpoint is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Error("default env must be local")
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Error("ENV not honored")
	}
}
