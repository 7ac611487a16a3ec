package config

import "testing"

func validSources() []SourceConfig {
	return []SourceConfig{
		{ID: "maerkte", Title: "Märkte", Category: "Einkaufen", File: "maerkte.json"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{Driver: "valkey"},
		Datasets: DatasetsConfig{Sources: validSources()},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingSources(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing dataset sources")
	}
}

func TestValidate_DuplicateSourceID(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
		Datasets: DatasetsConfig{Sources: []SourceConfig{
			{ID: "maerkte", Title: "Märkte", File: "a.json"},
			{ID: "maerkte", Title: "Märkte 2", File: "b.json"},
		}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for duplicate source id")
	}
}

func TestValidate_SourceMissingFile(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
		Datasets: DatasetsConfig{Sources: []SourceConfig{
			{ID: "maerkte", Title: "Märkte"},
		}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for source without file")
	}
}

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "postgres", Addrs: []string{"localhost:5432"}},
		Datasets: DatasetsConfig{Sources: validSources()},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid driver")
	}

	expected := `database.driver must be "valkey" or "redis", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_EmptyAddrsAllowed(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
		Datasets: DatasetsConfig{Sources: validSources()},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty database.addrs must be valid (workspaces disabled): %v", err)
	}
	if cfg.WorkspacesEnabled() {
		t.Error("workspaces must be disabled without database addrs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver='valkey', got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Datasets.DataDir != "data" {
		t.Errorf("expected DataDir='data', got %q", cfg.Datasets.DataDir)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "redis", ReadinessTimeout: 15},
		Datasets: DatasetsConfig{DataDir: "geodata"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.Database.Driver)
	}
	if cfg.Datasets.DataDir != "geodata" {
		t.Errorf("expected DataDir='geodata', got %q", cfg.Datasets.DataDir)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DATENKARTE_TEST_PORT", "9090")

	out := expandEnvVars([]byte("port: ${DATENKARTE_TEST_PORT}\ndir: ${DATENKARTE_TEST_UNSET:-data}"))
	want := "port: 9090\ndir: data"
	if string(out) != want {
		t.Errorf("expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
