package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ETL_FOOTBALL_BASE_DIR", "/srv/etl")
	t.Setenv("RAW_DIR", "")
	t.Setenv("PROCESSED_DIR", "")
	t.Setenv("PIPELINE_SCHEDULE", "")
	t.Setenv("PIPELINE_RETRIES", "")
	t.Setenv("PIPELINE_RETRY_DELAY", "")
	t.Setenv("DB_LOAD_BATCH_SIZE", "")
	t.Setenv("UNMATCHED_SAMPLE_SIZE", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("KEY_REGISTRY_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RawDir != filepath.Join("/srv/etl", "data_raw") {
		t.Fatalf("unexpected RawDir: %q", cfg.RawDir)
	}
	if cfg.ProcessedDir != filepath.Join("/srv/etl", "data_processed") {
		t.Fatalf("unexpected ProcessedDir: %q", cfg.ProcessedDir)
	}
	if cfg.PipelineSchedule != "0 2 * * 3" {
		t.Fatalf("unexpected PipelineSchedule: %q", cfg.PipelineSchedule)
	}
	if cfg.PipelineRetries != 2 || cfg.PipelineRetryDelay != 5*time.Minute {
		t.Fatalf("unexpected retry policy: %d x %s", cfg.PipelineRetries, cfg.PipelineRetryDelay)
	}
	if cfg.DBLoadBatchSize != 500 {
		t.Fatalf("unexpected DBLoadBatchSize: %d", cfg.DBLoadBatchSize)
	}
	if cfg.UnmatchedSampleSize != 5 {
		t.Fatalf("unexpected UnmatchedSampleSize: %d", cfg.UnmatchedSampleSize)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	cases := map[string]string{
		"DB_LOAD_BATCH_SIZE":    "0",
		"UNMATCHED_SAMPLE_SIZE": "-1",
		"PIPELINE_RETRIES":      "11",
		"PIPELINE_RETRY_DELAY":  "-5m",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv("PYROSCOPE_ENABLED", "false")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_KeyRegistry(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("KEY_REGISTRY_ENABLED", "true")
	t.Setenv("KEY_REGISTRY_PATH", "/tmp/keys.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.KeyRegistryEnabled || cfg.KeyRegistryPath != "/tmp/keys.db" {
		t.Fatalf("unexpected key registry config: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FOOTBALL_ETL_DOTENV_PROBE=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FOOTBALL_ETL_DOTENV_PROBE", "")
	os.Unsetenv("FOOTBALL_ETL_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("FOOTBALL_ETL_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("unexpected env value: %q", got)
	}
}

func TestRequireDB(t *testing.T) {
	if err := (Config{}).RequireDB(); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
	if err := (Config{DBURL: "postgres://localhost/etl"}).RequireDB(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
