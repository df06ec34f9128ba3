package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/football-etl/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level
	LogFile        string

	BaseDir              string `validate:"required"`
	RawDir               string `validate:"required"`
	ProcessedDir         string `validate:"required"`
	ReferenceCatalogPath string
	UnmatchedSampleSize  int `validate:"gte=1,lte=100"`

	KeyRegistryEnabled bool
	KeyRegistryPath    string `validate:"required_if=KeyRegistryEnabled true"`

	DBURL                   string
	DBDisablePreparedBinary bool
	DBLoadBatchSize         int `validate:"gte=1,lte=5000"`

	PipelineSchedule   string `validate:"required"`
	PipelineRetries    int    `validate:"gte=0,lte=10"`
	PipelineRetryDelay time.Duration

	UptraceEnabled     bool
	UptraceDSN         string `validate:"required_if=UptraceEnabled true"`
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// LoadDotEnv reads key=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	baseDir := getEnv("ETL_FOOTBALL_BASE_DIR", ".")
	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                strings.TrimSpace(getEnv("APP_SERVICE_NAME", "football-etl")),
		ServiceVersion:             strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFile:                    strings.TrimSpace(getEnv("LOG_FILE", "")),
		BaseDir:                    baseDir,
		RawDir:                     getEnv("RAW_DIR", filepath.Join(baseDir, "data_raw")),
		ProcessedDir:               getEnv("PROCESSED_DIR", filepath.Join(baseDir, "data_processed")),
		ReferenceCatalogPath:       strings.TrimSpace(getEnv("REFERENCE_CATALOG_PATH", "")),
		KeyRegistryPath:            getEnv("KEY_REGISTRY_PATH", filepath.Join(baseDir, "surrogate_keys.db")),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		PipelineSchedule:           strings.TrimSpace(getEnv("PIPELINE_SCHEDULE", "0 2 * * 3")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "football-etl")),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if cfg.UnmatchedSampleSize, err = getEnvAsInt("UNMATCHED_SAMPLE_SIZE", 5); err != nil {
		return Config{}, fmt.Errorf("parse UNMATCHED_SAMPLE_SIZE: %w", err)
	}
	if cfg.DBLoadBatchSize, err = getEnvAsInt("DB_LOAD_BATCH_SIZE", 500); err != nil {
		return Config{}, fmt.Errorf("parse DB_LOAD_BATCH_SIZE: %w", err)
	}
	if cfg.PipelineRetries, err = getEnvAsInt("PIPELINE_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_RETRIES: %w", err)
	}
	if cfg.KeyRegistryEnabled, err = strconv.ParseBool(getEnv("KEY_REGISTRY_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse KEY_REGISTRY_ENABLED: %w", err)
	}
	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}

	if cfg.PipelineRetryDelay, err = time.ParseDuration(getEnv("PIPELINE_RETRY_DELAY", "5m")); err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_RETRY_DELAY: %w", err)
	}
	if cfg.PipelineRetryDelay <= 0 {
		return Config{}, fmt.Errorf("PIPELINE_RETRY_DELAY must be > 0")
	}
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// RequireDB reports a configuration error when no warehouse URL is set.
func (c Config) RequireDB() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
