package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/grubdash-api/internal/platform/observability"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SeedFile          string
	LogLevel          slog.Level
	Environment       string
	TraceExporter     string
	OTLPEndpoint      string
	OTLPInsecure      bool
}

// Load reads .env (when present) and the environment, applies defaults, and validates basic constraints.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already set in the environment win.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("OTEL_TRACES_EXPORTER", platformobservability.ExporterOTLP)
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", "true")
	for _, key := range []string{"POSTGRES_DSN", "TEMPORAL_DISABLED", "SEED_FILE", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN:       strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		TemporalAddress:   strings.TrimSpace(v.GetString("TEMPORAL_ADDRESS")),
		TemporalNamespace: strings.TrimSpace(v.GetString("TEMPORAL_NAMESPACE")),
		TemporalDisabled:  isTruthy(v.GetString("TEMPORAL_DISABLED")),
		SeedFile:          strings.TrimSpace(v.GetString("SEED_FILE")),
		Environment:       strings.TrimSpace(v.GetString("ENVIRONMENT")),
		OTLPEndpoint:      strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      isTruthy(v.GetString("OTEL_EXPORTER_OTLP_INSECURE")),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", cfg.Port)
	}
	level, err := platformobservability.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	exporter, err := platformobservability.ParseExporter(v.GetString("OTEL_TRACES_EXPORTER"))
	if err != nil {
		return Config{}, fmt.Errorf("OTEL_TRACES_EXPORTER: %w", err)
	}
	cfg.TraceExporter = exporter
	return cfg, nil
}

// Telemetry maps the observability keys onto settings for the named service.
func (c Config) Telemetry(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:   serviceName,
		Environment:   c.Environment,
		LogLevel:      c.LogLevel,
		TraceExporter: c.TraceExporter,
		OTLPEndpoint:  c.OTLPEndpoint,
		OTLPInsecure:  c.OTLPInsecure,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
