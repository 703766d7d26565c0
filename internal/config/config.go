package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Engine  EngineConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

// EngineConfig is the tunable policy table for the impact engine. It
// is loaded once at startup; a bad value here is fatal at boot, never
// a per-request failure.
type EngineConfig struct {
	AirburstMaxDiameterM    float64
	AirburstMaxVelocityKMS  float64
	PopulationDensityPerKM2 float64
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 10),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Engine: EngineConfig{
			AirburstMaxDiameterM:    getEnvFloat("AIRBURST_MAX_DIAMETER_M", 150),
			AirburstMaxVelocityKMS:  getEnvFloat("AIRBURST_MAX_VELOCITY_KMS", 50),
			PopulationDensityPerKM2: getEnvFloat("POPULATION_DENSITY_PER_KM2", 200),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/impact-sim.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s, got %d", c.Server.RateLimitRPS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Worker.Count)
	}

	if c.Engine.AirburstMaxDiameterM <= 0 {
		return fmt.Errorf("airburst diameter threshold must be positive, got %g", c.Engine.AirburstMaxDiameterM)
	}
	if c.Engine.AirburstMaxVelocityKMS <= 0 {
		return fmt.Errorf("airburst velocity threshold must be positive, got %g", c.Engine.AirburstMaxVelocityKMS)
	}
	if c.Engine.PopulationDensityPerKM2 < 0 {
		return fmt.Errorf("population density must not be negative, got %g", c.Engine.PopulationDensityPerKM2)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
