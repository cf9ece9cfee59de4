// Package config loads the service's tunables from a YAML file and
// lets environment variables override individual fields, the way the
// ancestor's auth.NewVerifierFromEnv and api.NewServer layer env vars
// over defaults rather than requiring a config file for every
// deployment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the solver and its surrounding service
// need. Zero values are valid defaults; Load always returns a usable
// Config even when path is empty and no env vars are set.
type Config struct {
	// RegretCoeff is passed to the construction heuristic's insertion
	// pass (heuristic.SeedSolution); the search driver itself always
	// runs pure cheapest insertion (engine.RegretCoeff).
	RegretCoeff float64 `yaml:"regretCoeff"`
	// IterationCap bounds LocalSearch.Run rounds; 0 means unbounded
	// (run until a local optimum, per spec §5).
	IterationCap int `yaml:"iterationCap"`

	ListenAddr  string `yaml:"listenAddr"`
	DatabaseURL string `yaml:"databaseUrl"`
	RedisURL    string `yaml:"redisUrl"`

	// JWTMode selects the auth.Verifier construction path: "dev",
	// "hmac", or "jwks".
	JWTMode string `yaml:"jwtMode"`

	// MatrixCacheTTLSeconds controls matrix.CachedProvider's TTL when a
	// Redis-backed cache is wired in.
	MatrixCacheTTLSeconds int `yaml:"matrixCacheTtlSeconds"`
}

// Default returns the built-in defaults used when neither a config
// file nor environment variables supply a value.
func Default() Config {
	return Config{
		RegretCoeff:           1.0,
		IterationCap:          0,
		ListenAddr:            ":8080",
		JWTMode:               "dev",
		MatrixCacheTTLSeconds: 600,
	}
}

// Load reads path (if non-empty and present) as YAML over the
// defaults, then applies environment overrides. A missing path is not
// an error — the ancestor's NewVerifierFromEnv treats an unset mode the
// same way, falling back to defaults rather than failing startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VRPLS_REGRET_COEFF"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RegretCoeff = f
		}
	}
	if v := os.Getenv("VRPLS_ITERATION_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IterationCap = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("JWT_MODE"); v != "" {
		cfg.JWTMode = v
	}
	if v := os.Getenv("VRPLS_MATRIX_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MatrixCacheTTLSeconds = n
		}
	}
}
