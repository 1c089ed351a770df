package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	DBDriver         string        `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite | postgres
	DBDSN            string        `env:"DB_DSN" envDefault:"yourcar.db"`
	LogFile          string        `env:"LOG_FILE" envDefault:"./yourcar.log"`
	TemplatesDir     string        `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
	StaticDir        string        `env:"STATIC_DIR" envDefault:"./web/static"`
	AdminTokenHash   string        `env:"ADMIN_TOKEN_HASH"`  // bcrypt hash; empty leaves mutations open
	TopCarsEndpoint  string        `env:"TOP_CARS_ENDPOINT"` // empty runs the top cars query in-process
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"5s"`
	Seed             bool          `env:"SEED" envDefault:"true"`
	CORSOrigins      string        `env:"CORS_ORIGINS" envDefault:"*"`
	GraphQLRateLimit int           `env:"GRAPHQL_RATE_LIMIT" envDefault:"120"` // requests per minute per IP
}

// Drivers lists the accepted DB_DRIVER values.
var Drivers = []string{"sqlite", "postgres"}

// Load reads the environment. Unparseable values and unknown drivers are
// errors rather than silent zero values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if !slices.Contains(Drivers, cfg.DBDriver) {
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: %s)", cfg.DBDriver, strings.Join(Drivers, ", "))
	}
	if cfg.GraphQLRateLimit < 1 {
		return Config{}, fmt.Errorf("config: GRAPHQL_RATE_LIMIT must be positive, got %d", cfg.GraphQLRateLimit)
	}
	if cfg.FetchTimeout < 0 {
		return Config{}, fmt.Errorf("config: FETCH_TIMEOUT must not be negative, got %s", cfg.FetchTimeout)
	}
	// postgres DSNs and the token hash carry credentials
	dsn := cfg.DBDSN
	if cfg.DBDriver != "sqlite" {
		dsn = "<redacted>"
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s TOP_CARS_ENDPOINT=%q MUTATIONS_GUARDED=%t",
		cfg.Port, cfg.DBDriver, dsn, cfg.LogFile, cfg.TopCarsEndpoint, cfg.AdminTokenHash != "")
	return cfg, nil
}
