package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"5000"`
	MongoURI    string   `env:"MONGO_URI"`
	DB          DB       `envPrefix:"DB_"`
	JWTSecret   string   `env:"ACCESS_TOKEN_SECRET,required"`
	Stripe      Stripe   `envPrefix:"STRIPE_"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

type DB struct {
	User string `env:"USER"`
	Pass string `env:"PASS"`
	Host string `env:"HOST"`
	Name string `env:"NAME" envDefault:"pc-components-manufacturer"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY"`
}

// Load reads .env if present and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// URI returns MONGO_URI when set, otherwise composes an Atlas-style URI
// from the DB_* credentials.
func (c *Config) URI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/%s?retryWrites=true&w=majority",
		c.DB.User, c.DB.Pass, c.DB.Host, c.DB.Name)
}
