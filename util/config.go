package util

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"5001" validate:"required,number"`
	AllowedOrigins []string `env:"FRONTEND_URL" envSeparator:"," envDefault:"*" validate:"required,dive,required"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	Environment    string   `env:"APP_ENV" envDefault:"development" validate:"oneof=development production"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%v", c.Port)
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
