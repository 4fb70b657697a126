package main

import (
	"fmt"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"procdesk/internal"
)

// loadConfig reads an optional .env file, then the environment. A missing
// .env is fine; missing required variables are not.
func loadConfig() (internal.Config, error) {
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return internal.Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}
