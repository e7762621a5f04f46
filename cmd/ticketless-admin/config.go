package main

import (
	"fmt"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	// .env is optional; real deployments configure the environment.
	_ = godotenv.Load()

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.SupabaseProjectID == "" {
		return nil, fmt.Errorf("set SUPABASE_PROJECT_ID")
	}

	return c, nil
}
