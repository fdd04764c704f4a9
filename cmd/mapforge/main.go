// Package main is the entry point for mapforge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mapforge/internal/telemetry"
)

func main() {
	// Load .env file for local development. Not fatal: env vars might be
	// set directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// telemetryOptions reads the Honeycomb key from the environment, which the
// .env file may have populated.
func telemetryOptions(endpoint, dataset string) telemetry.Options {
	if d := os.Getenv("HONEYCOMB_MAPFORGE_DATASET"); d != "" {
		dataset = d
	}
	return telemetry.Options{
		Endpoint: endpoint,
		Headers:  telemetry.HoneycombHeaders(os.Getenv("HONEYCOMB_MAPFORGE_API_KEY"), dataset),
	}
}
