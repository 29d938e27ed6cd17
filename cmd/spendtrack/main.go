package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spendtrack-dev/spendtrack/internal/commands"
)

func main() {
	// Optional .env for SPENDTRACK_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
