package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/tasiov/mantis-raydium/cmd/mantis-raydium/cmd"
)

func main() {
	// A missing .env is fine; the config file and environment still apply.
	_ = godotenv.Load()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
