package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/guttosm/print-quote-service/cmd/printctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
