package main

import (
	"github.com/joho/godotenv"

	"docqa/internal/cli"
)

func main() {
	// Credentials may live in a .env file; real environment variables
	// take precedence.
	_ = godotenv.Load()

	cli.Execute()
}
