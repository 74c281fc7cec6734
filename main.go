package main

import (
	"github.com/joho/godotenv"

	"narrative-video-automator/cmd"
)

func main() {
	// Load .env for local runs; CI injects the keys directly.
	_ = godotenv.Load()

	cmd.Execute()
}
