package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"tableflip.dev/daylog/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
