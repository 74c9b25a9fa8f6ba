package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/panyam/numcards/cmd/numcards/commands"
)

func main() {
	envfile := ".env"
	if os.Getenv("NUMCARDS_ENV") == "dev" {
		envfile = ".env.dev"
	}
	if err := godotenv.Load(envfile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading env file %s: %v", envfile, err)
	}
	commands.Execute()
}
