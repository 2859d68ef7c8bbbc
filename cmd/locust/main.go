package main

import (
	"log"

	"locust/internal/bot"
	"locust/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create and start bot
	locustBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := locustBot.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}
}
