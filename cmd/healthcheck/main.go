package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/database"
	"github.com/signingconnect/signingconnect-api/internal/services"
)

// Container healthcheck probe: connects to the database directly and
// reports the same payload as GET /api/health.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	result := services.CheckHealth(cfg, db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
