package main

import (
	"context"
	"log"
	"os"

	"github.com/safar/rakhi-store/internal/config"
	"github.com/safar/rakhi-store/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_migrations.go [up|down]")
	}

	direction := database.Direction(os.Args[1])
	if direction != database.Up && direction != database.Down {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Load database config: %v", err)
	}

	db, err := database.NewConnection(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	version, err := database.Migrate(db, direction)
	if err != nil {
		log.Fatalf("Run migrations %s: %v", direction, err)
	}

	log.Printf("Ledger schema migrated %s, now at version %d", direction, version)
}
