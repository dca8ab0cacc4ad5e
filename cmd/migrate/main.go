// cmd/migrate/main.go
// Applies the schema and seed data to the database in DATABASE_URL

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rikacare/rika-backend/internal/catalog"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/config"
	"github.com/rikacare/rika-backend/internal/rewards"
)

func main() {
	seed := flag.Bool("seed", true, "insert the starter catalog and rewards when empty")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("can't reach database", "error", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, log); err != nil {
		log.Fatal("migrations failed", "error", err)
	}

	if *seed {
		if err := catalog.SeedIfEmpty(ctx, catalog.NewPostgresRepository(db), log); err != nil {
			log.Fatal("catalog seed failed", "error", err)
		}
		if err := rewards.SeedIfEmpty(ctx, rewards.NewPostgresRepository(db), log); err != nil {
			log.Fatal("rewards seed failed", "error", err)
		}
	}

	var tables int
	if err := db.GetContext(ctx, &tables,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public'`); err != nil {
		log.Fatal("failed to count tables", "error", err)
	}
	log.Info("database ready", "tables", tables)
}
