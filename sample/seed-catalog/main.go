package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/database"
)

// Seeds a starter catalog so the site has something to render on a fresh
// database. Safe to run against an empty products table only.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := database.NewDBConnection(dsn)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()

	repo := database.NewProductRepository(db)
	ctx := context.Background()

	seed := []struct {
		name, slug, category string
	}{
		{"Submersible Pump 1HP", "submersible-pump-1hp", "Pumps"},
		{"Submersible Pump 2HP", "submersible-pump-2hp", "Pumps"},
		{"Control Panel Single Phase", "control-panel-single-phase", "Panels"},
		{"Control Panel Three Phase", "control-panel-three-phase", "Panels"},
		{"HDPE Column Pipe 1.5 inch", "hdpe-column-pipe-1-5", "Pipes"},
	}

	for _, s := range seed {
		product := entity.NewProduct(s.name, s.slug, s.category)
		if err := repo.Create(ctx, product); err != nil {
			log.Fatalf("seeding %s: %v", s.slug, err)
		}
		fmt.Printf("created %s (%s)\n", product.Name, product.ID)
	}

	fmt.Printf("seeded %d products\n", len(seed))
}
