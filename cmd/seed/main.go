package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"equipreserve/internal/database"
	"equipreserve/internal/repository"
	"equipreserve/internal/store"
)

func main() {
	reset := flag.Bool("reset", false, "drop all stored collections before seeding")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "equipreserve.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	st := store.New(db)
	log.Println("Running store migration...")
	if err := st.Migrate(); err != nil {
		log.Fatal("Migration failed:", err)
	}

	if *reset {
		log.Println("Dropping existing collections...")
		if err := db.Exec("DELETE FROM collections").Error; err != nil {
			log.Fatal("Reset failed:", err)
		}
	}

	ctx := context.Background()

	// first read of each collection seeds its defaults
	users, err := repository.NewUserRepository(st).GetAll(ctx)
	if err != nil {
		log.Fatal("Seeding users failed:", err)
	}
	equipment, err := repository.NewEquipmentRepository(st).GetAll(ctx)
	if err != nil {
		log.Fatal("Seeding equipment failed:", err)
	}
	reservations, err := repository.NewReservationRepository(st).GetAll(ctx)
	if err != nil {
		log.Fatal("Seeding reservations failed:", err)
	}

	log.Printf("Done: %d users, %d equipment, %d reservations", len(users), len(equipment), len(reservations))
}
