package main

import (
	"log"
	"os"

	"banking-rag-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding notification registry...")
	SeedNotificationTypes(db)

	color.Cyan("Seeding demo users...")
	SeedUsers(db)

	color.Cyan("Seeding regulatory updates...")
	SeedRegulatoryUpdates(db)

	color.Cyan("Seeding comparative matrix...")
	SeedComparatives(db)

	color.Green("Seeding completed.")
}
