package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/auth"
	"github.com/radholm/Scampea-Backend/internal/router"
	"github.com/radholm/Scampea-Backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	picturesDir := os.Getenv("PICTURES_DIR")
	if picturesDir == "" {
		picturesDir = "public/pictures"
	}
	storage.Pictures = storage.NewLocal(picturesDir, "/pictures")

	r := router.NewRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
