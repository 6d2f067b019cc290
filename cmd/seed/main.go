package main

import (
	"flag"
	"log"

	"github.com/CivicLink/Civic311-Backend/internal/catalog"
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/CivicLink/Civic311-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load(".env.local")

	path := flag.String("file", "seeds/catalog.yaml", "path to the YAML catalog seed file")
	flag.Parse()

	db.Connect()
	catalog.Init()

	if err := seeds.SeedFromFile(*path); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Catalog seeded from", *path)
}
