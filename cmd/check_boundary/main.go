package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/CivicLink/Civic311-Backend/internal/boundary"
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/joho/godotenv"
)

// Quick operational check: does a lat/long fall inside a jurisdiction's
// stored boundary polygon?
func main() {
	godotenv.Load(".env.local")

	jurisdictionID := flag.String("jurisdiction", "", "jurisdiction id to test against")
	lat := flag.Float64("lat", 0, "latitude")
	lng := flag.Float64("lng", 0, "longitude")
	flag.Parse()

	if *jurisdictionID == "" {
		log.Fatal("-jurisdiction is required")
	}

	db.Connect()
	boundary.Init()

	inside, err := boundary.Idx.Contains(*jurisdictionID, *lat, *lng)
	if err != nil {
		log.Fatalf("Containment check failed: %v", err)
	}

	if inside {
		fmt.Printf("(%f, %f) is INSIDE %s\n", *lat, *lng, *jurisdictionID)
	} else {
		fmt.Printf("(%f, %f) is OUTSIDE %s\n", *lat, *lng, *jurisdictionID)
	}
}
