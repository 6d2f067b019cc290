package requests

import (
	"log"
	"os"

	"github.com/CivicLink/Civic311-Backend/internal/boundary"
	"github.com/CivicLink/Civic311-Backend/internal/db"
)

// V is the process-wide validation pipeline.
var V *Validator

func Init() {
	// Ensure the requests schema exists first
	if err := db.EnsureSchema(db.DB, "requests"); err != nil {
		log.Fatal("Failed to create requests schema: ", err)
	}

	if err := db.DB.AutoMigrate(&ServiceRequest{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	bucketURL := os.Getenv("STORAGE_BUCKET_URL")
	if bucketURL == "" {
		log.Println("STORAGE_BUCKET_URL not set; submissions with media URLs will be rejected")
	}

	V = &Validator{
		Services:   gormServiceFinder{},
		Boundaries: boundary.Idx,
		BucketURL:  bucketURL,
	}
}
