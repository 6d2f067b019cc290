package boundary

import (
	"log"

	"github.com/CivicLink/Civic311-Backend/internal/db"
)

// Idx is the process-wide boundary index used by request validation.
var Idx *Index

func Init() {
	// Ensure the boundaries schema exists first
	if err := db.EnsureSchema(db.DB, "boundaries"); err != nil {
		log.Fatal("Failed to create boundaries schema: ", err)
	}

	if err := db.DB.AutoMigrate(&JurisdictionBoundary{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	Idx = NewIndex()
	if err := Idx.Load(); err != nil {
		log.Fatal("Failed to load boundary index: ", err)
	}
}
