package catalog

import (
	"log"

	"github.com/CivicLink/Civic311-Backend/internal/db"
)

func Init() {
	// Ensure the catalog schema exists first
	if err := db.EnsureSchema(db.DB, "catalog"); err != nil {
		log.Fatal("Failed to create catalog schema: ", err)
	}

	if err := db.DB.AutoMigrate(&Jurisdiction{}, &Service{}, &ServiceAttribute{}, &AttributeValue{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
