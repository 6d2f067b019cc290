package catalog

import (
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"gorm.io/gorm"
)

// FindServiceByCode loads a service with its attribute schema, attributes
// ordered for presentation and list values preloaded. Used by the request
// validation pipeline as well as the service-definition endpoint.
func FindServiceByCode(serviceCode string) (*Service, error) {
	var service Service
	err := db.DB.
		Preload("Attributes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Preload("Attributes.Values").
		First(&service, "service_code = ?", serviceCode).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}
