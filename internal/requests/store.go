package requests

import (
	"github.com/CivicLink/Civic311-Backend/internal/catalog"
)

// gormServiceFinder adapts the catalog store to the validator's
// ServiceFinder interface.
type gormServiceFinder struct{}

func (gormServiceFinder) FindByCode(serviceCode string) (*catalog.Service, error) {
	return catalog.FindServiceByCode(serviceCode)
}
