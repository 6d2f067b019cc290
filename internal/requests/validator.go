package requests

import (
	"errors"
	"strconv"
	"strings"

	"github.com/CivicLink/Civic311-Backend/internal/boundary"
	"github.com/CivicLink/Civic311-Backend/internal/catalog"
)

// ServiceFinder resolves a submitted service code to the live service and
// its attribute schema.
type ServiceFinder interface {
	FindByCode(serviceCode string) (*catalog.Service, error)
}

// BoundaryChecker answers point-in-polygon for a jurisdiction.
type BoundaryChecker interface {
	Contains(jurisdictionID string, lat, lng float64) (bool, error)
}

// Submission is the inbound payload after form decoding, before any
// validation.
type Submission struct {
	JurisdictionID string
	ServiceCode    string
	Lat            string
	Long           string
	AddressString  string
	AddressID      string
	Zipcode        string
	Email          string
	DeviceID       string
	AccountID      string
	FirstName      string
	LastName       string
	Phone          string
	Description    string
	MediaURL       string

	// Fields is the full raw form, in encounter order, for attribute mapping.
	Fields []FormField
}

// Validator runs the full pre-persistence pipeline. It is stateless and
// safe to share across concurrent requests.
type Validator struct {
	Services   ServiceFinder
	Boundaries BoundaryChecker
	// BucketURL is the trusted storage prefix a media URL must carry.
	BucketURL string
}

// Validate checks the submission in order, short-circuiting on the first
// failure. Nothing is persisted here; on success the caller constructs the
// request from the returned service and selections.
//
// Order: service resolution, jurisdiction consistency, boundary
// containment, media-URL provenance, attribute mapping, required-code
// completeness.
func (v *Validator) Validate(sub Submission) (*catalog.Service, []AttributeSelection, error) {
	service, err := v.Services.FindByCode(sub.ServiceCode)
	if err != nil || service == nil {
		return nil, nil, invalidf("corresponding service not found for code %q", sub.ServiceCode)
	}

	if service.JurisdictionID != sub.JurisdictionID {
		return nil, nil, invalidf("service %q does not belong to jurisdiction %q", sub.ServiceCode, sub.JurisdictionID)
	}

	lat, lng, err := parseCoordinates(sub.Lat, sub.Long)
	if err != nil {
		return nil, nil, err
	}

	inside, err := v.Boundaries.Contains(sub.JurisdictionID, lat, lng)
	switch {
	case errors.Is(err, boundary.ErrNoBoundary):
		// Jurisdiction has not uploaded a polygon yet; containment cannot
		// reject what it cannot test.
	case err != nil:
		return nil, nil, err
	case !inside:
		return nil, nil, &OutOfBoundsError{JurisdictionID: sub.JurisdictionID}
	}

	// A media URL must point into this deployment's own storage bucket;
	// hot-linking arbitrary hosts into public request records is refused.
	if sub.MediaURL != "" {
		if v.BucketURL == "" || !strings.HasPrefix(sub.MediaURL, v.BucketURL) {
			return nil, nil, invalidf("media URL is invalid")
		}
	}

	selections, err := MapAttributes(sub.Fields, service.Attributes)
	if err != nil {
		return nil, nil, err
	}

	present := make(map[int]bool, len(selections))
	for _, s := range selections {
		present[s.Code] = true
	}
	for _, attr := range service.Attributes {
		if attr.Required && !present[attr.Code] {
			return nil, nil, invalidf("missing required attribute values")
		}
	}

	return service, selections, nil
}

// parseCoordinates turns the submitted lat/long strings into floats,
// tolerating surrounding whitespace. It is the only coordinate parse in
// the pipeline: the numbers checked for containment are the numbers that
// get persisted.
func parseCoordinates(latStr, lngStr string) (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, invalidf("latitude must be a number, got %q", latStr)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return 0, 0, invalidf("longitude must be a number, got %q", lngStr)
	}
	return lat, lng, nil
}
