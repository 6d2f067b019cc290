package requests

import "fmt"

// InvalidServiceRequestError covers every client-attributable submission
// defect except the geospatial one: bad attribute code format, unresolvable
// service, jurisdiction mismatch, untrusted media URL, missing required
// attributes, unparseable attribute values.
type InvalidServiceRequestError struct {
	Reason string
}

func (e *InvalidServiceRequestError) Error() string {
	return e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidServiceRequestError{Reason: fmt.Sprintf(format, args...)}
}

// OutOfBoundsError is its own kind so clients can render a map-specific
// message when a report falls outside the jurisdiction polygon.
type OutOfBoundsError struct {
	JurisdictionID string
}

func (e *OutOfBoundsError) Error() string {
	return "service request location falls outside the boundary of jurisdiction " + e.JurisdictionID
}
