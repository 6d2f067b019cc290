package requests

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ServiceRequest is one submitted issue report. Attributes holds the
// validated snapshot of what the submitter selected, serialized at
// submission time so historic requests stay interpretable even after the
// live schema changes.
type ServiceRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JurisdictionID string    `gorm:"index;size:100" json:"jurisdiction_id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index" json:"service_id"`
	ServiceCode    string    `gorm:"size:50" json:"service_code"`
	ServiceName    string    `json:"service_name"`

	Status      Status `gorm:"size:20;default:'open'" json:"status"`
	Description string `json:"description"`

	// Location
	AddressString string  `json:"address_string"`
	AddressID     string  `json:"address_id"`
	Zipcode       string  `json:"zipcode"`
	Lat           float64 `json:"lat"`
	Long          float64 `json:"long"`

	// Submitter contact (PII, only ever exposed through the sensitive view)
	Email     string `json:"-"`
	DeviceID  string `json:"-"`
	AccountID string `json:"-"`
	FirstName string `json:"-"`
	LastName  string `json:"-"`
	Phone     string `json:"-"`

	MediaURL string `json:"media_url"`

	// Triage fields
	Priority          Priority   `gorm:"size:20" json:"-"`
	StatusNotes       string     `json:"-"`
	AgencyResponsible string     `json:"agency_responsible"`
	AgencyEmail       string     `json:"-"`
	ServiceNotice     string     `json:"service_notice"`
	ExpectedAt        *time.Time `json:"expected_datetime,omitempty"`

	Attributes datatypes.JSON `json:"attributes"`

	CreatedAt time.Time `json:"requested_datetime"`
	UpdatedAt time.Time `json:"updated_datetime"`
}

func (ServiceRequest) TableName() string {
	return "requests.service_requests"
}
