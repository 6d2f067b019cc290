package requests

import (
	"time"

	"github.com/google/uuid"
)

// PublicView is the projection any caller may see: no PII, no internal
// triage fields.
type PublicView struct {
	ID                uuid.UUID            `json:"id"`
	JurisdictionID    string               `json:"jurisdiction_id"`
	ServiceCode       string               `json:"service_code"`
	ServiceName       string               `json:"service_name"`
	Description       string               `json:"description"`
	Status            Status               `json:"status"`
	AddressString     string               `json:"address_string,omitempty"`
	AddressID         string               `json:"address_id,omitempty"`
	Zipcode           string               `json:"zipcode,omitempty"`
	Lat               float64              `json:"lat"`
	Long              float64              `json:"long"`
	MediaURL          string               `json:"media_url,omitempty"`
	AgencyResponsible string               `json:"agency_responsible,omitempty"`
	ServiceNotice     string               `json:"service_notice,omitempty"`
	ExpectedAt        *time.Time           `json:"expected_datetime,omitempty"`
	RequestedAt       time.Time            `json:"requested_datetime"`
	UpdatedAt         time.Time            `json:"updated_datetime"`
	SelectedValues    []AttributeSelection `json:"selected_values"`
}

// SensitiveView adds submitter PII and internal triage fields on top of
// the public projection. Only returned to callers holding a view
// permission in the jurisdiction.
type SensitiveView struct {
	PublicView

	Email       string   `json:"email,omitempty"`
	DeviceID    string   `json:"device_id,omitempty"`
	AccountID   string   `json:"account_id,omitempty"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	StatusNotes string   `json:"status_notes,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	AgencyEmail string   `json:"agency_email,omitempty"`
}

// ProjectPublic builds the public view of a stored request. A blob that
// fails to decode projects as an empty selection list rather than failing
// the read; the stored row remains the source of truth.
func ProjectPublic(req *ServiceRequest) PublicView {
	selections, err := DecodeSelections(req.Attributes)
	if err != nil {
		selections = []AttributeSelection{}
	}

	return PublicView{
		ID:                req.ID,
		JurisdictionID:    req.JurisdictionID,
		ServiceCode:       req.ServiceCode,
		ServiceName:       req.ServiceName,
		Description:       req.Description,
		Status:            req.Status,
		AddressString:     req.AddressString,
		AddressID:         req.AddressID,
		Zipcode:           req.Zipcode,
		Lat:               req.Lat,
		Long:              req.Long,
		MediaURL:          req.MediaURL,
		AgencyResponsible: req.AgencyResponsible,
		ServiceNotice:     req.ServiceNotice,
		ExpectedAt:        req.ExpectedAt,
		RequestedAt:       req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
		SelectedValues:    selections,
	}
}

// ProjectSensitive builds the permission-gated view.
func ProjectSensitive(req *ServiceRequest) SensitiveView {
	return SensitiveView{
		PublicView:  ProjectPublic(req),
		Email:       req.Email,
		DeviceID:    req.DeviceID,
		AccountID:   req.AccountID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		StatusNotes: req.StatusNotes,
		Priority:    req.Priority,
		AgencyEmail: req.AgencyEmail,
	}
}
