package catalog

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Jurisdiction struct {
	ID   string `gorm:"primaryKey;size:100" json:"jurisdiction_id"` // e.g. "bloomington.in.gov"
	Name string `json:"name"`
}

type Service struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	JurisdictionID string             `gorm:"index;size:100" json:"jurisdiction_id"`
	ServiceCode    string             `gorm:"uniqueIndex;size:50" json:"service_code"`
	ServiceName    string             `json:"service_name"`
	Description    string             `json:"description"`
	Keywords       pq.StringArray     `gorm:"type:text[]" json:"keywords,omitempty"`
	Attributes     []ServiceAttribute `gorm:"foreignKey:ServiceID" json:"attributes,omitempty"`
}

// ServiceAttribute is one jurisdiction-defined request-time field for a
// service. Code is the integer identifier submissions reference via
// attribute[<code>]=... form keys.
type ServiceAttribute struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID           uuid.UUID         `gorm:"type:uuid;index:uniq_service_attr_code,unique" json:"service_id"`
	Code                int               `gorm:"index:uniq_service_attr_code,unique" json:"code"`
	Datatype            AttributeDatatype `gorm:"size:20" json:"datatype"`
	Required            bool              `json:"required"`
	Variable            bool              `json:"variable"`
	Order               int               `gorm:"column:display_order" json:"order"`
	Description         string            `json:"description"`
	DatatypeDescription string            `json:"datatype_description"`
	Values              []AttributeValue  `gorm:"foreignKey:AttributeID" json:"values,omitempty"`
}

// AttributeValue is one selectable entry of a list-typed attribute. The ID
// is the opaque key submissions send; Name is the display text.
type AttributeValue struct {
	AttributeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ID          string    `gorm:"primaryKey;size:100" json:"key"`
	Name        string    `json:"name"`
}

func (Jurisdiction) TableName() string {
	return "catalog.jurisdictions"
}

func (Service) TableName() string {
	return "catalog.services"
}

func (ServiceAttribute) TableName() string {
	return "catalog.service_attributes"
}

func (AttributeValue) TableName() string {
	return "catalog.attribute_values"
}
