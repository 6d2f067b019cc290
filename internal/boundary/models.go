package boundary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JurisdictionBoundary stores one closed polygon ring per jurisdiction.
// Points holds the raw [longitude, latitude] pairs as JSON so the stored
// form round-trips exactly what the administrator uploaded.
type JurisdictionBoundary struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	JurisdictionID string         `gorm:"uniqueIndex;size:100" json:"jurisdiction_id"`
	Points         datatypes.JSON `json:"points"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (JurisdictionBoundary) TableName() string {
	return "boundaries.jurisdiction_boundaries"
}
