package boundary

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"
)

// ErrNoBoundary is returned by Contains when a jurisdiction has no polygon
// on file.
var ErrNoBoundary = errors.New("no boundary defined for jurisdiction")

// InvalidRingError flags malformed boundary input. It is raised at save
// time so request validation never sees a broken polygon.
type InvalidRingError struct {
	Reason string
}

func (e *InvalidRingError) Error() string {
	return "invalid boundary ring: " + e.Reason
}

// ValidateRing checks that the coordinate pairs form a usable closed ring:
// at least 4 [longitude, latitude] pairs with the first equal to the last.
func ValidateRing(pairs [][2]float64) error {
	if len(pairs) < 4 {
		return &InvalidRingError{Reason: fmt.Sprintf("need at least 4 coordinate pairs, got %d", len(pairs))}
	}
	if pairs[0] != pairs[len(pairs)-1] {
		return &InvalidRingError{Reason: "ring is not closed (first pair must equal last pair)"}
	}
	return nil
}

// Index keeps one polygon ring per jurisdiction in memory for containment
// checks during request validation. Reads take the read lock; Save/Update
// replace the ring under the write lock, so a reader never observes a
// polygon mid-replacement.
type Index struct {
	mu    sync.RWMutex
	rings map[string]orb.Ring
}

func NewIndex() *Index {
	return &Index{rings: make(map[string]orb.Ring)}
}

// Load hydrates the index from the boundary table.
func (ix *Index) Load() error {
	var rows []JurisdictionBoundary
	if err := db.DB.Find(&rows).Error; err != nil {
		return fmt.Errorf("loading boundaries: %w", err)
	}

	rings := make(map[string]orb.Ring, len(rows))
	for _, row := range rows {
		var pairs [][2]float64
		if err := json.Unmarshal(row.Points, &pairs); err != nil {
			return fmt.Errorf("decoding boundary for %s: %w", row.JurisdictionID, err)
		}
		rings[row.JurisdictionID] = ringFromPairs(pairs)
	}

	ix.mu.Lock()
	ix.rings = rings
	ix.mu.Unlock()
	return nil
}

// Contains runs the boundary-inclusive point-in-polygon test: points
// exactly on the edge count as inside, so edge-of-district reports are
// never rejected.
func (ix *Index) Contains(jurisdictionID string, lat, lng float64) (bool, error) {
	ix.mu.RLock()
	ring, ok := ix.rings[jurisdictionID]
	ix.mu.RUnlock()

	if !ok {
		return false, ErrNoBoundary
	}
	return planar.RingContains(ring, orb.Point{lng, lat}), nil
}

// Save validates the ring and transactionally replaces the jurisdiction's
// polygon: row upsert first, then the in-memory ring under the write
// lock. The old polygon is fully replaced, never merged.
func (ix *Index) Save(jurisdictionID string, pairs [][2]float64) (*JurisdictionBoundary, error) {
	if err := ValidateRing(pairs); err != nil {
		return nil, err
	}

	points, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}

	var row JurisdictionBoundary
	err = db.DB.First(&row, "jurisdiction_id = ?", jurisdictionID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = JurisdictionBoundary{
			ID:             uuid.New(),
			JurisdictionID: jurisdictionID,
			Points:         points,
		}
		err = db.DB.Create(&row).Error
	case err == nil:
		row.Points = points
		err = db.DB.Save(&row).Error
	}
	if err != nil {
		return nil, fmt.Errorf("saving boundary: %w", err)
	}

	ix.mu.Lock()
	ix.rings[jurisdictionID] = ringFromPairs(pairs)
	ix.mu.Unlock()

	return &row, nil
}

func ringFromPairs(pairs [][2]float64) orb.Ring {
	ring := make(orb.Ring, 0, len(pairs))
	for _, p := range pairs {
		ring = append(ring, orb.Point{p[0], p[1]})
	}
	return ring
}
