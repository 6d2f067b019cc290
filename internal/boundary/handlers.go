package boundary

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// PutBoundaryHandler creates or fully replaces a jurisdiction's polygon.
// Body: {"coordinates": [[lng, lat], ...]} with at least 4 pairs, closed ring.
func PutBoundaryHandler(w http.ResponseWriter, r *http.Request) {
	jurisdictionID := chi.URLParam(r, "jurisdictionID")

	var input struct {
		Coordinates [][2]float64 `json:"coordinates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	row, err := Idx.Save(jurisdictionID, input.Coordinates)
	if err != nil {
		var ringErr *InvalidRingError
		if errors.As(err, &ringErr) {
			http.Error(w, ringErr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to save boundary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(row)
}

func GetBoundaryHandler(w http.ResponseWriter, r *http.Request) {
	jurisdictionID := chi.URLParam(r, "jurisdictionID")

	var row JurisdictionBoundary
	if err := db.DB.First(&row, "jurisdiction_id = ?", jurisdictionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "No boundary for jurisdiction", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch boundary: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(row)
}
