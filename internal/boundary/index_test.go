package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 4x4 square traced from the origin and back, in [lng, lat] pairs.
var square = [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}

func indexWith(jurisdictionID string, pairs [][2]float64) *Index {
	ix := NewIndex()
	ix.rings[jurisdictionID] = ringFromPairs(pairs)
	return ix
}

func TestValidateRing(t *testing.T) {
	tests := []struct {
		name    string
		pairs   [][2]float64
		wantErr string
	}{
		{
			name:  "closed square is valid",
			pairs: square,
		},
		{
			name:    "too few pairs",
			pairs:   [][2]float64{{0, 0}, {4, 0}, {0, 0}},
			wantErr: "at least 4 coordinate pairs",
		},
		{
			name:    "unclosed ring",
			pairs:   [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
			wantErr: "not closed",
		},
		{
			name:    "empty input",
			pairs:   nil,
			wantErr: "at least 4 coordinate pairs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRing(tt.pairs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ringErr *InvalidRingError
			require.ErrorAs(t, err, &ringErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestContains_InsideOutsideEdge(t *testing.T) {
	ix := indexWith("town.gov", square)

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{name: "strictly inside", lat: 2, lng: 2, want: true},
		{name: "strictly outside", lat: 5, lng: 5, want: false},
		{name: "outside on one axis", lat: 2, lng: 4.001, want: false},
		// Covers semantics: the boundary itself counts as inside.
		{name: "on an edge", lat: 0, lng: 2, want: true},
		{name: "on a corner", lat: 4, lng: 4, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.Contains("town.gov", tt.lat, tt.lng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContains_UnknownJurisdiction(t *testing.T) {
	ix := NewIndex()

	_, err := ix.Contains("nowhere.gov", 1, 1)
	assert.ErrorIs(t, err, ErrNoBoundary)
}

// Replacing a polygon must fully swap the old ring for the new one.
func TestReplaceRing(t *testing.T) {
	ix := indexWith("town.gov", square)

	inOld, err := ix.Contains("town.gov", 2, 2)
	require.NoError(t, err)
	require.True(t, inOld)

	// Shift the square far away: (10,10)..(14,14).
	shifted := [][2]float64{{10, 10}, {14, 10}, {14, 14}, {10, 14}, {10, 10}}
	ix.rings["town.gov"] = ringFromPairs(shifted)

	inOld, err = ix.Contains("town.gov", 2, 2)
	require.NoError(t, err)
	assert.False(t, inOld, "point inside the old polygon must now be outside")

	inNew, err := ix.Contains("town.gov", 12, 12)
	require.NoError(t, err)
	assert.True(t, inNew)
}

func TestContains_NonConvexRing(t *testing.T) {
	// An L-shaped district: the notch at the top-right is outside.
	l := [][2]float64{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}, {0, 0}}
	ix := indexWith("town.gov", l)

	in, err := ix.Contains("town.gov", 1, 1)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = ix.Contains("town.gov", 3, 3) // inside the notch
	require.NoError(t, err)
	assert.False(t, in)
}
