package repository

import (
	"fmt"

	"github.com/paulmach/orb"

	"lusotown-backend/internal/domain/model"
)

// boundsPadding degrees added around the requested viewport so clusters that
// straddle the edge are not cut off. Roughly 100m at London latitudes.
const boundsPadding = 0.001

// ValidateMapBounds rejects viewports that are inverted or outside valid
// coordinate ranges.
func ValidateMapBounds(bounds model.MapBounds) error {
	if bounds.West >= bounds.East || bounds.South >= bounds.North {
		return fmt.Errorf("invalid map bounds: min edge must be below max edge")
	}
	if bounds.West < -180 || bounds.East > 180 || bounds.South < -90 || bounds.North > 90 {
		return fmt.Errorf("map bounds are outside valid coordinate ranges")
	}
	return nil
}

// PadMapBounds grows the viewport slightly in every direction, clamped to
// valid coordinate ranges.
func PadMapBounds(bounds model.MapBounds) model.MapBounds {
	bound := orb.Bound{
		Min: orb.Point{bounds.West, bounds.South},
		Max: orb.Point{bounds.East, bounds.North},
	}
	bound = bound.Pad(boundsPadding)

	padded := model.MapBounds{
		West:  bound.Min.Lon(),
		South: bound.Min.Lat(),
		East:  bound.Max.Lon(),
		North: bound.Max.Lat(),
	}

	if padded.West < -180 {
		padded.West = -180
	}
	if padded.East > 180 {
		padded.East = 180
	}
	if padded.South < -90 {
		padded.South = -90
	}
	if padded.North > 90 {
		padded.North = 90
	}
	return padded
}

// MapBoundsCenter the viewport centroid, used for cache keys and telemetry.
func MapBoundsCenter(bounds model.MapBounds) (lat, lng float64) {
	bound := orb.Bound{
		Min: orb.Point{bounds.West, bounds.South},
		Max: orb.Point{bounds.East, bounds.North},
	}
	center := bound.Center()
	return center.Lat(), center.Lon()
}
