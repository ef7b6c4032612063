package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lusotown-backend/internal/domain/model"
)

func TestValidateMapBounds(t *testing.T) {
	valid := model.MapBounds{South: 51.4, West: -0.2, North: 51.6, East: 0.1}
	require.NoError(t, ValidateMapBounds(valid))

	inverted := model.MapBounds{South: 51.6, West: -0.2, North: 51.4, East: 0.1}
	assert.Error(t, ValidateMapBounds(inverted))

	outOfRange := model.MapBounds{South: 51.4, West: -200, North: 51.6, East: 0.1}
	assert.Error(t, ValidateMapBounds(outOfRange))
}

func TestPadMapBounds(t *testing.T) {
	bounds := model.MapBounds{South: 51.4, West: -0.2, North: 51.6, East: 0.1}

	padded := PadMapBounds(bounds)

	assert.Less(t, padded.West, bounds.West)
	assert.Less(t, padded.South, bounds.South)
	assert.Greater(t, padded.East, bounds.East)
	assert.Greater(t, padded.North, bounds.North)
}

func TestPadMapBounds_ClampsToValidRanges(t *testing.T) {
	bounds := model.MapBounds{South: -89.9999, West: -179.9999, North: 89.9999, East: 179.9999}

	padded := PadMapBounds(bounds)

	assert.Equal(t, -180.0, padded.West)
	assert.Equal(t, 180.0, padded.East)
	assert.Equal(t, -90.0, padded.South)
	assert.Equal(t, 90.0, padded.North)
}

func TestMapBoundsCenter(t *testing.T) {
	bounds := model.MapBounds{South: 51.4, West: -0.2, North: 51.6, East: 0.2}

	lat, lng := MapBoundsCenter(bounds)

	assert.InDelta(t, 51.5, lat, 1e-9)
	assert.InDelta(t, 0.0, lng, 1e-9)
}
