package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmZero(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(40.014986, -105.270546, 40.014986, -105.270546), 1e-9)
}

func TestDistanceKmBoulderToDenver(t *testing.T) {
	// Boulder, CO to downtown Denver is roughly 39 km as the crow flies.
	d := DistanceKm(40.014986, -105.270546, 39.7392, -104.9903)
	assert.InDelta(t, 38.9, d, 1.0)
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(40.0, -105.0, 40.5, -105.3)
	b := DistanceKm(40.5, -105.3, 40.0, -105.0)
	assert.InDelta(t, a, b, 1e-9)
	assert.Greater(t, a, 50.0)
	assert.Less(t, a, 60.0)
}
