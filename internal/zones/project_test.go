package zones

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionRoundTrip(t *testing.T) {
	ring := orb.Ring{{4.70, 52.28}, {4.80, 52.28}, {4.80, 52.34}, {4.70, 52.34}, {4.70, 52.28}}
	original := ring.Clone()

	planar := ToPlanar(ring)
	assert.Equal(t, original, ring, "input is not modified")
	assert.Greater(t, planar[1][0]-planar[0][0], 10000.0, "meters, not degrees")
	assert.Equal(t, orb.CCW, planar.Orientation())

	back := ToGeographic(planar)
	require.Len(t, back, len(ring))
	for i := range ring {
		assert.InDelta(t, ring[i][0], back[i][0], 1e-9)
		assert.InDelta(t, ring[i][1], back[i][1], 1e-9)
	}
}
