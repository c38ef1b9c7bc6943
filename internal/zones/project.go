package zones

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ToPlanar projects a lon/lat ring to spherical Mercator meters. The input
// is left untouched.
func ToPlanar(r orb.Ring) orb.Ring {
	return project.Ring(r.Clone(), project.WGS84.ToMercator)
}

// ToGeographic is the inverse of ToPlanar.
func ToGeographic(r orb.Ring) orb.Ring {
	return project.Ring(r.Clone(), project.Mercator.ToWGS84)
}
