package zones

import (
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DropContained removes zones that lie fully inside another zone. Of two
// identical zones the later one is kept.
func DropContained(zones []Zone) []Zone {
	if len(zones) <= 1 {
		return zones
	}

	result := make([]Zone, 0, len(zones))
	contained := make([]bool, len(zones))

	// Check each zone against all others
	for i := 0; i < len(zones); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(zones); j++ {
			if i == j || contained[j] {
				continue
			}

			if isContainedIn(zones[i], zones[j]) {
				contained[i] = true
				break
			}

			if isContainedIn(zones[j], zones[i]) {
				contained[j] = true
			}
		}
	}

	for i := 0; i < len(zones); i++ {
		if !contained[i] {
			result = append(result, zones[i])
		}
	}

	log.Printf("   Zones after removing contained: %d (removed %d)\n",
		len(result), len(zones)-len(result))

	return result
}

// isContainedIn checks if zone a is fully contained within zone b
func isContainedIn(a, b Zone) bool {
	if len(a.Ring) == 0 || len(b.Ring) == 0 {
		return false
	}

	// Quick bounding box check first
	if !boundContained(a.Bound(), b.Bound()) {
		return false
	}

	for _, v := range a.Ring {
		if !planar.RingContains(b.Ring, v) {
			return false
		}
	}

	return true
}

func boundContained(a, b orb.Bound) bool {
	return a.Min[0] >= b.Min[0] && a.Max[0] <= b.Max[0] &&
		a.Min[1] >= b.Min[1] && a.Max[1] <= b.Max[1]
}
