package mettrig

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
)

// Example extra cuts for the slot left open after the MET threshold.
// All of them act on the two leading jets and reject events with fewer
// than two jets.

// MinDijetMass keeps events whose two leading jets have an invariant
// mass of at least min GeV.
func MinDijetMass(min float64) Cut {
	return Cut{
		Name: fmt.Sprintf("mjj>=%g", min),
		Keep: func(kin Kinematics) bool {
			if len(kin.Jets) < 2 {
				return false
			}
			return fmom.InvMass(&kin.Jets[0], &kin.Jets[1]) >= min
		},
	}
}

// MaxDijetDeltaPhi keeps events whose two leading jets are separated in
// azimuth by at most max radians. Back-to-back dijets fake missing
// energy when one jet is mismeasured.
func MaxDijetDeltaPhi(max float64) Cut {
	return Cut{
		Name: fmt.Sprintf("dphi(j0,j1)<=%g", max),
		Keep: func(kin Kinematics) bool {
			if len(kin.Jets) < 2 {
				return false
			}
			return math.Abs(deltaPhi(kin.Jets[0].Phi(), kin.Jets[1].Phi())) <= max
		},
	}
}

// MinMETJetDeltaPhi keeps events in which both leading jets point at
// least min radians away from the missing-energy direction.
func MinMETJetDeltaPhi(min float64) Cut {
	return Cut{
		Name: fmt.Sprintf("dphi(met,jet)>=%g", min),
		Keep: func(kin Kinematics) bool {
			if len(kin.Jets) < 2 {
				return false
			}
			for i := 0; i < 2; i++ {
				if math.Abs(deltaPhi(kin.METPhi, kin.Jets[i].Phi())) < min {
					return false
				}
			}
			return true
		},
	}
}

// deltaPhi maps a-b onto (-pi, pi].
func deltaPhi(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}
