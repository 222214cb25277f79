package mettrig

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Event is one collision-event record as stored in the ATLAS open-data
// "mini" tree. Momenta and energies are in MeV; derived quantities
// returned by this package are in GeV.
type Event struct {
	LepN   int32
	LepPt  []float32
	LepPhi []float32

	MET    float32
	METPhi float32

	JetN   int32
	JetPt  []float32
	JetEta []float32
	JetPhi []float32
	JetE   []float32
}

// EffectiveMET folds the transverse momenta of all leptons into the
// event's missing transverse energy and returns the combined magnitude in
// GeV together with its azimuth. The open-data samples contain no native
// invisible-decay process, so treating leptons as invisible emulates one.
func EffectiveMET(evt *Event) (et, phi float64) {
	px := float64(evt.MET) * math.Cos(float64(evt.METPhi))
	py := float64(evt.MET) * math.Sin(float64(evt.METPhi))
	for i, pt := range evt.LepPt {
		px += float64(pt) * math.Cos(float64(evt.LepPhi[i]))
		py += float64(pt) * math.Sin(float64(evt.LepPhi[i]))
	}
	return math.Hypot(px, py) * 1e-3, math.Atan2(py, px)
}

// JetP4s builds GeV four-vectors for the event's jets. The source
// ordering is preserved: entry 0 is the leading jet, entry 1 the
// sub-leading jet, by upstream convention.
func JetP4s(evt *Event) []fmom.PxPyPzE {
	jets := make([]fmom.PxPyPzE, len(evt.JetPt))
	for i := range evt.JetPt {
		pt := float64(evt.JetPt[i]) * 1e-3
		eta := float64(evt.JetEta[i])
		phi := float64(evt.JetPhi[i])
		jets[i] = fmom.NewPxPyPzE(
			pt*math.Cos(phi),
			pt*math.Sin(phi),
			pt*math.Sinh(eta),
			float64(evt.JetE[i])*1e-3,
		)
	}
	return jets
}
