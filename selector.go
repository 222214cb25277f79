package mettrig

import (
	"iter"

	"go-hep.org/x/hep/fmom"
)

// Kinematics carries the derived quantities handed to extra cuts for an
// event that already passed the MET threshold.
type Kinematics struct {
	MET    float64        // effective missing transverse energy, GeV
	METPhi float64        // azimuth of the effective MET vector
	Jets   []fmom.PxPyPzE // GeV four-vectors, source ordering
}

// Cut is an additional selection composed with the MET threshold. Keep
// reports whether the event survives.
type Cut struct {
	Name string
	Keep func(kin Kinematics) bool
}

// Cutflow bucket coordinates in the "cutflow" histogram.
const (
	CutflowTotal = 0.5
	CutflowMET   = 1.5
)

// Selector applies a missing-energy trigger selection to an event stream
// and accumulates observable distributions.
type Selector struct {
	METThreshold float64 // GeV
	ExtraCuts    []Cut
}

// PassResult is the outcome of one pass over a dataset.
type PassResult struct {
	Passed    int64
	Processed int64
	Total     int64 // rows available in the dataset, set by the caller
}

// RunPass consumes one fresh event iterator, resets hists, and fills them
// while counting events that survive the MET threshold and all extra
// cuts. A non-negative maxEvents is a hard cap on events processed (zero
// processes nothing); a negative cap means the full stream. Every
// observable the selector fills must already be declared in hists.
func (s *Selector) RunPass(events iter.Seq[*Event], hists *HistSet, maxEvents int64) (PassResult, error) {
	hists.Reset()

	var (
		res  PassResult
		ferr error
	)
	fill := func(name string, x float64) bool {
		if ferr == nil {
			ferr = hists.Fill(name, x)
		}
		return ferr == nil
	}

	for evt := range events {
		if res.Processed == maxEvents {
			break
		}
		res.Processed++

		met, metPhi := EffectiveMET(evt)
		if !fill("met_et", met) || !fill("cutflow", CutflowTotal) {
			return res, ferr
		}
		if met < s.METThreshold {
			continue
		}
		if !fill("cutflow", CutflowMET) || !fill("jet_n", float64(evt.JetN)) {
			return res, ferr
		}

		jets := JetP4s(evt)
		if len(jets) >= 2 {
			ok := fill("jet0_pt", jets[0].Pt()) &&
				fill("jet0_eta", jets[0].Eta()) &&
				fill("jet1_pt", jets[1].Pt()) &&
				fill("jet1_eta", jets[1].Eta())
			if !ok {
				return res, ferr
			}
		}

		if !keep(s.ExtraCuts, Kinematics{MET: met, METPhi: metPhi, Jets: jets}) {
			continue
		}
		res.Passed++
	}
	return res, nil
}

func keep(cuts []Cut, kin Kinematics) bool {
	for _, c := range cuts {
		if !c.Keep(kin) {
			return false
		}
	}
	return true
}
