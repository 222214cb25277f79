package mettrig

import (
	"iter"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceEvents(evts []Event) iter.Seq[*Event] {
	return func(yield func(*Event) bool) {
		for i := range evts {
			if !yield(&evts[i]) {
				return
			}
		}
	}
}

func gev(x float64) float32 { return float32(x * 1e3) }

// jetEvent builds an event with the given raw MET (GeV) and jet
// transverse momenta (GeV), leading jet first.
func jetEvent(met float64, jetPts ...float64) Event {
	evt := Event{MET: gev(met)}
	for _, pt := range jetPts {
		evt.JetPt = append(evt.JetPt, gev(pt))
		evt.JetEta = append(evt.JetEta, 0.5)
		evt.JetPhi = append(evt.JetPhi, 0)
		evt.JetE = append(evt.JetE, gev(pt*1.5))
	}
	evt.JetN = int32(len(jetPts))
	return evt
}

var jetObservables = []string{"jet0_pt", "jet0_eta", "jet1_pt", "jet1_eta"}

func TestRunPassBelowThreshold(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()

	res, err := sel.RunPass(sliceEvents([]Event{jetEvent(150, 300, 200)}), hists, -1)
	require.NoError(t, err)

	assert.EqualValues(t, 0, res.Passed)
	assert.EqualValues(t, 1, res.Processed)
	assert.EqualValues(t, 1, hists.Hist("met_et").Entries())
	assert.EqualValues(t, 1, hists.Hist("cutflow").Entries())
	assert.EqualValues(t, 0, hists.Hist("jet_n").Entries())
	for _, name := range jetObservables {
		assert.EqualValues(t, 0, hists.Hist(name).Entries(), name)
	}
}

func TestRunPassFewerThanTwoJets(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()

	res, err := sel.RunPass(sliceEvents([]Event{jetEvent(250, 300)}), hists, -1)
	require.NoError(t, err)

	assert.EqualValues(t, 1, res.Passed)
	assert.EqualValues(t, 1, hists.Hist("met_et").Entries())
	assert.EqualValues(t, 1, hists.Hist("jet_n").Entries())
	for _, name := range jetObservables {
		assert.EqualValues(t, 0, hists.Hist(name).Entries(), name)
	}

	_, total := hists.Hist("cutflow").XY(0)
	_, met := hists.Hist("cutflow").XY(1)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, met)
}

func TestRunPassTwoJets(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()

	res, err := sel.RunPass(sliceEvents([]Event{jetEvent(250, 300, 180)}), hists, -1)
	require.NoError(t, err)

	assert.EqualValues(t, 1, res.Passed)
	for _, name := range jetObservables {
		assert.EqualValues(t, 1, hists.Hist(name).Entries(), name)
	}
}

func TestRunPassMaxEventsZero(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()
	require.NoError(t, hists.Fill("met_et", 100)) // stale contents to be reset

	res, err := sel.RunPass(sliceEvents([]Event{jetEvent(250, 300, 180)}), hists, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 0, res.Passed)
	assert.EqualValues(t, 0, res.Processed)
	for _, name := range hists.Names() {
		assert.EqualValues(t, 0, hists.Hist(name).Entries(), name)
	}
}

func TestRunPassMaxEventsCap(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()
	evts := []Event{jetEvent(250, 300, 180), jetEvent(260, 300, 180), jetEvent(270, 300, 180)}

	res, err := sel.RunPass(sliceEvents(evts), hists, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 2, res.Processed)
	assert.EqualValues(t, 2, res.Passed)
	assert.EqualValues(t, 2, hists.Hist("met_et").Entries())
}

func TestRunPassIdempotentPerPass(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := TriggerHists()
	evts := []Event{
		jetEvent(150),
		jetEvent(250, 300, 180),
		jetEvent(220, 120),
		jetEvent(400, 500, 450),
	}

	first, err := sel.RunPass(sliceEvents(evts), hists, -1)
	require.NoError(t, err)
	entries := make(map[string]int64)
	sums := make(map[string]float64)
	for _, name := range hists.Names() {
		entries[name] = hists.Hist(name).Entries()
		sums[name] = hists.Hist(name).SumW()
	}

	second, err := sel.RunPass(sliceEvents(evts), hists, -1)
	require.NoError(t, err)

	assert.Equal(t, first.Passed, second.Passed)
	assert.Equal(t, first.Processed, second.Processed)
	for _, name := range hists.Names() {
		assert.Equal(t, entries[name], hists.Hist(name).Entries(), name)
		assert.Equal(t, sums[name], hists.Hist(name).SumW(), name)
	}
}

func TestRunPassLeptonCancellation(t *testing.T) {
	evt := Event{
		LepN:   1,
		LepPt:  []float32{gev(100)},
		LepPhi: []float32{math.Pi},
		MET:    gev(100),
		METPhi: 0,
	}
	met, _ := EffectiveMET(&evt)
	assert.InDelta(t, 0, met, 1e-3)

	sel := &Selector{METThreshold: 1}
	hists := TriggerHists()
	res, err := sel.RunPass(sliceEvents([]Event{evt}), hists, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Passed)
}

func TestRunPassExtraCut(t *testing.T) {
	sel := &Selector{
		METThreshold: 200,
		ExtraCuts:    []Cut{MinDijetMass(1)},
	}
	hists := TriggerHists()
	evts := []Event{
		jetEvent(250),           // no jets: rejected by the extra cut
		jetEvent(250, 300, 180), // survives
	}

	res, err := sel.RunPass(sliceEvents(evts), hists, -1)
	require.NoError(t, err)

	assert.EqualValues(t, 1, res.Passed)
	assert.EqualValues(t, 2, res.Processed)
	// Both events passed the MET threshold and reached the jet stage.
	assert.EqualValues(t, 2, hists.Hist("jet_n").Entries())
}

func TestRunPassUnknownObservable(t *testing.T) {
	sel := &Selector{METThreshold: 200}
	hists := NewHistSet()
	hists.Add("met_et", 50, 0, 500)

	_, err := sel.RunPass(sliceEvents([]Event{jetEvent(250, 300, 180)}), hists, -1)
	require.ErrorIs(t, err, ErrUnknownObservable)
}
