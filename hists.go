package mettrig

import (
	"errors"
	"fmt"
	"sort"

	"go-hep.org/x/hep/hbook"
)

// ErrUnknownObservable reports a fill of an observable the set was never
// configured with.
var ErrUnknownObservable = errors.New("mettrig: unknown observable")

type binning struct {
	n      int
	lo, hi float64
}

// HistSet maps observable names to 1D histograms. Binnings are fixed when
// an observable is declared; filling an undeclared observable is an
// error, not a silent no-op.
type HistSet struct {
	bins  map[string]binning
	hists map[string]*hbook.H1D
}

func NewHistSet() *HistSet {
	return &HistSet{
		bins:  make(map[string]binning),
		hists: make(map[string]*hbook.H1D),
	}
}

// TriggerHists returns the standard observable set filled by Selector.
func TriggerHists() *HistSet {
	hs := NewHistSet()
	hs.Add("met_et", 50, 0, 500)
	hs.Add("cutflow", 2, 0, 2)
	hs.Add("jet_n", 10, 0, 10)
	hs.Add("jet0_pt", 50, 0, 500)
	hs.Add("jet0_eta", 50, -5, 5)
	hs.Add("jet1_pt", 50, 0, 500)
	hs.Add("jet1_eta", 50, -5, 5)
	return hs
}

// Add declares an observable. Re-adding a name replaces its binning and
// drops any accumulated contents.
func (hs *HistSet) Add(name string, n int, lo, hi float64) {
	hs.bins[name] = binning{n: n, lo: lo, hi: hi}
	hs.hists[name] = hbook.NewH1D(n, lo, hi)
}

// Fill records x with unit weight into the named observable.
func (hs *HistSet) Fill(name string, x float64) error {
	h, ok := hs.hists[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObservable, name)
	}
	h.Fill(x, 1)
	return nil
}

// Hist returns the named histogram, or nil for an undeclared observable.
func (hs *HistSet) Hist(name string) *hbook.H1D { return hs.hists[name] }

// Names lists the declared observables in lexical order.
func (hs *HistSet) Names() []string {
	names := make([]string, 0, len(hs.bins))
	for name := range hs.bins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset discards all accumulated contents, keeping the declared binnings.
func (hs *HistSet) Reset() {
	for name, b := range hs.bins {
		hs.hists[name] = hbook.NewH1D(b.n, b.lo, b.hi)
	}
}
