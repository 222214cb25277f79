package mettrig

import (
	"errors"
	"fmt"
	"iter"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// miniEvent mirrors the branches of the ATLAS open-data "mini" tree that
// the selection reads.
type miniEvent struct {
	LepN   uint32    `groot:"lep_n"`
	LepPt  []float32 `groot:"lep_pt"`
	LepPhi []float32 `groot:"lep_phi"`
	MET    float32   `groot:"met_et"`
	METPhi float32   `groot:"met_phi"`
	JetN   uint32    `groot:"jet_n"`
	JetPt  []float32 `groot:"jet_pt"`
	JetEta []float32 `groot:"jet_eta"`
	JetPhi []float32 `groot:"jet_phi"`
	JetE   []float32 `groot:"jet_E"`
}

// Source streams events from the mini tree of one ROOT file.
type Source struct {
	f    *riofs.File
	tree rtree.Tree
	err  error
}

var errStopScan = errors.New("mettrig: stop scan")

// OpenMini opens path and locates its "mini" tree.
func OpenMini(path string) (*Source, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	obj, err := f.Get("mini")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("get mini tree from %s: %w", path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%s: object %q is a %T, not a tree", path, "mini", obj)
	}
	return &Source{f: f, tree: tree}, nil
}

// Entries reports the number of rows in the dataset.
func (s *Source) Entries() int64 { return s.tree.Entries() }

// Events returns a fresh one-shot iterator over the tree. The yielded
// Event is reused between steps; callers must not retain it across
// iterations. Check Err once iteration ends.
func (s *Source) Events() iter.Seq[*Event] {
	return func(yield func(*Event) bool) {
		s.err = nil

		var raw miniEvent
		r, err := rtree.NewReader(s.tree, rtree.ReadVarsFromStruct(&raw))
		if err != nil {
			s.err = err
			return
		}
		defer r.Close()

		var evt Event
		err = r.Read(func(ctx rtree.RCtx) error {
			raw.to(&evt)
			if !yield(&evt) {
				return errStopScan
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopScan) {
			s.err = err
		}
	}
}

// Err reports the failure, if any, of the last iteration.
func (s *Source) Err() error { return s.err }

func (s *Source) Close() error { return s.f.Close() }

func (raw *miniEvent) to(evt *Event) {
	evt.LepN = int32(raw.LepN)
	evt.LepPt = raw.LepPt
	evt.LepPhi = raw.LepPhi
	evt.MET = raw.MET
	evt.METPhi = raw.METPhi
	evt.JetN = int32(raw.JetN)
	evt.JetPt = raw.JetPt
	evt.JetEta = raw.JetEta
	evt.JetPhi = raw.JetPhi
	evt.JetE = raw.JetE
}
