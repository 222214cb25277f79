package mettrig

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonPositive reports a scale factor or denominator that must be
// strictly positive but is not.
var ErrNonPositive = errors.New("mettrig: non-positive denominator")

// SignalYield extrapolates a signal pass to the full dataset and scales
// it by the process cross-section in fb.
func SignalYield(res PassResult, xsecFB float64) (float64, error) {
	if res.Processed <= 0 {
		return 0, fmt.Errorf("signal yield: %w: processed=%d", ErrNonPositive, res.Processed)
	}
	return float64(res.Passed) * float64(res.Total) / float64(res.Processed) * xsecFB, nil
}

// BackgroundYield extrapolates a background pass to the full dataset and
// applies the dataset scale factor compensating for analysing only a
// fraction of the recorded sample.
func BackgroundYield(res PassResult, scale float64) (float64, error) {
	if res.Processed <= 0 {
		return 0, fmt.Errorf("background yield: %w: processed=%d", ErrNonPositive, res.Processed)
	}
	return float64(res.Passed) * float64(res.Total) / float64(res.Processed) * scale, nil
}

// Significance is the luminosity-scaled s/sqrt(b) for an integrated
// luminosity lumi in fb^-1.
func Significance(signalYield, backgroundYield, lumi float64) (float64, error) {
	if backgroundYield*lumi <= 0 {
		return 0, fmt.Errorf("significance: %w: background yield %g at luminosity %g",
			ErrNonPositive, backgroundYield, lumi)
	}
	return signalYield * lumi / math.Sqrt(backgroundYield*lumi), nil
}

// RateReduction is the background yield relative to the reference
// trigger's event count.
func RateReduction(backgroundYield, reference float64) (float64, error) {
	if reference <= 0 {
		return 0, fmt.Errorf("rate reduction: %w: reference=%g", ErrNonPositive, reference)
	}
	return backgroundYield / reference, nil
}

// Report holds the figures of merit of one trigger selection. It is
// computed once from a signal and a background pass and not mutated
// afterwards.
type Report struct {
	SignalYield     float64
	BackgroundYield float64
	Significance    float64
	RateReduction   float64
	Affordable      bool
}

// Summarize combines a signal and a background pass into a Report using
// the scale factors of cfg. The trigger is affordable iff the rate
// reduction does not exceed cfg.AffordableRateRatio.
func Summarize(sig, bkg PassResult, cfg Config) (Report, error) {
	s, err := SignalYield(sig, cfg.SignalCrossSectionFB)
	if err != nil {
		return Report{}, err
	}
	b, err := BackgroundYield(bkg, cfg.BackgroundScale)
	if err != nil {
		return Report{}, err
	}
	z, err := Significance(s, b, cfg.Luminosity)
	if err != nil {
		return Report{}, err
	}
	r, err := RateReduction(b, cfg.ReferenceTriggerCount)
	if err != nil {
		return Report{}, err
	}
	return Report{
		SignalYield:     s,
		BackgroundYield: b,
		Significance:    z,
		RateReduction:   r,
		Affordable:      r <= cfg.AffordableRateRatio,
	}, nil
}
