package mettrig

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config carries the analysis constants of a trigger study.
type Config struct {
	// METThreshold is the primary cut on effective MET, in GeV.
	METThreshold float64 `koanf:"met_threshold"`

	// MaxEvents caps the events processed per pass; negative means the
	// full dataset.
	MaxEvents int64 `koanf:"max_events"`

	// AffordableRateRatio is the largest rate reduction the trigger
	// budget allows.
	AffordableRateRatio float64 `koanf:"affordable_rate_ratio"`

	// Luminosity is the target integrated luminosity in fb^-1.
	Luminosity float64 `koanf:"integrated_luminosity_factor"`

	// BackgroundScale compensates for analysing only a fraction of the
	// recorded background sample.
	BackgroundScale float64 `koanf:"background_dataset_scale_factor"`

	// ReferenceTriggerCount is the event count of the baseline trigger
	// the rate reduction is measured against.
	ReferenceTriggerCount float64 `koanf:"reference_trigger_event_count"`

	// SignalCrossSectionFB is the signal process cross-section in fb.
	// Zero means it must be supplied by the caller.
	SignalCrossSectionFB float64 `koanf:"signal_cross_section_fb"`
}

func DefaultConfig() Config {
	return Config{
		METThreshold:          200,
		MaxEvents:             -1,
		AffordableRateRatio:   0.14,
		Luminosity:            30,
		BackgroundScale:       18,
		ReferenceTriggerCount: 51336,
	}
}

// LoadConfig layers an optional YAML file (pointed at by METTRIG_CONFIG)
// and METTRIG_* environment variables over the defaults. Env keys map to
// koanf tags: METTRIG_MET_THRESHOLD -> met_threshold.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if path := os.Getenv("METTRIG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	envProvider := env.Provider("METTRIG_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "METTRIG_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.METThreshold < 0:
		return fmt.Errorf("config: met_threshold must not be negative, got %g", c.METThreshold)
	case c.AffordableRateRatio <= 0:
		return fmt.Errorf("config: affordable_rate_ratio must be positive, got %g", c.AffordableRateRatio)
	case c.Luminosity <= 0:
		return fmt.Errorf("config: integrated_luminosity_factor must be positive, got %g", c.Luminosity)
	case c.BackgroundScale <= 0:
		return fmt.Errorf("config: background_dataset_scale_factor must be positive, got %g", c.BackgroundScale)
	case c.ReferenceTriggerCount <= 0:
		return fmt.Errorf("config: reference_trigger_event_count must be positive, got %g", c.ReferenceTriggerCount)
	case c.SignalCrossSectionFB < 0:
		return fmt.Errorf("config: signal_cross_section_fb must not be negative, got %g", c.SignalCrossSectionFB)
	}
	return nil
}
