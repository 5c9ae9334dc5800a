// Package config loads process-wide tunables for the recognizer from a
// TOML file, grounded on the teacher's internal/tqw file-header parsing
// (toml.Unmarshal over a []byte, same library and call shape).
package config

import (
	"github.com/BurntSushi/toml"
)

// Config holds the small set of knobs a host binary might want to set
// without recompiling: whether a fitted Recognizer should trace its
// Predict decisions to the standard logger, and a safety cap on how many
// automaton states a single grammar is allowed to generate before Fit
// gives up rather than building an unbounded collection.
type Config struct {
	// Trace enables log.Printf trace output of every shift, reduce,
	// accept and reject decision Predict makes. Table construction is not
	// traced.
	Trace bool `toml:"trace"`

	// MaxStates caps the number of canonical LR(1) states
	// automaton.BuildCanonicalLR1Limited will construct before it aborts.
	// Zero means unbounded.
	MaxStates int `toml:"max_states"`
}

// Default is the zero-value configuration: tracing off, no state cap.
func Default() Config {
	return Config{Trace: false, MaxStates: 0}
}

// Load parses TOML-encoded configuration data into a Config, starting
// from Default() so an input that omits a field keeps that field's
// default rather than zeroing it out.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
