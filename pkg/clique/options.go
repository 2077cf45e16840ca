package clique

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tabuclique/pkg/errors"
)

// Defaults applied by [Options.WithDefaults] to zero fields.
const (
	DefaultRestarts   = 100
	DefaultWidth      = 2
	DefaultTrials     = 5
	DefaultSwapBudget = 100
	DefaultTabuSize   = 50
)

// Eligibility selects which vertices a Swap1-to-1 may bring into the clique.
type Eligibility int

const (
	// EligibilityLegacy admits non-neighbors with exactly one conflict, but
	// only while the clique vertex being swapped out is itself in the
	// removed tabu list.
	EligibilityLegacy Eligibility = iota
	// EligibilityCandidate admits non-neighbors with exactly one conflict
	// that are not in the removed tabu list.
	EligibilityCandidate
)

// String returns the configuration name of e.
func (e Eligibility) String() string {
	switch e {
	case EligibilityLegacy:
		return "legacy"
	case EligibilityCandidate:
		return "candidate"
	default:
		return fmt.Sprintf("Eligibility(%d)", int(e))
	}
}

// ParseEligibility parses "legacy" or "candidate". The empty string is legacy.
func ParseEligibility(s string) (Eligibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return EligibilityLegacy, nil
	case "candidate":
		return EligibilityCandidate, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown swap eligibility %q (want legacy or candidate)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Eligibility) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Eligibility) UnmarshalText(b []byte) error {
	v, err := ParseEligibility(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Options configures a [Searcher]. Zero values select the package defaults.
type Options struct {
	Restarts    int         `json:"restarts" toml:"restarts"`       // restarts per Search call
	Width       int         `json:"width" toml:"width"`             // constructor randomization width
	Trials      int         `json:"trials" toml:"trials"`           // constructor builds per restart
	SwapBudget  int         `json:"swap_budget" toml:"swap_budget"` // accepted swaps per restart
	TabuSize    int         `json:"tabu_size" toml:"tabu_size"`     // capacity of each tabu list
	Seed        uint64      `json:"seed" toml:"seed"`               // 0 selects DefaultSeed
	Eligibility Eligibility `json:"eligibility" toml:"eligibility"`

	// Debug re-checks every partition invariant after each step and panics
	// on the first violation.
	Debug bool `json:"-" toml:"-"`

	// Progress, if set, is called after every restart.
	Progress func(RestartStats) `json:"-" toml:"-"`
}

// WithDefaults returns a copy of o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Restarts == 0 {
		o.Restarts = DefaultRestarts
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if o.SwapBudget == 0 {
		o.SwapBudget = DefaultSwapBudget
	}
	if o.TabuSize == 0 {
		o.TabuSize = DefaultTabuSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Validate reports the first field that is out of range. Zero fields are
// out of range; call it on the result of WithDefaults.
func (o Options) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"restarts", o.Restarts},
		{"width", o.Width},
		{"trials", o.Trials},
		{"swap budget", o.SwapBudget},
		{"tabu size", o.TabuSize},
	}
	for _, c := range checks {
		if err := errors.ValidatePositive(c.name, c.v); err != nil {
			return err
		}
	}
	if o.Eligibility != EligibilityLegacy && o.Eligibility != EligibilityCandidate {
		return errors.New(errors.ErrCodeInvalidInput, "unknown swap eligibility %d", int(o.Eligibility))
	}
	return nil
}
