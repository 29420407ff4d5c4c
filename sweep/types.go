// Package sweep defines the resolved-sweep model, the variant-selection
// strategy, options, and sentinel errors for the sweep subpackage of
// github.com/ephysio/stimproto.
package sweep

import (
	"errors"

	"github.com/ephysio/stimproto/protocol"
)

// Sentinel errors for sweep resolution.
var (
	// ErrNilDescriptor indicates Resolve was handed a nil protocol model.
	ErrNilDescriptor = errors.New("sweep: nil protocol descriptor")

	// ErrSweepOutOfRange indicates the sweep index is negative or at least
	// RunsPerTrial × EpisodesPerRun.
	ErrSweepOutOfRange = errors.New("sweep: sweep index out of range")
)

// Variant names the parameter set a sweep draws from.
type Variant int

const (
	// Primary is the base parameter set, used on even sweeps.
	Primary Variant = iota
	// Alternate is the second parameter set, used on odd sweeps when the
	// protocol alternates outputs.
	Alternate
)

// String returns "primary" or "alternate".
func (v Variant) String() string {
	if v == Alternate {
		return "alternate"
	}

	return "primary"
}

// VariantSelector chooses the parameter-set variant for a sweep index.
// The format documents only two sets selected by parity (ParitySelector);
// the seam exists so an N-way scheme could be injected without changing
// the resolver.
type VariantSelector interface {
	SelectVariant(sweepIndex int) Variant
}

// ParitySelector selects Primary on even sweep indices and Alternate on
// odd ones. It is the default and the only behavior the source format
// specifies.
type ParitySelector struct{}

// SelectVariant implements VariantSelector by sweep-index parity.
func (ParitySelector) SelectVariant(sweepIndex int) Variant {
	if sweepIndex%2 == 1 {
		return Alternate
	}

	return Primary
}

// Option configures Resolve.
type Option func(*config)

// WithSelector injects a custom variant-selection strategy; the default
// is ParitySelector.
func WithSelector(sel VariantSelector) Option {
	return func(c *config) {
		if sel != nil {
			c.selector = sel
		}
	}
}

type config struct {
	selector VariantSelector
}

// Channel is one DAC channel's waveform set on the resolved sweep, in
// ascending epoch-number order.
type Channel struct {
	ChannelNumber int
	HoldingLevel  float64
	Epochs        []protocol.EpochWaveform
}

// Digital is one epoch's digital-output selection on the resolved sweep.
type Digital struct {
	EpochNumber int
	Register    protocol.Register
	Value       int
	TrainValue  int
}

// Resolved holds, for every active epoch, the parameters chosen for one
// sweep — everything the waveform synthesizer needs, detached from the
// descriptor. It is allocated per call and never shared.
type Resolved struct {
	// SweepIndex is the 0-based index this projection was resolved for;
	// Variant records which parameter set was selected.
	SweepIndex int
	Variant    Variant

	// EpisodesPerRun, TrainActiveLogic and DigitalDACChannel are carried
	// over from the descriptor for the synthesizer.
	EpisodesPerRun    int
	TrainActiveLogic  bool
	DigitalDACChannel int

	// Channels lists the DAC channels in ascending channel-number order;
	// Digital lists the digital selections in ascending epoch-number order.
	Channels []Channel
	Digital  []Digital
}

// Channel returns the resolved waveform set of DAC channel n, if present.
func (r *Resolved) Channel(n int) (Channel, bool) {
	for _, ch := range r.Channels {
		if ch.ChannelNumber == n {
			return ch, true
		}
	}

	return Channel{}, false
}

// Episode returns the 0-based episode number of this sweep within its
// run, SweepIndex mod EpisodesPerRun — the scaling factor Synthesize
// expects.
func (r *Resolved) Episode() int {
	return r.SweepIndex % r.EpisodesPerRun
}
