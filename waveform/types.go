// Package waveform defines the synthesized-output model, options, and
// sentinel errors for the waveform subpackage of
// github.com/ephysio/stimproto.
package waveform

import (
	"errors"
	"iter"

	"github.com/ephysio/stimproto/protocol"
)

// Sentinel errors for waveform synthesis.
var (
	// ErrNilResolved indicates Synthesize was handed a nil resolved sweep.
	ErrNilResolved = errors.New("waveform: nil resolved sweep")

	// ErrEpisodeOutOfRange indicates the episode number is negative or at
	// least EpisodesPerRun.
	ErrEpisodeOutOfRange = errors.New("waveform: episode out of range")

	// ErrEpochGap indicates a hole in a channel's epoch numbering; it is
	// raised only under WithStrictCoverage — by default, missing epoch
	// numbers are skipped.
	ErrEpochGap = errors.New("waveform: gap in epoch numbering")
)

// Option configures Synthesize.
type Option func(*config)

// WithStrictCoverage makes Synthesize fail with ErrEpochGap when any
// channel's active epoch numbers are non-contiguous. The format allows
// gaps, so this is opt-in for callers that require unbroken coverage.
func WithStrictCoverage() Option {
	return func(c *config) { c.strict = true }
}

type config struct {
	strict bool
}

// Segment is one analog stretch of Samples samples starting at Offset,
// interpolating linearly from StartLevel to EndLevel. Flat stretches
// carry StartLevel == EndLevel.
type Segment struct {
	Offset     int
	Samples    int
	StartLevel float64
	EndLevel   float64
}

// At returns the output level of sample i (0-based) within the segment:
// flat segments return the level, linear segments step toward EndLevel so
// that the final sample lands exactly on it.
func (s Segment) At(i int) float64 {
	if s.StartLevel == s.EndLevel || s.Samples == 0 {
		return s.EndLevel
	}

	return s.StartLevel + (s.EndLevel-s.StartLevel)*float64(i+1)/float64(s.Samples)
}

// Transition is one digital line change: the line assumes State High at
// sample Offset and keeps it until the next transition (lines start low).
type Transition struct {
	Offset int
	High   bool
}

// AnalogTrace is one DAC channel's output over the sweep: Samples total
// samples, produced as an ordered segment sequence. The trace stores only
// the per-epoch layout; segment expansion happens lazily in Segments and
// is regenerated deterministically on every range.
type AnalogTrace struct {
	// ChannelNumber is the DAC channel this trace drives.
	ChannelNumber int

	// Samples is the trace span — the sum of the channel's effective
	// epoch durations on this episode.
	Samples int

	shapes []epochShape
}

// DigitalTrace is one digital output line over the sweep. Transitions are
// expanded lazily from the per-epoch directives; a line with no activity
// has no transitions and stays low for the whole span.
type DigitalTrace struct {
	// Line is the absolute digital output line (0–7).
	Line int

	// Samples is the digital time base — the span of the DAC channel
	// carrying the digital configuration.
	Samples int

	directives []lineDirective
}

// SweepWaveform is the synthesized output of one sweep and episode:
// analog traces keyed by DAC channel number and one digital trace per
// line. It is allocated per call and independent of the protocol model.
type SweepWaveform struct {
	SweepIndex int
	Episode    int

	// Analog holds one trace per DAC channel with waveform output.
	Analog map[int]*AnalogTrace

	// Digital holds all eight line traces, quiet lines included.
	Digital [protocol.DigitalLines]*DigitalTrace
}

// Line returns the trace of digital line k (0–7).
func (w *SweepWaveform) Line(k int) *DigitalTrace {
	return w.Digital[k]
}

// epochShape is one epoch's resolved layout on a channel: effective
// placement, levels and train timing for the requested episode. The
// carried level (start) is the fold accumulator value when the epoch
// begins; baseline is the channel holding level.
type epochShape struct {
	epochNumber int
	typ         protocol.EpochType

	offset  int
	samples int

	start    float64
	level    float64
	baseline float64

	period int
	width  int
}

// directiveMode tells a line directive apart: a held high state or a
// pulse train.
type directiveMode int

const (
	modeHold directiveMode = iota
	modeTrain
)

// lineDirective drives one line high for one epoch, either held for the
// whole epoch or pulsed with the epoch's train timing.
type lineDirective struct {
	mode    directiveMode
	offset  int
	samples int
	period  int
	width   int
}

// Segments returns the trace's ordered analog segments as a finite,
// restartable sequence. Step and Ramp epochs yield one segment; trains
// yield one segment per pulse and gap; Triangle yields two linear
// segments per period; Cosine yields one single-sample segment per
// sample. Consecutive segments tile the span with no holes.
func (t *AnalogTrace) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, sh := range t.shapes {
			if !sh.emit(yield) {
				return
			}
		}
	}
}

// Render materializes the trace into one level per sample. Intended for
// tests and small sweeps; large consumers should range Segments instead.
func (t *AnalogTrace) Render() []float64 {
	out := make([]float64, t.Samples)
	for seg := range t.Segments() {
		for i := 0; i < seg.Samples; i++ {
			out[seg.Offset+i] = seg.At(i)
		}
	}

	return out
}

// Transitions returns the line's ordered state changes as a finite,
// restartable sequence. The line starts low at sample 0; adjacent high
// stretches are coalesced, and a change that would land exactly on the
// end of the span is dropped as no samples remain to observe it.
func (t *DigitalTrace) Transitions() iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		// pendingFall defers each falling edge one step so that a rise at
		// the same offset merges into one continuous high stretch.
		pendingFall := -1

		rise := func(off int) bool {
			if pendingFall == off {
				pendingFall = -1

				return true
			}
			if pendingFall >= 0 {
				if !yield(Transition{Offset: pendingFall, High: false}) {
					return false
				}
				pendingFall = -1
			}

			return yield(Transition{Offset: off, High: true})
		}

		for _, d := range t.directives {
			for _, p := range d.pulses() {
				if !rise(p[0]) {
					return
				}
				pendingFall = p[1]
			}
		}

		if pendingFall >= 0 && pendingFall < t.Samples {
			yield(Transition{Offset: pendingFall, High: false})
		}
	}
}

// Render materializes the line into one state per sample.
func (t *DigitalTrace) Render() []bool {
	out := make([]bool, t.Samples)
	state := false
	at := 0
	fill := func(upTo int) {
		for ; at < upTo && at < t.Samples; at++ {
			out[at] = state
		}
	}
	for tr := range t.Transitions() {
		fill(tr.Offset)
		state = tr.High
	}
	fill(t.Samples)

	return out
}

// pulses lists the directive's high stretches as [start, end) pairs.
// A hold directive is a single stretch; a train directive is one stretch
// per pulse, truncated at the epoch end. Degenerate timing (zero width or
// period) produces nothing.
func (d lineDirective) pulses() [][2]int {
	if d.samples <= 0 {
		return nil
	}
	if d.mode == modeHold {
		return [][2]int{{d.offset, d.offset + d.samples}}
	}
	if d.period <= 0 || d.width <= 0 {
		return nil
	}

	var out [][2]int
	for s := 0; s < d.samples; s += d.period {
		// width is clamped to the period: timing may be borrowed from a
		// non-pulsed epoch whose width was never validated against it
		w := min(d.width, d.period, d.samples-s)
		out = append(out, [2]int{d.offset + s, d.offset + s + w})
	}

	return out
}
