// Package protocol defines the immutable stimulation-protocol model,
// options, and sentinel errors for the protocol subpackage of
// github.com/ephysio/stimproto.
package protocol

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for protocol ingest and per-episode scaling.
var (
	// ErrMalformedProtocol indicates a structural or range violation in the
	// raw annotations (bad epoch number, orphaned DAC epoch, zero run or
	// episode count, out-of-range digital code, inconsistent train timing).
	ErrMalformedProtocol = errors.New("protocol: malformed protocol")

	// ErrUnknownEpochType indicates an epoch type code outside the six
	// recognized values. It always wraps ErrMalformedProtocol at the
	// failure site, so either sentinel matches.
	ErrUnknownEpochType = errors.New("protocol: unrecognized epoch type code")
)

// EpochType is the closed tag set of analog epoch shapes.
type EpochType int

const (
	// Step holds one flat level for the epoch duration.
	Step EpochType = iota + 1
	// Ramp interpolates linearly from the previous epoch's ending level
	// (or the channel holding level) to the epoch level.
	Ramp
	// PulseTrain repeats unit pulses of PulseWidth samples every
	// PulsePeriod samples, at the epoch level, baseline otherwise.
	PulseTrain
	// BiphasicTrain is a PulseTrain whose pulses alternate polarity
	// (+level, −level about baseline) from one period to the next.
	BiphasicTrain
	// Triangle repeats a rise-and-fall ramp peaking at the epoch level,
	// with period PulsePeriod.
	Triangle
	// Cosine is a sinusoid of period PulsePeriod and amplitude equal to
	// the epoch level excursion about baseline, starting at its peak.
	Cosine
)

// String returns the Clampex-style name of the epoch type.
func (t EpochType) String() string {
	switch t {
	case Step:
		return "Step"
	case Ramp:
		return "Ramp"
	case PulseTrain:
		return "PulseTrain"
	case BiphasicTrain:
		return "BiphasicTrain"
	case Triangle:
		return "Triangle"
	case Cosine:
		return "Cosine"
	default:
		return fmt.Sprintf("EpochType(%d)", int(t))
	}
}

// Periodic reports whether the shape repeats with PulsePeriod and thus
// requires a positive period.
func (t EpochType) Periodic() bool {
	switch t {
	case PulseTrain, BiphasicTrain, Triangle, Cosine:
		return true
	default:
		return false
	}
}

// pulsed reports whether the shape additionally uses PulseWidth.
func (t EpochType) pulsed() bool {
	return t == PulseTrain || t == BiphasicTrain
}

// Register selects one of the two 4-bit groups of digital output lines
// addressable per sweep.
type Register int

const (
	// RegisterLow is the "#3-0" group: bits 0–3 map to lines 0–3.
	RegisterLow Register = iota
	// RegisterHigh is the "#7-4" group: bits 0–3 map to lines 4–7.
	RegisterHigh
)

// String returns the Clampex panel label of the register ("#3-0" or "#7-4").
func (r Register) String() string {
	if r == RegisterHigh {
		return registerHighLabel
	}

	return registerLowLabel
}

// Line maps bit position k (0–3) of a 4-bit digital code to the absolute
// digital output line driven by this register.
func (r Register) Line(k int) int {
	if r == RegisterHigh {
		return k + 4
	}

	return k
}

// EpochWaveform is one epoch's analog definition on one DAC channel.
// Durations, periods and widths are expressed in samples.
type EpochWaveform struct {
	// EpochNumber identifies the epoch within its channel (0–9).
	EpochNumber int

	// DACNumber repeats the owning channel number; ingest validates the
	// redundancy against the channel key.
	DACNumber int

	// Type selects the segment shape synthesized for this epoch.
	Type EpochType

	// LevelInit is the epoch level on episode 0; LevelIncrement is added
	// once per episode within the run.
	LevelInit      float64
	LevelIncrement float64

	// DurationInit is the epoch duration on episode 0, in samples;
	// DurationIncrement is added once per episode and may be negative.
	DurationInit      int
	DurationIncrement int

	// PulsePeriod and PulseWidth time the repeating unit of train-shaped
	// epochs; both are ignored for Step and Ramp.
	PulsePeriod int
	PulseWidth  int
}

// LevelAt returns the effective level on 0-based episode e within the run:
// LevelInit + e×LevelIncrement.
func (w EpochWaveform) LevelAt(e int) float64 {
	return w.LevelInit + float64(e)*w.LevelIncrement
}

// DurationAt returns the effective duration in samples on 0-based episode
// e within the run: DurationInit + e×DurationIncrement. A negative result
// fails wrapping ErrMalformedProtocol — duration must never go negative.
func (w EpochWaveform) DurationAt(e int) (int, error) {
	d := w.DurationInit + e*w.DurationIncrement
	if d < 0 {
		return 0, fmt.Errorf("%w: epoch %d on DAC %d: duration %d samples on episode %d",
			ErrMalformedProtocol, w.EpochNumber, w.DACNumber, d, e)
	}

	return d, nil
}

// EpochDigitalInfo is the digital-output definition for one epoch,
// independent of any DAC channel. Primary fields drive even sweeps;
// Alternate* fields drive odd sweeps when the protocol alternates
// digital outputs.
type EpochDigitalInfo struct {
	// EpochNumber keys this record in the protocol's active epoch set (0–9).
	EpochNumber int

	// Register and AlternateRegister select the 4-bit line group.
	Register          Register
	AlternateRegister Register

	// DigitalValue and AlternateDigitalValue are static-level 4-bit codes
	// (0–15): set bits hold their line high for the whole epoch.
	DigitalValue          int
	AlternateDigitalValue int

	// DigitalTrainValue and AlternateDigitalTrainValue are 4-bit
	// train/transition codes (0–15); their meaning follows the
	// protocol-level TrainActiveLogic flag.
	DigitalTrainValue          int
	AlternateDigitalTrainValue int
}

// DACChannel is one analog output channel with waveform output enabled.
// It is immutable once built by Ingest.
type DACChannel struct {
	// ChannelNumber is the unique DAC number of this channel.
	ChannelNumber int

	// HoldingLevel is the command level held outside epochs; it seeds the
	// ramp-continuity fold during synthesis and is the baseline of
	// train-shaped epochs.
	HoldingLevel float64

	epochs    map[int]EpochWaveform
	altEpochs map[int]EpochWaveform // nil unless a second waveform set exists
}

// EpochNumbers returns the active epoch numbers of the primary waveform
// set in ascending order. Gaps are valid: epochs are concatenated in
// ascending number order regardless of contiguity.
func (c *DACChannel) EpochNumbers() []int {
	return sortedKeys(c.epochs)
}

// Epoch returns the primary waveform of epoch n, if active on this channel.
func (c *DACChannel) Epoch(n int) (EpochWaveform, bool) {
	w, ok := c.epochs[n]

	return w, ok
}

// Epochs returns the primary waveform set in ascending epoch-number order.
func (c *DACChannel) Epochs() []EpochWaveform {
	return sortedEpochs(c.epochs)
}

// HasAlternate reports whether this channel defines a second, distinct
// waveform set for alternate (odd) sweeps.
func (c *DACChannel) HasAlternate() bool {
	return c.altEpochs != nil
}

// AlternateEpochs returns the alternate waveform set in ascending
// epoch-number order, or nil when the channel defines none.
func (c *DACChannel) AlternateEpochs() []EpochWaveform {
	if c.altEpochs == nil {
		return nil
	}

	return sortedEpochs(c.altEpochs)
}

// Descriptor is the validated, immutable per-recording protocol model.
// It exclusively owns its DACChannel and EpochDigitalInfo records; none
// of them is mutated after Ingest returns, so concurrent resolve and
// synthesize calls need no locking.
type Descriptor struct {
	// RunsPerTrial and EpisodesPerRun bound the sweep index space; both
	// are at least 1.
	RunsPerTrial   int
	EpisodesPerRun int

	// AlternateAnalog and AlternateDigital enable odd/even sweep
	// alternation of the analog and digital parameter sets.
	AlternateAnalog  bool
	AlternateDigital bool

	// DigitalDACChannel is the DAC channel tab carrying the digital-output
	// configuration; its epoch table times the digital lines.
	DigitalDACChannel int

	// TrainActiveLogic selects the decoding rule for train-value codes:
	// true decodes set bits as pulse trains, false as held transitions.
	TrainActiveLogic bool

	dacs    map[int]*DACChannel
	digital map[int]EpochDigitalInfo
}

// SweepCount returns the total number of addressable sweep indices,
// RunsPerTrial × EpisodesPerRun.
func (d *Descriptor) SweepCount() int {
	return d.RunsPerTrial * d.EpisodesPerRun
}

// ChannelNumbers returns the DAC channel numbers in ascending order.
func (d *Descriptor) ChannelNumbers() []int {
	nums := make([]int, 0, len(d.dacs))
	for n := range d.dacs {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	return nums
}

// Channel returns the DAC channel record for channel n, if present.
func (d *Descriptor) Channel(n int) (*DACChannel, bool) {
	c, ok := d.dacs[n]

	return c, ok
}

// EpochNumbers returns the global active epoch numbers — the keys of the
// digital-info set — in ascending order.
func (d *Descriptor) EpochNumbers() []int {
	return sortedKeys(d.digital)
}

// DigitalInfo returns the digital-output record of epoch n, if active.
func (d *Descriptor) DigitalInfo(n int) (EpochDigitalInfo, bool) {
	di, ok := d.digital[n]

	return di, ok
}

// DigitalInfos returns all digital-output records in ascending
// epoch-number order.
func (d *Descriptor) DigitalInfos() []EpochDigitalInfo {
	infos := make([]EpochDigitalInfo, 0, len(d.digital))
	for _, n := range d.EpochNumbers() {
		infos = append(infos, d.digital[n])
	}

	return infos
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}

// sortedEpochs flattens an epoch map in ascending epoch-number order.
func sortedEpochs(m map[int]EpochWaveform) []EpochWaveform {
	out := make([]EpochWaveform, 0, len(m))
	for _, n := range sortedKeys(m) {
		out = append(out, m[n])
	}

	return out
}
