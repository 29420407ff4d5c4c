package sweep

import (
	"fmt"

	"github.com/ephysio/stimproto/protocol"
)

// Resolve — per-sweep parameter-set selection
//
// Description:
//
//	Resolve projects the immutable descriptor onto one 0-based sweep
//	index. The injected VariantSelector (default: parity) names the
//	variant; the descriptor's alternation flags gate whether the variant
//	actually switches anything:
//	  • analog: a channel's alternate epoch set is selected only when the
//	    protocol alternates analog outputs AND the channel defines one;
//	    otherwise the primary set is used on every sweep — the format
//	    defines a single waveform set when the flag is off.
//	  • digital: the Alternate* fields are selected only when the
//	    protocol alternates digital outputs.
//
// Errors:
//   - ErrNilDescriptor   — d is nil.
//   - ErrSweepOutOfRange — sweepIndex < 0 or ≥ d.SweepCount().
//
// Resolve is a pure projection and safe to call concurrently.
func Resolve(d *protocol.Descriptor, sweepIndex int, opts ...Option) (*Resolved, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	if sweepIndex < 0 || sweepIndex >= d.SweepCount() {
		return nil, fmt.Errorf("%w: index %d, protocol has %d sweeps",
			ErrSweepOutOfRange, sweepIndex, d.SweepCount())
	}

	cfg := config{selector: ParitySelector{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	variant := cfg.selector.SelectVariant(sweepIndex)

	rs := &Resolved{
		SweepIndex:        sweepIndex,
		Variant:           variant,
		EpisodesPerRun:    d.EpisodesPerRun,
		TrainActiveLogic:  d.TrainActiveLogic,
		DigitalDACChannel: d.DigitalDACChannel,
	}

	for _, num := range d.ChannelNumbers() {
		ch, _ := d.Channel(num)
		epochs := ch.Epochs()
		if variant == Alternate && d.AlternateAnalog && ch.HasAlternate() {
			epochs = ch.AlternateEpochs()
		}
		rs.Channels = append(rs.Channels, Channel{
			ChannelNumber: num,
			HoldingLevel:  ch.HoldingLevel,
			Epochs:        epochs,
		})
	}

	for _, di := range d.DigitalInfos() {
		sel := Digital{
			EpochNumber: di.EpochNumber,
			Register:    di.Register,
			Value:       di.DigitalValue,
			TrainValue:  di.DigitalTrainValue,
		}
		if variant == Alternate && d.AlternateDigital {
			sel.Register = di.AlternateRegister
			sel.Value = di.AlternateDigitalValue
			sel.TrainValue = di.AlternateDigitalTrainValue
		}
		rs.Digital = append(rs.Digital, sel)
	}

	return rs, nil
}
