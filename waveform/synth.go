package waveform

import (
	"fmt"

	"github.com/ephysio/stimproto/protocol"
	"github.com/ephysio/stimproto/sweep"
)

// Synthesize — sweep expansion
//
// Description:
//
//	Synthesize expands a resolved sweep into concrete per-sample output
//	for one 0-based episode within the run: an analog trace per DAC
//	channel and a digital trace per line. Everything that can fail is
//	checked up front — episode range, strict coverage when requested,
//	every epoch's effective duration on this episode — so no trace
//	escapes a failing call.
//
// Algorithm outline:
//  1. For each channel, fold over its epochs in ascending epoch-number
//     order: place each epoch at the running sample offset with its
//     episode-scaled duration and level, and thread the carried level
//     through the fold (Step and Ramp carry their target level forward
//     for the next Ramp's start; train shapes return to the channel
//     holding level). The fold is recomputed from scratch on every call.
//  2. Time the digital lines with the epoch layout of the DAC channel
//     carrying the digital configuration (falling back to the
//     lowest-numbered channel if that one has no waveform table). Each
//     resolved digital epoch turns its set bits into per-line directives:
//     train bits pulse with the timing epoch's period and width under
//     train-active logic, or hold for the epoch otherwise, and override
//     static bits on the same line; static bits hold for the epoch.
//
// Errors:
//   - ErrNilResolved               — rs is nil.
//   - ErrEpisodeOutOfRange         — episode < 0 or ≥ EpisodesPerRun.
//   - ErrEpochGap                  — non-contiguous epoch numbers under
//     WithStrictCoverage.
//   - protocol.ErrMalformedProtocol — an effective duration goes negative
//     on this episode.
//
// Synthesize is pure: it never mutates rs and allocates only the returned
// waveform, so concurrent calls for different sweeps are safe.
func Synthesize(rs *sweep.Resolved, episode int, opts ...Option) (*SweepWaveform, error) {
	if rs == nil {
		return nil, ErrNilResolved
	}
	if episode < 0 || episode >= rs.EpisodesPerRun {
		return nil, fmt.Errorf("%w: episode %d, run has %d episodes",
			ErrEpisodeOutOfRange, episode, rs.EpisodesPerRun)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	analog := make(map[int]*AnalogTrace, len(rs.Channels))
	layouts := make(map[int][]epochShape, len(rs.Channels))
	for _, ch := range rs.Channels {
		if cfg.strict {
			if err := checkContiguous(ch); err != nil {
				return nil, err
			}
		}
		shapes, span, err := layoutChannel(ch, episode)
		if err != nil {
			return nil, err
		}
		analog[ch.ChannelNumber] = &AnalogTrace{
			ChannelNumber: ch.ChannelNumber,
			Samples:       span,
			shapes:        shapes,
		}
		layouts[ch.ChannelNumber] = shapes
	}

	wf := &SweepWaveform{
		SweepIndex: rs.SweepIndex,
		Episode:    episode,
		Analog:     analog,
	}
	synthesizeDigital(rs, layouts, wf)

	return wf, nil
}

// layoutChannel folds over one channel's epochs in ascending epoch-number
// order, placing each at the running offset with its episode-scaled
// parameters. The carried level is the fold accumulator seeding each
// Ramp's start.
func layoutChannel(ch sweep.Channel, episode int) ([]epochShape, int, error) {
	carried := ch.HoldingLevel
	offset := 0
	shapes := make([]epochShape, 0, len(ch.Epochs))

	for _, ep := range ch.Epochs {
		dur, err := ep.DurationAt(episode)
		if err != nil {
			return nil, 0, err
		}
		lvl := ep.LevelAt(episode)

		shapes = append(shapes, epochShape{
			epochNumber: ep.EpochNumber,
			typ:         ep.Type,
			offset:      offset,
			samples:     dur,
			start:       carried,
			level:       lvl,
			baseline:    ch.HoldingLevel,
			period:      ep.PulsePeriod,
			width:       ep.PulseWidth,
		})
		offset += dur

		switch ep.Type {
		case protocol.Step, protocol.Ramp:
			carried = lvl
		default:
			carried = ch.HoldingLevel // train shapes end back at baseline
		}
	}

	return shapes, offset, nil
}

// checkContiguous rejects holes in a channel's ascending epoch numbering.
func checkContiguous(ch sweep.Channel) error {
	for i := 1; i < len(ch.Epochs); i++ {
		prev, cur := ch.Epochs[i-1].EpochNumber, ch.Epochs[i].EpochNumber
		if cur != prev+1 {
			return fmt.Errorf("%w: DAC %d: epoch %d follows epoch %d",
				ErrEpochGap, ch.ChannelNumber, cur, prev)
		}
	}

	return nil
}
