package waveform

import (
	"github.com/ephysio/stimproto/protocol"
	"github.com/ephysio/stimproto/sweep"
)

// synthesizeDigital fills the waveform's eight line traces from the
// resolved digital selections, timed by the digital DAC channel's epoch
// layout. A digital epoch with no timing epoch contributes nothing, and a
// code of 0 leaves its lines low.
func synthesizeDigital(rs *sweep.Resolved, layouts map[int][]epochShape, wf *SweepWaveform) {
	timing, span := digitalTiming(rs, layouts)
	for k := range wf.Digital {
		wf.Digital[k] = &DigitalTrace{Line: k, Samples: span}
	}

	for _, d := range rs.Digital {
		sh, ok := timing[d.EpochNumber]
		if !ok {
			continue
		}

		static := protocol.LineStates(d.Register, d.Value)
		train := protocol.LineStates(d.Register, d.TrainValue)

		for line := 0; line < protocol.DigitalLines; line++ {
			var dir lineDirective
			switch {
			case train[line] && rs.TrainActiveLogic:
				// periodic pulses sharing the timing epoch's train clock
				dir = lineDirective{mode: modeTrain, offset: sh.offset, samples: sh.samples, period: sh.period, width: sh.width}
			case train[line]:
				// transition logic: one low-to-high at epoch start, held
				dir = lineDirective{mode: modeHold, offset: sh.offset, samples: sh.samples}
			case static[line]:
				dir = lineDirective{mode: modeHold, offset: sh.offset, samples: sh.samples}
			default:
				continue
			}
			wf.Digital[line].directives = append(wf.Digital[line].directives, dir)
		}
	}
}

// digitalTiming keys the timing channel's epoch layout by epoch number
// and returns the digital time base span. The timing channel is the DAC
// channel carrying the digital configuration when it has a waveform
// table, else the lowest-numbered channel; with no channels at all the
// digital span is empty.
func digitalTiming(rs *sweep.Resolved, layouts map[int][]epochShape) (map[int]epochShape, int) {
	shapes, ok := layouts[rs.DigitalDACChannel]
	if !ok && len(rs.Channels) > 0 {
		shapes = layouts[rs.Channels[0].ChannelNumber]
	}

	timing := make(map[int]epochShape, len(shapes))
	span := 0
	for _, sh := range shapes {
		timing[sh.epochNumber] = sh
		span = sh.offset + sh.samples
	}

	return timing, span
}
