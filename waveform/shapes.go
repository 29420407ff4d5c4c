package waveform

import (
	"math"

	"github.com/ephysio/stimproto/protocol"
)

// emit expands one epoch into its ordered segments, yielding until the
// epoch is exhausted or the consumer stops (returns false). Segments tile
// [offset, offset+samples) with no holes.
func (sh epochShape) emit(yield func(Segment) bool) bool {
	if sh.samples == 0 {
		return true
	}

	switch sh.typ {
	case protocol.Step:
		return yield(Segment{Offset: sh.offset, Samples: sh.samples, StartLevel: sh.level, EndLevel: sh.level})
	case protocol.Ramp:
		return yield(Segment{Offset: sh.offset, Samples: sh.samples, StartLevel: sh.start, EndLevel: sh.level})
	case protocol.PulseTrain:
		return sh.emitTrain(yield, false)
	case protocol.BiphasicTrain:
		return sh.emitTrain(yield, true)
	case protocol.Triangle:
		return sh.emitTriangle(yield)
	case protocol.Cosine:
		return sh.emitCosine(yield)
	default:
		return true
	}
}

// emitTrain yields one flat pulse segment and one flat baseline gap per
// period, truncated at the epoch end. Biphasic trains mirror every odd
// pulse about the baseline.
func (sh epochShape) emitTrain(yield func(Segment) bool, biphasic bool) bool {
	amp := sh.level - sh.baseline
	for k, s := 0, 0; s < sh.samples; k, s = k+1, s+sh.period {
		lvl := sh.baseline + amp
		if biphasic && k%2 == 1 {
			lvl = sh.baseline - amp
		}

		w := min(sh.width, sh.samples-s)
		if w > 0 {
			if !yield(Segment{Offset: sh.offset + s, Samples: w, StartLevel: lvl, EndLevel: lvl}) {
				return false
			}
		}

		gap := min(s+sh.period, sh.samples) - (s + w)
		if gap > 0 {
			if !yield(Segment{Offset: sh.offset + s + w, Samples: gap, StartLevel: sh.baseline, EndLevel: sh.baseline}) {
				return false
			}
		}
	}

	return true
}

// emitTriangle yields two linear segments per period: baseline up to the
// peak over the first half, back down over the second. Truncation keeps
// the slope, so a cut segment ends mid-flank rather than snapping to the
// peak or baseline.
func (sh epochShape) emitTriangle(yield func(Segment) bool) bool {
	up := (sh.period + 1) / 2
	down := sh.period - up
	amp := sh.level - sh.baseline

	for s := 0; s < sh.samples; s += sh.period {
		u := min(up, sh.samples-s)
		if u > 0 {
			end := sh.baseline + amp*float64(u)/float64(up)
			if !yield(Segment{Offset: sh.offset + s, Samples: u, StartLevel: sh.baseline, EndLevel: end}) {
				return false
			}
		}
		if u < up || down == 0 {
			continue
		}

		d := min(down, sh.samples-s-up)
		if d > 0 {
			end := sh.level - amp*float64(d)/float64(down)
			if !yield(Segment{Offset: sh.offset + s + up, Samples: d, StartLevel: sh.level, EndLevel: end}) {
				return false
			}
		}
	}

	return true
}

// emitCosine yields one single-sample segment per sample: baseline plus
// the amplitude-scaled cosine of the position within the period, starting
// at the peak.
func (sh epochShape) emitCosine(yield func(Segment) bool) bool {
	amp := sh.level - sh.baseline
	for i := 0; i < sh.samples; i++ {
		v := sh.baseline + amp*math.Cos(2*math.Pi*float64(i)/float64(sh.period))
		if !yield(Segment{Offset: sh.offset + i, Samples: 1, StartLevel: v, EndLevel: v}) {
			return false
		}
	}

	return true
}
