// Package waveform expands a resolved sweep into sample-accurate output:
// per DAC channel an ordered sequence of analog segments, per digital
// line (0–7) an ordered sequence of state transitions.
//
// 🚀 How synthesis works:
//
//	Epochs are concatenated strictly in ascending epoch-number order;
//	missing numbers are simply skipped (non-contiguous active epochs are
//	valid in the format). A fold threads the carried output level through
//	the concatenation so each Ramp starts where the previous epoch ended
//	— seeded by the channel holding level — and recomputes it from
//	scratch on every call: there is no ambient state.
//
//	Per-episode scaling happens here: on 0-based episode e within the
//	run, an epoch outputs LevelInit + e×LevelIncrement for
//	DurationInit + e×DurationIncrement samples. A duration that would go
//	negative fails as a malformed protocol before any trace is returned.
//
// ✨ Epoch shapes:
//   - Step          — one flat segment at the epoch level
//   - Ramp          — one linear segment, previous end level → epoch level
//   - PulseTrain    — width-wide pulses at the epoch level every period,
//     baseline in between
//   - BiphasicTrain — pulse polarity alternates (+,−) period to period
//   - Triangle      — rise to peak and fall back each period
//   - Cosine        — sinusoid about baseline, one value per sample
//
// Digital lines follow the resolved 4-bit codes: static value bits hold
// their line high for the epoch; train bits either pulse with the digital
// DAC channel's epoch timing (train-active logic) or hold for the epoch
// (transition logic); a train bit overrides a static bit on the same
// line; code 0 keeps lines low.
//
// ⚙️ Usage:
//
//	wf, err := waveform.Synthesize(rs, rs.Episode())
//	for seg := range wf.Analog[0].Segments() {
//	  // seg.Offset, seg.Samples, seg.StartLevel, seg.EndLevel
//	}
//
// Traces are lazy and restartable: Segments and Transitions return
// iterators that regenerate the same finite sequence on every range.
package waveform
