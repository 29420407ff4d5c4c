// Package sweep resolves which parameter set a stimulation protocol uses
// on a given sweep — the alternation stage between protocol ingest and
// waveform synthesis.
//
// 🚀 What is alternation?
//
//	An Axon protocol may flip between two parameter sets on odd and even
//	sweeps, independently for analog outputs (a second waveform set per
//	DAC channel) and digital outputs (alternate register, value and
//	train-value fields). Resolve projects the immutable
//	protocol.Descriptor onto one sweep index:
//	  • even sweeps select the primary set
//	  • odd sweeps select the alternate set — when the matching
//	    alternation flag is on, otherwise the primary set everywhere
//
// The even/odd rule lives behind the VariantSelector capability so a
// future selection scheme can be injected without reshaping the resolver;
// the source format only ever documents the two-set parity behavior.
//
// ⚙️ Usage:
//
//	rs, err := sweep.Resolve(desc, 3)
//	if err != nil {
//	  // errors.Is(err, sweep.ErrSweepOutOfRange)
//	}
//	wf, err := waveform.Synthesize(rs, rs.Episode())
//
// Resolve is a pure projection: it never fails for an in-range index on a
// valid descriptor, fabricates no defaults, and is safe to call
// concurrently for different sweeps.
package sweep
