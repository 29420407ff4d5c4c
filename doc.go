// Package stimproto decodes Axon acquisition-protocol metadata into a
// sweep-resolved stimulation protocol — which analog waveform every DAC
// output channel generates and which digital trigger lines fire, down to
// the sample.
//
// 🚀 What is stimproto?
//
//	An upstream file reader hands you the raw protocol annotations of an
//	Axon-format electrophysiology recording (nested key-value structures:
//	protocol flags, per-epoch digital settings, per-DAC epoch tables).
//	stimproto turns them into something you can actually compute with:
//	  • a validated, immutable protocol model
//	  • per-sweep selection of primary vs. alternate parameter sets
//	  • sample-accurate analog segments and digital line transitions
//
// Under the hood, everything is organized under three subpackages,
// consumed in pipeline order:
//
//	protocol/ — ingest & validation of raw annotations into the immutable
//	            Descriptor model (epochs, DAC channels, digital settings)
//	sweep/    — alternation resolver: picks the parameter set active on a
//	            given 0-based sweep index (parity-based, pluggable)
//	waveform/ — synthesizer: expands a resolved sweep into lazy, ordered
//	            analog segment and digital transition sequences
//
// ✨ Why choose stimproto?
//
//   - Pure transforms – no I/O, no locks, safe for concurrent sweeps
//   - Eager validation – a malformed protocol never yields a partial model
//   - Deterministic – every trace can be regenerated from the same inputs
//
// Quick sketch of a protocol with two epochs on one DAC channel:
//
//	level ┤      ┌──────┐
//	      │      │ E1   │╲
//	 hold ┼──────┘      │ ╲ E2 (ramp)
//	      └──────┴──────┴─────── samples
//	        E0     E1     E2
//
// File parsing, plotting and GUI concerns stay outside: stimproto begins
// at the annotation structures and ends at the per-sweep waveform model.
//
//	go get github.com/ephysio/stimproto
package stimproto
