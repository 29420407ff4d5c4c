// Package protocol ingests raw Axon acquisition-protocol annotations and
// builds the immutable stimulation-protocol model consumed by the sweep
// resolver and the waveform synthesizer.
//
// 🚀 What does ingest do?
//
//	The upstream file reader parses the binary recording container and
//	hands over three nested key-value structures (see Annotations):
//	  • protocol-level flags (runs, episodes, alternation, train logic)
//	  • the list of active epoch digital-output records
//	  • per-DAC-channel tables of epoch waveform definitions
//	Ingest validates every field and numeric range eagerly and returns a
//	Descriptor, or fails — a malformed protocol never yields a partial
//	model.
//
// ✨ Key guarantees:
//   - epoch numbers are confined to 0–9; non-contiguous sets are valid
//   - every DAC epoch is backed by an entry in the global epoch list
//   - 4-bit digital codes (0–15) decode to line states via bit_k = (v>>k)&1;
//     register #3-0 drives lines {0,1,2,3}, register #7-4 drives {4,5,6,7}
//   - the Descriptor is immutable once built: resolving and synthesizing
//     sweeps concurrently needs no locking
//
// ⚙️ Usage:
//
//	var raw protocol.Annotations
//	_ = yaml.Unmarshal(dump, &raw) // or fill from the reader's structures
//
//	desc, err := protocol.Ingest(raw)
//	if err != nil {
//	  // errors.Is(err, protocol.ErrMalformedProtocol)
//	}
//
// See sweep for per-sweep parameter selection and waveform for synthesis.
package protocol
