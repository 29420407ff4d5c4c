package waveform_test

import (
	"testing"

	"github.com/ephysio/stimproto/protocol"
	"github.com/ephysio/stimproto/sweep"
	"github.com/ephysio/stimproto/waveform"
)

// benchResolved builds a dense protocol: ten epochs alternating pulse
// trains and steps over `samples` samples per epoch, with trains on every
// digital line of the low bank.
func benchResolved(b *testing.B, samples int) *sweep.Resolved {
	b.Helper()

	var epochs []protocol.RawDACEpoch
	var infos []protocol.RawEpochInfo
	for n := 0; n < 10; n++ {
		typ := 1
		if n%2 == 0 {
			typ = 3
		}
		epochs = append(epochs, protocol.RawDACEpoch{
			EpochNum:     n,
			DACNum:       0,
			EpochType:    typ,
			InitLevel:    float64(10 * n),
			InitDuration: samples,
			PulsePeriod:  50,
			PulseWidth:   10,
		})
		infos = append(infos, protocol.RawEpochInfo{EpochNum: n, DigitalTrainValue: 15})
	}

	desc, err := protocol.Ingest(protocol.Annotations{
		Protocol: protocol.RawProtocol{
			RunsPerTrial:            1,
			EpisodesPerRun:          1,
			DigitalTrainActiveLogic: 1,
		},
		EpochInfo:       infos,
		EpochInfoPerDAC: map[int][]protocol.RawDACEpoch{0: epochs},
	})
	if err != nil {
		b.Fatalf("Ingest failed: %v", err)
	}

	rs, err := sweep.Resolve(desc, 0)
	if err != nil {
		b.Fatalf("Resolve failed: %v", err)
	}

	return rs
}

// BenchmarkSynthesize measures layout construction alone (traces stay
// unexpanded).
func BenchmarkSynthesize(b *testing.B) {
	rs := benchResolved(b, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := waveform.Synthesize(rs, 0); err != nil {
			b.Fatalf("Synthesize failed: %v", err)
		}
	}
}

// BenchmarkSegments measures full segment expansion of a pulse-heavy sweep.
func BenchmarkSegments(b *testing.B) {
	rs := benchResolved(b, 10_000)
	wf, err := waveform.Synthesize(rs, 0)
	if err != nil {
		b.Fatalf("Synthesize failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		for range wf.Analog[0].Segments() {
			n++
		}
		_ = n
	}
}

// BenchmarkTransitions measures digital transition expansion across all
// four driven lines.
func BenchmarkTransitions(b *testing.B) {
	rs := benchResolved(b, 10_000)
	wf, err := waveform.Synthesize(rs, 0)
	if err != nil {
		b.Fatalf("Synthesize failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for line := 0; line < 4; line++ {
			for range wf.Line(line).Transitions() {
			}
		}
	}
}
