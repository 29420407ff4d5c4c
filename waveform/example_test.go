package waveform_test

import (
	"fmt"

	"github.com/ephysio/stimproto/protocol"
	"github.com/ephysio/stimproto/sweep"
	"github.com/ephysio/stimproto/waveform"
)

// ExampleSynthesize runs the whole pipeline on a two-epoch protocol: a
// depolarizing step and a ramp back toward holding, with digital line 0
// marking the step epoch.
func ExampleSynthesize() {
	desc, err := protocol.Ingest(protocol.Annotations{
		Protocol: protocol.RawProtocol{
			RunsPerTrial:   1,
			EpisodesPerRun: 1,
		},
		EpochInfo: []protocol.RawEpochInfo{
			{EpochNum: 0, DigitalValue: 1},
			{EpochNum: 1},
		},
		EpochInfoPerDAC: map[int][]protocol.RawDACEpoch{
			0: {
				{EpochNum: 0, DACNum: 0, EpochType: 1, InitLevel: -10, InitDuration: 40},
				{EpochNum: 1, DACNum: 0, EpochType: 2, InitLevel: -70, InitDuration: 20},
			},
		},
		DACInfo: []protocol.RawDACInfo{{DACNum: 0, HoldingLevel: -70}},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	rs, err := sweep.Resolve(desc, 0)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	wf, err := waveform.Synthesize(rs, rs.Episode())
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	for seg := range wf.Analog[0].Segments() {
		fmt.Printf("analog @%d for %d: %g -> %g\n", seg.Offset, seg.Samples, seg.StartLevel, seg.EndLevel)
	}
	for tr := range wf.Line(0).Transitions() {
		fmt.Printf("line 0 @%d high=%v\n", tr.Offset, tr.High)
	}
	// Output:
	// analog @0 for 40: -10 -> -10
	// analog @40 for 20: -10 -> -70
	// line 0 @0 high=true
	// line 0 @40 high=false
}
