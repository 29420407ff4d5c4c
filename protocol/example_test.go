package protocol_test

import (
	"fmt"

	"github.com/ephysio/stimproto/protocol"
)

// ExampleIngest builds a one-channel protocol from raw annotations: a
// holding step followed by a pulse train, with digital lines 0 and 2 held
// high during the first epoch.
func ExampleIngest() {
	desc, err := protocol.Ingest(protocol.Annotations{
		Protocol: protocol.RawProtocol{
			RunsPerTrial:   1,
			EpisodesPerRun: 3,
		},
		EpochInfo: []protocol.RawEpochInfo{
			{EpochNum: 0, DigitalValue: 5, Register: "#3-0"},
			{EpochNum: 1},
		},
		EpochInfoPerDAC: map[int][]protocol.RawDACEpoch{
			0: {
				{EpochNum: 0, DACNum: 0, EpochType: 1, InitLevel: -60, InitDuration: 100},
				{EpochNum: 1, DACNum: 0, EpochType: 3, InitLevel: 10, InitDuration: 200, PulsePeriod: 50, PulseWidth: 10},
			},
		},
		DACInfo: []protocol.RawDACInfo{{DACNum: 0, HoldingLevel: -70}},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	ch, _ := desc.Channel(0)
	for _, ep := range ch.Epochs() {
		fmt.Printf("epoch %d: %s\n", ep.EpochNumber, ep.Type)
	}

	di, _ := desc.DigitalInfo(0)
	for k, set := range protocol.Bits(di.DigitalValue) {
		if set {
			fmt.Printf("line %d high\n", di.Register.Line(k))
		}
	}
	// Output:
	// epoch 0: Step
	// epoch 1: PulseTrain
	// line 0 high
	// line 2 high
}
