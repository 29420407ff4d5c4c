package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ephysio/stimproto/protocol"
	"github.com/ephysio/stimproto/sweep"
)

// testDescriptor builds a protocol with both alternation flags driven by
// the arguments: DAC 0 carries a primary step and an alternate step at a
// different level, and epoch 0 carries distinct primary and alternate
// digital settings.
func testDescriptor(t *testing.T, altAnalog, altDigital bool) *protocol.Descriptor {
	t.Helper()

	flag := func(b bool) int {
		if b {
			return 1
		}

		return 0
	}

	raw := protocol.Annotations{
		Protocol: protocol.RawProtocol{
			RunsPerTrial:                2,
			EpisodesPerRun:              2,
			AlternateDACOutputState:     flag(altAnalog),
			AlternateDigitalOutputState: flag(altDigital),
		},
		EpochInfo: []protocol.RawEpochInfo{
			{
				EpochNum:              0,
				DigitalValue:          5,
				AlternateDigitalValue: 10,
				Register:              "#3-0",
				AlternateRegister:     "#7-4",
			},
		},
		EpochInfoPerDAC: map[int][]protocol.RawDACEpoch{
			0: {{EpochNum: 0, DACNum: 0, EpochType: 1, InitLevel: 10, InitDuration: 100}},
		},
		AlternateEpochInfoPerDAC: map[int][]protocol.RawDACEpoch{
			0: {{EpochNum: 0, DACNum: 0, EpochType: 1, InitLevel: -10, InitDuration: 100}},
		},
	}

	desc, err := protocol.Ingest(raw)
	require.NoError(t, err)

	return desc
}

// TestResolveRange checks the sweep-index bounds and the nil guard.
func TestResolveRange(t *testing.T) {
	desc := testDescriptor(t, false, false)

	_, err := sweep.Resolve(nil, 0)
	require.ErrorIs(t, err, sweep.ErrNilDescriptor)

	_, err = sweep.Resolve(desc, -1)
	require.ErrorIs(t, err, sweep.ErrSweepOutOfRange)

	_, err = sweep.Resolve(desc, desc.SweepCount())
	require.ErrorIs(t, err, sweep.ErrSweepOutOfRange)
}

// TestResolveNeverFailsInRange is the totality property: every index
// below RunsPerTrial × EpisodesPerRun resolves.
func TestResolveNeverFailsInRange(t *testing.T) {
	desc := testDescriptor(t, true, true)
	for i := 0; i < desc.SweepCount(); i++ {
		rs, err := sweep.Resolve(desc, i)
		require.NoError(t, err, "sweep %d", i)
		require.Equal(t, i, rs.SweepIndex)
		require.Len(t, rs.Channels, 1)
		require.Len(t, rs.Digital, 1)
	}
}

// TestDigitalParity pins the exact even/odd selection under digital
// alternation: 0 primary, 1 alternate, 2 back to primary.
func TestDigitalParity(t *testing.T) {
	desc := testDescriptor(t, false, true)

	expect := []struct {
		value int
		reg   protocol.Register
	}{
		{5, protocol.RegisterLow},
		{10, protocol.RegisterHigh},
		{5, protocol.RegisterLow},
		{10, protocol.RegisterHigh},
	}
	for i, want := range expect {
		rs, err := sweep.Resolve(desc, i)
		require.NoError(t, err)
		require.Equal(t, want.value, rs.Digital[0].Value, "sweep %d", i)
		require.Equal(t, want.reg, rs.Digital[0].Register, "sweep %d", i)
	}
}

// TestDigitalNoAlternation checks that with the flag off, odd sweeps keep
// the primary digital fields.
func TestDigitalNoAlternation(t *testing.T) {
	desc := testDescriptor(t, false, false)

	rs, err := sweep.Resolve(desc, 1)
	require.NoError(t, err)
	require.Equal(t, sweep.Alternate, rs.Variant)
	require.Equal(t, 5, rs.Digital[0].Value)
	require.Equal(t, protocol.RegisterLow, rs.Digital[0].Register)
}

// TestAnalogAlternation checks waveform-set selection: the alternate set
// only on odd sweeps and only when the protocol alternates analog outputs.
func TestAnalogAlternation(t *testing.T) {
	on := testDescriptor(t, true, false)

	rs, err := sweep.Resolve(on, 0)
	require.NoError(t, err)
	require.Equal(t, 10.0, rs.Channels[0].Epochs[0].LevelInit)

	rs, err = sweep.Resolve(on, 1)
	require.NoError(t, err)
	require.Equal(t, -10.0, rs.Channels[0].Epochs[0].LevelInit)

	off := testDescriptor(t, false, false)
	rs, err = sweep.Resolve(off, 1)
	require.NoError(t, err)
	require.Equal(t, 10.0, rs.Channels[0].Epochs[0].LevelInit)
}

// negateSelector flips the parity rule; it exercises the strategy seam.
type negateSelector struct{}

func (negateSelector) SelectVariant(i int) sweep.Variant {
	if i%2 == 0 {
		return sweep.Alternate
	}

	return sweep.Primary
}

// TestWithSelector checks that an injected strategy replaces the default
// parity rule.
func TestWithSelector(t *testing.T) {
	desc := testDescriptor(t, true, true)

	rs, err := sweep.Resolve(desc, 0, sweep.WithSelector(negateSelector{}))
	require.NoError(t, err)
	require.Equal(t, sweep.Alternate, rs.Variant)
	require.Equal(t, -10.0, rs.Channels[0].Epochs[0].LevelInit)
	require.Equal(t, 10, rs.Digital[0].Value)
}

// TestEpisode checks the within-run episode arithmetic.
func TestEpisode(t *testing.T) {
	desc := testDescriptor(t, false, false) // 2 runs × 2 episodes

	for i, want := range []int{0, 1, 0, 1} {
		rs, err := sweep.Resolve(desc, i)
		require.NoError(t, err)
		require.Equal(t, want, rs.Episode(), "sweep %d", i)
	}
}
