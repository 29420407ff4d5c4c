package protocol_test

import (
	"testing"

	"github.com/ephysio/stimproto/protocol"
)

// TestBitsValueRoundTrip verifies the decoding is total and
// inverse-consistent over the whole 4-bit code space.
func TestBitsValueRoundTrip(t *testing.T) {
	for v := 0; v <= 15; v++ {
		bits := protocol.Bits(v)
		for k := range bits {
			want := (v>>k)&1 == 1
			if bits[k] != want {
				t.Errorf("Bits(%d)[%d] = %v; want %v", v, k, bits[k], want)
			}
		}
		if got := protocol.Value(bits); got != v {
			t.Errorf("Value(Bits(%d)) = %d; want %d", v, got, v)
		}
	}
}

// TestRegisterLine checks the bit-to-line mapping of both banks.
func TestRegisterLine(t *testing.T) {
	for k := 0; k < 4; k++ {
		if got := protocol.RegisterLow.Line(k); got != k {
			t.Errorf("RegisterLow.Line(%d) = %d; want %d", k, got, k)
		}
		if got := protocol.RegisterHigh.Line(k); got != k+4 {
			t.Errorf("RegisterHigh.Line(%d) = %d; want %d", k, got, k+4)
		}
	}
}

// TestLineStates covers the documented example (code 5 = 0101 on the low
// bank drives lines 0 and 2) plus the high bank and the zero code.
func TestLineStates(t *testing.T) {
	cases := []struct {
		name string
		reg  protocol.Register
		v    int
		high []int
	}{
		{"LowFive", protocol.RegisterLow, 5, []int{0, 2}},
		{"HighFive", protocol.RegisterHigh, 5, []int{4, 6}},
		{"LowZero", protocol.RegisterLow, 0, nil},
		{"HighAll", protocol.RegisterHigh, 15, []int{4, 5, 6, 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := protocol.LineStates(tc.reg, tc.v)
			want := [protocol.DigitalLines]bool{}
			for _, l := range tc.high {
				want[l] = true
			}
			if lines != want {
				t.Errorf("LineStates(%v, %d) = %v; want %v", tc.reg, tc.v, lines, want)
			}
		})
	}
}

// TestRegisterString checks the Clampex panel labels.
func TestRegisterString(t *testing.T) {
	if got := protocol.RegisterLow.String(); got != "#3-0" {
		t.Errorf("RegisterLow.String() = %q; want %q", got, "#3-0")
	}
	if got := protocol.RegisterHigh.String(); got != "#7-4" {
		t.Errorf("RegisterHigh.String() = %q; want %q", got, "#7-4")
	}
}
