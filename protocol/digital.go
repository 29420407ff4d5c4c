package protocol

// DigitalLines is the number of addressable digital output lines.
const DigitalLines = 8

// registerBits is the width of one register's decimal code.
const registerBits = 4

const (
	registerLowLabel  = "#3-0"
	registerHighLabel = "#7-4"
)

// Bits decodes a 4-bit decimal code v into individual line states:
// bits[k] = (v>>k)&1 for k in 0–3. Only the low four bits of v are read,
// so the decoding is total over 0–15.
func Bits(v int) [registerBits]bool {
	var bits [registerBits]bool
	for k := range bits {
		bits[k] = (v>>k)&1 == 1
	}

	return bits
}

// Value reconstructs the decimal code from four decoded bit states; it is
// the exact inverse of Bits for v in 0–15.
func Value(bits [registerBits]bool) int {
	v := 0
	for k, set := range bits {
		if set {
			v |= 1 << k
		}
	}

	return v
}

// LineStates places the 4-bit code v onto the absolute digital lines of
// register r: set bit k drives line r.Line(k) high, every other line of
// the 8-line bank stays low.
func LineStates(r Register, v int) [DigitalLines]bool {
	var lines [DigitalLines]bool
	for k, set := range Bits(v) {
		lines[r.Line(k)] = set
	}

	return lines
}

// parseRegister maps the Clampex panel label to a Register. The empty
// string defaults to RegisterLow, matching readers that omit the field
// for the low bank.
func parseRegister(s string) (Register, bool) {
	switch s {
	case "", registerLowLabel:
		return RegisterLow, true
	case registerHighLabel:
		return RegisterHigh, true
	default:
		return RegisterLow, false
	}
}
