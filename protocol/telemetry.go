// Telemetry snapshot encoding
// Fixed-size binary payloads pushed on the notify characteristics.
// Digital format: count, pin, value, pin, value, ...
// Analog format:  count, pin, high byte, low byte, ...
// Unused tail bytes are zero and must be ignored beyond count.
package protocol

import "errors"

// SnapshotSize is the fixed characteristic value length.
const SnapshotSize = 32

// Capacity limits derived from the 32-byte buffer: one count byte plus
// two bytes per digital pair or three bytes per analog triple.
const (
	MaxDigitalPairs  = 15
	MaxAnalogTriples = 10
)

var ErrSnapshotOverflow = errors.New("snapshot does not fit the characteristic buffer")

// PinValue is one pin/value pair in a digital snapshot.
type PinValue struct {
	PinNum uint8
	Value  uint8
}

// AnalogValue is one converter sample in an analog snapshot.
type AnalogValue struct {
	PinNum uint8
	Raw    uint16
}

// EncodePinSnapshot packs pin/value pairs into a digital snapshot.
func EncodePinSnapshot(pairs []PinValue) ([SnapshotSize]byte, error) {
	var buf [SnapshotSize]byte
	if len(pairs) > MaxDigitalPairs {
		return buf, ErrSnapshotOverflow
	}
	buf[0] = uint8(len(pairs))
	for i, pv := range pairs {
		buf[1+2*i] = pv.PinNum
		buf[2+2*i] = pv.Value
	}
	return buf, nil
}

// EncodeADCSnapshot packs converter samples into an analog snapshot.
func EncodeADCSnapshot(samples []AnalogValue) ([SnapshotSize]byte, error) {
	var buf [SnapshotSize]byte
	if len(samples) > MaxAnalogTriples {
		return buf, ErrSnapshotOverflow
	}
	buf[0] = uint8(len(samples))
	for i, av := range samples {
		hi, lo := SplitU16(av.Raw)
		buf[1+3*i] = av.PinNum
		buf[2+3*i] = hi
		buf[3+3*i] = lo
	}
	return buf, nil
}

// SplitU16 splits a sample into its high and low transfer bytes.
func SplitU16(value uint16) (hi, lo uint8) {
	return uint8(value >> 8), uint8(value)
}
