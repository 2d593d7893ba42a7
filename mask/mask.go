// Package mask provides operations to extract and manipulate ranges of bits
// from a byte.
//
// All byte indices must be 1-indexed, and ranges must be inclusive.

package mask

// A ByteIndex provides compile-time safety when indexing into a byte.
type ByteIndex byte

const (
	I1 ByteIndex = iota + 1
	I2
	I3
	I4
	I5
	I6
	I7
	I8
)

// https://pkg.go.dev/golang.org/x/text/internal/gen/bitfield
// https://cs.opensource.google/go/x/text/+/refs/tags/v0.18.0:internal/gen/bitfield/bitfield_test.go;l=16

func checkByteRange(start ByteIndex, end ByteIndex) {
	if start > end {
		panic("Invalid range provided -- start must <= end.")
	}
}

// Last extracts the last n bits of b.
func Last(b byte, n ByteIndex) byte {
	// this and lastLoop are about 0.0000015 ns/op, in the worst case

	// https://stackoverflow.com/a/15255834
	return b & ((1 << n) - 1)
}

func lastLoop(b byte, n ByteIndex) byte {
	var last byte
	for bit := range n {
		last += (1 << bit)
	}
	return b & last
}

// First extracts the first n bits of b.
func First(b byte, n ByteIndex) byte {
	// push the bits down, then apply the mask as usual
	return Last(b>>(8-n), n)
}

// IsSet reports whether the bit at pos is 1.
func IsSet(b byte, pos ByteIndex) bool {
	return b&(1<<(8-pos)) != 0
}

// Unset clears the existing bits of b in the inclusive range [start:end].
func Unset(b byte, start ByteIndex, end ByteIndex) byte {
	checkByteRange(start, end)
	for ; start <= end; start++ {
		hole := byte(^(1 << byte(8-start))) // a full byte, with 1 bit unset
		b &= hole
	}
	return b
}

// Bit sets or clears the single bit of b at pos (1-indexed from the MSB),
// depending on on. Unlike Unset, this can also set a bit, making it suitable
// for single-flag registers (e.g. a status byte).
func Bit(b byte, pos ByteIndex, on bool) byte {
	m := byte(1 << (8 - pos))
	if on {
		return b | m
	}
	return b &^ m
}

// Word composes a 16-bit little-endian address from its high and low bytes.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
