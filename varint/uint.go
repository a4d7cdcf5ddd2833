// Package varint implements the order-preserving variable-length integer
// encoding that underpins lexcode's key-encoding guarantee: byte-lexicographic
// comparison of two encoded magnitudes matches their numeric order, and
// smaller magnitudes take fewer bytes.
//
// The unsigned scheme (EncodeUint/DecodeUint) uses a unary length prefix: the
// number of leading 1-bits in the header selects one of 17 levels, each
// covering a contiguous range of magnitudes with a fixed encoded length.
// The signed scheme (EncodeSint/DecodeSint) reserves the top bit of the first
// byte as a sign flag and applies the same unary-prefix shape to the
// magnitude, complementing negative encodings so more-negative values sort
// first.
package varint

import "github.com/josefs/lexcode/errs"

// unsignedDataBits[level] is the number of magnitude bits level encodes,
// per spec §4.1: levels 0..=7 grow by 7 bits/level in a single header byte,
// levels 8..=15 spill into a second header byte, level 16 is two 0xFF
// header bytes followed by a full 16-byte payload.
var unsignedDataBits = [17]uint{
	7, 14, 21, 28, 35, 42, 49, 56,
	71, 78, 85, 92, 99, 106, 113, 120, 128,
}

// unsignedOffsets[level] is the smallest magnitude encoded at that level;
// unsignedOffsets[level+1] - 1 is the largest. Computed once at init from
// unsignedDataBits so the two tables can never drift apart.
var unsignedOffsets [17]Uint128

func init() {
	offset := Uint128{}
	for level := 0; level < 17; level++ {
		unsignedOffsets[level] = offset
		if level < 16 {
			offset = offset.Add(oneLsh(unsignedDataBits[level]))
		}
	}
}

// findUnsignedLevel returns the smallest level whose range contains v.
func findUnsignedLevel(v Uint128) int {
	for level := 0; level < 16; level++ {
		if v.Less(unsignedOffsets[level+1]) {
			return level
		}
	}
	return 16
}

// leadingOnesByte returns a byte with n leading 1-bits followed by 0-bits.
func leadingOnesByte(n int) byte {
	switch {
	case n <= 0:
		return 0
	case n >= 8:
		return 0xFF
	default:
		return byte(0xFF << (8 - n))
	}
}

// lowMaskByte returns a byte with its low n bits set.
func lowMaskByte(n int) byte {
	switch {
	case n <= 0:
		return 0
	case n >= 8:
		return 0xFF
	default:
		return byte(1<<uint(n)) - 1
	}
}

// EncodeUint appends the order-preserving encoding of v to out and returns
// the extended slice.
func EncodeUint(v Uint128, out []byte) []byte {
	level := findUnsignedLevel(v)
	data := v.Sub(unsignedOffsets[level])

	switch {
	case level <= 7:
		hdrDataBits := 7 - level
		hdrData := extractTopBits(data, level, hdrDataBits)
		out = append(out, leadingOnesByte(level)|byte(hdrData.Lo))
	case level <= 15:
		m := level - 8
		hdrDataBits := 7 - m
		hdrData := extractTopBits(data, level, hdrDataBits)
		out = append(out, 0xFF, leadingOnesByte(m)|byte(hdrData.Lo))
	default: // level == 16
		out = append(out, 0xFF, 0xFF)
	}

	return writeBETail(data, level, out)
}

// DecodeUint decodes a single order-preserving unsigned varint from the
// front of in, returning the decoded value and the number of bytes consumed.
func DecodeUint(in []byte) (Uint128, int, error) {
	if len(in) == 0 {
		return Uint128{}, 0, errs.ErrEOF
	}

	first := in[0]
	var level int
	var headerData Uint128
	var headerLen int

	if first != 0xFF {
		n := leadingOnes(first)
		hdrDataBits := 7 - n
		headerData = Uint128FromUint64(uint64(first & lowMaskByte(hdrDataBits)))
		level, headerLen = n, 1
	} else {
		if len(in) < 2 {
			return Uint128{}, 0, errs.ErrEOF
		}
		second := in[1]
		if second != 0xFF {
			m := leadingOnes(second)
			hdrDataBits := 7 - m
			headerData = Uint128FromUint64(uint64(second & lowMaskByte(hdrDataBits)))
			level, headerLen = 8+m, 2
		} else {
			level, headerLen = 16, 2
		}
	}

	total := headerLen + level
	if len(in) < total {
		return Uint128{}, 0, errs.ErrEOF
	}

	data := assembleBE(headerData, in[headerLen:total])
	return data.Add(unsignedOffsets[level]), total, nil
}

// leadingOnes counts the leading 1-bits of a byte (0..8).
func leadingOnes(b byte) int {
	n := 0
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) == 0 {
			break
		}
		n++
	}
	return n
}

// extractTopBits returns the top `want` bits of data's portion above its
// trailing extraBytes*8 bits — the bits that belong in the header byte
// rather than the big-endian tail.
func extractTopBits(data Uint128, extraBytes int, want int) Uint128 {
	if want <= 0 {
		return Uint128{}
	}
	shift := uint(extraBytes) * 8
	shifted := data.Rsh(shift)
	return shifted.And(oneLsh(uint(want)).Sub(uint128One()))
}

// writeBETail appends the low n bytes of data, big-endian, to out.
func writeBETail(data Uint128, n int, out []byte) []byte {
	for i := n - 1; i >= 0; i-- {
		shift := uint(i) * 8
		if shift >= 128 {
			out = append(out, 0)
			continue
		}
		out = append(out, byte(data.Rsh(shift).Lo))
	}
	return out
}

// assembleBE combines a header-carried prefix with subsequent big-endian
// bytes into a single magnitude.
func assembleBE(prefix Uint128, tail []byte) Uint128 {
	v := prefix
	for _, b := range tail {
		v = v.Lsh(8).Or(Uint128FromUint64(uint64(b)))
	}
	return v
}

// EncodeUint64 appends the order-preserving encoding of an unsigned value
// that fits in 64 bits. This is the common-width fast path: every unsigned
// integer width lexcode supports (8/16/32/64) funnels through here, and by
// Invariant 3 (cross-width equivalence) the output is identical regardless
// of which Go width the caller declared v at.
func EncodeUint64(v uint64, out []byte) []byte {
	return EncodeUint(Uint128FromUint64(v), out)
}

// DecodeUint64 decodes an order-preserving unsigned varint and narrows it to
// uint64, failing with ErrIntegerOverflow if the magnitude doesn't fit.
func DecodeUint64(in []byte) (uint64, int, error) {
	v, n, err := DecodeUint(in)
	if err != nil {
		return 0, 0, err
	}
	if !v.Uint64Fits() {
		return 0, 0, errs.ErrIntegerOverflow
	}
	return v.Uint64(), n, nil
}
