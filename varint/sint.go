package varint

import "github.com/josefs/lexcode/errs"

// Int128 is a two's-complement 128-bit signed integer bit pattern, used the
// same way Uint128 stands in for a native int128: Go has neither type, and
// the signed varint scheme defines levels whose magnitudes run up to
// 2^127-1.
type Int128 struct {
	Hi uint64
	Lo uint64
}

// Int128FromInt64 sign-extends v into an Int128.
func Int128FromInt64(v int64) Int128 {
	if v < 0 {
		return Int128{Hi: ^uint64(0), Lo: uint64(v)}
	}
	return Int128{Hi: 0, Lo: uint64(v)}
}

// Int64Fits reports whether v's value fits in an int64.
func (v Int128) Int64Fits() bool {
	if v.IsNegative() {
		return v.Hi == ^uint64(0) && int64(v.Lo) < 0
	}
	return v.Hi == 0 && int64(v.Lo) >= 0
}

// Int64 narrows v to its low 64 bits, assuming Int64Fits(v) holds.
func (v Int128) Int64() int64 {
	return int64(v.Lo)
}

// IsNegative reports whether v represents a negative value.
func (v Int128) IsNegative() bool {
	return v.Hi&0x8000_0000_0000_0000 != 0
}

// bits views v's two's-complement pattern as an unsigned 128-bit word.
func (v Int128) bits() Uint128 {
	return Uint128{Hi: v.Hi, Lo: v.Lo}
}

// int128FromBits reinterprets an unsigned 128-bit word as its two's
// complement signed equivalent.
func int128FromBits(b Uint128) Int128 {
	return Int128{Hi: b.Hi, Lo: b.Lo}
}

// magnitude returns the nonnegative encode magnitude for v: v itself when
// v >= 0, or -(v+1) when v < 0. In two's complement, -(v+1) == ^v, so the
// negative case is a plain bitwise complement — no subtraction needed.
func (v Int128) magnitude() Uint128 {
	b := v.bits()
	if v.IsNegative() {
		return Uint128{Hi: ^b.Hi, Lo: ^b.Lo}
	}
	return b
}

// fromMagnitude inverts magnitude: positive=true reconstructs v == m,
// positive=false reconstructs v == -(m+1) (== ^m in two's complement).
func fromMagnitude(m Uint128, positive bool) Int128 {
	if positive {
		return int128FromBits(m)
	}
	return int128FromBits(Uint128{Hi: ^m.Hi, Lo: ^m.Lo})
}

// signedDataBits[level] is the number of magnitude bits level encodes, per
// spec §4.1: levels 0..=6 fit a 7-bit sub-header (sign bit occupies bit 7 of
// the first byte), levels 7..=14 spill a second header byte, level 15 spills
// a third.
var signedDataBits = [16]uint{
	6, 13, 20, 27, 34, 41, 48,
	63, 70, 77, 84, 91, 98, 105, 112,
	127,
}

var signedOffsets [16]Uint128

func init() {
	offset := Uint128{}
	for level := 0; level < 16; level++ {
		signedOffsets[level] = offset
		if level < 15 {
			offset = offset.Add(oneLsh(signedDataBits[level]))
		}
	}
}

func findSignedLevel(v Uint128) int {
	for level := 0; level < 15; level++ {
		if v.Less(signedOffsets[level+1]) {
			return level
		}
	}
	return 15
}

// leadingOnes7Bit counts the leading 1-bits of a 7-bit field stored in bits
// 6..0 of a byte (bit 7 is ignored).
func leadingOnes7Bit(b byte) int {
	return leadingOnes(b << 1)
}

// leadingOnes7BitByte returns a byte with n leading 1-bits in bits 6..0,
// bit 7 always 0.
func leadingOnes7BitByte(n int) byte {
	if n == 0 {
		return 0
	}
	return leadingOnesByte(n) >> 1
}

// encodeSintMagnitude appends the 7-bit-sub-header encoding of a
// nonnegative magnitude, leaving bit 7 of the first byte as 0 for the
// caller to set.
func encodeSintMagnitude(v Uint128, out []byte) []byte {
	level := findSignedLevel(v)
	data := v.Sub(signedOffsets[level])

	switch {
	case level <= 6:
		hdrDataBits := 6 - level
		hdrData := extractTopBits(data, level, hdrDataBits)
		out = append(out, leadingOnes7BitByte(level)|byte(hdrData.Lo))
	case level <= 14:
		m := level - 7
		hdrDataBits := 7 - m
		hdrData := extractTopBits(data, level, hdrDataBits)
		out = append(out, 0x7F, leadingOnesByte(m)|byte(hdrData.Lo))
	default: // level == 15
		hdrData := extractTopBits(data, 15, 7)
		out = append(out, 0x7F, 0xFF, byte(hdrData.Lo))
	}

	return writeBETail(data, level, out)
}

// EncodeSint appends the order-preserving encoding of v to out and returns
// the extended slice.
func EncodeSint(v Int128, out []byte) []byte {
	start := len(out)
	out = encodeSintMagnitude(v.magnitude(), out)
	if v.IsNegative() {
		out[start] |= 0x80 // temporarily mark as positive so complement yields 0
		for i := start; i < len(out); i++ {
			out[i] = ^out[i]
		}
	} else {
		out[start] |= 0x80
	}
	return out
}

// decodeSintMagnitude decodes a magnitude from its 7-bit sub-header byte and
// the bytes following it, returning the magnitude and total bytes consumed
// (including the sub-header byte).
func decodeSintMagnitude(sub byte, rest []byte) (Uint128, int, error) {
	var level, extraHeaderBytes int
	var headerData Uint128

	if sub != 0x7F {
		n := leadingOnes7Bit(sub)
		hdrDataBits := 6 - n
		headerData = Uint128FromUint64(uint64(sub & lowMaskByte(hdrDataBits)))
		level, extraHeaderBytes = n, 0
	} else {
		if len(rest) == 0 {
			return Uint128{}, 0, errs.ErrEOF
		}
		second := rest[0]
		if second != 0xFF {
			m := leadingOnes(second)
			hdrDataBits := 7 - m
			headerData = Uint128FromUint64(uint64(second & lowMaskByte(hdrDataBits)))
			level, extraHeaderBytes = 7+m, 1
		} else {
			if len(rest) < 2 {
				return Uint128{}, 0, errs.ErrEOF
			}
			third := rest[1]
			headerData = Uint128FromUint64(uint64(third & 0x7F))
			level, extraHeaderBytes = 15, 2
		}
	}

	dataStart := extraHeaderBytes
	dataEnd := dataStart + level
	if len(rest) < dataEnd {
		return Uint128{}, 0, errs.ErrEOF
	}

	data := assembleBE(headerData, rest[dataStart:dataEnd])
	return data.Add(signedOffsets[level]), 1 + dataEnd, nil
}

// DecodeSint decodes a single order-preserving signed varint from the front
// of in, returning the decoded value and the number of bytes consumed.
func DecodeSint(in []byte) (Int128, int, error) {
	if len(in) == 0 {
		return Int128{}, 0, errs.ErrEOF
	}

	positive := in[0]&0x80 != 0

	if positive {
		firstSub := in[0] & 0x7F
		mag, consumed, err := decodeSintMagnitude(firstSub, in[1:])
		if err != nil {
			return Int128{}, 0, err
		}
		return fromMagnitude(mag, true), consumed, nil
	}

	firstComplemented := ^in[0]
	firstSub := firstComplemented & 0x7F
	total, err := sintTotalLen(firstSub, in[1:])
	if err != nil {
		return Int128{}, 0, err
	}
	if len(in) < total {
		return Int128{}, 0, errs.ErrEOF
	}

	buf := make([]byte, total)
	for i := 0; i < total; i++ {
		buf[i] = ^in[i]
	}
	sub := buf[0] & 0x7F
	mag, _, err := decodeSintMagnitude(sub, buf[1:])
	if err != nil {
		return Int128{}, 0, err
	}
	return fromMagnitude(mag, false), total, nil
}

// sintTotalLen determines the total encoded length of a signed value from
// its (already bit-complemented) 7-bit sub-header and the raw bytes that
// follow the first byte — used by the negative decode path to know how many
// bytes to complement before interpreting them.
func sintTotalLen(sub byte, rest []byte) (int, error) {
	if sub != 0x7F {
		n := leadingOnes7Bit(sub)
		return 1 + n, nil
	}
	if len(rest) == 0 {
		return 0, errs.ErrEOF
	}
	second := ^rest[0]
	if second != 0xFF {
		m := leadingOnes(second)
		level := 7 + m
		return 2 + level, nil
	}
	return 3 + 15, nil
}

// EncodeInt64 appends the order-preserving encoding of a signed value that
// fits in 64 bits. Every signed integer width lexcode supports (8/16/32/64)
// funnels through here; by Invariant 3, the output is identical regardless
// of which Go width the caller declared v at.
func EncodeInt64(v int64, out []byte) []byte {
	return EncodeSint(Int128FromInt64(v), out)
}

// DecodeInt64 decodes an order-preserving signed varint and narrows it to
// int64, failing with ErrIntegerOverflow if the value doesn't fit.
func DecodeInt64(in []byte) (int64, int, error) {
	v, n, err := DecodeSint(in)
	if err != nil {
		return 0, 0, err
	}
	if !v.Int64Fits() {
		return 0, 0, errs.ErrIntegerOverflow
	}
	return v.Int64(), n, nil
}
