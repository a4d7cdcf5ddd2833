package varint

import "math/bits"

// Uint128 is an unsigned 128-bit magnitude, represented as two 64-bit halves.
// It exists because Go has no native 128-bit integer type and the
// order-preserving varint scheme (spec §4.1) defines encoding levels whose
// offsets run up to 2^128-1.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128FromUint64 widens v into a Uint128 with Hi == 0.
func Uint128FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint64 narrows v to its low 64 bits. The caller is responsible for knowing
// Hi is zero; use Uint64Fits to check first.
func (v Uint128) Uint64() uint64 {
	return v.Lo
}

// Uint64Fits reports whether v's value fits in a uint64 (Hi == 0).
func (v Uint128) Uint64Fits() bool {
	return v.Hi == 0
}

// IsZero reports whether v == 0.
func (v Uint128) IsZero() bool {
	return v.Hi == 0 && v.Lo == 0
}

// Cmp returns -1, 0, or +1 as v is less than, equal to, or greater than w.
func (v Uint128) Cmp(w Uint128) int {
	if v.Hi != w.Hi {
		if v.Hi < w.Hi {
			return -1
		}
		return 1
	}
	if v.Lo != w.Lo {
		if v.Lo < w.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether v < w.
func (v Uint128) Less(w Uint128) bool {
	return v.Cmp(w) < 0
}

// Add returns v + w, wrapping on overflow (unused in practice: offsets never
// exceed 2^128-1 for the defined levels).
func (v Uint128) Add(w Uint128) Uint128 {
	lo, carry := bits.Add64(v.Lo, w.Lo, 0)
	hi, _ := bits.Add64(v.Hi, w.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns v - w. The caller must ensure v >= w; the varint codec only
// ever subtracts a level offset from a value known to be in that level.
func (v Uint128) Sub(w Uint128) Uint128 {
	lo, borrow := bits.Sub64(v.Lo, w.Lo, 0)
	hi, _ := bits.Sub64(v.Hi, w.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Lsh returns v << n for 0 <= n <= 128. Shifting by 128 or more yields 0.
func (v Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: v.Lo << (n - 64)}
	default:
		return Uint128{
			Hi: v.Hi<<n | v.Lo>>(64-n),
			Lo: v.Lo << n,
		}
	}
}

// Rsh returns v >> n for 0 <= n <= 128. Shifting by 128 or more yields 0.
func (v Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: v.Hi >> (n - 64)}
	default:
		return Uint128{
			Hi: v.Hi >> n,
			Lo: v.Lo>>n | v.Hi<<(64-n),
		}
	}
}

// And returns the bitwise AND of v and w.
func (v Uint128) And(w Uint128) Uint128 {
	return Uint128{Hi: v.Hi & w.Hi, Lo: v.Lo & w.Lo}
}

// Or returns the bitwise OR of v and w.
func (v Uint128) Or(w Uint128) Uint128 {
	return Uint128{Hi: v.Hi | w.Hi, Lo: v.Lo | w.Lo}
}

// uint128One, shifted, builds the "1 << n" constants the level tables need.
func uint128One() Uint128 {
	return Uint128{Lo: 1}
}

// oneLsh returns 1 << n as a Uint128, for 0 <= n <= 128.
func oneLsh(n uint) Uint128 {
	return uint128One().Lsh(n)
}
