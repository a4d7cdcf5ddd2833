package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInt64_ConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		v    int64
		want []byte
	}{
		{"zero", 0, []byte{0x80}},
		{"neg-one", -1, []byte{0x7F}},
		{"max-single-byte-positive", 63, []byte{0xBF}},
		{"min-single-byte-negative", -64, []byte{0x40}},
		{"min-two-byte-positive", 64, nil}, // length checked separately
		{"min-two-byte-negative", -65, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeInt64(tc.v, nil)
			if tc.want != nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	assert.Len(t, EncodeInt64(64, nil), 2)
	assert.Len(t, EncodeInt64(-65, nil), 2)
}

func TestInt64_Roundtrip_Small(t *testing.T) {
	for v := int64(-1000); v <= 1000; v++ {
		buf := EncodeInt64(v, nil)
		got, consumed, err := DecodeInt64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got, "roundtrip failed for %d", v)
		assert.Equal(t, len(buf), consumed)
	}
}

func TestInt64_Roundtrip_Extremes(t *testing.T) {
	for _, v := range []int64{math.MinInt64, math.MinInt64 + 1, -1, 0, 1, math.MaxInt64 - 1, math.MaxInt64} {
		buf := EncodeInt64(v, nil)
		got, consumed, err := DecodeInt64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got, "roundtrip failed for %d", v)
		assert.Equal(t, len(buf), consumed)
	}
}

func TestInt64_OrderPreservation(t *testing.T) {
	values := []int64{
		math.MinInt64, math.MinInt64 + 1,
		-1_000_000, -1000, -128, -127, -64, -1,
		0, 1, 63, 127, 128, 1000, 1_000_000,
		math.MaxInt64 - 1, math.MaxInt64,
	}

	encoded := make([][]byte, len(values))
	for i, v := range values {
		encoded[i] = EncodeInt64(v, nil)
	}

	for i := range values {
		for j := i + 1; j < len(values); j++ {
			require.Truef(t, lessBytes(encoded[i], encoded[j]),
				"%d (enc %x) should be < %d (enc %x)", values[i], encoded[i], values[j], encoded[j])
		}
	}
}

func TestInt128_Roundtrip_Boundaries(t *testing.T) {
	minVal := Int128{Hi: 0x8000_0000_0000_0000, Lo: 0}
	maxVal := Int128{Hi: 0x7FFF_FFFF_FFFF_FFFF, Lo: ^uint64(0)}

	for _, v := range []Int128{minVal, maxVal, Int128FromInt64(0), Int128FromInt64(-1)} {
		buf := EncodeSint(v, nil)
		got, consumed, err := DecodeSint(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), consumed)
	}
}

func TestDecodeInt64_Overflow(t *testing.T) {
	tooBig := Int128{Hi: 1, Lo: 0} // 2^64, beyond int64's positive range (max 2^63-1)
	buf := EncodeSint(tooBig, nil)
	_, _, err := DecodeInt64(buf)
	require.Error(t, err)
}

func TestDecodeSint_Eof(t *testing.T) {
	_, _, err := DecodeSint(nil)
	require.Error(t, err)

	buf := EncodeInt64(64, nil)
	_, _, err = DecodeSint(buf[:len(buf)-1])
	require.Error(t, err)

	buf = EncodeInt64(-65, nil)
	_, _, err = DecodeSint(buf[:len(buf)-1])
	require.Error(t, err)
}
