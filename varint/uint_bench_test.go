package varint

import "testing"

func BenchmarkEncodeUint64(b *testing.B) {
	cases := []struct {
		name string
		v    uint64
	}{
		{"Level0_Small", 5},
		{"Level2_Medium", 1 << 20},
		{"Level6_Large", 1 << 48},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			v := Uint128FromUint64(tc.v)
			out := make([]byte, 0, 20)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				out = EncodeUint(v, out[:0])
			}
		})
	}
}

func BenchmarkDecodeUint64(b *testing.B) {
	cases := []struct {
		name string
		v    uint64
	}{
		{"Level0_Small", 5},
		{"Level2_Medium", 1 << 20},
		{"Level6_Large", 1 << 48},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			encoded := EncodeUint(Uint128FromUint64(tc.v), nil)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _, _ = DecodeUint(encoded)
			}
		})
	}
}

func BenchmarkEncodeUint128_Full(b *testing.B) {
	v := Uint128{Hi: 0xFFFFFFFFFFFF, Lo: 0xFFFFFFFFFFFFFFFF}
	out := make([]byte, 0, 20)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		out = EncodeUint(v, out[:0])
	}
}
