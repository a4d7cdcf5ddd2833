package lexcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		run  func(e *Encoder)
		want []byte
	}{
		{"false", func(e *Encoder) { e.PutBool(false) }, []byte{0x00}},
		{"true", func(e *Encoder) { e.PutBool(true) }, []byte{0x01}},
		{"0u8", func(e *Encoder) { e.PutUint8(0) }, []byte{0x00}},
		{"127u8", func(e *Encoder) { e.PutUint8(127) }, []byte{0x7F}},
		{"128u32", func(e *Encoder) { e.PutUint32(128) }, []byte{0x80, 0x00}},
		{"0i8", func(e *Encoder) { e.PutInt8(0) }, []byte{0x80}},
		{"-1i8", func(e *Encoder) { e.PutInt8(-1) }, []byte{0x7F}},
		{"63i8", func(e *Encoder) { e.PutInt8(63) }, []byte{0xBF}},
		{"-64i8", func(e *Encoder) { e.PutInt8(-64) }, []byte{0x40}},
		{"unit", func(e *Encoder) { e.PutUnit() }, []byte{}},
		{"empty string", func(e *Encoder) { e.PutString("") }, []byte{0x00, 0x00}},
		{"string A", func(e *Encoder) { e.PutString("A") }, []byte{0x41, 0x00, 0x00}},
		{"bytes with sentinel", func(e *Encoder) { e.PutBytes([]byte{0x7F, 0x10}) },
			[]byte{0x7F, 0x01, 0x10, 0x7F, 0x00}},
		{"none", func(e *Encoder) { e.PutNone() }, []byte{0x00}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEncoder()
			tc.run(e)
			assert.Equal(t, tc.want, e.Finish())
		})
	}
}

func TestSome_ConcreteScenario(t *testing.T) {
	e := NewEncoder()
	e.PutSome()
	e.PutInt8(0)
	assert.Equal(t, []byte{0x01, 0x80}, e.Finish())
}

func TestSeq_ConcreteScenario(t *testing.T) {
	e := NewEncoder()
	e.BeginSeq()
	e.PutSeqElem()
	e.PutInt8(1)
	e.PutSeqElem()
	e.PutInt8(2)
	e.EndSeq()
	assert.Equal(t, []byte{0x01, 0x81, 0x01, 0x82, 0x00}, e.Finish())
}

func TestFixedBytes_ZeroOverhead(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.PutFixedBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, e.Finish())
}

func TestString_Roundtrip_WithSentinel(t *testing.T) {
	s := "a\x00b\x00c"

	e := NewEncoder()
	e.PutString(s)
	buf := e.Finish()

	d := NewDecoder(buf)
	got, err := d.GetString()
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestBytes_Roundtrip_WithSentinel(t *testing.T) {
	b := []byte{0x7F, 0x00, 0x7F, 0xFF}

	e := NewEncoder()
	e.PutBytes(b)
	buf := e.Finish()

	d := NewDecoder(buf)
	got, err := d.GetBytes()
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestFloat64_OrderPreservation(t *testing.T) {
	values := []float64{-1e300, -1.5, math.Copysign(0, -1), 0.0, 1e-300, 1.5, 1e300}

	encoded := make([][]byte, len(values))
	for i, v := range values {
		e := NewEncoder()
		e.PutFloat64(v)
		encoded[i] = e.Finish()
	}

	for i := 0; i < len(values)-1; i++ {
		assert.Truef(t, lessBytes(encoded[i], encoded[i+1]),
			"%v should sort before %v", values[i], values[i+1])
	}
}

func TestFloat32_Roundtrip(t *testing.T) {
	for _, v := range []float32{-123.456, -1, 0, 1, 123.456} {
		e := NewEncoder()
		e.PutFloat32(v)
		buf := e.Finish()

		d := NewDecoder(buf)
		got, err := d.GetFloat32()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestChar_Roundtrip(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '€', '🜁'} {
		e := NewEncoder()
		e.PutChar(r)
		buf := e.Finish()

		d := NewDecoder(buf)
		got, err := d.GetChar()
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestGetBool_InvalidEncoding(t *testing.T) {
	d := NewDecoder([]byte{0x42})
	_, err := d.GetBool()
	require.Error(t, err)
}

func TestGetString_BadEscape(t *testing.T) {
	d := NewDecoder([]byte{0x41, 0x00, 0x02})
	_, err := d.GetString()
	require.Error(t, err)
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
