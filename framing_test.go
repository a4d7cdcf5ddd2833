package lexcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeq_OrderPreservation_PrefixExtension(t *testing.T) {
	// vec![1u8] must sort before vec![1u8, 0u8]: a sequence extended with
	// more elements sorts after its own prefix.
	shorter := encodeUint8Seq(t, []uint8{1})
	longer := encodeUint8Seq(t, []uint8{1, 0})

	assert.True(t, lessBytes(shorter, longer))
}

func encodeUint8Seq(t *testing.T, vs []uint8) []byte {
	t.Helper()
	e := NewEncoder()
	e.BeginSeq()
	for _, v := range vs {
		e.PutSeqElem()
		e.PutUint8(v)
	}
	e.EndSeq()
	return e.Finish()
}

func TestSeq_Roundtrip(t *testing.T) {
	e := NewEncoder()
	e.BeginSeq()
	for _, v := range []int64{-5, 0, 42} {
		e.PutSeqElem()
		e.PutInt64(v)
	}
	e.EndSeq()
	buf := e.Finish()

	d := NewDecoder(buf)
	var got []int64
	for {
		more, err := d.NextSeqElem()
		require.NoError(t, err)
		if !more {
			break
		}
		v, err := d.GetInt64()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int64{-5, 0, 42}, got)
}

func TestMap_SortedKeyOrder_Roundtrip(t *testing.T) {
	e := NewEncoder()
	e.BeginMap()
	for _, k := range []string{"a", "b", "z"} {
		e.PutMapEntry()
		e.PutString(k)
		e.PutBool(true)
	}
	e.EndMap()
	buf := e.Finish()

	d := NewDecoder(buf)
	var keys []string
	for {
		more, err := d.NextMapEntry()
		require.NoError(t, err)
		if !more {
			break
		}
		k, err := d.GetString()
		require.NoError(t, err)
		_, err = d.GetBool()
		require.NoError(t, err)
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "z"}, keys)
}

func TestVariant_TagThenPayload(t *testing.T) {
	e := NewEncoder()
	e.PutVariantTag(3)
	e.PutString("payload")
	buf := e.Finish()

	d := NewDecoder(buf)
	tag, err := d.GetVariantTag()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), tag)

	payload, err := d.GetString()
	require.NoError(t, err)
	assert.Equal(t, "payload", payload)
}

func TestTuple_Concatenation_NoFraming(t *testing.T) {
	e := NewEncoder()
	e.PutInt8(1)
	e.PutBool(true)
	e.PutString("x")
	buf := e.Finish()

	d := NewDecoder(buf)
	n, err := d.GetInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(1), n)

	b, err := d.GetBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := d.GetString()
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestDecoder_DoesNotRejectTrailingBytes(t *testing.T) {
	e := NewEncoder()
	e.PutInt8(1)
	e.PutInt8(2)
	buf := e.Finish()

	d := NewDecoder(buf)
	n, err := d.GetInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(1), n)
	require.Equal(t, 1, len(d.Remaining()))

	second, err := d.GetInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(2), second)
	assert.Empty(t, d.Remaining())
}
