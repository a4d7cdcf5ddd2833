package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBigEndian_Implements(t *testing.T) {
	require.Implements(t, (*EndianEngine)(nil), BigEndian)
}

func TestBigEndian_PutAndRead(t *testing.T) {
	var v uint32 = 0x01020304
	buf := make([]byte, 4)
	BigEndian.PutUint32(buf, v)

	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf, "most significant byte first")
	require.Equal(t, v, BigEndian.Uint32(buf))
}

func TestBigEndian_Append(t *testing.T) {
	var v uint64 = 0x0102030405060708
	buf := BigEndian.AppendUint64(nil, v)

	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf)
	require.Equal(t, v, BigEndian.Uint64(buf))
}

func TestBigEndian_PreservesOrder(t *testing.T) {
	a := BigEndian.AppendUint32(nil, 100)
	b := BigEndian.AppendUint32(nil, 200)

	require.Negative(t, compareBytes(a, b))
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
