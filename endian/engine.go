// Package endian exposes the single byte order lexcode is allowed to use.
//
// Order-preservation only holds if multi-byte fields are written most
// significant byte first, so unlike a general-purpose binary package this
// one does not offer a little-endian choice: the codec's IEEE-754 float
// fields go through BigEndian. (The varint package writes its big-endian
// tail bytes itself and does not use this package.)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface, matching the append-oriented write path the
// encoder uses: buf = BigEndian.AppendUint64(buf, v) avoids the extra temporary
// and copy that PutUint64 into a scratch array would need.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// BigEndian is the one byte order lexcode's encoder and decoder use.
var BigEndian EndianEngine = binary.BigEndian
