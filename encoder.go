package lexcode

import (
	"math"

	"github.com/josefs/lexcode/endian"
	"github.com/josefs/lexcode/errs"
	"github.com/josefs/lexcode/internal/options"
	"github.com/josefs/lexcode/internal/pool"
	"github.com/josefs/lexcode/varint"
)

// stringSentinel terminates a UTF-8 string field.
// byteSentinel terminates a byte-string field; chosen below stringSentinel's
// complement so raw bytes below it still sort naturally ahead of it.
const (
	stringSentinel byte = 0x00
	byteSentinel   byte = 0x7F

	escapeLiteral    byte = 0x01
	escapeTerminator byte = 0x00

	seqMoreTag byte = 0x01
	seqEndTag  byte = 0x00
)

// Encoder accumulates the order-preserving byte encoding of a value.
//
// An Encoder is not safe for concurrent use; each call to NewEncoder owns a
// buffer drawn from a pool that must be returned with Release (or consumed
// and returned in one step with Finish) once the caller is done with it.
type Encoder struct {
	buf     *pool.ByteBuffer
	bufPool *pool.ByteBufferPool
	bufSize int
	gotBuf  bool

	// rawByteMode suppresses varint framing for PutUint8 while a fixed-size
	// raw byte block is open. Scoped strictly to the block's lifetime.
	rawByteMode bool
}

// WithBufferSize pre-sizes the Encoder's backing buffer instead of using
// the pooled default size, for callers who know their key shape is larger
// (or much smaller) than a typical composite key.
func WithBufferSize(n int) options.Option[*Encoder] {
	return options.NoError(func(e *Encoder) { e.bufSize = n })
}

// WithPool makes the Encoder draw its buffer from p instead of the
// package-default pool, for callers encoding many small keys back-to-back
// (e.g. inside a B-tree node splitter) who want a pool scoped to that work.
func WithPool(p *pool.ByteBufferPool) options.Option[*Encoder] {
	return options.NoError(func(e *Encoder) { e.bufPool = p })
}

// NewEncoder returns an Encoder, applying any options in order.
func NewEncoder(opts ...options.Option[*Encoder]) *Encoder {
	e := &Encoder{}
	_ = options.Apply(e, opts...) // options here never return an error
	e.ensureBuf()
	return e
}

func (e *Encoder) ensureBuf() {
	if e.gotBuf {
		return
	}
	switch {
	case e.bufSize > 0:
		e.buf = pool.NewByteBuffer(e.bufSize)
	case e.bufPool != nil:
		e.buf = e.bufPool.Get()
	default:
		e.buf = pool.GetKeyBuffer()
	}
	e.gotBuf = true
}

// Bytes returns the bytes accumulated so far. The returned slice is only
// valid until the next call that grows the buffer or until Release/Finish.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Release returns the Encoder's buffer to its pool without copying.
// Callers that still need the encoded bytes must copy them first, or call
// Finish instead.
func (e *Encoder) Release() {
	if e.buf == nil {
		return
	}
	if e.bufPool != nil {
		e.bufPool.Put(e.buf)
	} else {
		pool.PutKeyBuffer(e.buf)
	}
	e.buf = nil
}

// Finish copies the accumulated bytes out, returns the Encoder's buffer to
// its pool, and returns the caller-owned copy. After Finish the Encoder
// must not be used again.
func (e *Encoder) Finish() []byte {
	out := make([]byte, len(e.buf.Bytes()))
	copy(out, e.buf.Bytes())
	e.Release()
	return out
}

// PutBool writes a single tag byte: 0x00 for false, 0x01 for true.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.buf.MustWriteByte(0x01)
	} else {
		e.buf.MustWriteByte(0x00)
	}
}

// PutUint8 writes an 8-bit unsigned value. Inside an open fixed-size raw
// byte block it is written verbatim; otherwise it goes through the
// unsigned varint codec like any other width.
func (e *Encoder) PutUint8(v uint8) {
	if e.rawByteMode {
		e.buf.MustWriteByte(v)
		return
	}
	e.buf.B = varint.EncodeUint64(uint64(v), e.buf.B)
}

func (e *Encoder) PutUint16(v uint16) { e.buf.B = varint.EncodeUint64(uint64(v), e.buf.B) }
func (e *Encoder) PutUint32(v uint32) { e.buf.B = varint.EncodeUint64(uint64(v), e.buf.B) }
func (e *Encoder) PutUint64(v uint64) { e.buf.B = varint.EncodeUint64(v, e.buf.B) }

// PutUint128 writes a 128-bit unsigned magnitude using the same unsigned
// varint codec, just with the wider Uint128 entry point.
func (e *Encoder) PutUint128(v varint.Uint128) {
	e.buf.B = varint.EncodeUint(v, e.buf.B)
}

func (e *Encoder) PutInt8(v int8)   { e.buf.B = varint.EncodeInt64(int64(v), e.buf.B) }
func (e *Encoder) PutInt16(v int16) { e.buf.B = varint.EncodeInt64(int64(v), e.buf.B) }
func (e *Encoder) PutInt32(v int32) { e.buf.B = varint.EncodeInt64(int64(v), e.buf.B) }
func (e *Encoder) PutInt64(v int64) { e.buf.B = varint.EncodeInt64(v, e.buf.B) }

// PutInt128 writes a 128-bit signed value using the signed varint codec.
func (e *Encoder) PutInt128(v varint.Int128) {
	e.buf.B = varint.EncodeSint(v, e.buf.B)
}

// PutChar writes a Unicode scalar value as an unsigned varint of its code
// point.
func (e *Encoder) PutChar(r rune) {
	e.buf.B = varint.EncodeUint64(uint64(r), e.buf.B)
}

// PutFloat32 writes a 4-byte order-preserving transform of v's IEEE-754 bit
// pattern: the sign bit is XOR'd to 1 for nonnegative values, and the whole
// word is bit-complemented for negative values.
func (e *Encoder) PutFloat32(v float32) {
	bits := math.Float32bits(v)
	if bits&0x8000_0000 == 0 {
		bits ^= 0x8000_0000
	} else {
		bits = ^bits
	}
	e.buf.B = endian.BigEndian.AppendUint32(e.buf.B, bits)
}

// PutFloat64 is PutFloat32's 8-byte counterpart.
func (e *Encoder) PutFloat64(v float64) {
	bits := math.Float64bits(v)
	if bits&0x8000_0000_0000_0000 == 0 {
		bits ^= 0x8000_0000_0000_0000
	} else {
		bits = ^bits
	}
	e.buf.B = endian.BigEndian.AppendUint64(e.buf.B, bits)
}

// PutString writes s as UTF-8 bytes, sentinel-framed with 0x00.
func (e *Encoder) PutString(s string) {
	e.putSentinelFramed([]byte(s), stringSentinel)
}

// PutBytes writes b verbatim, sentinel-framed with 0x7F.
func (e *Encoder) PutBytes(b []byte) {
	e.putSentinelFramed(b, byteSentinel)
}

func (e *Encoder) putSentinelFramed(data []byte, sentinel byte) {
	for _, b := range data {
		e.buf.MustWriteByte(b)
		if b == sentinel {
			e.buf.MustWriteByte(escapeLiteral)
		}
	}
	e.buf.MustWriteByte(sentinel)
	e.buf.MustWriteByte(escapeTerminator)
}

// PutNone writes the option "no value" tag.
func (e *Encoder) PutNone() { e.buf.MustWriteByte(0x00) }

// PutSome writes the option "value follows" tag; the caller encodes the
// payload immediately afterward.
func (e *Encoder) PutSome() { e.buf.MustWriteByte(0x01) }

// PutUnit writes nothing: the unit value has a zero-byte encoding.
func (e *Encoder) PutUnit() {}

// BeginSeq marks the start of a variable-length sequence. It writes no
// bytes; the framing lives entirely in PutSeqElem/EndSeq.
func (e *Encoder) BeginSeq() {}

// PutSeqElem writes the per-element tag that precedes an encoded element.
// Call it once before encoding each element, then call EndSeq once after
// the last element.
func (e *Encoder) PutSeqElem() { e.buf.MustWriteByte(seqMoreTag) }

// EndSeq writes the sequence terminator.
func (e *Encoder) EndSeq() { e.buf.MustWriteByte(seqEndTag) }

// BeginMap, PutMapEntry and EndMap reuse the sequence framing: the caller
// must iterate entries in ascending key order for the map's encoding to be
// order-preserving, and must encode the key followed by the value after
// each PutMapEntry.
func (e *Encoder) BeginMap() {}
func (e *Encoder) PutMapEntry() { e.buf.MustWriteByte(seqMoreTag) }
func (e *Encoder) EndMap()      { e.buf.MustWriteByte(seqEndTag) }

// PutVariantTag writes a tagged variant's discriminant as an unsigned
// varint. The caller encodes the variant's payload shape immediately after.
func (e *Encoder) PutVariantTag(tag uint64) {
	e.buf.B = varint.EncodeUint64(tag, e.buf.B)
}

// OpenFixedBytes enters raw-byte-mode: every PutUint8 call until
// CloseFixedBytes is written as one literal byte with no varint framing, so
// a block of n such calls encodes to exactly n bytes. The mode stays on
// until CloseFixedBytes is called.
func (e *Encoder) OpenFixedBytes() error {
	if e.rawByteMode {
		return errs.Messagef("lexcode: nested fixed-byte block is not supported")
	}
	e.rawByteMode = true
	return nil
}

// CloseFixedBytes leaves raw-byte-mode.
func (e *Encoder) CloseFixedBytes() {
	e.rawByteMode = false
}

// PutFixedBytes is the convenience form of OpenFixedBytes/PutUint8/
// CloseFixedBytes for a block whose contents are already a contiguous
// slice: it writes data verbatim with zero overhead.
func (e *Encoder) PutFixedBytes(data []byte) error {
	if err := e.OpenFixedBytes(); err != nil {
		return err
	}
	for _, b := range data {
		e.PutUint8(b)
	}
	e.CloseFixedBytes()
	return nil
}
