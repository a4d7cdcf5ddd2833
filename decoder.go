package lexcode

import (
	"math"
	"unicode/utf8"

	"github.com/josefs/lexcode/endian"
	"github.com/josefs/lexcode/errs"
	"github.com/josefs/lexcode/varint"
)

// Decoder holds a borrowed byte slice and a monotonically advancing cursor.
// It is the dual of Encoder: every Put method there has a matching Get
// method here that inverts its transform.
//
// Decoder never rejects trailing bytes: a decode call consumes exactly the
// bytes its shape requires and leaves the rest for the caller, which lets
// lexcode values be composed as fragments of a larger key.
type Decoder struct {
	data []byte
	pos  int

	rawByteMode bool
}

// NewDecoder returns a Decoder positioned at the start of data. The slice
// is borrowed, not copied; it must outlive the Decoder.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Pos returns the current cursor offset into the original input.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the unconsumed tail of the input.
func (d *Decoder) Remaining() []byte { return d.data[d.pos:] }

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, errs.ErrEOF
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// GetBool reads a bool tag byte.
func (d *Decoder) GetBool() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, errs.ErrInvalidEncoding
	}
}

// GetUint8 reads an 8-bit unsigned value, respecting raw-byte-mode.
func (d *Decoder) GetUint8() (uint8, error) {
	if d.rawByteMode {
		b, err := d.readByte()
		return b, err
	}
	v, consumed, err := varint.DecodeUint64(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, errs.ErrIntegerOverflow
	}
	d.pos += consumed
	return uint8(v), nil
}

func (d *Decoder) getUintWidth(max uint64) (uint64, error) {
	v, consumed, err := varint.DecodeUint64(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, errs.ErrIntegerOverflow
	}
	d.pos += consumed
	return v, nil
}

func (d *Decoder) GetUint16() (uint16, error) {
	v, err := d.getUintWidth(math.MaxUint16)
	return uint16(v), err
}

func (d *Decoder) GetUint32() (uint32, error) {
	v, err := d.getUintWidth(math.MaxUint32)
	return uint32(v), err
}

func (d *Decoder) GetUint64() (uint64, error) {
	return d.getUintWidth(math.MaxUint64)
}

// GetUint128 reads a full-width unsigned varint with no overflow check.
func (d *Decoder) GetUint128() (varint.Uint128, error) {
	v, consumed, err := varint.DecodeUint(d.data[d.pos:])
	if err != nil {
		return varint.Uint128{}, err
	}
	d.pos += consumed
	return v, nil
}

func (d *Decoder) getIntWidth(min, max int64) (int64, error) {
	v, consumed, err := varint.DecodeInt64(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, errs.ErrIntegerOverflow
	}
	d.pos += consumed
	return v, nil
}

func (d *Decoder) GetInt8() (int8, error) {
	v, err := d.getIntWidth(math.MinInt8, math.MaxInt8)
	return int8(v), err
}

func (d *Decoder) GetInt16() (int16, error) {
	v, err := d.getIntWidth(math.MinInt16, math.MaxInt16)
	return int16(v), err
}

func (d *Decoder) GetInt32() (int32, error) {
	v, err := d.getIntWidth(math.MinInt32, math.MaxInt32)
	return int32(v), err
}

func (d *Decoder) GetInt64() (int64, error) {
	return d.getIntWidth(math.MinInt64, math.MaxInt64)
}

// GetInt128 reads a full-width signed varint with no overflow check.
func (d *Decoder) GetInt128() (varint.Int128, error) {
	v, consumed, err := varint.DecodeSint(d.data[d.pos:])
	if err != nil {
		return varint.Int128{}, err
	}
	d.pos += consumed
	return v, nil
}

// GetChar reads an unsigned varint code point and validates it as a
// Unicode scalar value (excluding the surrogate range).
func (d *Decoder) GetChar() (rune, error) {
	v, consumed, err := varint.DecodeUint64(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, errs.ErrInvalidEncoding
	}
	d.pos += consumed
	return rune(v), nil
}

// GetFloat32 inverts PutFloat32's sign-transform.
func (d *Decoder) GetFloat32() (float32, error) {
	if len(d.data)-d.pos < 4 {
		return 0, errs.ErrEOF
	}
	bits := endian.BigEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	if bits&0x8000_0000 != 0 {
		bits ^= 0x8000_0000
	} else {
		bits = ^bits
	}
	return math.Float32frombits(bits), nil
}

// GetFloat64 inverts PutFloat64's sign-transform.
func (d *Decoder) GetFloat64() (float64, error) {
	if len(d.data)-d.pos < 8 {
		return 0, errs.ErrEOF
	}
	bits := endian.BigEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	if bits&0x8000_0000_0000_0000 != 0 {
		bits ^= 0x8000_0000_0000_0000
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits), nil
}

func (d *Decoder) getSentinelFramed(sentinel byte) ([]byte, error) {
	var out []byte
	for {
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if b != sentinel {
			out = append(out, b)
			continue
		}
		tag, err := d.readByte()
		if err != nil {
			return nil, err
		}
		switch tag {
		case escapeTerminator:
			return out, nil
		case escapeLiteral:
			out = append(out, sentinel)
		default:
			return nil, errs.ErrInvalidEncoding
		}
	}
}

// GetString reads a sentinel-framed UTF-8 string.
func (d *Decoder) GetString() (string, error) {
	b, err := d.getSentinelFramed(stringSentinel)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.ErrInvalidEncoding
	}
	return string(b), nil
}

// GetBytes reads a sentinel-framed byte string.
func (d *Decoder) GetBytes() ([]byte, error) {
	return d.getSentinelFramed(byteSentinel)
}

// GetOptionTag reads the option discriminant and reports whether a payload
// follows.
func (d *Decoder) GetOptionTag() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, errs.ErrInvalidEncoding
	}
}

// GetUnit consumes nothing; it exists for symmetry with PutUnit.
func (d *Decoder) GetUnit() {}

// NextSeqElem reports whether another sequence element follows, consuming
// its framing tag. When it returns false the sequence is finished.
func (d *Decoder) NextSeqElem() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case seqEndTag:
		return false, nil
	case seqMoreTag:
		return true, nil
	default:
		return false, errs.ErrInvalidEncoding
	}
}

// NextMapEntry is NextSeqElem's map-framing counterpart.
func (d *Decoder) NextMapEntry() (bool, error) {
	return d.NextSeqElem()
}

// GetVariantTag reads a tagged variant's discriminant.
func (d *Decoder) GetVariantTag() (uint64, error) {
	return d.GetUint64()
}

// OpenFixedBytes enters raw-byte-mode for the caller's subsequent GetUint8
// calls. CloseFixedBytes must follow once the block's bytes are consumed.
func (d *Decoder) OpenFixedBytes() error {
	if d.rawByteMode {
		return errs.Messagef("lexcode: nested fixed-byte block is not supported")
	}
	d.rawByteMode = true
	return nil
}

// CloseFixedBytes leaves raw-byte-mode.
func (d *Decoder) CloseFixedBytes() {
	d.rawByteMode = false
}

// GetFixedBytes reads n verbatim bytes with zero framing overhead.
func (d *Decoder) GetFixedBytes(n int) ([]byte, error) {
	if err := d.OpenFixedBytes(); err != nil {
		return nil, err
	}
	defer d.CloseFixedBytes()

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := d.GetUint8()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
