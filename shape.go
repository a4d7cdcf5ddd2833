package lexcode

import (
	"fmt"

	"github.com/josefs/lexcode/errs"
)

// ShapeKind names the structural category a Shape describes, for
// Decoder.SkipUnknown.
type ShapeKind int

const (
	ShapeBool ShapeKind = iota
	ShapeUint
	ShapeInt
	ShapeUint128
	ShapeInt128
	ShapeFloat32
	ShapeFloat64
	ShapeChar
	ShapeString
	ShapeBytes
	ShapeOption
	ShapeUnit
	ShapeSeq
	ShapeMap
	ShapeTuple
	ShapeVariant
	ShapeFixedBytes
)

// Shape describes the static wire shape of a value a caller wants to skip
// without decoding it into a Go value — the structural counterpart of the
// type information reflection would otherwise supply. It exists for
// callers composing lexcode fragments who know a field's shape (say, from
// a schema registry) but have no use for its materialized value: trailing
// bytes are never rejected (see Decoder.Remaining), but a field in the
// *middle* of a composite key still needs its exact length consumed so the
// cursor lands on the next field.
type Shape struct {
	Kind ShapeKind

	// FixedLen is the block length for ShapeFixedBytes.
	FixedLen int

	// Elem is the element shape for ShapeSeq, or the payload shape for
	// ShapeOption.
	Elem *Shape

	// Key and Elem together describe ShapeMap (key shape, value shape).
	Key *Shape

	// Fields describes ShapeTuple's fixed-arity field shapes in order.
	Fields []Shape

	// Variants maps a tagged variant's discriminant to its payload shape.
	// A tag with no entry is a unit variant (no payload).
	Variants map[uint64]Shape
}

// SkipUnknown advances the cursor past one value of the given shape
// without materializing it. It is the shape-driven analogue of decoding
// into `any`, which spec.md's Unsupported error kind otherwise forbids:
// the shape must be supplied by the caller, never inferred from the bytes.
func (d *Decoder) SkipUnknown(shape Shape) error {
	switch shape.Kind {
	case ShapeBool:
		_, err := d.GetBool()
		return err
	case ShapeUint:
		_, err := d.GetUint64()
		return err
	case ShapeInt:
		_, err := d.GetInt64()
		return err
	case ShapeUint128:
		_, err := d.GetUint128()
		return err
	case ShapeInt128:
		_, err := d.GetInt128()
		return err
	case ShapeFloat32:
		_, err := d.GetFloat32()
		return err
	case ShapeFloat64:
		_, err := d.GetFloat64()
		return err
	case ShapeChar:
		_, err := d.GetChar()
		return err
	case ShapeString:
		_, err := d.GetString()
		return err
	case ShapeBytes:
		_, err := d.GetBytes()
		return err
	case ShapeUnit:
		return nil
	case ShapeFixedBytes:
		_, err := d.GetFixedBytes(shape.FixedLen)
		return err
	case ShapeOption:
		has, err := d.GetOptionTag()
		if err != nil {
			return err
		}
		if !has {
			return nil
		}
		if shape.Elem == nil {
			return errs.Messagef("lexcode: ShapeOption.Elem is required once a value is present")
		}
		return d.SkipUnknown(*shape.Elem)
	case ShapeSeq:
		if shape.Elem == nil {
			return errs.Messagef("lexcode: ShapeSeq.Elem is required")
		}
		for {
			more, err := d.NextSeqElem()
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
			if err := d.SkipUnknown(*shape.Elem); err != nil {
				return err
			}
		}
	case ShapeMap:
		if shape.Key == nil || shape.Elem == nil {
			return errs.Messagef("lexcode: ShapeMap.Key and Elem are both required")
		}
		for {
			more, err := d.NextMapEntry()
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
			if err := d.SkipUnknown(*shape.Key); err != nil {
				return err
			}
			if err := d.SkipUnknown(*shape.Elem); err != nil {
				return err
			}
		}
	case ShapeTuple:
		for _, f := range shape.Fields {
			if err := d.SkipUnknown(f); err != nil {
				return err
			}
		}
		return nil
	case ShapeVariant:
		tag, err := d.GetVariantTag()
		if err != nil {
			return err
		}
		payload, ok := shape.Variants[tag]
		if !ok {
			return nil // unit variant: no payload to skip
		}
		return d.SkipUnknown(payload)
	default:
		return fmt.Errorf("%w: unknown shape kind %d", errs.ErrUnsupported, shape.Kind)
	}
}
