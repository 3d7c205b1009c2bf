package convert

import (
	"math"
	"strconv"

	"github.com/j4587698/tinydb/bson"
)

// EnumInteger constrains the defined integer types an enum may be backed
// by: Int32 or a widened underlying integral kind.
type EnumInteger interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// EnumToBSON encodes an enum value as Int32, the default numeric coercion,
// widening to Int64 only for an ordinal outside the int32 range.
// This is the path callers reach for unless they explicitly opt into
// string-valued encoding via EnumToBSONString.
func EnumToBSON[E EnumInteger](v E) bson.Value {
	n := int64(v)
	if n < math.MinInt32 || n > math.MaxInt32 {
		return bson.Int64(n)
	}
	return bson.Int32(int32(n))
}

// EnumToBSONString is the opt-in string-valued enum entry point. names maps
// each valid ordinal to its label; an ordinal absent from names is an
// UnsupportedKind error rather than a silent numeric fallback.
func EnumToBSONString[E EnumInteger](v E, names map[E]string) (bson.Value, error) {
	label, ok := names[v]
	if !ok {
		return bson.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "enum ordinal has no string label")
	}
	return bson.String(label), nil
}

// ConvertEnum decodes a BSON numeric value back into enum type E via
// checked widening (Overflow if the value doesn't fit E).
func ConvertEnum[E EnumInteger](v bson.Value) (E, error) {
	var n int64
	switch v.Kind() {
	case bson.KindInt32:
		n = int64(v.AsInt32())
	case bson.KindInt64:
		n = v.AsInt64()
	case bson.KindDouble:
		n = int64(v.AsFloat64())
	default:
		return 0, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a numeric BSON kind")
	}
	e := E(n)
	if int64(e) != n {
		return 0, bson.NewError(bson.ErrKindOverflow, "enum ordinal out of range for target type")
	}
	return e, nil
}

// ConvertEnumString is the opt-in string-valued decode entry point,
// looking the wire string up in names (label -> ordinal) instead of
// requiring a numeric kind.
func ConvertEnumString[E EnumInteger](v bson.Value, names map[string]E) (E, error) {
	if v.Kind() != bson.KindString {
		return 0, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a String")
	}
	e, ok := names[v.AsString()]
	if !ok {
		return 0, bson.NewError(bson.ErrKindFormat, "unrecognized enum label "+strconv.Quote(v.AsString()))
	}
	return e, nil
}
