package bson

import (
	"time"
)

// Value is the tagged union of all 19 BSON variants. Only the fields
// relevant to Kind are meaningful; Value is a small value type (not a
// pointer) for scalars, and holds a pointer for the two composite kinds
// (Document, Array) so that sharing an unchanged subtree across a mutator
// call is just a pointer copy.
//
// Value is immutable after construction: there is no setter on Value
// itself. Document.Set and Array.Set return a new Document/Array.
type Value struct {
	kind Kind

	i32 int32
	i64 int64
	f64 float64
	dec Decimal128
	b   bool
	t   time.Time
	str string // String, Symbol, JavaScript code
	oid ObjectID
	bin Binary
	re  Regex

	jsScope *Document // non-nil only for KindJavaScriptWithScope

	doc *Document
	arr *Array
}

// Singletons for the zero-payload kinds, plus interned booleans.
var (
	Null   = Value{kind: KindNull}
	MinKey = Value{kind: KindMinKey}
	MaxKey = Value{kind: KindMaxKey}
	True   = Value{kind: KindBoolean, b: true}
	False  = Value{kind: KindBoolean, b: false}
)

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds the Null singleton.
func (v Value) IsNull() bool { return v.kind == KindNull }

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func Int32(n int32) Value { return Value{kind: KindInt32, i32: n} }
func Int64(n int64) Value { return Value{kind: KindInt64, i64: n} }
func Double(f float64) Value { return Value{kind: KindDouble, f64: f} }

func Decimal(d Decimal128) Value { return Value{kind: KindDecimal128, dec: d} }

// DateTime stores t truncated to millisecond precision, matching the wire
// representation.
func DateTime(t time.Time) Value {
	ms := t.UnixMilli()
	return Value{kind: KindDateTime, i64: ms, t: time.UnixMilli(ms).UTC()}
}

// Timestamp wraps a 64-bit opaque timestamp value; unlike DateTime,
// the payload has no defined interpretation at this layer.
func Timestamp(v int64) Value { return Value{kind: KindTimestamp, i64: v} }

func String(s string) Value { return Value{kind: KindString, str: s} }
func Symbol(s string) Value { return Value{kind: KindSymbol, str: s} }
func JavaScript(code string) Value { return Value{kind: KindJavaScript, str: code} }

// JavaScriptWithScope pairs a code string with a scope document.
func JavaScriptWithScope(code string, scope *Document) Value {
	if scope == nil {
		scope = NewDocument()
	}
	return Value{kind: KindJavaScriptWithScope, str: code, jsScope: scope}
}

func ObjectIDValue(id ObjectID) Value { return Value{kind: KindObjectID, oid: id} }

func BinaryValue(b Binary) Value { return Value{kind: KindBinary, bin: b} }

func RegexValue(r Regex) Value { return Value{kind: KindRegularExpression, re: r} }

// DocumentValue wraps a *Document as a Value. A nil doc is treated as an
// empty document, never as Null.
func DocumentValue(doc *Document) Value {
	if doc == nil {
		doc = NewDocument()
	}
	return Value{kind: KindDocument, doc: doc}
}

// ArrayValue wraps a *Array as a Value. A nil arr is treated as an empty
// array.
func ArrayValue(arr *Array) Value {
	if arr == nil {
		arr = NewArray()
	}
	return Value{kind: KindArray, arr: arr}
}

// AsInt32 returns the Int32 payload; only meaningful when Kind() ==
// KindInt32.
func (v Value) AsInt32() int32 { return v.i32 }

// AsInt64 returns the Int64/DateTime/Timestamp payload.
func (v Value) AsInt64() int64 { return v.i64 }

// AsFloat64 returns the Double payload.
func (v Value) AsFloat64() float64 { return v.f64 }

// AsDecimal128 returns the Decimal128 payload.
func (v Value) AsDecimal128() Decimal128 { return v.dec }

// AsBool returns the Boolean payload.
func (v Value) AsBool() bool { return v.b }

// AsTime returns the DateTime payload as a time.Time.
func (v Value) AsTime() time.Time { return v.t }

// AsString returns the String/Symbol/JavaScript payload.
func (v Value) AsString() string { return v.str }

// AsObjectID returns the ObjectID payload.
func (v Value) AsObjectID() ObjectID { return v.oid }

// AsBinary returns the Binary payload.
func (v Value) AsBinary() Binary { return v.bin }

// AsRegex returns the RegularExpression payload.
func (v Value) AsRegex() Regex { return v.re }

// AsScope returns the scope document of a JavaScriptWithScope value.
func (v Value) AsScope() *Document { return v.jsScope }

// AsDocument returns the Document payload. Meaningful only when Kind() ==
// KindDocument.
func (v Value) AsDocument() *Document { return v.doc }

// AsArray returns the Array payload. Meaningful only when Kind() ==
// KindArray.
func (v Value) AsArray() *Array { return v.arr }

// numericValue returns the value's mathematical value as a float64 for any
// numeric kind, used by CompareTo across numeric kinds.
func (v Value) numericValue() float64 {
	switch v.kind {
	case KindInt32:
		return float64(v.i32)
	case KindInt64:
		return float64(v.i64)
	case KindDouble:
		return v.f64
	case KindDecimal128:
		return v.dec.Float64()
	default:
		return 0
	}
}
