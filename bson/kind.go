// Package bson implements the tagged document value model, size
// calculator, and wire codec described by the on-disk format: a 19-variant
// sum type, ordered documents and arrays, and a byte-exact little-endian
// binary encoding compatible with the BSON wire format.
//
// The package is organized as:
//   - kind.go, value.go, document.go, array.go — the value model
//   - objectid.go, decimal128.go, binary.go, regex.go — scalar payload types
//   - compare.go, equals.go, hash.go — total order, equality, hashing
//   - size.go — exact size precomputation
//   - writer.go, reader.go, spanreader.go, scanner.go — the wire codec
//   - sink.go — the ByteSink interface the codec is written against
//   - errors.go — the package's error taxonomy
package bson

// Kind identifies which of the 19 BSON variants a Value holds. Values match
// the on-the-wire type tag byte, so Kind(b) for a tag byte b read off the
// wire is always meaningful (or UnsupportedKind if b is not one of these).
type Kind byte

const (
	KindDouble              Kind = 0x01
	KindString              Kind = 0x02
	KindDocument            Kind = 0x03
	KindArray               Kind = 0x04
	KindBinary              Kind = 0x05
	KindObjectID            Kind = 0x07
	KindBoolean             Kind = 0x08
	KindDateTime            Kind = 0x09
	KindNull                Kind = 0x0A
	KindRegularExpression   Kind = 0x0B
	KindJavaScript          Kind = 0x0D
	KindSymbol              Kind = 0x0E
	KindJavaScriptWithScope Kind = 0x0F
	KindInt32               Kind = 0x10
	KindTimestamp           Kind = 0x11
	KindInt64               Kind = 0x12
	KindDecimal128          Kind = 0x13
	KindMinKey              Kind = 0xFF
	KindMaxKey              Kind = 0x7F
)

// String returns the human-readable variant name, used in error messages
// and by the DDL/entity-source emitters when describing a column's kind.
func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindDocument:
		return "Document"
	case KindArray:
		return "Array"
	case KindBinary:
		return "Binary"
	case KindObjectID:
		return "ObjectId"
	case KindBoolean:
		return "Boolean"
	case KindDateTime:
		return "DateTime"
	case KindNull:
		return "Null"
	case KindRegularExpression:
		return "RegularExpression"
	case KindJavaScript:
		return "JavaScript"
	case KindSymbol:
		return "Symbol"
	case KindJavaScriptWithScope:
		return "JavaScriptWithScope"
	case KindInt32:
		return "Int32"
	case KindTimestamp:
		return "Timestamp"
	case KindInt64:
		return "Int64"
	case KindDecimal128:
		return "Decimal128"
	case KindMinKey:
		return "MinKey"
	case KindMaxKey:
		return "MaxKey"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether the kind is one of the four numeric variants
// (Int32, Int64, Double, Decimal128), which compare and convert by
// mathematical value rather than by representation.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt32, KindInt64, KindDouble, KindDecimal128:
		return true
	default:
		return false
	}
}

// orderRank returns this kind's position in the cross-kind total order:
//
//	Null < MinKey < Numeric < String/Symbol < Document < Array < Binary <
//	ObjectId < Boolean < DateTime < Timestamp < Regex < JS < JSWithScope < MaxKey
func (k Kind) orderRank() int {
	switch k {
	case KindNull:
		return 0
	case KindMinKey:
		return 1
	case KindInt32, KindInt64, KindDouble, KindDecimal128:
		return 2
	case KindString, KindSymbol:
		return 3
	case KindDocument:
		return 4
	case KindArray:
		return 5
	case KindBinary:
		return 6
	case KindObjectID:
		return 7
	case KindBoolean:
		return 8
	case KindDateTime:
		return 9
	case KindTimestamp:
		return 10
	case KindRegularExpression:
		return 11
	case KindJavaScript:
		return 12
	case KindJavaScriptWithScope:
		return 13
	case KindMaxKey:
		return 14
	default:
		return 15
	}
}
