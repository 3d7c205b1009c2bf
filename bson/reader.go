package bson

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// DecodeDocument fully materializes a Document from data, returning the
// document and the number of bytes consumed (the declared int32 length).
// Every nested Document/Array is likewise fully materialized: this is the
// "streaming" full-decode path, as opposed to SpanDocument (zero-copy)
// or Scan (single-field).
func DecodeDocument(data []byte) (*Document, int, error) {
	return decodeDocumentLike(data)
}

// DecodeArray fully materializes an Array from data (same wire shape as a
// Document, with integer string keys), returning the array and bytes
// consumed.
func DecodeArray(data []byte) (*Array, int, error) {
	doc, n, err := decodeDocumentLike(data)
	if err != nil {
		return nil, 0, err
	}
	return &Array{values: doc.values}, n, nil
}

func decodeDocumentLike(data []byte) (*Document, int, error) {
	declared, err := readInt32At(data, 0)
	if err != nil {
		return nil, 0, err
	}
	if declared < 5 || int(declared) > len(data) {
		return nil, 0, wrapError(ErrKindSizeMismatch, "declared document length out of bounds", nil)
	}

	doc := NewDocument()
	pos := 4
	end := int(declared) - 1 // position of the trailing NUL
	for pos < end {
		kind := Kind(data[pos])
		pos++
		key, keyLen, err := readCStringAt(data, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += keyLen

		v, consumed, err := decodeValuePayload(kind, data[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += consumed
		doc = doc.Set(key, v)
	}
	if pos != end {
		return nil, 0, wrapError(ErrKindSizeMismatch, "element boundaries overran declared length", nil)
	}
	if data[end] != 0x00 {
		return nil, 0, newError(ErrKindMalformedValue, "missing document terminator")
	}
	return doc, int(declared), nil
}

// decodeValuePayload decodes the payload following a (type byte, key)
// element header and returns the Value plus the number of bytes consumed
// from data (data starts at the first payload byte).
func decodeValuePayload(kind Kind, data []byte) (Value, int, error) {
	switch kind {
	case KindNull:
		return Null, 0, nil
	case KindMinKey:
		return MinKey, 0, nil
	case KindMaxKey:
		return MaxKey, 0, nil
	case KindBoolean:
		if len(data) < 1 {
			return Value{}, 0, ErrUnexpectedEnd
		}
		return Bool(data[0] != 0), 1, nil
	case KindInt32:
		n, err := readInt32At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Int32(n), 4, nil
	case KindInt64:
		n, err := readInt64At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Int64(n), 8, nil
	case KindDateTime:
		n, err := readInt64At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{kind: KindDateTime, i64: n}, 8, nil
	case KindTimestamp:
		n, err := readInt64At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Timestamp(n), 8, nil
	case KindDouble:
		f, err := readFloat64At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Double(f), 8, nil
	case KindDecimal128:
		if len(data) < 16 {
			return Value{}, 0, ErrUnexpectedEnd
		}
		var d Decimal128
		copy(d[:], data[:16])
		return Decimal(d), 16, nil
	case KindObjectID:
		if len(data) < 12 {
			return Value{}, 0, ErrUnexpectedEnd
		}
		var id ObjectID
		copy(id[:], data[:12])
		return ObjectIDValue(id), 12, nil
	case KindString:
		s, n, err := readBSONStringAt(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return String(s), n, nil
	case KindSymbol:
		s, n, err := readBSONStringAt(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return Symbol(s), n, nil
	case KindJavaScript:
		s, n, err := readBSONStringAt(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		return JavaScript(s), n, nil
	case KindBinary:
		n, err := readInt32At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		if n < 0 || 5+int(n) > len(data) {
			return Value{}, 0, wrapError(ErrKindSizeMismatch, "binary length out of bounds", nil)
		}
		subtype := BinarySubtype(data[4])
		payload := make([]byte, n)
		copy(payload, data[5:5+int(n)])
		b, err := NewBinary(subtype, payload)
		if err != nil {
			return Value{}, 0, err
		}
		return BinaryValue(b), 5 + int(n), nil
	case KindRegularExpression:
		pattern, pn, err := readCStringAt(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		options, on, err := readCStringAt(data, pn)
		if err != nil {
			return Value{}, 0, err
		}
		return RegexValue(Regex{Pattern: pattern, Options: options}), pn + on, nil
	case KindDocument:
		doc, n, err := decodeDocumentLike(data)
		if err != nil {
			return Value{}, 0, err
		}
		return DocumentValue(doc), n, nil
	case KindArray:
		arr, n, err := DecodeArray(data)
		if err != nil {
			return Value{}, 0, err
		}
		return ArrayValue(arr), n, nil
	case KindJavaScriptWithScope:
		total, err := readInt32At(data, 0)
		if err != nil {
			return Value{}, 0, err
		}
		if total < 0 || int(total) > len(data) {
			return Value{}, 0, wrapError(ErrKindSizeMismatch, "javascriptWithScope length out of bounds", nil)
		}
		code, codeLen, err := readBSONStringAt(data, 4)
		if err != nil {
			return Value{}, 0, err
		}
		scope, scopeLen, err := decodeDocumentLike(data[4+codeLen:])
		if err != nil {
			return Value{}, 0, err
		}
		if 4+codeLen+scopeLen != int(total) {
			return Value{}, 0, wrapError(ErrKindSizeMismatch, "javascriptWithScope inner sizes disagree with declared length", nil)
		}
		return JavaScriptWithScope(code, scope), int(total), nil
	default:
		return Value{}, 0, newError(ErrKindUnsupportedKind, kind.String())
	}
}

func readInt32At(data []byte, at int) (int32, error) {
	if at+4 > len(data) {
		return 0, ErrUnexpectedEnd
	}
	return int32(binary.LittleEndian.Uint32(data[at : at+4])), nil
}

func readInt64At(data []byte, at int) (int64, error) {
	if at+8 > len(data) {
		return 0, ErrUnexpectedEnd
	}
	return int64(binary.LittleEndian.Uint64(data[at : at+8])), nil
}

func readFloat64At(data []byte, at int) (float64, error) {
	if at+8 > len(data) {
		return 0, ErrUnexpectedEnd
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data[at : at+8])), nil
}

// readCStringAt reads a NUL-terminated string starting at data[at] and
// returns it along with the number of bytes consumed (including the NUL).
func readCStringAt(data []byte, at int) (string, int, error) {
	for i := at; i < len(data); i++ {
		if data[i] == 0x00 {
			s := string(data[at:i])
			if !utf8.ValidString(s) {
				return "", 0, ErrInvalidUTF8
			}
			return s, i - at + 1, nil
		}
	}
	return "", 0, ErrUnexpectedEnd
}

// readBSONStringAt reads a length-prefixed BSON string starting at
// data[at] and returns it along with the total bytes consumed (4 + body +
// NUL).
func readBSONStringAt(data []byte, at int) (string, int, error) {
	n, err := readInt32At(data, at)
	if err != nil {
		return "", 0, err
	}
	if n < 1 || at+4+int(n) > len(data) {
		return "", 0, wrapError(ErrKindSizeMismatch, "string length out of bounds", nil)
	}
	body := data[at+4 : at+4+int(n)-1]
	if data[at+4+int(n)-1] != 0x00 {
		return "", 0, newError(ErrKindMalformedValue, "string missing NUL terminator")
	}
	if !utf8.Valid(body) {
		return "", 0, ErrInvalidUTF8
	}
	return string(body), 4 + int(n), nil
}
