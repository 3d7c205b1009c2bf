package bson

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EncodeDocument serializes d to a freshly allocated, exactly-sized byte
// slice. The size is computed once via DocumentSize and the buffer is
// allocated up front, so WriteDocument never grows it.
func EncodeDocument(d *Document) ([]byte, error) {
	buf := make([]byte, 0, DocumentSize(d))
	sink := &sliceSink{buf: buf}
	if err := WriteDocument(sink, d); err != nil {
		return nil, err
	}
	return sink.buf, nil
}

// sliceSink is the zero-allocation-growth ByteSink EncodeDocument writes
// into; its backing array was pre-sized to DocumentSize(d).
type sliceSink struct{ buf []byte }

func (s *sliceSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *sliceSink) WriteByte(c byte) error {
	s.buf = append(s.buf, c)
	return nil
}

// WriteDocument writes d's full wire encoding (int32 length, elements,
// trailing NUL) to sink.
func WriteDocument(sink ByteSink, d *Document) error {
	if err := writeInt32(sink, int32(DocumentSize(d))); err != nil {
		return err
	}
	if d != nil {
		for i, k := range d.keys {
			if err := writeElement(sink, k, d.values[i]); err != nil {
				return err
			}
		}
	}
	return sink.WriteByte(0x00)
}

// WriteArray writes a's full wire encoding using integer string keys
// ("0", "1", ...), identical in shape to WriteDocument.
func WriteArray(sink ByteSink, a *Array) error {
	if err := writeInt32(sink, int32(ArraySize(a))); err != nil {
		return err
	}
	if a != nil {
		for i, v := range a.values {
			if err := writeElement(sink, strconv.Itoa(i), v); err != nil {
				return err
			}
		}
	}
	return sink.WriteByte(0x00)
}

func writeElement(sink ByteSink, key string, v Value) error {
	if err := sink.WriteByte(byte(v.kind)); err != nil {
		return err
	}
	if err := writeCString(sink, key); err != nil {
		return err
	}
	return writeValuePayload(sink, v)
}

func writeValuePayload(sink ByteSink, v Value) error {
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
		return nil
	case KindBoolean:
		if v.b {
			return sink.WriteByte(1)
		}
		return sink.WriteByte(0)
	case KindInt32:
		return writeInt32(sink, v.i32)
	case KindInt64, KindDateTime, KindTimestamp:
		return writeInt64(sink, v.i64)
	case KindDouble:
		return writeFloat64(sink, v.f64)
	case KindDecimal128:
		_, err := sink.Write(v.dec[:])
		return err
	case KindObjectID:
		_, err := sink.Write(v.oid[:])
		return err
	case KindString, KindSymbol, KindJavaScript:
		return writeBSONString(sink, v.str)
	case KindBinary:
		if err := writeInt32(sink, int32(len(v.bin.Data))); err != nil {
			return err
		}
		if err := sink.WriteByte(byte(v.bin.Subtype)); err != nil {
			return err
		}
		_, err := sink.Write(v.bin.Data)
		return err
	case KindRegularExpression:
		if err := writeCString(sink, v.re.Pattern); err != nil {
			return err
		}
		return writeCString(sink, v.re.Options)
	case KindDocument:
		return WriteDocument(sink, v.doc)
	case KindArray:
		return WriteArray(sink, v.arr)
	case KindJavaScriptWithScope:
		if err := writeInt32(sink, int32(SizeOf(v))); err != nil {
			return err
		}
		if err := writeBSONString(sink, v.str); err != nil {
			return err
		}
		return WriteDocument(sink, v.jsScope)
	default:
		return newError(ErrKindUnsupportedKind, v.kind.String())
	}
}

func writeInt32(sink ByteSink, n int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	_, err := sink.Write(buf[:])
	return err
}

func writeInt64(sink ByteSink, n int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, err := sink.Write(buf[:])
	return err
}

func writeFloat64(sink ByteSink, f float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, err := sink.Write(buf[:])
	return err
}

func writeCString(sink ByteSink, s string) error {
	if !utf8.ValidString(s) {
		return newError(ErrKindInvalidUTF8, s)
	}
	if strings.IndexByte(s, 0) != -1 {
		return newError(ErrKindMalformedValue, "CString must not contain an embedded NUL byte")
	}
	if _, err := sink.Write([]byte(s)); err != nil {
		return err
	}
	return sink.WriteByte(0x00)
}

func writeBSONString(sink ByteSink, s string) error {
	if !utf8.ValidString(s) {
		return newError(ErrKindInvalidUTF8, s)
	}
	if err := writeInt32(sink, int32(len(s)+1)); err != nil {
		return err
	}
	if _, err := sink.Write([]byte(s)); err != nil {
		return err
	}
	return sink.WriteByte(0x00)
}
