package bson

// DocumentSpan is a zero-copy view over an encoded document: it keeps the
// raw bytes and an index of (key, payload-offset, payload-length, kind)
// built in one pass, but defers materializing any Value until Field is
// actually called.
type DocumentSpan struct {
	data  []byte // the full document, including its own length prefix and terminator
	spans []fieldSpan
	index map[string]int
}

type fieldSpan struct {
	key        string
	kind       Kind
	payloadOff int
	payloadLen int
}

// SpanDocument builds a DocumentSpan over data without materializing any
// element's Value, only walking the wire format to record each element's
// boundaries. data must outlive the returned DocumentSpan: no copy is
// taken.
func SpanDocument(data []byte) (*DocumentSpan, int, error) {
	declared, err := readInt32At(data, 0)
	if err != nil {
		return nil, 0, err
	}
	if declared < 5 || int(declared) > len(data) {
		return nil, 0, wrapError(ErrKindSizeMismatch, "declared document length out of bounds", nil)
	}

	span := &DocumentSpan{data: data[:declared], index: make(map[string]int)}
	pos := 4
	end := int(declared) - 1
	for pos < end {
		kind := Kind(data[pos])
		pos++
		key, keyLen, err := readCStringAt(data, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += keyLen

		payloadLen, err := payloadLength(kind, data[pos:])
		if err != nil {
			return nil, 0, err
		}

		span.index[key] = len(span.spans)
		span.spans = append(span.spans, fieldSpan{key: key, kind: kind, payloadOff: pos, payloadLen: payloadLen})
		pos += payloadLen
	}
	if pos != end {
		return nil, 0, wrapError(ErrKindSizeMismatch, "element boundaries overran declared length", nil)
	}
	if data[end] != 0x00 {
		return nil, 0, newError(ErrKindMalformedValue, "missing document terminator")
	}
	return span, int(declared), nil
}

// Len returns the number of top-level fields spanned.
func (s *DocumentSpan) Len() int { return len(s.spans) }

// Keys returns the spanned document's keys in wire order.
func (s *DocumentSpan) Keys() []string {
	out := make([]string, len(s.spans))
	for i, f := range s.spans {
		out[i] = f.key
	}
	return out
}

// Field materializes the Value for key, decoding only that field's bytes.
// Reports false if key is absent.
func (s *DocumentSpan) Field(key string) (Value, bool, error) {
	i, ok := s.index[key]
	if !ok {
		return Value{}, false, nil
	}
	f := s.spans[i]
	v, _, err := decodeValuePayload(f.kind, s.data[f.payloadOff:f.payloadOff+f.payloadLen])
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

// Materialize fully decodes the spanned document into an ordinary
// Document, equivalent to (but slower than) calling DecodeDocument on the
// same bytes.
func (s *DocumentSpan) Materialize() (*Document, error) {
	doc := NewDocument()
	for _, f := range s.spans {
		v, _, err := decodeValuePayload(f.kind, s.data[f.payloadOff:f.payloadOff+f.payloadLen])
		if err != nil {
			return nil, err
		}
		doc = doc.Set(f.key, v)
	}
	return doc, nil
}

// payloadLength returns the number of payload bytes that belong to kind
// starting at data[0], without materializing a Value. It is the single
// source of truth the span indexer, the scanner, and DecodeDocument's
// variable-length cases all agree with.
func payloadLength(kind Kind, data []byte) (int, error) {
	switch kind {
	case KindNull, KindMinKey, KindMaxKey:
		return 0, nil
	case KindBoolean:
		return 1, nil
	case KindInt32:
		return 4, nil
	case KindInt64, KindDateTime, KindTimestamp, KindDouble:
		return 8, nil
	case KindDecimal128:
		return 16, nil
	case KindObjectID:
		return 12, nil
	case KindString, KindSymbol, KindJavaScript:
		n, err := readInt32At(data, 0)
		if err != nil {
			return 0, err
		}
		if n < 1 || 4+int(n) > len(data) {
			return 0, wrapError(ErrKindSizeMismatch, "string length out of bounds", nil)
		}
		return 4 + int(n), nil
	case KindBinary:
		n, err := readInt32At(data, 0)
		if err != nil {
			return 0, err
		}
		if n < 0 || 5+int(n) > len(data) {
			return 0, wrapError(ErrKindSizeMismatch, "binary length out of bounds", nil)
		}
		return 5 + int(n), nil
	case KindRegularExpression:
		_, pn, err := readCStringAt(data, 0)
		if err != nil {
			return 0, err
		}
		_, on, err := readCStringAt(data, pn)
		if err != nil {
			return 0, err
		}
		return pn + on, nil
	case KindDocument, KindArray:
		n, err := readInt32At(data, 0)
		if err != nil {
			return 0, err
		}
		if n < 5 || int(n) > len(data) {
			return 0, wrapError(ErrKindSizeMismatch, "nested document length out of bounds", nil)
		}
		return int(n), nil
	case KindJavaScriptWithScope:
		n, err := readInt32At(data, 0)
		if err != nil {
			return 0, err
		}
		if n < 4 || int(n) > len(data) {
			return 0, wrapError(ErrKindSizeMismatch, "javascriptWithScope length out of bounds", nil)
		}
		return int(n), nil
	default:
		return 0, newError(ErrKindUnsupportedKind, kind.String())
	}
}
