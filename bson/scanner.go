package bson

// Scan searches a document's top-level fields for key without materializing
// any field it doesn't need: every field it passes over is skipped by
// length alone (via payloadLength's length table), and only the matching
// field's payload is decoded into a Value. This is the cheapest lookup path
// when a caller wants exactly one field out of a large document and
// doesn't want a DocumentSpan's full index built first.
func Scan(data []byte, key string) (Value, bool, error) {
	declared, err := readInt32At(data, 0)
	if err != nil {
		return Value{}, false, err
	}
	if declared < 5 || int(declared) > len(data) {
		return Value{}, false, wrapError(ErrKindSizeMismatch, "declared document length out of bounds", nil)
	}

	pos := 4
	end := int(declared) - 1
	for pos < end {
		kind := Kind(data[pos])
		pos++
		fieldKey, keyLen, err := readCStringAt(data, pos)
		if err != nil {
			// A malformed field name makes the rest of the document
			// unreadable too (we can no longer find the payload
			// boundary), but per the source scanner's contract a
			// malformed name is a not-found result, not a hard error:
			// only an unknown type tag propagates as one.
			return Value{}, false, nil
		}
		pos += keyLen

		plen, err := payloadLength(kind, data[pos:])
		if err != nil {
			return Value{}, false, err
		}

		if fieldKey == key {
			v, _, err := decodeValuePayload(kind, data[pos:pos+plen])
			if err != nil {
				return Value{}, false, err
			}
			return v, true, nil
		}
		pos += plen
	}
	return Value{}, false, nil
}

// ProjectFields materializes only the fields of data named in keys,
// skipping every other field by length alone. The returned Document holds
// the requested fields in their original wire order; keys not present in
// data are simply absent from the result (no error).
func ProjectFields(data []byte, keys []string) (*Document, error) {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	declared, err := readInt32At(data, 0)
	if err != nil {
		return nil, err
	}
	if declared < 5 || int(declared) > len(data) {
		return nil, wrapError(ErrKindSizeMismatch, "declared document length out of bounds", nil)
	}

	doc := NewDocument()
	pos := 4
	end := int(declared) - 1
	for pos < end && len(wanted) > 0 {
		kind := Kind(data[pos])
		pos++
		fieldKey, keyLen, err := readCStringAt(data, pos)
		if err != nil {
			// Same not-found contract as Scan: a malformed name ends
			// the walk but isn't itself an error; return whatever
			// fields were already matched.
			return doc, nil
		}
		pos += keyLen

		plen, err := payloadLength(kind, data[pos:])
		if err != nil {
			return nil, err
		}

		if wanted[fieldKey] {
			v, _, err := decodeValuePayload(kind, data[pos:pos+plen])
			if err != nil {
				return nil, err
			}
			doc = doc.Set(fieldKey, v)
			delete(wanted, fieldKey)
		}
		pos += plen
	}
	return doc, nil
}
