package tinydb

import "github.com/j4587698/tinydb/bson"

// SerializeDocument encodes doc to a freshly allocated, exactly-sized byte
// slice.
func SerializeDocument(doc *bson.Document) ([]byte, error) {
	return bson.EncodeDocument(doc)
}

// SerializeDocumentToSink writes doc's wire encoding directly to sink,
// without an intermediate allocation.
func SerializeDocumentToSink(doc *bson.Document, sink bson.ByteSink) error {
	return bson.WriteDocument(sink, doc)
}

// DeserializeDocument fully materializes a Document from data.
func DeserializeDocument(data []byte) (*bson.Document, error) {
	doc, _, err := bson.DecodeDocument(data)
	return doc, err
}

// DeserializeDocumentWithFields materializes only the named fields of
// data, skipping every other field by length alone rather than
// constructing it and discarding it.
func DeserializeDocumentWithFields(data []byte, fields []string) (*bson.Document, error) {
	return bson.ProjectFields(data, fields)
}

// DeserializeDocumentFromMemory decodes data via the zero-copy span
// reader and materializes the result, the fast path for a document that
// is already fully resident in memory.
func DeserializeDocumentFromMemory(data []byte) (*bson.Document, error) {
	span, _, err := bson.SpanDocument(data)
	if err != nil {
		return nil, err
	}
	return span.Materialize()
}
