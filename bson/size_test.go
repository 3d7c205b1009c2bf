package bson_test

import (
	"testing"
	"time"

	"github.com/j4587698/tinydb/bson"
)

func TestDocumentSizeAgreesWithEncodedLength(t *testing.T) {
	values := []bson.Value{
		bson.Null,
		bson.Bool(true),
		bson.Int32(42),
		bson.Int64(1 << 40),
		bson.Double(3.25),
		bson.String("hello"),
		bson.Symbol("sym"),
		bson.ObjectIDValue(bson.NewObjectID()),
		bson.DateTime(time.Now()),
		bson.Timestamp(99),
		bson.BinaryValue(bson.Binary{Subtype: bson.BinaryGeneric, Data: []byte{1, 2, 3}}),
		bson.RegexValue(bson.Regex{Pattern: "^a", Options: "i"}),
		bson.DocumentValue(bson.NewDocument().Set("k", bson.Int32(1))),
		bson.ArrayValue(bson.NewArrayOf(bson.Int32(1), bson.Int32(2))),
		bson.MinKey,
		bson.MaxKey,
	}

	doc := bson.NewDocument()
	for i, v := range values {
		doc = doc.Set(string(rune('a'+i)), v)
	}

	encoded, err := bson.EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument error: %v", err)
	}
	if len(encoded) != bson.DocumentSize(doc) {
		t.Errorf("len(encoded) = %d, DocumentSize() = %d, want equal", len(encoded), bson.DocumentSize(doc))
	}
}

func TestEmptyDocumentSerializesToFiveBytes(t *testing.T) {
	b, err := bson.EncodeDocument(bson.NewDocument())
	if err != nil {
		t.Fatalf("EncodeDocument error: %v", err)
	}
	want := []byte{0x05, 0x00, 0x00, 0x00, 0x00}
	if len(b) != 5 {
		t.Fatalf("len(b) = %d, want 5", len(b))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("b[%d] = %#x, want %#x", i, b[i], want[i])
		}
	}
}

func TestEmptyArraySerializesToFiveBytes(t *testing.T) {
	sink := &collectSink{}
	if err := bson.WriteArray(sink, bson.NewArray()); err != nil {
		t.Fatalf("WriteArray error: %v", err)
	}
	if len(sink.buf) != 5 {
		t.Fatalf("len(buf) = %d, want 5", len(sink.buf))
	}
}

func TestZeroLengthBinarySize(t *testing.T) {
	b, err := bson.NewBinary(bson.BinaryGeneric, nil)
	if err != nil {
		t.Fatalf("NewBinary error: %v", err)
	}
	if got := bson.SizeOf(bson.BinaryValue(b)); got != 5 {
		t.Errorf("SizeOf(empty binary) = %d, want 5", got)
	}
}

type collectSink struct{ buf []byte }

func (s *collectSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *collectSink) WriteByte(c byte) error {
	s.buf = append(s.buf, c)
	return nil
}
