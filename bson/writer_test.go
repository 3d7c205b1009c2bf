package bson_test

import (
	"errors"
	"testing"

	"github.com/j4587698/tinydb/bson"
)

func TestEncodeDocumentRejectsEmbeddedNULInKey(t *testing.T) {
	doc := bson.NewDocument().Set("bad\x00key", bson.Int32(1))
	_, err := bson.EncodeDocument(doc)
	if err == nil {
		t.Fatal("expected error encoding a document key containing an embedded NUL byte")
	}
	var bsonErr *bson.Error
	if !errors.As(err, &bsonErr) || bsonErr.Kind != bson.ErrKindMalformedValue {
		t.Fatalf("expected ErrKindMalformedValue, got %v", err)
	}
}

func TestEncodeDocumentRejectsEmbeddedNULInRegexPattern(t *testing.T) {
	doc := bson.NewDocument().Set("r", bson.RegexValue(bson.Regex{Pattern: "bad\x00pattern"}))
	_, err := bson.EncodeDocument(doc)
	if err == nil {
		t.Fatal("expected error encoding a regex pattern containing an embedded NUL byte")
	}
	var bsonErr *bson.Error
	if !errors.As(err, &bsonErr) || bsonErr.Kind != bson.ErrKindMalformedValue {
		t.Fatalf("expected ErrKindMalformedValue, got %v", err)
	}
}

func TestEncodeDocumentAllowsEmbeddedNULInStringValue(t *testing.T) {
	doc := bson.NewDocument().Set("s", bson.String("embedded\x00nul"))
	encoded, err := bson.EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	decoded, _, err := bson.DecodeDocument(encoded)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if decoded.Get("s").AsString() != "embedded\x00nul" {
		t.Fatalf("expected the length-prefixed string path to preserve an embedded NUL, got %q", decoded.Get("s").AsString())
	}
}
