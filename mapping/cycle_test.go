package mapping_test

import (
	"testing"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/mapping"
)

type cycleNode struct {
	ID   int32 `bson:",id"`
	Next *cycleNode
}

func TestToDocumentCyclicReferenceEmitsIDStub(t *testing.T) {
	a := &cycleNode{ID: 1}
	b := &cycleNode{ID: 2}
	a.Next = b
	b.Next = a

	doc, err := mapping.ToDocument(a)
	if err != nil {
		t.Fatalf("ToDocument(a) error: %v", err)
	}
	if doc.Get("_id").AsInt32() != 1 {
		t.Fatalf("doc._id = %v, want 1", doc.Get("_id"))
	}

	next := doc.Get("next")
	if next.Kind() != bson.KindDocument {
		t.Fatalf("doc.next.Kind() = %v, want Document", next.Kind())
	}
	bDoc := next.AsDocument()
	if bDoc.Get("_id").AsInt32() != 2 {
		t.Fatalf("doc.next._id = %v, want 2", bDoc.Get("_id"))
	}

	stub := bDoc.Get("next")
	if stub.Kind() != bson.KindDocument {
		t.Fatalf("doc.next.next.Kind() = %v, want Document", stub.Kind())
	}
	stubDoc := stub.AsDocument()
	if stubDoc.Len() != 1 || stubDoc.Get("_id").AsInt32() != 1 {
		t.Errorf("cycle stub = %v, want {_id: 1}", stubDoc)
	}
}

func TestToDocumentCyclicReferenceWithInvalidIDEmitsEmptyStub(t *testing.T) {
	a := &cycleNode{} // zero id, not valid
	b := &cycleNode{ID: 2}
	a.Next = b
	b.Next = a

	doc, err := mapping.ToDocument(a)
	if err != nil {
		t.Fatalf("ToDocument(a) error: %v", err)
	}
	stub := doc.Get("next").AsDocument().Get("next")
	if stub.Kind() != bson.KindDocument || stub.AsDocument().Len() != 0 {
		t.Errorf("cycle stub for invalid id = %v, want empty document", stub)
	}
}

func TestToDocumentNilPointerFieldIsNull(t *testing.T) {
	a := &cycleNode{ID: 5}
	doc, err := mapping.ToDocument(a)
	if err != nil {
		t.Fatalf("ToDocument error: %v", err)
	}
	if !doc.Get("next").IsNull() {
		t.Errorf("doc.next = %v, want Null for a nil pointer field", doc.Get("next"))
	}
}
