package catalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/catalog"
)

type taggedIDEntity struct {
	Key   int32 `bson:",id"`
	Name  string
	Ptr   *string
	Stamp time.Time
	Tags  []string
	Skip  string `bson:"-"`
}

type byNameIDEntity struct {
	ID    string
	Count int64
}

type guidEntity struct {
	Owner uuid.UUID
	Photo []byte
	Oid   bson.ObjectID
}

func deriveSchema(t *testing.T, tableName string, entity any) *catalog.MetadataDocument {
	t.Helper()
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.EnsureSchema(tableName, entity); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	meta, err := m.Get(tableName)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return meta
}

func columnByName(t *testing.T, meta *catalog.MetadataDocument, field string) catalog.Column {
	t.Helper()
	for _, c := range meta.Columns {
		if c.FieldName == field {
			return c
		}
	}
	t.Fatalf("no column named %q in %v", field, meta.Columns)
	return catalog.Column{}
}

func TestColumnsFromEntityTagMarksPrimaryKey(t *testing.T) {
	meta := deriveSchema(t, "tagged", taggedIDEntity{})
	pk, ok := meta.PrimaryKeyColumn()
	if !ok {
		t.Fatal("expected a primary key column")
	}
	if pk.PropertyName != "Key" {
		t.Fatalf("expected tagged field Key to be the primary key, got %q", pk.PropertyName)
	}
	if pk.FieldName != "_id" {
		t.Fatalf("expected primary key field name _id, got %q", pk.FieldName)
	}
}

func TestColumnsFromEntitySkipsDashTaggedField(t *testing.T) {
	meta := deriveSchema(t, "tagged", taggedIDEntity{})
	for _, c := range meta.Columns {
		if c.PropertyName == "Skip" {
			t.Fatal("bson:\"-\" field should not become a column")
		}
	}
}

func TestColumnsFromEntityPointerAndSliceFieldsNotRequired(t *testing.T) {
	meta := deriveSchema(t, "tagged", taggedIDEntity{})
	if columnByName(t, meta, "ptr").Required {
		t.Fatal("pointer field should not be required by default")
	}
	if columnByName(t, meta, "tags").Required {
		t.Fatal("slice field should not be required by default")
	}
	if !columnByName(t, meta, "name").Required {
		t.Fatal("plain string value field should be required by default")
	}
}

func TestColumnsFromEntityByNameIDFallback(t *testing.T) {
	meta := deriveSchema(t, "bynames", byNameIDEntity{})
	pk, ok := meta.PrimaryKeyColumn()
	if !ok {
		t.Fatal("expected a primary key column")
	}
	if pk.PropertyName != "ID" {
		t.Fatalf("expected by-name fallback to resolve ID, got %q", pk.PropertyName)
	}
}

func TestHostTypeNameRecognizesWellKnownTypes(t *testing.T) {
	meta := deriveSchema(t, "guids", guidEntity{})
	if got := columnByName(t, meta, "owner").TypeName; got != "Guid" {
		t.Fatalf("expected uuid.UUID to map to Guid, got %q", got)
	}
	if got := columnByName(t, meta, "photo").TypeName; got != "Binary" {
		t.Fatalf("expected []byte to map to Binary, got %q", got)
	}
	if got := columnByName(t, meta, "oid").TypeName; got != "ObjectID" {
		t.Fatalf("expected bson.ObjectID to map to ObjectID, got %q", got)
	}
}

func TestHostTypeNameTimeMapsToDateTime(t *testing.T) {
	meta := deriveSchema(t, "tagged", taggedIDEntity{})
	if got := columnByName(t, meta, "stamp").TypeName; got != "DateTime" {
		t.Fatalf("expected time.Time to map to DateTime, got %q", got)
	}
}

func TestEnsureSchemaRejectsNilEntity(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	var p *taggedIDEntity
	if err := m.EnsureSchema("tagged", p); err == nil {
		t.Fatal("expected an error for a nil entity pointer")
	}
}

func TestEnsureSchemaRejectsNonStruct(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.EnsureSchema("numbers", 42); err == nil {
		t.Fatal("expected an error for a non-struct entity")
	}
}
