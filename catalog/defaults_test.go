package catalog_test

import (
	"testing"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/catalog"
)

func schemaWithOneColumn(typeName string) *catalog.MetadataDocument {
	return &catalog.MetadataDocument{
		TableName: "t",
		Columns: []catalog.Column{
			{FieldName: "_id", PropertyName: "ID", TypeName: "Int32", PrimaryKey: true},
			{FieldName: "v", PropertyName: "V", TypeName: typeName},
		},
	}
}

func applyAndGet(t *testing.T, typeName string) bson.Value {
	t.Helper()
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.Save(schemaWithOneColumn(typeName)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc := bson.NewDocument().Set("_id", bson.Int32(1))
	out, err := m.ApplyDefaults("t", doc)
	if err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	return out.Get("v")
}

// TestApplyDefaultsTypeDerivedTable covers every type-name/kind pairing
// typeDefault knows about, one case per table entry.
func TestApplyDefaultsTypeDerivedTable(t *testing.T) {
	cases := []struct {
		typeName string
		wantKind bson.Kind
	}{
		{"String", bson.KindString},
		{"Char", bson.KindString},
		{"Guid", bson.KindString},
		{"Uuid", bson.KindString},
		{"Boolean", bson.KindBoolean},
		{"Bool", bson.KindBoolean},
		{"Int16", bson.KindInt32},
		{"Int32", bson.KindInt32},
		{"Int", bson.KindInt32},
		{"Short", bson.KindInt32},
		{"Int64", bson.KindInt64},
		{"Long", bson.KindInt64},
		{"UInt16", bson.KindInt32},
		{"UInt32", bson.KindInt32},
		{"UInt64", bson.KindInt32},
		{"UInt", bson.KindInt32},
		{"Byte", bson.KindInt32},
		{"SByte", bson.KindInt32},
		{"Float", bson.KindDouble},
		{"Double", bson.KindDouble},
		{"Decimal", bson.KindDecimal128},
		{"Decimal128", bson.KindDecimal128},
		{"DateTime", bson.KindDateTime},
		{"DateTimeOffset", bson.KindDateTime},
		{"Timestamp", bson.KindDateTime},
		{"ObjectID", bson.KindObjectID},
		{"Binary", bson.KindBinary},
		{"Bytes", bson.KindBinary},
		{"Array", bson.KindArray},
		{"List", bson.KindArray},
		{"Slice", bson.KindArray},
		{"Document", bson.KindDocument},
		{"Object", bson.KindDocument},
		{"Map", bson.KindDocument},
		{"Dictionary", bson.KindDocument},
	}
	for _, c := range cases {
		t.Run(c.typeName, func(t *testing.T) {
			v := applyAndGet(t, c.typeName)
			if v.Kind() != c.wantKind {
				t.Fatalf("typeName %q: got kind %v, want %v", c.typeName, v.Kind(), c.wantKind)
			}
		})
	}
}

func TestApplyDefaultsGenericArityAndSliceSuffixNormalized(t *testing.T) {
	cases := []string{"List`1", "List<Int32>", "Int32[]", "int32[]"}
	for _, typeName := range cases {
		t.Run(typeName, func(t *testing.T) {
			v := applyAndGet(t, typeName)
			if v.IsNull() {
				t.Fatalf("typeName %q: expected a recognized default, got null", typeName)
			}
		})
	}
}

func TestApplyDefaultsUnrecognizedTypeNameLeavesFieldAbsent(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.Save(schemaWithOneColumn("SomeHostSpecificType")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc := bson.NewDocument().Set("_id", bson.Int32(1))
	out, err := m.ApplyDefaults("t", doc)
	if err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if _, ok := out.TryGet("v"); ok {
		t.Fatal("expected column with no recognized type default to be left absent")
	}
}

func TestApplyDefaultsExplicitDefaultTakesPrecedence(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	meta := &catalog.MetadataDocument{
		TableName: "t",
		Columns: []catalog.Column{
			{FieldName: "_id", PropertyName: "ID", TypeName: "Int32", PrimaryKey: true},
			{FieldName: "v", PropertyName: "V", TypeName: "Int32", HasDefault: true, DefaultValue: int32(7)},
		},
	}
	if err := m.Save(meta); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc := bson.NewDocument().Set("_id", bson.Int32(1))
	out, err := m.ApplyDefaults("t", doc)
	if err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if got := out.Get("v").AsInt32(); got != 7 {
		t.Fatalf("expected explicit default 7, got %d", got)
	}
}

func TestApplyDefaultsSkipsFieldsAlreadyPresent(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.Save(schemaWithOneColumn("Int32")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc := bson.NewDocument().Set("_id", bson.Int32(1)).Set("v", bson.Int32(99))
	out, err := m.ApplyDefaults("t", doc)
	if err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if got := out.Get("v").AsInt32(); got != 99 {
		t.Fatalf("expected existing value preserved, got %d", got)
	}
}

func TestApplyDefaultsSkipsPrimaryKey(t *testing.T) {
	store := newFakeStore()
	m := catalog.NewMetadataManager(store, false)
	if err := m.Save(schemaWithOneColumn("Int32")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc := bson.NewDocument()
	out, err := m.ApplyDefaults("t", doc)
	if err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if _, ok := out.TryGet("_id"); ok {
		t.Fatal("ApplyDefaults must never synthesize a primary key value")
	}
}
