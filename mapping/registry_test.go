package mapping_test

import (
	"reflect"
	"testing"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/mapping"
)

type widgetAdapter struct{}

type widget struct {
	ID   int32
	Name string
}

func (widgetAdapter) ToDocument(entity any) (*bson.Document, error) {
	w := entity.(*widget)
	return bson.NewDocument().Set("_id", bson.Int32(w.ID)).Set("name", bson.String(w.Name)), nil
}

func (widgetAdapter) FromDocument(doc *bson.Document) (any, error) {
	return &widget{ID: doc.Get("_id").AsInt32(), Name: doc.Get("name").AsString()}, nil
}

func (widgetAdapter) GetID(entity any) (bson.Value, error) {
	return bson.Int32(entity.(*widget).ID), nil
}

func (widgetAdapter) SetID(entity any, id bson.Value) error {
	entity.(*widget).ID = id.AsInt32()
	return nil
}

func (widgetAdapter) HasValidID(entity any) bool {
	return entity.(*widget).ID != 0
}

func (widgetAdapter) GetProperty(entity any, name string) (bson.Value, error) {
	doc, err := widgetAdapter{}.ToDocument(entity)
	if err != nil {
		return bson.Value{}, err
	}
	return doc.Get(name), nil
}

func TestRegisterAndLookup(t *testing.T) {
	typ := reflect.TypeOf(&widget{})
	mapping.Register(typ, widgetAdapter{})

	a, ok := mapping.Lookup(typ)
	if !ok {
		t.Fatal("Lookup(widget) ok = false, want true")
	}
	if _, ok := a.(widgetAdapter); !ok {
		t.Errorf("Lookup(widget) = %T, want widgetAdapter", a)
	}
	if !mapping.IsRegistered(typ) {
		t.Error("IsRegistered(widget) = false, want true")
	}
}

func TestLookupUnregisteredType(t *testing.T) {
	type neverRegistered struct{}
	if mapping.IsRegistered(reflect.TypeOf(neverRegistered{})) {
		t.Error("IsRegistered(neverRegistered) = true, want false")
	}
}

func TestToDocumentUsesRegisteredAdapter(t *testing.T) {
	mapping.Register(reflect.TypeOf(&widget{}), widgetAdapter{})
	w := &widget{ID: 7, Name: "cog"}

	doc, err := mapping.ToDocument(w)
	if err != nil {
		t.Fatalf("ToDocument error: %v", err)
	}
	if doc.Get("_id").AsInt32() != 7 || doc.Get("name").AsString() != "cog" {
		t.Errorf("ToDocument(w) = %v, want _id=7 name=cog", doc)
	}
}

func TestFromDocumentUsesRegisteredAdapter(t *testing.T) {
	mapping.Register(reflect.TypeOf(&widget{}), widgetAdapter{})
	doc := bson.NewDocument().Set("_id", bson.Int32(3)).Set("name", bson.String("sprocket"))

	got, err := mapping.FromDocument[*widget](doc)
	if err != nil {
		t.Fatalf("FromDocument error: %v", err)
	}
	if got.ID != 3 || got.Name != "sprocket" {
		t.Errorf("FromDocument(doc) = %+v, want ID=3 Name=sprocket", got)
	}
}

func TestGetSetHasValidIDViaAdapter(t *testing.T) {
	mapping.Register(reflect.TypeOf(&widget{}), widgetAdapter{})
	w := &widget{}

	if mapping.HasValidID(w) {
		t.Error("HasValidID(zero-id widget) = true, want false")
	}
	if err := mapping.SetID(w, bson.Int32(42)); err != nil {
		t.Fatalf("SetID error: %v", err)
	}
	if !mapping.HasValidID(w) {
		t.Error("HasValidID(widget after SetID) = false, want true")
	}
	id, err := mapping.GetID(w)
	if err != nil {
		t.Fatalf("GetID error: %v", err)
	}
	if id.AsInt32() != 42 {
		t.Errorf("GetID(w) = %v, want Int32(42)", id)
	}
}
