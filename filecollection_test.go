package tinydb_test

import (
	"path/filepath"
	"testing"

	"github.com/j4587698/tinydb"
	"github.com/j4587698/tinydb/bson"
)

func TestFileCollectionInsertFindDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.bson")
	fc, err := tinydb.OpenFileCollection(path)
	if err != nil {
		t.Fatalf("OpenFileCollection: %v", err)
	}

	doc := bson.NewDocument().Set(tinydb.KeyID, bson.Int32(1)).Set("name", bson.String("bolt"))
	if err := fc.Insert(doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok, err := fc.FindByID(bson.Int32(1))
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !ok {
		t.Fatal("expected row to be found")
	}
	if !got.Get("name").Equals(bson.String("bolt")) {
		t.Fatalf("expected name bolt, got %v", got.Get("name"))
	}

	if err := fc.Delete(bson.Int32(1)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := fc.FindByID(bson.Int32(1)); err != nil || ok {
		t.Fatalf("expected row to be gone after Delete, ok=%v err=%v", ok, err)
	}
}

func TestFileCollectionPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.bson")
	fc, err := tinydb.OpenFileCollection(path)
	if err != nil {
		t.Fatalf("OpenFileCollection: %v", err)
	}
	doc := bson.NewDocument().Set(tinydb.KeyID, bson.String("widget-1")).Set("qty", bson.Int32(10))
	if err := fc.Insert(doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	reopened, err := tinydb.OpenFileCollection(path)
	if err != nil {
		t.Fatalf("reopen OpenFileCollection: %v", err)
	}
	got, ok, err := reopened.FindByID(bson.String("widget-1"))
	if err != nil {
		t.Fatalf("FindByID after reopen: %v", err)
	}
	if !ok {
		t.Fatal("expected row to survive reopen")
	}
	if !got.Get("qty").Equals(bson.Int32(10)) {
		t.Fatalf("expected qty 10, got %v", got.Get("qty"))
	}
}

func TestFileCollectionFindAllAndUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.bson")
	fc, err := tinydb.OpenFileCollection(path)
	if err != nil {
		t.Fatalf("OpenFileCollection: %v", err)
	}

	if err := fc.Insert(bson.NewDocument().Set(tinydb.KeyID, bson.Int32(1)).Set("qty", bson.Int32(1))); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := fc.Insert(bson.NewDocument().Set(tinydb.KeyID, bson.Int32(2)).Set("qty", bson.Int32(2))); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	all, err := fc.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}

	if err := fc.Update(bson.NewDocument().Set(tinydb.KeyID, bson.Int32(1)).Set("qty", bson.Int32(99))); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, ok, err := fc.FindByID(bson.Int32(1))
	if err != nil || !ok {
		t.Fatalf("FindByID after update: ok=%v err=%v", ok, err)
	}
	if !got.Get("qty").Equals(bson.Int32(99)) {
		t.Fatalf("expected updated qty 99, got %v", got.Get("qty"))
	}
}

func TestFileCollectionOpenNonexistentFileStartsEmpty(t *testing.T) {
	fc, err := tinydb.OpenFileCollection(filepath.Join(t.TempDir(), "does-not-exist.bson"))
	if err != nil {
		t.Fatalf("OpenFileCollection: %v", err)
	}
	all, err := fc.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty collection, got %d rows", len(all))
	}
}
