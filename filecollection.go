package tinydb

import (
	"os"
	"strconv"
	"sync"

	"github.com/j4587698/tinydb/bson"
)

// FileCollection is a minimal catalog.Collection backed by a single BSON
// file: every row lives in memory and the whole set is rewritten to disk
// on each mutation. It exists only to give cmd/tinydbctl's smoke test
// something to persist to; the page/WAL storage substrate proper is an
// external collaborator this module does not implement.
type FileCollection struct {
	path string
	mu   sync.Mutex
	rows map[string]*bson.Document
}

// OpenFileCollection loads path's existing rows, if any, or starts empty
// if the file does not exist yet.
func OpenFileCollection(path string) (*FileCollection, error) {
	fc := &FileCollection{path: path, rows: make(map[string]*bson.Document)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return fc, nil
	}

	top, _, err := bson.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	rowsVal := top.Get("rows")
	if rowsVal.Kind() != bson.KindArray {
		return fc, nil
	}
	rowsVal.AsArray().Range(func(_ int, v bson.Value) bool {
		d := v.AsDocument()
		fc.rows[idKey(d.Get(KeyID))] = d
		return true
	})
	return fc, nil
}

// idKey derives a stable map key from a BSON id value, since an id may be
// a string (catalog table names) or any other scalar kind (user entity
// ids).
func idKey(v bson.Value) string {
	return strconv.FormatUint(v.Hash(), 36)
}

func (fc *FileCollection) flushLocked() error {
	arr := bson.NewArray()
	for _, d := range fc.rows {
		arr = arr.Append(bson.DocumentValue(d))
	}
	top := bson.NewDocument().Set("rows", bson.ArrayValue(arr))
	data, err := bson.EncodeDocument(top)
	if err != nil {
		return err
	}
	return os.WriteFile(fc.path, data, 0o644)
}

// FindByID implements catalog.Collection.
func (fc *FileCollection) FindByID(id bson.Value) (*bson.Document, bool, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	d, ok := fc.rows[idKey(id)]
	return d, ok, nil
}

// Insert implements catalog.Collection.
func (fc *FileCollection) Insert(doc *bson.Document) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.rows[idKey(doc.Get(KeyID))] = doc
	return fc.flushLocked()
}

// Update implements catalog.Collection.
func (fc *FileCollection) Update(doc *bson.Document) error {
	return fc.Insert(doc)
}

// Delete implements catalog.Collection.
func (fc *FileCollection) Delete(id bson.Value) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	delete(fc.rows, idKey(id))
	return fc.flushLocked()
}

// FindAll implements catalog.Collection.
func (fc *FileCollection) FindAll() ([]*bson.Document, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]*bson.Document, 0, len(fc.rows))
	for _, d := range fc.rows {
		out = append(out, d)
	}
	return out, nil
}
