package catalog_test

import (
	"sync"

	"github.com/j4587698/tinydb/bson"
)

// fakeStore is a minimal in-memory catalog.Collection test double, keyed
// by each document's _id. It exists only to exercise MetadataManager
// without a real storage backend.
type fakeStore struct {
	mu    sync.Mutex
	docs  map[string]*bson.Document
	hits  int // FindByID calls, for singleflight dedup assertions
	stall chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]*bson.Document)}
}

func (f *fakeStore) FindByID(id bson.Value) (*bson.Document, bool, error) {
	f.mu.Lock()
	f.hits++
	stall := f.stall
	f.mu.Unlock()

	if stall != nil {
		<-stall
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id.AsString()]
	return doc, ok, nil
}

func (f *fakeStore) Insert(doc *bson.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.Get("_id").AsString()] = doc
	return nil
}

func (f *fakeStore) Update(doc *bson.Document) error {
	return f.Insert(doc)
}

func (f *fakeStore) Delete(id bson.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id.AsString())
	return nil
}

func (f *fakeStore) FindAll() ([]*bson.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*bson.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) findByIDHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}
