// Package mapping bridges host entity types and bson.Document via
// per-type adapters, falling back to reflection when no adapter is
// registered.
package mapping

import (
	"reflect"
	"sync"

	"github.com/j4587698/tinydb/bson"
)

// Adapter is the six-function contract a registered entity type must
// satisfy. ToDocument/FromDocument operate on any rather than a generic
// type parameter so the registry can hold adapters for many distinct
// types in one map.
type Adapter interface {
	ToDocument(entity any) (*bson.Document, error)
	FromDocument(doc *bson.Document) (any, error)
	GetID(entity any) (bson.Value, error)
	SetID(entity any, id bson.Value) error
	HasValidID(entity any) bool
	GetProperty(entity any, name string) (bson.Value, error)
}

// registry is the process-wide TypeId→Adapter map. sync.Map is the
// concurrent map a generational cache-of-immutables calls for: reads vastly
// outnumber writes once entity types have registered their adapters at
// startup.
var registry sync.Map // reflect.Type -> Adapter

// Register binds an Adapter to t. Intended to run at process startup, by
// a code generator's init() or manual registration; Register may be
// called again for the same type (last write wins) but is not meant to be
// called from steady-state request handling.
func Register(t reflect.Type, a Adapter) {
	registry.Store(t, a)
}

// Lookup returns the Adapter registered for t, if any.
func Lookup(t reflect.Type) (Adapter, bool) {
	v, ok := registry.Load(t)
	if !ok {
		return nil, false
	}
	return v.(Adapter), true
}

// IsRegistered reports whether t has an adapter, without requiring the
// caller to type-assert the result of Lookup.
func IsRegistered(t reflect.Type) bool {
	_, ok := Lookup(t)
	return ok
}
