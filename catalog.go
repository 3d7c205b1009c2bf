package tinydb

import (
	"github.com/j4587698/tinydb/catalog"
	"github.com/j4587698/tinydb/emit"
)

// ValidationMode re-exports catalog.ValidationMode (itself an alias for
// config.ValidationMode) so callers of this façade never need to import
// catalog or config directly just to pick a mode.
type ValidationMode = catalog.ValidationMode

const (
	ValidationNone   = catalog.ValidationNone
	ValidationLoose  = catalog.ValidationLoose
	ValidationStrict = catalog.ValidationStrict
)

// MetadataManager re-exports catalog.MetadataManager so callers of this
// façade never need to import catalog directly.
type MetadataManager = catalog.MetadataManager

// NewMetadataManager returns a MetadataManager backed by store.
func NewMetadataManager(store catalog.Collection, readOnly bool) *MetadataManager {
	return catalog.NewMetadataManager(store, readOnly)
}

// DDL renders tableName's registered schema as textual DDL.
func DDL(manager *MetadataManager, tableName string) (string, error) {
	meta, err := manager.Get(tableName)
	if err != nil {
		return "", err
	}
	return emit.DDL(meta), nil
}

// EntitySource renders tableName's registered schema as a host entity
// class declaration.
func EntitySource(manager *MetadataManager, tableName string, opts emit.EntitySourceOptions) (string, error) {
	meta, err := manager.Get(tableName)
	if err != nil {
		return "", err
	}
	return emit.EntitySource(meta, opts), nil
}
