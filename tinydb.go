// Package tinydb is the façade gluing the codec, conversion, mapping, and
// catalog packages together: the embedded-document-database surface a host
// application imports directly, the way teacher's main.go wired storage,
// repository, and config into one running server.
package tinydb

// System-reserved document keys, stamped onto every document by the write
// path and always permitted by catalog.MetadataManager.ValidateForWrite in
// Strict mode regardless of schema.
const (
	KeyID                 = "_id"
	KeyCollection         = "_collection"
	KeyIsLargeDocument    = "_isLargeDocument"
	KeyLargeDocumentIndex = "_largeDocumentIndex"
	KeyLargeDocumentSize  = "_largeDocumentSize"
)

// ReservedTablePrefix marks a catalog table name as a system table, exempt
// from schema validation.
const ReservedTablePrefix = "__"

// IsSystemTable reports whether tableName is a reserved system table.
func IsSystemTable(tableName string) bool {
	return len(tableName) >= len(ReservedTablePrefix) && tableName[:len(ReservedTablePrefix)] == ReservedTablePrefix
}
