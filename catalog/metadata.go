// Package catalog implements the self-describing schema table every
// user-defined document type is registered under: one MetadataDocument row
// per table, keyed by table name, stored in the `__sys_catalog` system
// table via the Collection consumed interface.
package catalog

import "time"

// Column describes one field of a registered document type: its wire
// name, host property name, a stable type-name string used for both
// default-value lookup and kind compatibility checks, and its position
// and constraints.
type Column struct {
	FieldName      string // name on the wire, e.g. "_id", "email"
	PropertyName   string // host member name, e.g. "ID", "Email"
	TypeName       string // stable, host-language-independent type name, e.g. "Int32", "String"
	Ordinal        int
	Required       bool
	PrimaryKey     bool
	DisplayName    string
	Description    string
	ForeignKey     string // target collection name, empty if none
	DefaultValue   any    // nil means "no explicit default"
	HasDefault     bool
}

// MetadataDocument is one catalog row: the full schema description of a
// single user table.
type MetadataDocument struct {
	TableName   string
	TypeName    string
	DisplayName string
	Description string
	Columns     []Column
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PrimaryKeyColumn returns the column marked PrimaryKey, if any. Every
// registered table has exactly one; the wire name of that column is always
// "_id".
func (m *MetadataDocument) PrimaryKeyColumn() (Column, bool) {
	for _, c := range m.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}
