package catalog

import (
	"strings"
	"time"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/convert"
)

// normalizeTypeName lower-cases typeName and strips a trailing generic-arity
// suffix (CLR-style "`1", or "<T>"/"[]" host syntax), the same brittle
// normalization apply_defaults and kind-bucket classification both rely on.
// Every variant below has a corresponding test in defaults_test.go.
func normalizeTypeName(typeName string) string {
	s := typeName
	if i := strings.IndexByte(s, '`'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "[]")
	return strings.ToLower(s)
}

// typeDefault returns the type-derived default bson.Value for a normalized
// type name, and whether one is defined at all. Keyed on the same
// normalized name expectedKindForTypeName buckets on, but at the finer
// per-type-name grain a default value actually needs.
func typeDefault(normalized string) (bson.Value, bool) {
	switch normalized {
	case "string", "char", "guid", "uuid":
		return bson.String(""), true
	case "boolean", "bool":
		return bson.False, true
	case "int16", "int32", "int", "short":
		return bson.Int32(0), true
	case "int64", "long":
		return bson.Int64(0), true
	case "uint16", "uint32", "uint", "uint64", "byte", "sbyte":
		return bson.Int32(0), true
	case "float", "double":
		return bson.Double(0), true
	case "decimal", "decimal128":
		return bson.Decimal(bson.DecimalFromFloat(0)), true
	case "datetime", "datetimeoffset", "timestamp":
		return bson.DateTime(time.Unix(0, 0).UTC()), true
	case "objectid":
		return bson.ObjectIDValue(bson.ObjectIDEmpty), true
	case "binary", "bytes":
		b, _ := bson.NewBinary(bson.BinaryGeneric, nil)
		return bson.BinaryValue(b), true
	case "array", "list", "slice":
		return bson.ArrayValue(bson.NewArray()), true
	case "document", "object", "map", "dictionary":
		return bson.DocumentValue(bson.NewDocument()), true
	default:
		return bson.Value{}, false
	}
}

// ApplyDefaults fills in doc with each non-primary-key schema column it is
// missing, using the column's explicit default when set and the
// type-derived default otherwise. Columns with neither are left absent;
// ApplyDefaults never raises for those, leaving required-field enforcement
// to ValidateForWrite.
func (m *MetadataManager) ApplyDefaults(tableName string, doc *bson.Document) (*bson.Document, error) {
	meta, err := m.Get(tableName)
	if err != nil {
		return nil, err
	}

	out := doc
	for _, c := range meta.Columns {
		if c.PrimaryKey {
			continue
		}
		if _, present := out.TryGet(c.FieldName); present {
			continue
		}

		var def bson.Value
		switch {
		case c.HasDefault:
			v, err := convert.ToBSON(c.DefaultValue)
			if err != nil {
				return nil, err
			}
			def = v
		default:
			v, ok := typeDefault(normalizeTypeName(c.TypeName))
			if !ok {
				continue
			}
			def = v
		}
		out = out.Set(c.FieldName, def)
	}
	return out, nil
}
