package catalog

import (
	"strings"

	"github.com/j4587698/tinydb/bson"
)

// ExpectedBsonKind buckets BSON kinds into the coarse categories column
// type names are checked against, so "Int32", "Int64", "Double", and
// "Decimal128" all satisfy the same "Numeric" column without the catalog
// caring which exact wire kind a host language chose.
type ExpectedBsonKind int

const (
	ExpectedAny ExpectedBsonKind = iota
	ExpectedString
	ExpectedBoolean
	ExpectedNumeric
	ExpectedDateTime
	ExpectedObjectID
	ExpectedBinary
	ExpectedArray
	ExpectedDocument
)

// reservedFields are always permitted in Strict mode regardless of schema,
// since the write path itself stamps them onto every document.
var reservedFields = map[string]bool{
	"_id":                 true,
	"_collection":         true,
	"_isLargeDocument":    true,
	"_largeDocumentIndex": true,
	"_largeDocumentSize":  true,
}

// validationProfile is the derived, per-table view of a MetadataDocument
// that ValidateForWrite actually checks against. It is cached alongside
// the raw row so repeated writes don't recompute camel-case aliases and
// kind buckets on every call.
type validationProfile struct {
	requiredFields map[string]string // canonical name -> camel alias; either spelling satisfies it
	allowedFields  map[string]bool   // canonical name -> allowed (camel alias included)
	expectedKind   map[string]ExpectedBsonKind
}

func buildValidationProfile(m *MetadataDocument) *validationProfile {
	p := &validationProfile{
		requiredFields: make(map[string]string),
		allowedFields:  make(map[string]bool),
		expectedKind:   make(map[string]ExpectedBsonKind),
	}
	for _, c := range m.Columns {
		names := []string{c.FieldName, lowerCamel(c.FieldName)}
		kind := expectedKindForTypeName(c.TypeName)
		for _, n := range names {
			p.allowedFields[n] = true
			p.expectedKind[n] = kind
		}
		if c.Required && !c.PrimaryKey {
			p.requiredFields[c.FieldName] = names[1]
		}
	}
	return p
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] - 'A' + 'a'
	}
	return string(r)
}

// expectedKindForTypeName classifies a column's stable type-name string
// into one of the coarse ExpectedBsonKind buckets. Unrecognized names map
// to ExpectedAny, so an unfamiliar host type never blocks a write outright
// — only kinds that are recognized AND mismatched are rejected.
func expectedKindForTypeName(typeName string) ExpectedBsonKind {
	switch strings.ToLower(normalizeTypeName(typeName)) {
	case "string", "char", "guid", "uuid":
		return ExpectedString
	case "boolean", "bool":
		return ExpectedBoolean
	case "int16", "int32", "int64", "int", "long", "short", "byte", "sbyte",
		"uint16", "uint32", "uint64", "uint", "float", "double", "decimal", "decimal128":
		return ExpectedNumeric
	case "datetime", "datetimeoffset", "timestamp":
		return ExpectedDateTime
	case "objectid":
		return ExpectedObjectID
	case "binary", "bytes", "byte[]":
		return ExpectedBinary
	case "array", "list", "slice":
		return ExpectedArray
	case "document", "object", "map", "dictionary":
		return ExpectedDocument
	default:
		return ExpectedAny
	}
}

// kindMatches reports whether v's BSON kind satisfies expected. ExpectedAny
// always matches, so unrecognized column types never fail a write solely
// on kind grounds.
func kindMatches(expected ExpectedBsonKind, v bson.Value) bool {
	switch expected {
	case ExpectedAny:
		return true
	case ExpectedString:
		return v.Kind() == bson.KindString || v.Kind() == bson.KindSymbol
	case ExpectedBoolean:
		return v.Kind() == bson.KindBoolean
	case ExpectedNumeric:
		return v.Kind() == bson.KindInt32 || v.Kind() == bson.KindInt64 ||
			v.Kind() == bson.KindDouble || v.Kind() == bson.KindDecimal128
	case ExpectedDateTime:
		return v.Kind() == bson.KindDateTime || v.Kind() == bson.KindTimestamp
	case ExpectedObjectID:
		return v.Kind() == bson.KindObjectID
	case ExpectedBinary:
		return v.Kind() == bson.KindBinary
	case ExpectedArray:
		return v.Kind() == bson.KindArray
	case ExpectedDocument:
		return v.Kind() == bson.KindDocument
	default:
		return true
	}
}

// ValidateForWrite checks doc against the schema registered for
// tableName, per mode. None performs no checks. Loose checks only that
// every required non-primary-key column is present and non-null. Strict
// additionally rejects any document key outside the schema's allowed set
// (reserved write-path keys are always allowed) and any present value
// whose kind does not match its column's declared type bucket.
//
// ValidateForWrite raises on the first violation found; it never
// accumulates a list of errors. Tables whose name begins with "__" are
// system tables and are never checked.
func (m *MetadataManager) ValidateForWrite(tableName string, doc *bson.Document, mode ValidationMode) error {
	if mode == ValidationNone || strings.HasPrefix(tableName, "__") {
		return nil
	}

	profile, err := m.profileFor(tableName)
	if err != nil {
		return err
	}

	for field, alias := range profile.requiredFields {
		v, ok := doc.TryGet(field)
		if !ok || v.IsNull() {
			v, ok = doc.TryGet(alias)
		}
		if !ok || v.IsNull() {
			return bson.NewError(bson.ErrKindSchemaValidation, "required field "+field+" is missing or null for table "+tableName)
		}
	}

	if mode != ValidationStrict {
		return nil
	}

	var violation error
	doc.Range(func(key string, v bson.Value) bool {
		if reservedFields[key] {
			return true
		}
		if !profile.allowedFields[key] {
			violation = bson.NewError(bson.ErrKindSchemaValidation, "unknown field "+key+" for table "+tableName)
			return false
		}
		if expected, ok := profile.expectedKind[key]; ok && !kindMatches(expected, v) {
			violation = bson.NewError(bson.ErrKindSchemaValidation, "field "+key+" has incompatible kind "+v.Kind().String()+" for table "+tableName)
			return false
		}
		return true
	})
	return violation
}
