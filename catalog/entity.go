package catalog

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/j4587698/tinydb/bson"
)

// columnsFromEntity derives a MetadataDocument for tableName by walking
// entity's exported fields via reflection, the same member-discovery
// mapping's reflection fallback performs for serialization. EnsureSchema
// calls this only for types with no adapter-specific schema already saved;
// a code-generated adapter is free to call Save directly with a
// hand-built MetadataDocument instead.
func columnsFromEntity(tableName string, entity any) (*MetadataDocument, error) {
	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, bson.NewError(bson.ErrKindArgumentNull, "EnsureSchema requires a non-nil entity")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, bson.NewError(bson.ErrKindUnsupportedKind, "EnsureSchema requires a struct or pointer to struct entity")
	}
	t := rv.Type()

	idIdx := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if opts := strings.Split(f.Tag.Get("bson"), ","); len(opts) > 1 {
			for _, o := range opts[1:] {
				if o == "id" {
					idIdx = i
				}
			}
		}
	}
	if idIdx < 0 {
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Name == "Id" || t.Field(i).Name == "ID" {
				idIdx = i
				break
			}
		}
	}

	cols := make([]Column, 0, t.NumField())
	ordinal := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("bson")
		if tag == "-" {
			continue
		}

		fieldName := lowerCamel(f.Name)
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			fieldName = name
		}

		isPK := i == idIdx
		if isPK {
			fieldName = "_id"
		}

		cols = append(cols, Column{
			FieldName:    fieldName,
			PropertyName: f.Name,
			TypeName:     hostTypeName(f.Type),
			Ordinal:      ordinal,
			Required:     !isPK && isRequiredByDefault(f.Type),
			PrimaryKey:   isPK,
		})
		ordinal++
	}

	now := time.Now().UTC()
	return &MetadataDocument{
		TableName:   tableName,
		TypeName:    t.Name(),
		DisplayName: t.Name(),
		Columns:     cols,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// isRequiredByDefault treats value types (not pointers, slices, or maps)
// as required columns, matching the common "reference types are nullable,
// value types are not" default most host ORMs start from; callers that
// want a nullable value-typed column register an explicit Column instead
// of relying on EnsureSchema's inference.
func isRequiredByDefault(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return false
	default:
		return true
	}
}

var (
	uuidType      = reflect.TypeOf(uuid.UUID{})
	timeType      = reflect.TypeOf(time.Time{})
	objectIDType  = reflect.TypeOf(bson.ObjectID{})
	byteSliceType = reflect.TypeOf([]byte(nil))
)

// hostTypeName derives the stable, host-language-independent type name a
// column's TypeName stores, normalized and classified the same way
// normalizeTypeName/expectedKindForTypeName read it back.
func hostTypeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		return hostTypeName(t.Elem())
	}
	switch t {
	case uuidType:
		return "Guid"
	case timeType:
		return "DateTime"
	case objectIDType:
		return "ObjectID"
	case byteSliceType:
		return "Binary"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "Boolean"
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int:
		return "Int32"
	case reflect.Int64:
		return "Int64"
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint:
		return "UInt32"
	case reflect.Uint64:
		return "UInt64"
	case reflect.Float32, reflect.Float64:
		return "Double"
	case reflect.String:
		return "String"
	case reflect.Slice, reflect.Array:
		return "Array"
	case reflect.Map, reflect.Struct:
		return "Document"
	default:
		return "Document"
	}
}
