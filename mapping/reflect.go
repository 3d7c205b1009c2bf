package mapping

import (
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/convert"
)

// idPropertyOverrides is the explicit-configuration id-resolution tier: a
// caller that cannot or does not want to tag a struct field registers the
// Go field name to treat as the id here instead.
var idPropertyOverrides sync.Map // reflect.Type -> string (Go field name)

// RegisterIDProperty designates fieldName as t's id member, for types that
// don't tag their id field with `bson:",id"`. Consulted after tag markers
// and before the by-name fallback (Id/ID).
func RegisterIDProperty(t reflect.Type, fieldName string) {
	idPropertyOverrides.Store(t, fieldName)
}

type fieldMeta struct {
	goName string
	key    string // document key this field is written/read under
	isID   bool
}

// structFields returns the discoverable members of t: exported instance
// fields only, skipping anything tagged `bson:"-"`.
//
// Go cannot export an identifier spelled "_id" (export requires an
// initial uppercase letter), so the by-name id fallback tier only
// recognizes "Id" and "ID" — "_id" as a Go field name is not reachable by
// this fallback, only as the wire key every id is ultimately written
// under.
func structFields(t reflect.Type) []fieldMeta {
	fields := make([]fieldMeta, 0, t.NumField())
	taggedID := -1

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		tag := f.Tag.Get("bson")
		if tag == "-" {
			continue
		}

		meta := fieldMeta{goName: f.Name, key: lowerCamel(f.Name)}
		name, opts := splitTag(tag)
		if name != "" {
			meta.key = name
		}
		for _, opt := range opts {
			if opt == "id" {
				meta.isID = true
			}
		}
		if meta.isID {
			taggedID = len(fields)
		}
		fields = append(fields, meta)
	}

	idIdx := taggedID // tier 1: `bson:",id"` tag marker
	if idIdx < 0 {
		if explicitName, ok := idPropertyOverrides.Load(t); ok { // tier 2: explicit override
			for i := range fields {
				if fields[i].goName == explicitName.(string) {
					idIdx = i
					break
				}
			}
		}
	}
	if idIdx < 0 { // tier 3: by conventional name, Id before ID
		for _, want := range []string{"Id", "ID"} {
			for i := range fields {
				if fields[i].goName == want {
					idIdx = i
					break
				}
			}
			if idIdx >= 0 {
				break
			}
		}
	}
	if idIdx >= 0 {
		fields[idIdx].isID = true
		fields[idIdx].key = "_id"
	}
	return fields
}

func splitTag(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ReflectToDocument builds a Document from entity by walking its exported
// fields, used when no Adapter is registered for entity's type. visited
// tracks in-progress pointers for cycle detection.
func ReflectToDocument(entity any, visited map[uintptr]bson.Value) (*bson.Document, error) {
	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return bson.NewDocument(), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, bson.NewError(bson.ErrKindUnsupportedKind, "reflection fallback requires a struct or pointer to struct")
	}

	doc := bson.NewDocument()
	for _, fm := range structFields(rv.Type()) {
		fv := rv.FieldByName(fm.goName)
		bv, err := fieldToBSON(fv, visited)
		if err != nil {
			return nil, err
		}
		doc = doc.Set(fm.key, bv)
	}
	return doc, nil
}

func fieldToBSON(fv reflect.Value, visited map[uintptr]bson.Value) (bson.Value, error) {
	if fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct {
		return nestedEntityToBSON(fv, visited)
	}
	if fv.Kind() == reflect.Struct && fv.Type() != reflect.TypeOf(bson.ObjectID{}) && fv.Type() != reflect.TypeOf(time.Time{}) {
		return nestedEntityToBSON(fv.Addr(), visited)
	}
	return convert.ToBSON(fv.Interface())
}

func nestedEntityToBSON(fv reflect.Value, visited map[uintptr]bson.Value) (bson.Value, error) {
	if fv.Kind() == reflect.Ptr && fv.IsNil() {
		return bson.Null, nil
	}
	doc, err := ToDocumentVisited(fv.Interface(), visited)
	if err != nil {
		return bson.Value{}, err
	}
	return bson.DocumentValue(doc), nil
}

// ReflectFromDocument populates a new value of type t from doc, matching
// each entry to a field by camel-case key.
func ReflectFromDocument(doc *bson.Document, t reflect.Type) (reflect.Value, error) {
	ptr := t.Kind() == reflect.Ptr
	structType := t
	if ptr {
		structType = t.Elem()
	}
	out := reflect.New(structType).Elem()

	byKey := make(map[string]fieldMeta)
	for _, fm := range structFields(structType) {
		byKey[fm.key] = fm
	}

	var rangeErr error
	doc.Range(func(key string, v bson.Value) bool {
		fm, ok := byKey[key]
		if !ok {
			return true
		}
		fv := out.FieldByName(fm.goName)
		if err := fieldFromBSON(v, fv); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return reflect.Value{}, rangeErr
	}

	if ptr {
		return out.Addr(), nil
	}
	return out, nil
}

func fieldFromBSON(v bson.Value, fv reflect.Value) error {
	if v.Kind() != bson.KindDocument {
		converted, err := convert.FromBSON(v, fv.Type())
		if err != nil {
			return err
		}
		fv.Set(converted)
		return nil
	}

	isNestedStruct := fv.Type() != reflect.TypeOf(bson.ObjectID{}) &&
		(fv.Kind() == reflect.Struct || (fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct))
	if !isNestedStruct {
		converted, err := convert.FromBSON(v, fv.Type())
		if err != nil {
			return err
		}
		fv.Set(converted)
		return nil
	}

	nested, err := ReflectFromDocument(v.AsDocument(), fv.Type())
	if err != nil {
		return err
	}
	fv.Set(nested)
	return nil
}
