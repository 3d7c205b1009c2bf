package mapping

import (
	"reflect"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/logger"
)

// resolveAdapter looks up an Adapter for entity's type, trying the value
// type first and then (entity is a pointer) the pointee type, so a caller
// may register against either T or *T.
func resolveAdapter(entity any) (Adapter, bool) {
	t := reflect.TypeOf(entity)
	if t == nil {
		return nil, false
	}
	if a, ok := Lookup(t); ok {
		return a, true
	}
	if t.Kind() == reflect.Ptr {
		if a, ok := Lookup(t.Elem()); ok {
			return a, true
		}
	} else {
		if a, ok := Lookup(reflect.PointerTo(t)); ok {
			return a, true
		}
	}
	return nil, false
}

// ToDocument converts entity to a Document, using its registered Adapter
// if one exists, otherwise the reflection fallback.
func ToDocument(entity any) (*bson.Document, error) {
	return ToDocumentVisited(entity, visitedSet{})
}

// ToDocumentVisited is ToDocument with an explicit cycle-tracking set
// threaded through, for entities reached during another entity's own
// serialization.
func ToDocumentVisited(entity any, visited visitedSet) (*bson.Document, error) {
	if entity == nil {
		return bson.NewDocument(), nil
	}

	if ptr, ok := entityPointer(entity); ok {
		if stub, seen := visited[ptr]; seen {
			return stub.AsDocument(), nil
		}
		id, hasID, _ := idOf(entity)
		visited[ptr] = bson.DocumentValue(cycleStub(id, hasID))
		defer delete(visited, ptr)
	}

	if adapter, ok := resolveAdapter(entity); ok {
		return adapter.ToDocument(entity)
	}
	logger.TraceIf("mapping", "no adapter registered for %T, using reflection fallback", entity)
	return ReflectToDocument(entity, visited)
}

// FromDocument populates a new value of type T from doc, using T's
// registered Adapter if one exists, otherwise the reflection fallback.
func FromDocument[T any](doc *bson.Document) (T, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// T is an interface type with a nil zero value; reflection has no
		// concrete type to build, so only an adapter keyed by the pointer
		// element can help here, which requires T to be *SomeStruct.
		return zero, bson.NewError(bson.ErrKindUnsupportedKind, "FromDocument requires a concrete or pointer type parameter")
	}

	if adapter, ok := resolveAdapterForType(t); ok {
		entity, err := adapter.FromDocument(doc)
		if err != nil {
			return zero, err
		}
		return entity.(T), nil
	}

	rv, err := ReflectFromDocument(doc, t)
	if err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

func resolveAdapterForType(t reflect.Type) (Adapter, bool) {
	if a, ok := Lookup(t); ok {
		return a, true
	}
	if t.Kind() == reflect.Ptr {
		if a, ok := Lookup(t.Elem()); ok {
			return a, true
		}
	} else {
		if a, ok := Lookup(reflect.PointerTo(t)); ok {
			return a, true
		}
	}
	return nil, false
}

// idOf resolves entity's id value, via its Adapter if registered or the
// reflection id-resolution precedence otherwise. hasID is false
// only when no id member could be resolved at all (distinct from an
// id member being present but invalid, which isValidID rejects).
func idOf(entity any) (id bson.Value, hasID bool, err error) {
	if adapter, ok := resolveAdapter(entity); ok {
		v, err := adapter.GetID(entity)
		if err != nil {
			return bson.Value{}, false, err
		}
		return v, true, nil
	}

	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return bson.Value{}, false, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return bson.Value{}, false, nil
	}

	for _, fm := range structFields(rv.Type()) {
		if !fm.isID {
			continue
		}
		v, err := fieldToBSON(rv.FieldByName(fm.goName), visitedSet{})
		if err != nil {
			return bson.Value{}, false, err
		}
		return v, true, nil
	}
	return bson.Value{}, false, nil
}

// GetID returns entity's id value.
func GetID(entity any) (bson.Value, error) {
	v, hasID, err := idOf(entity)
	if err != nil {
		return bson.Value{}, err
	}
	if !hasID {
		return bson.Null, nil
	}
	return v, nil
}

// HasValidID reports whether entity carries a non-default id.
func HasValidID(entity any) bool {
	if adapter, ok := resolveAdapter(entity); ok {
		return adapter.HasValidID(entity)
	}
	v, hasID, err := idOf(entity)
	if err != nil || !hasID {
		return false
	}
	return isValidID(v)
}

// SetID assigns id to entity's id member.
func SetID(entity any, id bson.Value) error {
	if adapter, ok := resolveAdapter(entity); ok {
		return adapter.SetID(entity, id)
	}

	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return bson.NewError(bson.ErrKindArgument, "SetID requires a non-nil pointer when no adapter is registered")
	}
	rv = rv.Elem()
	for _, fm := range structFields(rv.Type()) {
		if !fm.isID {
			continue
		}
		return fieldFromBSON(id, rv.FieldByName(fm.goName))
	}
	return bson.NewError(bson.ErrKindInvalidOperation, "entity has no resolvable id member")
}

// GetProperty returns the BSON value entity's document representation
// would hold under the given document key.
func GetProperty(entity any, name string) (bson.Value, error) {
	if adapter, ok := resolveAdapter(entity); ok {
		return adapter.GetProperty(entity, name)
	}
	doc, err := ToDocument(entity)
	if err != nil {
		return bson.Value{}, err
	}
	return doc.Get(name), nil
}
