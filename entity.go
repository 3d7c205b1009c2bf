package tinydb

import (
	"reflect"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/convert"
	"github.com/j4587698/tinydb/mapping"
)

// ToDocument converts entity to a Document via its registered adapter, or
// the reflection fallback when none is registered.
func ToDocument[T any](entity T) (*bson.Document, error) {
	return mapping.ToDocument(entity)
}

// FromDocument populates a new value of type T from doc.
func FromDocument[T any](doc *bson.Document) (T, error) {
	return mapping.FromDocument[T](doc)
}

// GetID returns entity's id value.
func GetID[T any](entity T) (bson.Value, error) {
	return mapping.GetID(entity)
}

// SetID assigns id to entity's id member. entity must be a pointer when
// no adapter is registered for its type.
func SetID[T any](entity T, id bson.Value) error {
	return mapping.SetID(entity, id)
}

// GetProperty returns the BSON value entity's document representation
// would hold under the given document key.
func GetProperty[T any](entity T, name string) (bson.Value, error) {
	return mapping.GetProperty(entity, name)
}

// ConvertFromBSON converts v to a reflect.Value assignable to target.
func ConvertFromBSON(v bson.Value, target reflect.Type) (reflect.Value, error) {
	return convert.FromBSON(v, target)
}

// ConvertToBSON converts an arbitrary host value to a bson.Value.
func ConvertToBSON(v any) (bson.Value, error) {
	return convert.ToBSON(v)
}

// ConvertEnum decodes a BSON numeric value back into enum type E via
// checked widening.
func ConvertEnum[E convert.EnumInteger](v bson.Value) (E, error) {
	return convert.ConvertEnum[E](v)
}
