// Package convert implements coercion between host scalars/collections and
// bson.Value, with numeric widening/narrowing, enum strategies, and
// Guid/byte-array encoding variants.
//
// convert deliberately does not know about registered entity adapters —
// that dispatch belongs to mapping, which calls back into convert for
// every leaf scalar value it encounters. convert's own struct handling is
// limited to the two well-known host types (time.Time, uuid.UUID) the
// rules call out by name.
package convert

import (
	"encoding/base64"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/j4587698/tinydb/bson"
)

// ToBSON converts an arbitrary host value to a bson.Value. Registered
// entity types are not handled here; callers that need adapter dispatch
// should check the mapping registry first.
func ToBSON(v any) (bson.Value, error) {
	if v == nil {
		return bson.Null, nil
	}

	switch t := v.(type) {
	case bson.Value:
		return t, nil
	case bool:
		return bson.Bool(t), nil
	case string:
		return bson.String(t), nil
	case time.Time:
		return bson.DateTime(t), nil
	case []byte:
		b, err := bson.NewBinary(bson.BinaryGeneric, t)
		if err != nil {
			return bson.Value{}, err
		}
		return bson.BinaryValue(b), nil
	case uuid.UUID:
		return GuidToBSON(t)
	case bson.ObjectID:
		return bson.ObjectIDValue(t), nil
	case bson.Decimal128:
		return bson.Decimal(t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int:
		return bson.Int32(int32(rv.Int())), nil
	case reflect.Int64:
		return bson.Int64(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return bson.Int32(int32(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64:
		return bson.Int64(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return bson.Double(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		arr := bson.NewArray()
		for i := 0; i < rv.Len(); i++ {
			elem, err := ToBSON(rv.Index(i).Interface())
			if err != nil {
				return bson.Value{}, err
			}
			arr = arr.Append(elem)
		}
		return bson.ArrayValue(arr), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return bson.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "map with non-string keys has no BSON representation")
		}
		doc := bson.NewDocument()
		iter := rv.MapRange()
		for iter.Next() {
			elem, err := ToBSON(iter.Value().Interface())
			if err != nil {
				return bson.Value{}, err
			}
			doc = doc.Set(iter.Key().String(), elem)
		}
		return bson.DocumentValue(doc), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return bson.Null, nil
		}
		return ToBSON(rv.Elem().Interface())
	}

	return bson.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "unregistered type "+rv.Type().String()+" has no BSON representation")
}

// BytesToBSONString base64-encodes b into a BSON String value, an
// alternate byte-array encoding alongside the direct Binary mapping.
func BytesToBSONString(b []byte) bson.Value {
	return bson.String(base64.StdEncoding.EncodeToString(b))
}
