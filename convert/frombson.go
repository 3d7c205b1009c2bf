package convert

import (
	"encoding/base64"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/j4587698/tinydb/bson"
)

// NaturalValue returns v's "natural" host value for an Object/any target:
// Int32→int32, Int64→int64, Double→float64, Decimal128→float64,
// Boolean→bool, String→string, DateTime→time.Time, ObjectId→bson.ObjectID,
// Binary(Uuid/UuidLegacy)→uuid.UUID, Binary(other)→[]byte, Document→
// *bson.Document, Array→*bson.Array, Null→nil.
func NaturalValue(v bson.Value) (any, error) {
	switch v.Kind() {
	case bson.KindNull:
		return nil, nil
	case bson.KindInt32:
		return v.AsInt32(), nil
	case bson.KindInt64, bson.KindDateTime, bson.KindTimestamp:
		if v.Kind() == bson.KindDateTime {
			return v.AsTime(), nil
		}
		return v.AsInt64(), nil
	case bson.KindDouble:
		return v.AsFloat64(), nil
	case bson.KindDecimal128:
		return v.AsDecimal128().Float64(), nil
	case bson.KindBoolean:
		return v.AsBool(), nil
	case bson.KindString, bson.KindSymbol, bson.KindJavaScript:
		return v.AsString(), nil
	case bson.KindObjectID:
		return v.AsObjectID(), nil
	case bson.KindBinary:
		b := v.AsBinary()
		if b.Subtype == bson.BinaryUUID || b.Subtype == bson.BinaryUUIDLegacy {
			return GuidFromBSON(v)
		}
		return append([]byte(nil), b.Data...), nil
	case bson.KindDocument:
		return v.AsDocument(), nil
	case bson.KindArray:
		return v.AsArray(), nil
	default:
		return nil, bson.NewError(bson.ErrKindUnsupportedKind, "no natural host value for "+v.Kind().String())
	}
}

// FromBSON converts v into a reflect.Value assignable to target: checked
// numeric conversion (Overflow on truncating loss), string parsing (Format
// on failure), Guid/byte-array unwrapping, and Array/Document → collection/
// mapping reconstruction.
func FromBSON(v bson.Value, target reflect.Type) (reflect.Value, error) {
	if v.IsNull() {
		return reflect.Zero(target), nil
	}

	switch target {
	case reflect.TypeOf(uuid.UUID{}):
		u, err := GuidFromBSON(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u), nil
	case reflect.TypeOf(bson.ObjectID{}):
		if v.Kind() != bson.KindObjectID {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not an ObjectId")
		}
		return reflect.ValueOf(v.AsObjectID()), nil
	case reflect.TypeOf(time.Time{}):
		if v.Kind() != bson.KindDateTime {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a DateTime")
		}
		return reflect.ValueOf(v.AsTime()), nil
	}

	if target.Kind() == reflect.Interface && target.NumMethod() == 0 {
		nv, err := NaturalValue(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if nv == nil {
			return reflect.Zero(target), nil
		}
		return reflect.ValueOf(nv), nil
	}

	switch target.Kind() {
	case reflect.Bool:
		if v.Kind() != bson.KindBoolean {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a Boolean")
		}
		return reflect.ValueOf(v.AsBool()).Convert(target), nil

	case reflect.String:
		if v.Kind() != bson.KindString && v.Kind() != bson.KindSymbol {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a String")
		}
		return reflect.ValueOf(v.AsString()).Convert(target), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := numericInt64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.New(target).Elem()
		rv.SetInt(n)
		if rv.Int() != n {
			return reflect.Value{}, bson.NewError(bson.ErrKindOverflow, "value out of range for "+target.String())
		}
		return rv, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := numericInt64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if n < 0 {
			return reflect.Value{}, bson.NewError(bson.ErrKindOverflow, "negative value out of range for "+target.String())
		}
		rv := reflect.New(target).Elem()
		rv.SetUint(uint64(n))
		if int64(rv.Uint()) != n {
			return reflect.Value{}, bson.NewError(bson.ErrKindOverflow, "value out of range for "+target.String())
		}
		return rv, nil

	case reflect.Float32, reflect.Float64:
		f, err := numericFloat64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(target), nil

	case reflect.Slice:
		if target.Elem().Kind() == reflect.Uint8 {
			return bytesTarget(v)
		}
		if v.Kind() != bson.KindArray {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not an Array")
		}
		arr := v.AsArray()
		out := reflect.MakeSlice(target, arr.Len(), arr.Len())
		for i := 0; i < arr.Len(); i++ {
			ev, err := FromBSON(arr.Get(i), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case reflect.Map:
		if target.Key().Kind() != reflect.String {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "map with non-string keys has no BSON representation")
		}
		if v.Kind() != bson.KindDocument {
			return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a Document")
		}
		doc := v.AsDocument()
		out := reflect.MakeMapWithSize(target, doc.Len())
		var outerErr error
		doc.Range(func(key string, fv bson.Value) bool {
			ev, err := FromBSON(fv, target.Elem())
			if err != nil {
				outerErr = err
				return false
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(target.Key()), ev)
			return true
		})
		if outerErr != nil {
			return reflect.Value{}, outerErr
		}
		return out, nil
	}

	return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "no conversion from "+v.Kind().String()+" to "+target.String())
}

func bytesTarget(v bson.Value) (reflect.Value, error) {
	switch v.Kind() {
	case bson.KindBinary:
		return reflect.ValueOf(append([]byte(nil), v.AsBinary().Data...)), nil
	case bson.KindString:
		b, err := base64.StdEncoding.DecodeString(v.AsString())
		if err != nil {
			return reflect.Value{}, bson.WrapError(bson.ErrKindFormat, "string is not valid base64", err)
		}
		return reflect.ValueOf(b), nil
	default:
		return reflect.Value{}, bson.NewError(bson.ErrKindUnsupportedKind, "value has no byte-array representation")
	}
}

func numericInt64(v bson.Value) (int64, error) {
	switch v.Kind() {
	case bson.KindInt32:
		return int64(v.AsInt32()), nil
	case bson.KindInt64:
		return v.AsInt64(), nil
	case bson.KindDouble:
		return int64(v.AsFloat64()), nil // truncates, does not round
	case bson.KindDecimal128:
		f, _ := v.AsDecimal128().ToRat().Float64()
		return int64(f), nil
	case bson.KindString:
		n, err := strconv.ParseInt(v.AsString(), 10, 64)
		if err != nil {
			return 0, bson.WrapError(bson.ErrKindFormat, "string is not a valid integer", err)
		}
		return n, nil
	default:
		return 0, bson.NewError(bson.ErrKindUnsupportedKind, "value is not numeric")
	}
}

func numericFloat64(v bson.Value) (float64, error) {
	switch v.Kind() {
	case bson.KindInt32:
		return float64(v.AsInt32()), nil
	case bson.KindInt64:
		return float64(v.AsInt64()), nil
	case bson.KindDouble:
		return v.AsFloat64(), nil
	case bson.KindDecimal128:
		return v.AsDecimal128().Float64(), nil
	case bson.KindString:
		f, err := strconv.ParseFloat(v.AsString(), 64)
		if err != nil {
			return 0, bson.WrapError(bson.ErrKindFormat, "string is not a valid number", err)
		}
		return f, nil
	default:
		return 0, bson.NewError(bson.ErrKindUnsupportedKind, "value is not numeric")
	}
}
