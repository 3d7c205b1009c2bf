package mapping

import (
	"reflect"

	"github.com/j4587698/tinydb/bson"
)

// visitedSet tracks entity pointers currently being serialized in the
// current call tree, keyed by pointer identity. It is threaded through
// every recursive call as an explicit argument rather than stored on a
// shared receiver.
type visitedSet = map[uintptr]bson.Value

// isValidID reports whether v counts as a non-default id value (Int/Long
// != 0, Guid != zero, String non-empty/non-whitespace, ObjectId != Empty;
// any other kind, including Null, is not a valid id).
func isValidID(v bson.Value) bool {
	switch v.Kind() {
	case bson.KindInt32:
		return v.AsInt32() != 0
	case bson.KindInt64:
		return v.AsInt64() != 0
	case bson.KindString:
		for _, r := range v.AsString() {
			if r != ' ' && r != '\t' && r != '\n' {
				return true
			}
		}
		return false
	case bson.KindObjectID:
		return !v.AsObjectID().IsEmpty()
	case bson.KindBinary:
		b := v.AsBinary()
		if len(b.Data) == 0 {
			return false
		}
		for _, by := range b.Data {
			if by != 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// cycleStub builds the id-only-or-empty document a re-entered cycle edge
// resolves to: `{ "_id": id }` when id is a valid id, otherwise `{}`.
func cycleStub(id bson.Value, hasID bool) *bson.Document {
	if hasID && isValidID(id) {
		return bson.NewDocument().Set("_id", id)
	}
	return bson.NewDocument()
}

// entityPointer returns the pointer identity to key visitedSet by, and
// whether entity is pointer-shaped at all (non-pointer entities can never
// participate in a reference cycle, so they skip tracking entirely).
func entityPointer(entity any) (uintptr, bool) {
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return 0, false
	}
	return rv.Pointer(), true
}
