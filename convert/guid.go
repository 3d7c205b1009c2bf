package convert

import (
	"github.com/google/uuid"

	"github.com/j4587698/tinydb/bson"
)

// GuidToBSON encodes u as a Binary value with subtype Uuid, using
// uuid.UUID's native RFC 4122 big-endian byte layout.
func GuidToBSON(u uuid.UUID) (bson.Value, error) {
	b, err := bson.NewBinary(bson.BinaryUUID, append([]byte(nil), u[:]...))
	if err != nil {
		return bson.Value{}, err
	}
	return bson.BinaryValue(b), nil
}

// GuidToBSONLegacy encodes u as a Binary value with subtype UuidLegacy,
// using the historical mixed-endian field layout some drivers wrote: the
// first three fields (32-bit, 16-bit, 16-bit) are byte-swapped to
// little-endian, and the remaining 8 bytes are written as-is: a historical
// mixed-endian variant some Mongo driver generations wrote alongside the
// standard RFC 4122 encoding.
func GuidToBSONLegacy(u uuid.UUID) (bson.Value, error) {
	var swapped [16]byte
	swapped[0], swapped[1], swapped[2], swapped[3] = u[3], u[2], u[1], u[0]
	swapped[4], swapped[5] = u[5], u[4]
	swapped[6], swapped[7] = u[7], u[6]
	copy(swapped[8:], u[8:])

	b, err := bson.NewBinary(bson.BinaryUUIDLegacy, swapped[:])
	if err != nil {
		return bson.Value{}, err
	}
	return bson.BinaryValue(b), nil
}

// GuidFromBSON decodes a Binary value with subtype Uuid or UuidLegacy back
// into a uuid.UUID.
func GuidFromBSON(v bson.Value) (uuid.UUID, error) {
	if v.Kind() != bson.KindBinary {
		return uuid.UUID{}, bson.NewError(bson.ErrKindUnsupportedKind, "value is not a Binary")
	}
	b := v.AsBinary()
	if len(b.Data) != 16 {
		return uuid.UUID{}, bson.NewError(bson.ErrKindMalformedValue, "guid binary payload must be exactly 16 bytes")
	}

	switch b.Subtype {
	case bson.BinaryUUID:
		var u uuid.UUID
		copy(u[:], b.Data)
		return u, nil
	case bson.BinaryUUIDLegacy:
		var u uuid.UUID
		u[0], u[1], u[2], u[3] = b.Data[3], b.Data[2], b.Data[1], b.Data[0]
		u[4], u[5] = b.Data[5], b.Data[4]
		u[6], u[7] = b.Data[7], b.Data[6]
		copy(u[8:], b.Data[8:])
		return u, nil
	default:
		return uuid.UUID{}, bson.NewError(bson.ErrKindMalformedValue, "binary subtype is not a guid encoding")
	}
}
