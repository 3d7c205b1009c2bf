package bson

import (
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ObjectID is the 12-byte opaque identifier used as the default primary key
// for documents. Layout follows the classic Mongo-lineage shape:
// a 4-byte big-endian Unix timestamp, a 5-byte per-process random tail and
// a 3-byte big-endian counter, so ids minted close together still sort close
// together under CompareTo's byte-ordered comparison.
type ObjectID [12]byte

// objectIDCounter disambiguates ObjectIDs minted within the same second by
// the same process, mirroring the classic counter field without needing a
// separate machine/process identifier: the random tail is reseeded once at
// process start from a UUID, and the counter's low 24 bits fill the last
// three bytes after it.
var objectIDCounter atomic.Uint32

var objectIDRandomTail = func() [5]byte {
	var tail [5]byte
	id := uuid.New()
	copy(tail[:], id[:5])
	return tail
}()

// NewObjectID mints a fresh ObjectID: 4 bytes of Unix seconds, 5 bytes of
// process-lifetime random tail (seeded from google/uuid at init), and 3
// bytes of monotonic counter guaranteeing uniqueness within this process
// even when multiple ids are minted within the same second.
func NewObjectID() ObjectID {
	var id ObjectID
	sec := uint32(time.Now().Unix())
	id[0] = byte(sec >> 24)
	id[1] = byte(sec >> 16)
	id[2] = byte(sec >> 8)
	id[3] = byte(sec)
	copy(id[4:9], objectIDRandomTail[:])
	n := objectIDCounter.Add(1)
	id[9] = byte(n >> 16)
	id[10] = byte(n >> 8)
	id[11] = byte(n)
	return id
}

// ObjectIDEmpty is the all-zero ObjectID, used by HasValidID as the
// "no id assigned" sentinel.
var ObjectIDEmpty ObjectID

// IsEmpty reports whether every byte of the id is zero.
func (id ObjectID) IsEmpty() bool {
	return id == ObjectIDEmpty
}

// String renders the id as 24 lowercase hex characters.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// ObjectIDFromHex parses a 24-character hex string into an ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 24 {
		return id, newError(ErrKindFormat, "object id must be 24 hex characters")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, wrapError(ErrKindFormat, "object id is not valid hex", err)
	}
	copy(id[:], b)
	return id, nil
}

// Time returns the embedded Unix timestamp component.
func (id ObjectID) Time() time.Time {
	sec := int64(id[0])<<24 | int64(id[1])<<16 | int64(id[2])<<8 | int64(id[3])
	return time.Unix(sec, 0).UTC()
}
