package bson

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash returns an xxhash64 digest of v consistent with Equals: equal Values
// always hash equal. The digest is fed incrementally rather than built from
// an intermediate byte slice.
func (v Value) Hash() uint64 {
	d := xxhash.New()
	v.writeHash(d)
	return d.Sum64()
}

func (v Value) writeHash(d *xxhash.Digest) {
	_, _ = d.Write([]byte{byte(v.kind)})
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
	case KindInt32:
		writeUint64(d, uint64(v.i32))
	case KindInt64, KindDateTime, KindTimestamp:
		writeUint64(d, uint64(v.i64))
	case KindDouble:
		f := v.f64
		if f == 0 {
			f = 0 // -0 and +0 are Equal, so both hash as +0
		}
		writeUint64(d, math.Float64bits(f))
	case KindDecimal128:
		_, _ = d.Write(v.dec[:])
	case KindBoolean:
		if v.b {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	case KindString, KindSymbol, KindJavaScript:
		_, _ = d.Write([]byte(v.str))
	case KindObjectID:
		_, _ = d.Write(v.oid[:])
	case KindBinary:
		_, _ = d.Write([]byte{byte(v.bin.Subtype)})
		_, _ = d.Write(v.bin.Data)
	case KindRegularExpression:
		_, _ = d.Write([]byte(v.re.Pattern))
		_, _ = d.Write([]byte(v.re.Options))
	case KindJavaScriptWithScope:
		_, _ = d.Write([]byte(v.str))
		v.jsScope.writeHash(d)
	case KindDocument:
		v.doc.writeHash(d)
	case KindArray:
		v.arr.writeHash(d)
	}
}

func (doc *Document) writeHash(d *xxhash.Digest) {
	if doc == nil {
		return
	}
	for i, k := range doc.keys {
		_, _ = d.Write([]byte(k))
		doc.values[i].writeHash(d)
	}
}

func (a *Array) writeHash(d *xxhash.Digest) {
	if a == nil {
		return
	}
	for _, v := range a.values {
		v.writeHash(d)
	}
}

func writeUint64(d *xxhash.Digest, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = d.Write(buf[:])
}
