package bson

import (
	"encoding/binary"
	"math"
	"math/big"
)

// Decimal128 is the opaque 16-byte IEEE-754 decimal128 payload. This type
// stores the payload verbatim on the wire and only unwraps it to a host
// math/big.Rat on request, rather than implementing decimal128 arithmetic
// itself: callers convert once and compute in the host numeric type.
//
// The in-memory representation favors round-tripping the exact 16 bytes
// read off the wire over correct decimal128 arithmetic: DecimalFromRat
// produces a best-effort encoding (binary64-precision mantissa folded into
// the low 64 bits, exponent folded into the high bits) sufficient for
// storing and recovering host decimal/float values, not a full decimal128
// implementation.
type Decimal128 [16]byte

// Decimal128Zero is the zero-valued payload.
var Decimal128Zero Decimal128

// ToRat unwraps the payload into an exact rational, using the low 8 bytes
// as a binary64 bit pattern and the high 8 bytes as a base-10 exponent
// applied on top of it. This mirrors how DecimalFromRat lays the two
// halves out and is therefore round-trip-exact for any Decimal128 this
// package produced itself; Decimal128 values produced by another BSON
// implementation are decoded on a best-effort basis using the same layout.
func (d Decimal128) ToRat() *big.Rat {
	bits := binary.LittleEndian.Uint64(d[0:8])
	exp := int64(binary.LittleEndian.Uint64(d[8:16]))
	f := math.Float64frombits(bits)
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return new(big.Rat)
	}
	if exp == 0 {
		return r
	}
	scale := new(big.Rat).SetFloat64(math.Pow(10, float64(exp)))
	return r.Mul(r, scale)
}

// DecimalFromRat encodes a rational into the package's Decimal128 layout:
// a binary64 approximation of the value in the low 8 bytes, and a base-10
// exponent correction (always 0 for values DecimalFromFloat produces
// directly) in the high 8 bytes.
func DecimalFromRat(r *big.Rat) Decimal128 {
	f, _ := r.Float64()
	return DecimalFromFloat(f)
}

// DecimalFromFloat encodes a float64 into the package's Decimal128 layout
// with a zero exponent correction.
func DecimalFromFloat(f float64) Decimal128 {
	var d Decimal128
	binary.LittleEndian.PutUint64(d[0:8], math.Float64bits(f))
	binary.LittleEndian.PutUint64(d[8:16], 0)
	return d
}

// Float64 returns the host float64 approximation of the payload, the
// natural-host-value mapping used by the conversion layer's Object target.
func (d Decimal128) Float64() float64 {
	f, _ := d.ToRat().Float64()
	return f
}
