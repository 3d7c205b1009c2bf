package bson_test

import (
	"math"
	"testing"

	"github.com/j4587698/tinydb/bson"
)

func TestDecimalFromFloatRoundTrip(t *testing.T) {
	tests := []float64{0, 1, -1, 3.25, 1e10, -0.000001}
	for _, f := range tests {
		d := bson.DecimalFromFloat(f)
		got := d.Float64()
		if math.Abs(got-f) > 1e-9 {
			t.Errorf("DecimalFromFloat(%v).Float64() = %v, want %v", f, got, f)
		}
	}
}

func TestDecimal128ZeroIsZero(t *testing.T) {
	if got := bson.Decimal128Zero.Float64(); got != 0 {
		t.Errorf("Decimal128Zero.Float64() = %v, want 0", got)
	}
}
