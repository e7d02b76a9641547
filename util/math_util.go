package util

import (
	"fmt"
	"math/bits"
)

// AddUint64 adds up the values, returning the sum, an overflow indicator and
// an error when the sum does not fit into uint64. On overflow the returned
// value is the wrapped sum.
func AddUint64(values ...uint64) (uint64, bool, error) {
	var sum, carry uint64
	var overflow bool
	for _, v := range values {
		sum, carry = bits.Add64(sum, v, 0)
		if carry != 0 {
			overflow = true
		}
	}
	if overflow {
		return sum, true, fmt.Errorf("uint64 sum overflow: %v", values)
	}
	return sum, false, nil
}

// MulUint64 multiplies a and b, returning the product, an overflow indicator
// and an error when the product does not fit into uint64. On overflow the
// returned value is the low 64 bits of the product.
func MulUint64(a, b uint64) (uint64, bool, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return lo, true, fmt.Errorf("uint64 multiplication overflow: %d * %d", a, b)
	}
	return lo, false, nil
}
