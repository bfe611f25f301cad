package sim

import (
	"reflect"

	"gonum.org/v1/gonum/mat"
)

// CheckCoupling returns the size of a square coupling matrix. A nil matrix,
// including a typed nil such as (*mat.Dense)(nil), is rejected before
// Dims is called, as is a matrix with no rows.
func CheckCoupling(l mat.Matrix) (int, error) {
	if l == nil {
		return 0, InvalidParam("L", nil)
	}
	if v := reflect.ValueOf(l); v.Kind() == reflect.Pointer && v.IsNil() {
		return 0, InvalidParam("L", nil)
	}

	r, c := l.Dims()
	if r != c {
		return 0, MismatchParam("L", c, r)
	}
	if r == 0 {
		return 0, InvalidParam("n", r)
	}
	return r, nil
}
