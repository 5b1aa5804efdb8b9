// Package ecc defines the elliptic curve group abstraction used by the
// ballot encryption layer, together with its BabyJubJub implementations.
package ecc

import (
	"math/big"
)

// Point defines the common operations that can be performed on elliptic
// curve group elements. It represents the affine coordinates of a point on
// an elliptic curve and provides methods for arithmetic operations,
// serialization, and comparison. The coordinates exposed by Point and
// consumed by SetPoint are always in the implementation's native coordinate
// form; callers that need a different form must convert explicitly through
// the format package.
type Point interface {
	// New returns a new elliptic curve point of the same implementation,
	// set to the identity element.
	New() Point

	// Order returns the order of the elliptic curve subgroup.
	Order() *big.Int

	// Add adds two elliptic curve group elements and stores the result in
	// the receiver.
	Add(a, b Point)

	// SafeAdd adds two elliptic curve group elements and stores the result
	// in the receiver, ensuring exclusive access to the receiver during the
	// operation.
	SafeAdd(a, b Point)

	// ScalarMult multiplies the group element a by the scalar value and
	// stores the result in the receiver.
	ScalarMult(a Point, scalar *big.Int)

	// ScalarBaseMult multiplies the generator point by the scalar value and
	// stores the result in the receiver.
	ScalarBaseMult(scalar *big.Int)

	// Marshal serializes the elliptic curve element into a byte slice.
	Marshal() []byte

	// Unmarshal deserializes a byte slice into an elliptic curve element.
	// The input buf must represent a valid serialized point, or an error
	// will be returned.
	Unmarshal(buf []byte) error

	// Equal checks if two elliptic curve elements are equal.
	Equal(a Point) bool

	// Neg negates an elliptic curve element, effectively computing its
	// inverse.
	Neg(a Point)

	// SetZero sets the elliptic curve element to the identity element.
	SetZero()

	// Set sets the value of the receiver to be equal to another elliptic
	// curve element.
	Set(a Point)

	// SetGenerator sets the elliptic curve element to the generator point.
	SetGenerator()

	// String returns a human readable representation of the elliptic curve
	// element.
	String() string

	// Point returns the X and Y coordinates of the elliptic curve element,
	// in the implementation's native coordinate form.
	Point() (*big.Int, *big.Int)

	// SetPoint sets the X and Y coordinates of the elliptic curve element,
	// given in the implementation's native coordinate form.
	SetPoint(x, y *big.Int) Point

	// Type returns the identifier of the curve implementation.
	Type() string
}
