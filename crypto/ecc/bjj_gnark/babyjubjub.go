// Package bjj implements the BabyJubJub elliptic curve operations using the
// gnark-crypto library. Coordinates are kept in the curve's native Reduced
// Twisted Edwards form; use crypto/ecc/format for explicit conversion to the
// Twisted Edwards form expected by circom tooling.
package bjj

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/fxamacker/cbor/v2"
	curve "github.com/vocdoni/davinci-sdk-go/crypto/ecc"
)

// CurveType is the identifier for the BabyJubJub curve implementation using
// the gnark-crypto library.
const CurveType = "bjj_gnark"

// Params holds the curve parameters of BabyJubJub.
var Params babyjubjub.CurveParams

func init() {
	Params = babyjubjub.GetEdwardsCurve()
}

// BJJ is the affine representation of a BabyJubJub group element, in
// Reduced Twisted Edwards coordinates.
type BJJ struct {
	inner *babyjubjub.PointAffine
	lock  sync.Mutex
}

// New creates a new BJJ point, set to the identity element.
func New() curve.Point {
	p := &BJJ{inner: new(babyjubjub.PointAffine)}
	p.SetZero()
	return p
}

// New creates a new BJJ point, set to the identity element.
func (g *BJJ) New() curve.Point {
	return New()
}

// Order returns the order of the BabyJubJub curve subgroup.
func (g *BJJ) Order() *big.Int {
	return new(big.Int).Set(&Params.Order)
}

// Add performs the addition of two points and stores the result in g.
func (g *BJJ) Add(a, b curve.Point) {
	g.inner.Add(a.(*BJJ).inner, b.(*BJJ).inner)
}

// SafeAdd performs the addition of two points with a lock on the receiver.
func (g *BJJ) SafeAdd(a, b curve.Point) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.Add(a, b)
}

// ScalarMult performs scalar multiplication of a point by a scalar.
func (g *BJJ) ScalarMult(a curve.Point, scalar *big.Int) {
	g.inner.ScalarMultiplication(a.(*BJJ).inner, scalar)
}

// ScalarBaseMult performs scalar multiplication using the generator point.
func (g *BJJ) ScalarBaseMult(scalar *big.Int) {
	g.inner.ScalarMultiplication(&Params.Base, scalar)
}

// Equal checks if the given point is equal to the current point.
func (g *BJJ) Equal(a curve.Point) bool {
	return g.inner.Equal(a.(*BJJ).inner)
}

// Neg negates the given point and stores the result in g.
func (g *BJJ) Neg(a curve.Point) {
	g.inner.Neg(a.(*BJJ).inner)
}

// SetZero sets the current point to the identity element (0, 1).
func (g *BJJ) SetZero() {
	g.inner.X.SetZero()
	g.inner.Y.SetOne()
}

// Set sets g to the value of another point.
func (g *BJJ) Set(a curve.Point) {
	g.inner.Set(a.(*BJJ).inner)
}

// SetGenerator sets the point to the BabyJubJub generator.
func (g *BJJ) SetGenerator() {
	g.inner.Set(&Params.Base)
}

// IsZero reports whether the point is the identity element.
func (g *BJJ) IsZero() bool {
	return g.inner.X.IsZero() && g.inner.Y.IsOne()
}

// IsOnCurve reports whether the point satisfies the curve equation. Used to
// reject malformed points before they enter any encryption.
func (g *BJJ) IsOnCurve() bool {
	return g.inner.IsOnCurve()
}

// String returns a string representation of the point in its native
// Reduced Twisted Edwards coordinates.
func (g *BJJ) String() string {
	x, y := g.Point()
	return fmt.Sprintf("%s,%s", x.String(), y.String())
}

// Marshal serializes the elliptic curve element into a byte slice.
func (g *BJJ) Marshal() []byte {
	return g.inner.Marshal()
}

// Unmarshal deserializes the elliptic curve element from a byte slice.
func (g *BJJ) Unmarshal(buf []byte) error {
	if g.inner == nil {
		g.inner = new(babyjubjub.PointAffine)
	}
	return g.inner.Unmarshal(buf)
}

// MarshalJSON serializes the elliptic curve element into a JSON byte slice,
// as an array of the two decimal-string coordinates.
func (g *BJJ) MarshalJSON() ([]byte, error) {
	x, y := g.Point()
	return json.Marshal([]string{x.String(), y.String()})
}

// UnmarshalJSON deserializes the elliptic curve element from a JSON byte
// slice.
func (g *BJJ) UnmarshalJSON(buf []byte) error {
	var coords []string
	if err := json.Unmarshal(buf, &coords); err != nil {
		return err
	}
	if len(coords) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(coords))
	}
	x, okX := new(big.Int).SetString(coords[0], 10)
	y, okY := new(big.Int).SetString(coords[1], 10)
	if !okX || !okY {
		return fmt.Errorf("invalid decimal coordinates")
	}
	g.SetPoint(x, y)
	return nil
}

// MarshalCBOR serializes the elliptic curve element into a CBOR byte slice.
func (g *BJJ) MarshalCBOR() ([]byte, error) {
	x, y := g.Point()
	return cbor.Marshal([]*big.Int{x, y})
}

// UnmarshalCBOR deserializes the elliptic curve element from a CBOR byte
// slice.
func (g *BJJ) UnmarshalCBOR(buf []byte) error {
	var coords []*big.Int
	if err := cbor.Unmarshal(buf, &coords); err != nil {
		return err
	}
	if len(coords) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(coords))
	}
	g.SetPoint(coords[0], coords[1])
	return nil
}

// Point returns the X and Y coordinates of the elliptic curve element, in
// Reduced Twisted Edwards coordinates.
func (g *BJJ) Point() (*big.Int, *big.Int) {
	x, y := new(big.Int), new(big.Int)
	g.inner.X.BigInt(x)
	g.inner.Y.BigInt(y)
	return x, y
}

// SetPoint sets the elliptic curve element from the X and Y coordinates in
// Reduced Twisted Edwards coordinates.
func (g *BJJ) SetPoint(x, y *big.Int) curve.Point {
	if g.inner == nil {
		g.inner = new(babyjubjub.PointAffine)
	}
	g.inner.X.SetBigInt(x)
	g.inner.Y.SetBigInt(y)
	return g
}

// Type returns the curve type identifier.
func (g *BJJ) Type() string {
	return CurveType
}
