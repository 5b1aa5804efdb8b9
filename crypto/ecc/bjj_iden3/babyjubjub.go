// Package bjj implements the BabyJubJub elliptic curve operations using the
// iden3 library. Coordinates are kept in the curve's native Twisted Edwards
// form, the one circom tooling understands; use crypto/ecc/format for
// explicit conversion to the reduced form.
package bjj

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/fxamacker/cbor/v2"
	babyjubjub "github.com/iden3/go-iden3-crypto/babyjub"
	curve "github.com/vocdoni/davinci-sdk-go/crypto/ecc"
)

// CurveType is the identifier for the BabyJubJub curve implementation using
// the iden3 library.
const CurveType = "bjj_iden3"

// BJJ is the affine representation of a BabyJubJub group element, in
// Twisted Edwards coordinates.
type BJJ struct {
	inner *babyjubjub.Point
	lock  sync.Mutex
}

// New creates a new BJJ point, set to the identity element.
func New() curve.Point {
	return &BJJ{inner: babyjubjub.NewPoint()}
}

// New creates a new BJJ point, set to the identity element.
func (g *BJJ) New() curve.Point {
	return New()
}

// Order returns the order of the BabyJubJub curve subgroup.
func (g *BJJ) Order() *big.Int {
	return new(big.Int).Set(babyjubjub.SubOrder)
}

// Add computes the addition of two curve points and stores the result in
// the receiver.
func (g *BJJ) Add(a, b curve.Point) {
	g.inner = g.inner.Projective().Add(a.(*BJJ).inner.Projective(), b.(*BJJ).inner.Projective()).Affine()
}

// SafeAdd performs the addition of two points with a lock on the receiver.
func (g *BJJ) SafeAdd(a, b curve.Point) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.Add(a, b)
}

// ScalarMult computes the scalar multiplication of a point and stores the
// result in the receiver.
func (g *BJJ) ScalarMult(a curve.Point, scalar *big.Int) {
	g.inner = g.inner.Mul(scalar, a.(*BJJ).inner)
}

// ScalarBaseMult computes the scalar multiplication of the generator point
// and stores the result in the receiver.
func (g *BJJ) ScalarBaseMult(scalar *big.Int) {
	g.inner = g.inner.Mul(scalar, babyjubjub.B8)
}

// Equal checks if two curve points are equal.
func (g *BJJ) Equal(a curve.Point) bool {
	return g.inner.X.Cmp(a.(*BJJ).inner.X) == 0 && g.inner.Y.Cmp(a.(*BJJ).inner.Y) == 0
}

// Neg computes the negation of a curve point and stores the result in the
// receiver.
func (g *BJJ) Neg(a curve.Point) {
	g.Set(a)
	proj := g.inner.Projective()
	proj.X = proj.X.Neg(proj.X)
	g.inner.X = g.inner.X.Set(proj.Affine().X)
}

// SetZero sets the point to the identity element (0, 1).
func (g *BJJ) SetZero() {
	p := g.inner.Projective()
	p.X.SetZero()
	p.Y.SetOne()
	p.Z.SetOne()
	g.inner = p.Affine()
}

// Set copies the value from another curve point.
func (g *BJJ) Set(a curve.Point) {
	g.inner.X = g.inner.X.Set(a.(*BJJ).inner.X)
	g.inner.Y = g.inner.Y.Set(a.(*BJJ).inner.Y)
}

// SetGenerator sets the point to the base generator of the curve.
func (g *BJJ) SetGenerator() {
	gen := babyjubjub.B8
	g.inner.X = g.inner.X.Set(gen.X)
	g.inner.Y = g.inner.Y.Set(gen.Y)
}

// String returns a string representation of the point in its native Twisted
// Edwards coordinates.
func (g *BJJ) String() string {
	return fmt.Sprintf("%s,%s", g.inner.X.String(), g.inner.Y.String())
}

// Marshal compresses and serializes the point to a byte slice.
func (g *BJJ) Marshal() []byte {
	b := g.inner.Compress()
	return b[:]
}

// Unmarshal deserializes and decompresses a point from a byte slice.
func (g *BJJ) Unmarshal(buf []byte) error {
	b32 := [32]byte{}
	copy(b32[:], buf)
	_, err := g.inner.Decompress(b32)
	return err
}

// MarshalJSON serializes the elliptic curve element into a JSON byte slice,
// as an array of the two decimal-string coordinates.
func (g *BJJ) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{g.inner.X.String(), g.inner.Y.String()})
}

// UnmarshalJSON deserializes the elliptic curve element from a JSON byte
// slice.
func (g *BJJ) UnmarshalJSON(buf []byte) error {
	if g.inner == nil {
		g.inner = babyjubjub.NewPoint()
	}
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
	g.inner.X = x
	g.inner.Y = y
	return nil
}

// MarshalCBOR serializes the elliptic curve element into a CBOR byte slice.
func (g *BJJ) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal([]*big.Int{g.inner.X, g.inner.Y})
}

// UnmarshalCBOR deserializes the elliptic curve element from a CBOR byte
// slice.
func (g *BJJ) UnmarshalCBOR(buf []byte) error {
	if g.inner == nil {
		g.inner = babyjubjub.NewPoint()
	}
	var coords []*big.Int
	if err := cbor.Unmarshal(buf, &coords); err != nil {
		return err
	}
	if len(coords) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(coords))
	}
	g.inner.X = coords[0]
	g.inner.Y = coords[1]
	return nil
}

// Point returns the X and Y coordinates of the point, in Twisted Edwards
// coordinates.
func (g *BJJ) Point() (*big.Int, *big.Int) {
	return new(big.Int).Set(g.inner.X), new(big.Int).Set(g.inner.Y)
}

// SetPoint sets the point to the given X and Y coordinates, in Twisted
// Edwards coordinates.
func (g *BJJ) SetPoint(x, y *big.Int) curve.Point {
	g.inner = babyjubjub.NewPoint()
	g.inner.X = new(big.Int).Set(x)
	g.inner.Y = new(big.Int).Set(y)
	return g
}

// Type returns the curve type identifier.
func (g *BJJ) Type() string {
	return CurveType
}
