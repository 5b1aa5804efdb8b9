// Package format bridges the two affine coordinate conventions used for
// BabyJubJub points: Reduced Twisted Edwards (the form gnark-based verifiers
// work with) and Twisted Edwards (the form circom/iden3-based provers work
// with). The two forms are related by a fixed invertible scaling of the x
// coordinate only:
//
//	TE.x  = RTE.x * (-f)^-1 mod p
//	RTE.x = TE.x  * (-f)    mod p
//	y is identical in both forms
//
// where f is the protocol scaling constant. See
// https://github.com/bellesmarta/baby_jubjub for the derivation.
package format

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	scalingFactor, _ = new(big.Int).SetString("6360561867910373094066688120553762416144456282423235903351243436111059670888", 10)
	negScaling       fr.Element
	negScalingInv    fr.Element
)

func init() {
	var f fr.Element
	f.SetBigInt(scalingFactor)
	negScaling.Neg(&f)
	negScalingInv.Inverse(&negScaling)
}

// FromRTEtoTE converts a point from Reduced Twisted Edwards to Twisted
// Edwards coordinates. It applies the transformation:
//
//	x = x'/(-f)
//	y = y'
//
// The conversion is exact over the BN254 scalar field, so it maps the
// identity (x = 0) to itself.
func FromRTEtoTE(x, y *big.Int) (*big.Int, *big.Int) {
	var xRTE, xTE fr.Element
	xRTE.SetBigInt(x)
	xTE.Mul(&xRTE, &negScalingInv)
	return xTE.BigInt(new(big.Int)), y
}

// FromTEtoRTE converts a point from Twisted Edwards to Reduced Twisted
// Edwards coordinates. It applies the transformation:
//
//	x' = x*(-f)
//	y' = y
//
// FromTEtoRTE is the exact inverse of FromRTEtoTE.
func FromTEtoRTE(x, y *big.Int) (*big.Int, *big.Int) {
	var xTE, xRTE fr.Element
	xTE.SetBigInt(x)
	xRTE.Mul(&xTE, &negScaling)
	return xRTE.BigInt(new(big.Int)), y
}

// TEPoint is a pair of affine coordinates in Twisted Edwards form. Carrying
// the form in the type keeps a TE point from being fed to code expecting the
// reduced form without an explicit conversion.
type TEPoint struct {
	X, Y *big.Int
}

// RTEPoint is a pair of affine coordinates in Reduced Twisted Edwards form.
type RTEPoint struct {
	X, Y *big.Int
}

// ToTE converts the point to Twisted Edwards form.
func (p RTEPoint) ToTE() TEPoint {
	x, y := FromRTEtoTE(p.X, p.Y)
	return TEPoint{X: x, Y: y}
}

// ToRTE converts the point to Reduced Twisted Edwards form.
func (p TEPoint) ToRTE() RTEPoint {
	x, y := FromTEtoRTE(p.X, p.Y)
	return RTEPoint{X: x, Y: y}
}
