// Package crypto provides finite field helper functions shared by the
// ballot encoding layers.
package crypto

import "math/big"

// SerializedFieldLen is the standard size in bytes for serialized field
// elements.
const SerializedFieldLen = 32 // bytes

// BigToFF returns the finite field representation of the big.Int provided,
// reduced into [0, field). Values already in canonical form are returned
// unchanged.
func BigToFF(field, iv *big.Int) *big.Int {
	z := big.NewInt(0)
	if c := iv.Cmp(field); c == 0 {
		return z
	} else if c != 1 && iv.Cmp(z) != -1 {
		return iv
	}
	return z.Mod(iv, field)
}
