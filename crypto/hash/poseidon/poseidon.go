// Package poseidon wraps the iden3 Poseidon permutation used by the ballot
// circuits, both as a fixed-arity hash and as a chunked multi-hash for
// input vectors larger than the permutation arity. The round structure is
// circuit-specified, so the primitive is sourced from the audited
// go-iden3-crypto implementation and never re-derived here.
package poseidon

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// maxArity is the maximum number of inputs the Poseidon permutation accepts
// in one call. The chunking performed by MultiPoseidon exists only because
// of this limit and must match the circuit's chunking exactly.
const maxArity = 16

// Hash computes the Poseidon hash of the provided inputs. It returns an
// error if no inputs are provided, if any input is nil, or if the number of
// inputs exceeds the permutation arity.
func Hash(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs provided")
	}
	if len(inputs) > maxArity {
		return nil, fmt.Errorf("too many inputs: got %d, max %d", len(inputs), maxArity)
	}
	for i, v := range inputs {
		if v == nil {
			return nil, fmt.Errorf("nil input at index %d", i)
		}
	}
	return poseidon.Hash(inputs)
}

// MultiPoseidon computes the Poseidon hash of a variable number of big.Int
// inputs. It handles large numbers of inputs by chunking them into groups
// of 16, hashing each chunk, and then recursively hashing the resulting
// hashes together. The chunk size, chunk order and recursive combination
// mirror the hashing performed inside the compiled circuit; changing any of
// them would make the two sides disagree on every input hash.
// Returns an error if no inputs are provided.
func MultiPoseidon(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) <= maxArity {
		return Hash(inputs...)
	}

	numChunks := (len(inputs) + maxArity - 1) / maxArity
	hashes := make([]*big.Int, 0, numChunks)
	for i := 0; i < len(inputs); i += maxArity {
		end := min(i+maxArity, len(inputs))
		h, err := Hash(inputs[i:end]...)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}

	if len(hashes) <= maxArity {
		return Hash(hashes...)
	}
	// more than 16 chunk hashes, recursively combine them
	return MultiPoseidon(hashes...)
}

// DeriveChain expands a seed into count+1 field elements by repeated
// hashing: out[0] = seed and out[i] = Hash(out[i-1]) for i >= 1. It is a
// pure function of its arguments; identical seeds always produce identical
// chains. It fails only on a nil seed or a negative count.
func DeriveChain(seed *big.Int, count int) ([]*big.Int, error) {
	if seed == nil {
		return nil, fmt.Errorf("nil seed")
	}
	if count < 0 {
		return nil, fmt.Errorf("negative chain length %d", count)
	}
	out := make([]*big.Int, count+1)
	out[0] = new(big.Int).Set(seed)
	for i := 1; i <= count; i++ {
		h, err := Hash(out[i-1])
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
