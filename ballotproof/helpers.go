package ballotproof

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/format"
	"github.com/vocdoni/davinci-sdk-go/crypto/hash/poseidon"
	"github.com/vocdoni/davinci-sdk-go/types"
	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// VoteID calculates the vote identifier: the Poseidon hash of the process
// ID, the voter's address and the secret seed k, truncated to the least
// significant 160 bits. Identical inputs always produce the identical vote
// ID, which upstream relies on for idempotent resubmission detection. The
// inputs are reduced into the ballot proof curve scalar field before
// hashing.
func VoteID(processID, address types.HexBytes, k *types.BigInt) (*types.BigInt, error) {
	if processID == nil || address == nil || k == nil {
		return nil, fmt.Errorf("processID, address and k are required")
	}
	field := params.BallotProofCurve.ScalarField()
	h, err := poseidon.Hash(
		processID.BigInt().ToFF(field).MathBigInt(), // process id
		address.BigInt().ToFF(field).MathBigInt(),   // address
		k.ToFF(field).MathBigInt(),                  // k
	)
	if err != nil {
		return nil, fmt.Errorf("error hashing vote ID inputs: %w", err)
	}
	return new(types.BigInt).SetBigInt(truncateToLowerBits(h, params.VoteIDBits)), nil
}

// truncateToLowerBits returns input truncated to its least-significant
// `bits` bits.
func truncateToLowerBits(input *big.Int, bits uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), bits) // 1 << bits
	mask.Sub(mask, big.NewInt(1))                 // (1 << bits) - 1
	return new(big.Int).And(input, mask)          // input & ((1 << bits) - 1)
}

// BallotInputsHash computes the hash that summarizes the public inputs of
// the ballot proof circuit. The flattened input order is a compatibility
// contract with the circuit:
//
//	processID
//	address
//	weight
//	ballot mode scalars (numFields, uniqueValues, maxValue, minValue,
//	  maxValueSum, minValueSum, costExponent, costFromWeight)
//	encryption key X, Y (in Twisted Edwards form)
//	k
//	ballot ciphertext coordinates (in Twisted Edwards form)
//
// The list exceeds the Poseidon arity, so it is compressed with the same
// 16-wide chunked multi-hash the circuit performs internally.
func BallotInputsHash(
	processID *types.BigInt,
	address *types.BigInt,
	weight *types.BigInt,
	ballotMode *types.BallotMode,
	encryptionKey format.TEPoint,
	k *types.BigInt,
	cipherfields []*big.Int,
) (*types.BigInt, error) {
	if processID == nil || address == nil || weight == nil || k == nil {
		return nil, fmt.Errorf("ballot inputs hash: required input is nil")
	}
	if ballotMode == nil {
		return nil, fmt.Errorf("ballot inputs hash: ballot mode is nil")
	}
	if len(cipherfields) != params.FieldsPerBallot*4 {
		return nil, fmt.Errorf("ballot inputs hash: expected %d ciphertext coordinates, got %d",
			params.FieldsPerBallot*4, len(cipherfields))
	}
	inputs := make([]*big.Int, 0, 3+8+2+1+len(cipherfields))
	inputs = append(inputs,
		processID.MathBigInt(),
		address.MathBigInt(),
		weight.MathBigInt(),
	)
	inputs = append(inputs, ballotMode.BigInts()...)
	inputs = append(inputs,
		encryptionKey.X,
		encryptionKey.Y,
		k.MathBigInt(),
	)
	inputs = append(inputs, cipherfields...)

	h, err := poseidon.MultiPoseidon(inputs...)
	if err != nil {
		return nil, fmt.Errorf("ballot inputs hash: %w", err)
	}
	return new(types.BigInt).SetBigInt(h), nil
}

// bigIntsToTypes converts a slice of math big ints into wire big ints.
func bigIntsToTypes(list []*big.Int) []*types.BigInt {
	out := make([]*types.BigInt, len(list))
	for i, v := range list {
		out[i] = new(types.BigInt).SetBigInt(v)
	}
	return out
}
