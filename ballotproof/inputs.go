// Package ballotproof composes the witness inputs for the circom ballot
// validity circuit. It turns a voter's plaintext choices into the exact set
// of field elements, ciphertexts and hashes the circuit expects, plus the
// side data the sequencer API needs to accept the vote.
package ballotproof

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	bjj "github.com/vocdoni/davinci-sdk-go/crypto/ecc/bjj_gnark"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/format"
	"github.com/vocdoni/davinci-sdk-go/crypto/elgamal"
	"github.com/vocdoni/davinci-sdk-go/types"
	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// GenerateBallotProofInputs composes the data required to generate the
// witness for a ballot proof using the circom circuit, and the data
// required to cast the vote through the sequencer API. It parses the public
// encryption key of the process, encrypts the ballot fields with randomness
// derived from the secret seed k, and calculates the vote identifier and
// the aggregate inputs hash. The whole computation is a pure function of
// its arguments: two calls with identical inputs yield identical results.
func GenerateBallotProofInputs(inputs *BallotProofInputs) (*BallotProofResult, error) {
	if inputs == nil {
		return nil, fmt.Errorf("nil inputs")
	}
	if inputs.BallotMode == nil {
		return nil, fmt.Errorf("ballot mode is required")
	}
	if err := inputs.BallotMode.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ballot mode: %w", err)
	}
	if inputs.Weight == nil {
		return nil, fmt.Errorf("weight is required")
	}
	field := params.BallotProofCurve.ScalarField()
	if !inputs.Weight.IsInField(field) {
		return nil, fmt.Errorf("weight is not in the scalar field")
	}

	// the number of supplied field values must match the declared ballot
	// mode exactly, the remaining circuit slots are zero padded below
	numFields := int(inputs.BallotMode.NumFields)
	if len(inputs.FieldValues) != numFields {
		return nil, fmt.Errorf("%w: got %d field values, ballot mode declares %d",
			ErrFieldCountMismatch, len(inputs.FieldValues), numFields)
	}

	// the seed k drives the whole randomness chain and must be a non-zero
	// field element
	if inputs.K == nil {
		return nil, fmt.Errorf("%w: k is required", ErrInvalidSeed)
	}
	ffK := inputs.K.ToFF(field)
	if ffK.MathBigInt().Sign() == 0 {
		return nil, fmt.Errorf("%w: k reduces to zero", ErrInvalidSeed)
	}

	// compose the encryption key with the coords from the inputs, given in
	// reduced twisted edwards form, and check it is a usable public key
	if len(inputs.EncryptionKey) != 2 || inputs.EncryptionKey[0] == nil || inputs.EncryptionKey[1] == nil {
		return nil, fmt.Errorf("%w: expected 2 coordinates", ErrInvalidEncryptionKey)
	}
	encKey, ok := bjj.New().SetPoint(
		inputs.EncryptionKey[0].MathBigInt(),
		inputs.EncryptionKey[1].MathBigInt(),
	).(*bjj.BJJ)
	if !ok || !encKey.IsOnCurve() {
		return nil, fmt.Errorf("%w: point is not on the curve", ErrInvalidEncryptionKey)
	}
	if encKey.IsZero() {
		return nil, fmt.Errorf("%w: point is the identity", ErrInvalidEncryptionKey)
	}

	// normalize the address to its canonical 20 byte form
	address := types.HexBytes(common.BytesToAddress(inputs.Address).Bytes())

	// pad the field values with zeros up to the circuit capacity
	fields := [params.FieldsPerBallot]*big.Int{}
	for i := range fields {
		if i < len(inputs.FieldValues) {
			if inputs.FieldValues[i] == nil {
				return nil, fmt.Errorf("nil field value at index %d", i)
			}
			fields[i] = inputs.FieldValues[i].MathBigInt()
		} else {
			fields[i] = big.NewInt(0)
		}
	}

	// encrypt every slot, padding slots included, each with its own chain
	// derived randomness
	ballot, err := elgamal.NewBallot(encKey).Encrypt(fields, encKey, ffK.MathBigInt())
	if err != nil {
		return nil, fmt.Errorf("error encrypting ballot: %w", err)
	}

	// all downstream circom values operate in twisted edwards form
	var encKeyRTE format.RTEPoint
	encKeyRTE.X, encKeyRTE.Y = encKey.Point()
	encKeyTE := encKeyRTE.ToTE()
	cipherfieldsTE := ballot.TEBigInts()

	// safe address and processID, reduced into the circuit scalar field
	ffAddress := address.BigInt().ToFF(field)
	ffProcessID := inputs.ProcessID.BigInt().ToFF(field)

	// calculate the vote identifier
	voteID, err := VoteID(inputs.ProcessID, address, ffK)
	if err != nil {
		return nil, fmt.Errorf("error calculating vote ID: %w", err)
	}

	// calculate the aggregate hash of the circuit public inputs
	inputsHash, err := BallotInputsHash(
		ffProcessID,
		ffAddress,
		inputs.Weight,
		inputs.BallotMode,
		encKeyTE,
		ffK,
		cipherfieldsTE,
	)
	if err != nil {
		return nil, fmt.Errorf("error calculating ballot inputs hash: %w", err)
	}

	bmScalars := bigIntsToTypes(inputs.BallotMode.BigInts())
	return &BallotProofResult{
		ProcessID:  inputs.ProcessID,
		Address:    address,
		Ballot:     ballot,
		VoteID:     voteID,
		InputsHash: inputsHash,
		CircomInputs: &CircomInputs{
			Fields:         bigIntsToTypes(fields[:]),
			NumFields:      bmScalars[0],
			UniqueValues:   bmScalars[1],
			MaxValue:       bmScalars[2],
			MinValue:       bmScalars[3],
			MaxValueSum:    bmScalars[4],
			MinValueSum:    bmScalars[5],
			CostExponent:   bmScalars[6],
			CostFromWeight: bmScalars[7],
			Address:        ffAddress,
			Weight:         inputs.Weight,
			ProcessID:      ffProcessID,
			VoteID:         voteID,
			EncryptionKey:  bigIntsToTypes([]*big.Int{encKeyTE.X, encKeyTE.Y}),
			K:              ffK,
			Cipherfields:   bigIntsToTypes(cipherfieldsTE),
			InputsHash:     inputsHash,
		},
	}, nil
}
