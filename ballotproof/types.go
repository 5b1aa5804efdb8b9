package ballotproof

import (
	"github.com/vocdoni/davinci-sdk-go/crypto/elgamal"
	"github.com/vocdoni/davinci-sdk-go/types"
)

// BallotProofInputs contains the voter-side data needed to compose the
// witness inputs of a ballot proof. Address and process ID arrive as hex
// strings, the encryption key as its two decimal-string coordinates in
// Reduced Twisted Edwards form, as published by the sequencer.
type BallotProofInputs struct {
	Address       types.HexBytes    `json:"address"`
	ProcessID     types.HexBytes    `json:"processID"`
	EncryptionKey []*types.BigInt   `json:"encryptionKey"`
	K             *types.BigInt     `json:"k"`
	BallotMode    *types.BallotMode `json:"ballotMode"`
	Weight        *types.BigInt     `json:"weight"`
	FieldValues   []*types.BigInt   `json:"fieldValues"`
}

// CircomInputs contains the witness data for the circom ballot validity
// circuit. Every value is a decimal string and the field names and order
// are a compatibility contract with the circuit compiler; do not change
// them without a versioned protocol change.
type CircomInputs struct {
	Fields         []*types.BigInt `json:"fields"`
	NumFields      *types.BigInt   `json:"num_fields"`
	UniqueValues   *types.BigInt   `json:"unique_values"`
	MaxValue       *types.BigInt   `json:"max_value"`
	MinValue       *types.BigInt   `json:"min_value"`
	MaxValueSum    *types.BigInt   `json:"max_value_sum"`
	MinValueSum    *types.BigInt   `json:"min_value_sum"`
	CostExponent   *types.BigInt   `json:"cost_exponent"`
	CostFromWeight *types.BigInt   `json:"cost_from_weight"`
	Address        *types.BigInt   `json:"address"`
	Weight         *types.BigInt   `json:"weight"`
	ProcessID      *types.BigInt   `json:"process_id"`
	VoteID         *types.BigInt   `json:"vote_id"`
	EncryptionKey  []*types.BigInt `json:"encryption_pubkey"`
	K              *types.BigInt   `json:"k"`
	Cipherfields   []*types.BigInt `json:"cipherfields"`
	InputsHash     *types.BigInt   `json:"inputs_hash"`
}

// BallotProofResult contains the result of composing the data to generate
// the witness for a ballot proof. It includes the inputs for the circom
// circuit but also the data required to cast the vote through the sequencer
// API: the ballot in Reduced Twisted Edwards form, the vote identifier and
// the inputs hash the sequencer uses to verify the resulting proof.
type BallotProofResult struct {
	ProcessID    types.HexBytes  `json:"processId"`
	Address      types.HexBytes  `json:"address"`
	Ballot       *elgamal.Ballot `json:"ballot"`
	VoteID       *types.BigInt   `json:"voteId"`
	InputsHash   *types.BigInt   `json:"inputsHash"`
	CircomInputs *CircomInputs   `json:"circomInputs"`
}
