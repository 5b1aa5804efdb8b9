// Package params holds the protocol constants shared by every layer of the
// ballot encoding engine. All values are process-wide constants with no
// mutation path, so they are safe to read from any goroutine.
package params

import "github.com/consensys/gnark-crypto/ecc"

const (
	// FieldsPerBallot is the fixed capacity of the circuit's field vector.
	// Ballots with fewer choices are zero-padded up to this size.
	FieldsPerBallot = 8
	// MaxValuePerBallotField is the maximum value per field in a ballot.
	MaxValuePerBallotField = 2 << 16
	// VoteIDBits is the size of the vote identifier space. Vote IDs are
	// hashes truncated to their least-significant VoteIDBits bits.
	VoteIDBits uint = 160
)

// Curves
const (
	// BallotProofCurve is the curve of the circom ballot validity circuit.
	// Its scalar field is the base field of BabyJubJub, so every value that
	// enters the circuit must be reduced into this field first.
	BallotProofCurve = ecc.BN254
)
