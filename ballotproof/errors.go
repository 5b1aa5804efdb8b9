package ballotproof

import "fmt"

// Sizing and domain errors returned by GenerateBallotProofInputs. All of
// them are fatal and reported synchronously; none of the underlying
// computations are retried since they are deterministic pure math.
var (
	// ErrFieldCountMismatch is returned when the number of supplied field
	// values differs from the ballot mode's numFields, or exceeds the
	// circuit capacity.
	ErrFieldCountMismatch = fmt.Errorf("field count mismatch")
	// ErrInvalidEncryptionKey is returned when the encryption key is
	// missing, the zero point, or not a point on the curve.
	ErrInvalidEncryptionKey = fmt.Errorf("invalid encryption key")
	// ErrInvalidSeed is returned when the randomness seed k is missing or
	// zero. A zero seed would make the derived randomness chain trivial.
	ErrInvalidSeed = fmt.Errorf("invalid randomness seed")
)
