package elgamal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-sdk-go/crypto/ecc"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/curves"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/format"
	"github.com/vocdoni/davinci-sdk-go/crypto/hash/poseidon"
	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// SerializedBallotSize is the size in bytes of a serialized Ballot.
const SerializedBallotSize = params.FieldsPerBallot * SizeCiphertext

// Ballot is the fixed-capacity vector of ciphertexts the circuit operates
// on, one Ciphertext per ballot field including the zero-padding fields.
type Ballot struct {
	CurveType   string                              `json:"curveType,omitempty"`
	Ciphertexts [params.FieldsPerBallot]*Ciphertext `json:"ciphertexts"`
}

// NewBallot creates a new Ballot for the given curve.
func NewBallot(curve ecc.Point) *Ballot {
	z := &Ballot{
		CurveType:   curve.Type(),
		Ciphertexts: [params.FieldsPerBallot]*Ciphertext{},
	}
	for i := range z.Ciphertexts {
		z.Ciphertexts[i] = NewCiphertext(curve)
	}
	return z
}

// Valid checks if the Ballot is valid. A ballot is valid if all its
// Ciphertexts are set and the CurveType is supported.
func (z *Ballot) Valid() bool {
	for _, c := range z.Ciphertexts {
		if c == nil {
			return false
		}
	}
	return curves.IsValid(z.CurveType)
}

// IsZero checks if the Ballot is zero, meaning all Ciphertexts are zero.
func (z *Ballot) IsZero() bool {
	if !curves.IsValid(z.CurveType) {
		return false
	}
	curve := curves.New(z.CurveType)
	for _, c := range z.Ciphertexts {
		if !c.IsZero(curve) {
			return false
		}
	}
	return true
}

// Encrypt encrypts a message vector using the public key provided as
// elliptic curve point. The randomness seed k can be provided or nil to
// generate a new one. Each ciphertext uses its own randomness, derived from
// the seed as a Poseidon hash chain: slot i encrypts with the (i+1)-th
// chain element, so the seed itself never leaves the caller.
func (z *Ballot) Encrypt(message [params.FieldsPerBallot]*big.Int, publicKey ecc.Point, k *big.Int) (*Ballot, error) {
	var err error
	if k == nil {
		if k, err = RandK(); err != nil {
			return nil, fmt.Errorf("elgamal encryption failed: %w", err)
		}
	}
	ks, err := poseidon.DeriveChain(k, params.FieldsPerBallot)
	if err != nil {
		return nil, fmt.Errorf("randomness chain derivation failed: %w", err)
	}
	for i := range z.Ciphertexts {
		if _, err := z.Ciphertexts[i].Encrypt(message[i], publicKey, ks[i+1]); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// EncryptedZero returns a new ballot with all fields set to the encrypted
// zero point using the provided encryption key and k.
func (z *Ballot) EncryptedZero(publicKey ecc.Point, k *big.Int) (*Ballot, error) {
	encZero := NewBallot(publicKey)
	for i := range encZero.Ciphertexts {
		c1, c2 := EncryptedZero(publicKey, k)
		encZero.Ciphertexts[i].C1 = c1
		encZero.Ciphertexts[i].C2 = c2
	}
	return encZero, nil
}

// Reencrypt re-randomizes the ballot using the provided public key and
// seed k. It returns the re-encrypted ballot and the k actually used, which
// is derived from the seed with one Poseidon step. The re-encryption is
// done by adding an encrypted zero ballot to the original one.
func (z *Ballot) Reencrypt(publicKey ecc.Point, k *big.Int) (*Ballot, *big.Int, error) {
	reencryptionK, err := poseidon.Hash(k)
	if err != nil {
		return nil, nil, err
	}
	if z.IsZero() {
		return z, reencryptionK, nil
	}
	// Use the same curve type as the original ballot to avoid mixing point
	// implementations; convert the public key into the ballot's curve type.
	ballotCurve := curves.New(z.CurveType)
	convertedPubKey := ballotCurve.SetPoint(publicKey.Point())
	encZero, err := NewBallot(ballotCurve).EncryptedZero(convertedPubKey, reencryptionK)
	if err != nil {
		return nil, nil, err
	}
	return NewBallot(ballotCurve).Add(z, encZero), reencryptionK, nil
}

// Add adds two Ballots and stores the result in the receiver, which is also
// returned.
func (z *Ballot) Add(x, y *Ballot) *Ballot {
	for i := range z.Ciphertexts {
		z.Ciphertexts[i].Add(x.Ciphertexts[i], y.Ciphertexts[i])
	}
	return z
}

// BigInts returns a slice with 8*4 big ints, the coordinates of each
// Ciphertext as C1.X, C1.Y, C2.X, C2.Y, in the curve's native coordinate
// form.
func (z *Ballot) BigInts() []*big.Int {
	list := make([]*big.Int, 0, params.FieldsPerBallot*4)
	for _, c := range z.Ciphertexts {
		c1x, c1y := c.C1.Point()
		c2x, c2y := c.C2.Point()
		list = append(list, c1x, c1y, c2x, c2y)
	}
	return list
}

// TEBigInts returns the same flattening as BigInts but with every
// coordinate pair explicitly converted from Reduced Twisted Edwards to
// Twisted Edwards form, the representation the circom circuit consumes.
// The ballot must hold points in RTE native form (bjj_gnark).
func (z *Ballot) TEBigInts() []*big.Int {
	list := make([]*big.Int, 0, params.FieldsPerBallot*4)
	for _, c := range z.Ciphertexts {
		var c1, c2 format.RTEPoint
		c1.X, c1.Y = c.C1.Point()
		c2.X, c2.Y = c.C2.Point()
		c1TE, c2TE := c1.ToTE(), c2.ToTE()
		list = append(list, c1TE.X, c1TE.Y, c2TE.X, c2TE.Y)
	}
	return list
}

// SetBigInts sets the Ballot from a slice of 8*4 big ints, representing
// each Ciphertext as C1.X, C1.Y, C2.X, C2.Y in the curve's native
// coordinate form. It returns an error if the input is invalid.
func (z *Ballot) SetBigInts(list []*big.Int) (*Ballot, error) {
	if !curves.IsValid(z.CurveType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCurveType, z.CurveType)
	}
	if len(list) != params.FieldsPerBallot*4 {
		return nil, fmt.Errorf("expected %d big ints, got %d", params.FieldsPerBallot*4, len(list))
	}
	z.Ciphertexts = [params.FieldsPerBallot]*Ciphertext{}
	for i := range z.Ciphertexts {
		c1x, c1y := list[i*4], list[i*4+1]
		c2x, c2y := list[i*4+2], list[i*4+3]
		z.Ciphertexts[i] = &Ciphertext{
			C1: curves.New(z.CurveType).SetPoint(c1x, c1y),
			C2: curves.New(z.CurveType).SetPoint(c2x, c2y),
		}
	}
	return z, nil
}

// Serialize returns a slice of len 8*4*32 bytes, representing each
// Ciphertext as C1.X, C1.Y, C2.X, C2.Y in the curve's native coordinate
// form.
func (z *Ballot) Serialize() []byte {
	var buf bytes.Buffer
	for _, c := range z.Ciphertexts {
		buf.Write(c.Serialize())
	}
	return buf.Bytes()
}

// Deserialize reconstructs a Ballot from a slice of bytes. The input must
// be of len 8*4*32 bytes, otherwise it returns an error.
func (z *Ballot) Deserialize(data []byte) error {
	if len(data) != SerializedBallotSize {
		return fmt.Errorf("invalid input length for Ballot: got %d bytes, expected %d bytes", len(data), SerializedBallotSize)
	}
	for i := range z.Ciphertexts {
		if err := z.Ciphertexts[i].Deserialize(data[i*SizeCiphertext : (i+1)*SizeCiphertext]); err != nil {
			return err
		}
	}
	return nil
}

// String returns a string representation of the Ballot.
func (z *Ballot) String() string {
	b, err := json.Marshal(z)
	if b == nil || err != nil {
		return ""
	}
	return string(b)
}
