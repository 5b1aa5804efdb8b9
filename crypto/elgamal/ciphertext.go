package elgamal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/vocdoni/arbo"
	"github.com/vocdoni/davinci-sdk-go/crypto"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc"
)

// sizes in bytes needed to serialize a Ciphertext
const (
	sizeCoord      = crypto.SerializedFieldLen
	sizePoint      = 2 * sizeCoord
	SizeCiphertext = 2 * sizePoint
)

// Ciphertext is one ElGamal encrypted field value, the two curve points
// (C1, C2) produced by encrypting a single plaintext. Coordinates follow
// the native form of the underlying curve implementation.
type Ciphertext struct {
	C1 ecc.Point `json:"c1"`
	C2 ecc.Point `json:"c2"`
}

// NewCiphertext creates a new Ciphertext on the same curve as the given
// point. The point must be from one of the curves supported by the
// crypto/ecc/curves package.
func NewCiphertext(curve ecc.Point) *Ciphertext {
	return &Ciphertext{C1: curve.New(), C2: curve.New()}
}

// Encrypt encrypts a message using the public key provided as elliptic
// curve point and the randomness k. If k is nil a fresh random one is
// generated.
func (z *Ciphertext) Encrypt(message *big.Int, publicKey ecc.Point, k *big.Int) (*Ciphertext, error) {
	var err error
	if k == nil {
		if k, err = RandK(); err != nil {
			return nil, fmt.Errorf("elgamal encryption failed: %w", err)
		}
	}
	z.C1, z.C2 = EncryptWithK(publicKey, message, k)
	return z, nil
}

// Add adds two Ciphertexts component-wise and stores the result in z, which
// is also returned.
func (z *Ciphertext) Add(x, y *Ciphertext) *Ciphertext {
	z.C1.SafeAdd(x.C1, y.C1)
	z.C2.SafeAdd(x.C2, y.C2)
	return z
}

// IsZero reports whether both components are the identity element of the
// given curve.
func (z *Ciphertext) IsZero(curve ecc.Point) bool {
	zero := curve.New()
	zero.SetZero()
	return z.C1 != nil && z.C2 != nil && z.C1.Equal(zero) && z.C2.Equal(zero)
}

// Serialize returns a slice of 4*32 bytes, representing C1.X, C1.Y, C2.X,
// C2.Y in the curve's native coordinate form.
func (z *Ciphertext) Serialize() []byte {
	var buf bytes.Buffer
	c1x, c1y := z.C1.Point()
	c2x, c2y := z.C2.Point()
	for _, bi := range []*big.Int{c1x, c1y, c2x, c2y} {
		buf.Write(arbo.BigIntToBytes(sizeCoord, bi))
	}
	return buf.Bytes()
}

// Deserialize reconstructs a Ciphertext from a slice of bytes. The input
// must be of length 4*32 bytes, representing C1.X, C1.Y, C2.X, C2.Y in the
// curve's native coordinate form.
func (z *Ciphertext) Deserialize(data []byte) error {
	if len(data) != SizeCiphertext {
		return fmt.Errorf("invalid input length: got %d bytes, expected %d bytes", len(data), SizeCiphertext)
	}
	readBigInt := func(offset int) *big.Int {
		return arbo.BytesToBigInt(data[offset : offset+sizeCoord])
	}
	z.C1 = z.C1.SetPoint(readBigInt(0*sizeCoord), readBigInt(1*sizeCoord))
	z.C2 = z.C2.SetPoint(readBigInt(2*sizeCoord), readBigInt(3*sizeCoord))
	return nil
}

// Marshal converts Ciphertext to a byte slice.
func (z *Ciphertext) Marshal() ([]byte, error) {
	return json.Marshal(z)
}

// Unmarshal populates Ciphertext from a byte slice.
func (z *Ciphertext) Unmarshal(data []byte) error {
	return json.Unmarshal(data, z)
}

// String returns a string representation of the Ciphertext.
func (z *Ciphertext) String() string {
	if z == nil || z.C1 == nil || z.C2 == nil {
		return "{C1: nil, C2: nil}"
	}
	return fmt.Sprintf("{C1: %s, C2: %s}", z.C1.String(), z.C2.String())
}
