// Package elgamal implements ElGamal encryption over the BabyJubJub curve,
// one plaintext field value per ciphertext pair, plus the fixed-size ballot
// of ciphertexts the voting circuits operate on.
package elgamal

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-sdk-go/crypto"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc"
	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// RandK generates a random k value for encryption, inside the scalar field
// of the ballot proof curve.
func RandK() (*big.Int, error) {
	kBytes := make([]byte, 20)
	if _, err := rand.Read(kBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random k: %v", err)
	}
	k := new(big.Int).SetBytes(kBytes)
	return crypto.BigToFF(params.BallotProofCurve.ScalarField(), k), nil
}

// Encrypt encrypts a message using the public key provided as elliptic
// curve point. It generates a random k and returns the two points that
// represent the encrypted message and the random k used to encrypt it.
func Encrypt(publicKey ecc.Point, msg *big.Int) (ecc.Point, ecc.Point, *big.Int, error) {
	k, err := RandK()
	if err != nil {
		return nil, nil, nil, err
	}
	c1, c2 := EncryptWithK(publicKey, msg, k)
	return c1, c2, k, nil
}

// EncryptWithK encrypts a message using the public key provided as elliptic
// curve point and the randomness k provided. It returns the two points that
// represent the encrypted message:
//
//	C1 = [k] * G
//	C2 = [msg] * G + [k] * publicKey
//
// The plaintext is lifted onto the curve by scalar multiplication of the
// generator, the embedding the circuit performs. Fixed inputs always
// produce the same ciphertext.
func EncryptWithK(pubKey ecc.Point, msg, k *big.Int) (ecc.Point, ecc.Point) {
	// reduce the message into the subgroup order without mutating it
	m := new(big.Int).Mod(msg, pubKey.Order())
	// compute C1 = k * G
	c1 := pubKey.New()
	c1.ScalarBaseMult(k)
	// compute s = k * pubKey
	s := pubKey.New()
	s.ScalarMult(pubKey, k)
	// encode message as point M = m * G
	mp := pubKey.New()
	mp.ScalarBaseMult(m)
	// compute C2 = M + s
	c2 := pubKey.New()
	c2.Add(mp, s)
	return c1, c2
}

// EncryptedZero computes the encryption of zero for the given public key
// and k. Since the zero embedding is the identity point, the ciphertext
// reduces to:
//
//	C1 = [k] * G
//	C2 = [k] * publicKey
//
// Adding an encrypted zero to a ciphertext re-randomizes it without
// changing the plaintext.
func EncryptedZero(publicKey ecc.Point, k *big.Int) (ecc.Point, ecc.Point) {
	c1 := publicKey.New()
	c1.ScalarBaseMult(k)
	c2 := publicKey.New()
	c2.ScalarMult(publicKey, k)
	return c1, c2
}

// GenerateKey generates a new public/private ElGamal encryption key pair.
func GenerateKey(curve ecc.Point) (publicKey ecc.Point, privateKey *big.Int, err error) {
	order := curve.Order()
	d, err := rand.Int(rand.Reader, order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key scalar: %v", err)
	}
	if d.Sign() == 0 {
		d = big.NewInt(1) // avoid zero private keys
	}
	publicKey = curve.New()
	publicKey.ScalarBaseMult(d)
	return publicKey, d, nil
}

// Decrypt decrypts (c1,c2) with the secret key d and searches the discrete
// log m in the interval [0,maxMessage].
//
// It always returns the plaintext point M = c2 - d*c1. If m is not
// contained in the requested interval an error is returned.
func Decrypt(
	publicKey ecc.Point, // the curve generator G is obtained from this value
	privateKey *big.Int, // secret scalar d
	c1, c2 ecc.Point, // ciphertext
	maxMessage uint64, // inclusive upper bound for m
) (M ecc.Point, message *big.Int, err error) {
	if privateKey == nil || privateKey.Sign() <= 0 {
		return nil, nil, fmt.Errorf("decrypt: empty or negative private key")
	}
	if maxMessage == 0 {
		return nil, nil, fmt.Errorf("decrypt: maxMessage == 0")
	}

	// recover the plaintext point
	M = c2.New()
	M.Set(c2)
	tmp := c1.New()
	tmp.ScalarMult(c1, privateKey) // tmp = d*c1
	tmp.Neg(tmp)                   //       -d*c1
	M.Add(M, tmp)                  // M = c2 - d*c1

	// solve M == m*G on the small interval
	G := publicKey.New()
	G.SetGenerator()
	message, err = BabyStepGiantStepECC(M, G, maxMessage)
	if err != nil {
		return nil, nil, err
	}
	return M, message, nil
}

// BabyStepGiantStepECC implements the baby-step/giant-step algorithm for a
// known bounded interval. It is deterministic, so it always finds m when it
// exists within the interval.
func BabyStepGiantStepECC(beta, alpha ecc.Point, max uint64) (*big.Int, error) {
	// compute m = ceil(sqrt(max)) using integer arithmetic only
	m := new(big.Int).Sqrt(new(big.Int).SetUint64(max))
	if new(big.Int).Mul(m, m).Cmp(new(big.Int).SetUint64(max)) < 0 {
		m.Add(m, big.NewInt(1))
	}
	mU64 := m.Uint64()

	// baby steps
	baby := alpha.New()
	baby.SetZero()
	table := make(map[string]uint64, mU64+1)
	for j := uint64(0); j < mU64; j++ {
		table[pointKey(baby)] = j
		baby.Add(baby, alpha)
	}

	// prepare the constant giant-step increment -m*G
	c := alpha.New()
	c.ScalarMult(alpha, m)
	c.Neg(c)

	// giant steps
	giant := beta.New()
	giant.Set(beta)
	for i := uint64(0); i <= mU64; i++ {
		if j, ok := table[pointKey(giant)]; ok {
			x := new(big.Int).SetUint64(i*mU64 + j)
			if x.Cmp(new(big.Int).SetUint64(max)) <= 0 {
				return x, nil
			}
		}
		giant.Add(giant, c)
	}
	return nil, fmt.Errorf("bsgs: discrete log not found in interval")
}

// pointKey returns a compact encoding to use as map key.
func pointKey(p ecc.Point) string {
	return string(p.Marshal())
}

// CheckK checks if a given k was used to produce the ciphertext component
// c1, that is, whether c1 == k * G. This does not require decrypting the
// message or computing any discrete log.
func CheckK(c1 ecc.Point, k *big.Int) bool {
	kG := c1.New()
	kG.ScalarBaseMult(k)
	return kG.Equal(c1)
}
