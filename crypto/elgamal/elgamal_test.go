package elgamal

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/curves"
)

func TestEncryptDecrypt(t *testing.T) {
	for _, curveType := range curves.Curves() {
		t.Run(curveType, func(t *testing.T) {
			c := qt.New(t)
			curve := curves.New(curveType)

			publicKey, privateKey, err := GenerateKey(curve)
			c.Assert(err, qt.IsNil)

			msg := big.NewInt(127)
			c1, c2, k, err := Encrypt(publicKey, msg)
			c.Assert(err, qt.IsNil)
			c.Assert(k.Sign() > 0, qt.IsTrue)

			_, decrypted, err := Decrypt(publicKey, privateKey, c1, c2, 1000)
			c.Assert(err, qt.IsNil)
			c.Assert(decrypted.Cmp(msg), qt.Equals, 0)
		})
	}
}

func TestEncryptWithKDeterministic(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	publicKey, _, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)

	msg := big.NewInt(42)
	k := big.NewInt(123456789)
	c1a, c2a := EncryptWithK(publicKey, msg, k)
	c1b, c2b := EncryptWithK(publicKey, msg, k)
	c.Assert(c1a.Equal(c1b), qt.IsTrue)
	c.Assert(c2a.Equal(c2b), qt.IsTrue)

	// the message value must not be mutated by the encryption
	c.Assert(msg.Cmp(big.NewInt(42)), qt.Equals, 0)
	c.Assert(k.Cmp(big.NewInt(123456789)), qt.Equals, 0)

	// a different k must yield a different ciphertext for the same message
	c1c, _ := EncryptWithK(publicKey, msg, big.NewInt(987654321))
	c.Assert(c1c.Equal(c1a), qt.IsFalse)
}

func TestEncryptZeroMessage(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	publicKey, privateKey, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)

	k := big.NewInt(77)
	c1, c2 := EncryptWithK(publicKey, big.NewInt(0), k)
	z1, z2 := EncryptedZero(publicKey, k)
	c.Assert(c1.Equal(z1), qt.IsTrue)
	c.Assert(c2.Equal(z2), qt.IsTrue)

	M, decrypted, err := Decrypt(publicKey, privateKey, c1, c2, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(decrypted.Sign(), qt.Equals, 0)
	zero := curve.New()
	zero.SetZero()
	c.Assert(M.Equal(zero), qt.IsTrue)
}

func TestHomomorphicAddition(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	publicKey, privateKey, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)

	a1, a2 := EncryptWithK(publicKey, big.NewInt(10), big.NewInt(111))
	b1, b2 := EncryptWithK(publicKey, big.NewInt(32), big.NewInt(222))

	sum1 := curve.New()
	sum1.SafeAdd(a1, b1)
	sum2 := curve.New()
	sum2.SafeAdd(a2, b2)

	_, decrypted, err := Decrypt(publicKey, privateKey, sum1, sum2, 100)
	c.Assert(err, qt.IsNil)
	c.Assert(decrypted.Cmp(big.NewInt(42)), qt.Equals, 0)
}

func TestDecryptErrors(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	publicKey, privateKey, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)
	c1, c2 := EncryptWithK(publicKey, big.NewInt(50), big.NewInt(33))

	// message outside the search interval
	_, _, err = Decrypt(publicKey, privateKey, c1, c2, 10)
	c.Assert(err, qt.IsNotNil)

	// invalid private keys
	_, _, err = Decrypt(publicKey, nil, c1, c2, 100)
	c.Assert(err, qt.IsNotNil)
	_, _, err = Decrypt(publicKey, big.NewInt(0), c1, c2, 100)
	c.Assert(err, qt.IsNotNil)
}

func TestCheckK(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	publicKey, _, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)

	k := big.NewInt(8675309)
	c1, _ := EncryptWithK(publicKey, big.NewInt(5), k)
	c.Assert(CheckK(c1, k), qt.IsTrue)
	c.Assert(CheckK(c1, big.NewInt(8675310)), qt.IsFalse)
}

func TestRandK(t *testing.T) {
	c := qt.New(t)

	k1, err := RandK()
	c.Assert(err, qt.IsNil)
	k2, err := RandK()
	c.Assert(err, qt.IsNil)
	c.Assert(k1.Cmp(k2), qt.Not(qt.Equals), 0)
	c.Assert(k1.Sign() > 0, qt.IsTrue)
}

func TestBabyStepGiantStep(t *testing.T) {
	c := qt.New(t)
	curve := curves.New("bjj_gnark")

	G := curve.New()
	G.SetGenerator()

	for _, m := range []uint64{0, 1, 31, 32, 999, 1000} {
		beta := curve.New()
		beta.ScalarBaseMult(new(big.Int).SetUint64(m))
		got, err := BabyStepGiantStepECC(beta, G, 1000)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Uint64(), qt.Equals, m)
	}
}

func generateTestKey(c *qt.C, curve ecc.Point) (ecc.Point, *big.Int) {
	publicKey, privateKey, err := GenerateKey(curve)
	c.Assert(err, qt.IsNil)
	return publicKey, privateKey
}
