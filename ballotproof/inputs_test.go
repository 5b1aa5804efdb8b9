package ballotproof

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
	bjj "github.com/vocdoni/davinci-sdk-go/crypto/ecc/bjj_gnark"
	"github.com/vocdoni/davinci-sdk-go/crypto/ecc/format"
	"github.com/vocdoni/davinci-sdk-go/crypto/elgamal"
	"github.com/vocdoni/davinci-sdk-go/crypto/hash/poseidon"
	"github.com/vocdoni/davinci-sdk-go/types"
	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// bigIntEquals is qt.DeepEquals with a comparer for *big.Int, whose
// unexported fields go-cmp cannot otherwise handle.
var bigIntEquals = qt.CmpEquals(cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}))

// testEncryptionKey returns a valid encryption key pair with the public key
// coordinates in reduced twisted edwards form, as the sequencer publishes
// them. The private scalar is fixed so that every expectation derived from
// it is reproducible across runs.
func testEncryptionKey(c *qt.C) ([]*types.BigInt, *big.Int) {
	privateKey := big.NewInt(6456321789123456789)
	publicKey := bjj.New()
	publicKey.ScalarBaseMult(privateKey)
	x, y := publicKey.Point()
	return []*types.BigInt{
		new(types.BigInt).SetBigInt(x),
		new(types.BigInt).SetBigInt(y),
	}, privateKey
}

func testBallotMode(numFields uint8) *types.BallotMode {
	return &types.BallotMode{
		NumFields:    numFields,
		UniqueValues: false,
		MaxValue:     new(types.BigInt).SetUint64(100),
		MinValue:     new(types.BigInt).SetUint64(0),
		MaxValueSum:  new(types.BigInt).SetUint64(512),
		MinValueSum:  new(types.BigInt).SetUint64(0),
		CostExponent: 1,
	}
}

func testInputs(c *qt.C, numFields uint8, values ...int64) (*BallotProofInputs, *big.Int) {
	encKey, privateKey := testEncryptionKey(c)
	fieldValues := make([]*types.BigInt, len(values))
	for i, v := range values {
		fieldValues[i] = new(types.BigInt).SetUint64(uint64(v))
	}
	return &BallotProofInputs{
		Address:       types.HexStringToHexBytesMustUnmarshal("0x350cabe8066704a78ccee1791aa20f8c0d0e8c5c"),
		ProcessID:     types.HexStringToHexBytesMustUnmarshal("0x1234567890abcdef1234567890abcdef12345678000000000000000000000001"),
		EncryptionKey: encKey,
		K:             new(types.BigInt).SetUint64(987654321),
		BallotMode:    testBallotMode(numFields),
		Weight:        new(types.BigInt).SetUint64(10),
		FieldValues:   fieldValues,
	}, privateKey
}

func TestGenerateBallotProofInputs(t *testing.T) {
	c := qt.New(t)

	inputs, privateKey := testInputs(c, 2, 1, 2)
	result, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)
	c.Assert(result.Ballot.Valid(), qt.IsTrue)
	c.Assert(result.CircomInputs.Fields, qt.HasLen, params.FieldsPerBallot)
	c.Assert(result.CircomInputs.Cipherfields, qt.HasLen, params.FieldsPerBallot*4)

	// the ballot must decrypt back to the supplied values
	publicKey := bjj.New().SetPoint(
		inputs.EncryptionKey[0].MathBigInt(),
		inputs.EncryptionKey[1].MathBigInt(),
	)
	for i, ct := range result.Ballot.Ciphertexts {
		var want int64
		if i < 2 {
			want = int64(i + 1)
		}
		_, decrypted, err := elgamal.Decrypt(publicKey, privateKey, ct.C1, ct.C2, 100)
		c.Assert(err, qt.IsNil)
		c.Assert(decrypted.Int64(), qt.Equals, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := qt.New(t)

	inputs, _ := testInputs(c, 3, 4, 5, 6)
	r1, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)
	r2, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	c.Assert(r1.VoteID.Equal(r2.VoteID), qt.IsTrue)
	c.Assert(r1.InputsHash.Equal(r2.InputsHash), qt.IsTrue)
	c.Assert(r1.Ballot.BigInts(), bigIntEquals, r2.Ballot.BigInts())

	j1, err := json.Marshal(r1.CircomInputs)
	c.Assert(err, qt.IsNil)
	j2, err := json.Marshal(r2.CircomInputs)
	c.Assert(err, qt.IsNil)
	c.Assert(string(j1), qt.Equals, string(j2))
}

func TestGeneratePadding(t *testing.T) {
	c := qt.New(t)

	inputs, privateKey := testInputs(c, 5, 1, 2, 3, 4, 5)
	result, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	// the circuit fields vector carries the declared values followed by
	// explicit zero padding up to the capacity
	c.Assert(result.CircomInputs.Fields, qt.HasLen, params.FieldsPerBallot)
	for i, f := range result.CircomInputs.Fields {
		if i < 5 {
			c.Assert(f.MathBigInt().Int64(), qt.Equals, int64(i+1))
		} else {
			c.Assert(f.MathBigInt().Sign(), qt.Equals, 0)
		}
	}

	// padding slots are real encryptions of zero, not zero points
	publicKey := bjj.New().SetPoint(
		inputs.EncryptionKey[0].MathBigInt(),
		inputs.EncryptionKey[1].MathBigInt(),
	)
	for i := 5; i < params.FieldsPerBallot; i++ {
		ct := result.Ballot.Ciphertexts[i]
		c.Assert(ct.IsZero(publicKey), qt.IsFalse)
		_, decrypted, err := elgamal.Decrypt(publicKey, privateKey, ct.C1, ct.C2, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(decrypted.Sign(), qt.Equals, 0)
	}
}

func TestGenerateCrossComputed(t *testing.T) {
	c := qt.New(t)

	inputs, _ := testInputs(c, 2, 1, 2)
	result, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	field := params.BallotProofCurve.ScalarField()
	ffK := inputs.K.ToFF(field)
	publicKey := bjj.New().SetPoint(
		inputs.EncryptionKey[0].MathBigInt(),
		inputs.EncryptionKey[1].MathBigInt(),
	)

	// recompute the per-slot encryption from the primitives and compare
	// against the assembled ballot
	ks, err := poseidon.DeriveChain(ffK.MathBigInt(), params.FieldsPerBallot)
	c.Assert(err, qt.IsNil)
	plaintexts := []*big.Int{big.NewInt(1), big.NewInt(2)}
	for i, ct := range result.Ballot.Ciphertexts {
		msg := big.NewInt(0)
		if i < len(plaintexts) {
			msg = plaintexts[i]
		}
		c1, c2 := elgamal.EncryptWithK(publicKey, msg, ks[i+1])
		c.Assert(ct.C1.Equal(c1), qt.IsTrue)
		c.Assert(ct.C2.Equal(c2), qt.IsTrue)
	}

	// recompute the vote identifier from the hash primitive
	h, err := poseidon.Hash(
		inputs.ProcessID.BigInt().ToFF(field).MathBigInt(),
		result.Address.BigInt().ToFF(field).MathBigInt(),
		ffK.MathBigInt(),
	)
	c.Assert(err, qt.IsNil)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), params.VoteIDBits), big.NewInt(1))
	c.Assert(result.VoteID.MathBigInt().Cmp(new(big.Int).And(h, mask)), qt.Equals, 0)

	// recompute the inputs hash from the flattened public inputs
	var encKeyRTE format.RTEPoint
	encKeyRTE.X, encKeyRTE.Y = publicKey.Point()
	encKeyTE := encKeyRTE.ToTE()
	flat := []*big.Int{
		inputs.ProcessID.BigInt().ToFF(field).MathBigInt(),
		result.Address.BigInt().ToFF(field).MathBigInt(),
		inputs.Weight.MathBigInt(),
	}
	flat = append(flat, inputs.BallotMode.BigInts()...)
	flat = append(flat, encKeyTE.X, encKeyTE.Y, ffK.MathBigInt())
	flat = append(flat, result.Ballot.TEBigInts()...)
	expectedHash, err := poseidon.MultiPoseidon(flat...)
	c.Assert(err, qt.IsNil)
	c.Assert(result.InputsHash.MathBigInt().Cmp(expectedHash), qt.Equals, 0)
}

func TestGenerateCircomJSONContract(t *testing.T) {
	c := qt.New(t)

	inputs, _ := testInputs(c, 2, 1, 2)
	result, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	data, err := json.Marshal(result.CircomInputs)
	c.Assert(err, qt.IsNil)

	var decoded map[string]any
	c.Assert(json.Unmarshal(data, &decoded), qt.IsNil)
	for _, key := range []string{
		"fields", "num_fields", "unique_values", "max_value", "min_value",
		"max_value_sum", "min_value_sum", "cost_exponent", "cost_from_weight",
		"address", "weight", "process_id", "vote_id", "encryption_pubkey",
		"k", "cipherfields", "inputs_hash",
	} {
		_, ok := decoded[key]
		c.Assert(ok, qt.IsTrue, qt.Commentf("missing key %q", key))
	}

	// scalar values are decimal strings, as snarkjs expects
	c.Assert(decoded["num_fields"], qt.Equals, "2")
	c.Assert(decoded["weight"], qt.Equals, "10")
	c.Assert(decoded["cost_from_weight"], qt.Equals, "0")
}

func TestGenerateAddressNormalization(t *testing.T) {
	c := qt.New(t)

	inputs, _ := testInputs(c, 1, 3)
	// a 32 byte value must be reduced to its canonical 20 byte form
	inputs.Address = types.HexStringToHexBytesMustUnmarshal(
		"0x000000000000000000000000350cabe8066704a78ccee1791aa20f8c0d0e8c5c")
	result, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)
	c.Assert(result.Address.Hex(), qt.Equals, "350cabe8066704a78ccee1791aa20f8c0d0e8c5c")
}

func TestGenerateErrors(t *testing.T) {
	c := qt.New(t)

	_, err := GenerateBallotProofInputs(nil)
	c.Assert(err, qt.IsNotNil)

	// missing ballot mode
	inputs, _ := testInputs(c, 2, 1, 2)
	inputs.BallotMode = nil
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNotNil)

	// field value count not matching the declared number of fields
	inputs, _ = testInputs(c, 3, 1, 2)
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrFieldCountMismatch)

	// missing and zero seeds
	inputs, _ = testInputs(c, 2, 1, 2)
	inputs.K = nil
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidSeed)

	inputs, _ = testInputs(c, 2, 1, 2)
	inputs.K = new(types.BigInt).SetUint64(0)
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidSeed)

	// missing weight
	inputs, _ = testInputs(c, 2, 1, 2)
	inputs.Weight = nil
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNotNil)
}

func TestGenerateInvalidEncryptionKey(t *testing.T) {
	c := qt.New(t)

	// wrong number of coordinates
	inputs, _ := testInputs(c, 2, 1, 2)
	inputs.EncryptionKey = []*types.BigInt{new(types.BigInt).SetUint64(1)}
	_, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidEncryptionKey)

	// coordinates not on the curve
	inputs, _ = testInputs(c, 2, 1, 2)
	inputs.EncryptionKey = []*types.BigInt{
		new(types.BigInt).SetUint64(1),
		new(types.BigInt).SetUint64(1),
	}
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidEncryptionKey)

	// the identity point is on the curve but unusable as a public key
	inputs, _ = testInputs(c, 2, 1, 2)
	inputs.EncryptionKey = []*types.BigInt{
		new(types.BigInt).SetUint64(0),
		new(types.BigInt).SetUint64(1),
	}
	_, err = GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidEncryptionKey)
}

func TestGenerateSeedSensitivity(t *testing.T) {
	c := qt.New(t)

	inputs, _ := testInputs(c, 2, 1, 2)
	r1, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	inputs.K = new(types.BigInt).SetUint64(123123123)
	r2, err := GenerateBallotProofInputs(inputs)
	c.Assert(err, qt.IsNil)

	c.Assert(r1.VoteID.Equal(r2.VoteID), qt.IsFalse)
	c.Assert(r1.InputsHash.Equal(r2.InputsHash), qt.IsFalse)
	c.Assert(r1.Ballot.Ciphertexts[0].C1.Equal(r2.Ballot.Ciphertexts[0].C1), qt.IsFalse)
}
