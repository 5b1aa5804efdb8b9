package types

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-sdk-go/types/params"
)

// BallotMode is the struct to define the rules of a ballot. It mirrors the
// ballot mode declared on-chain for the voting process. Every field is
// explicit and type checked, missing big int fields are rejected by
// Validate before any cryptography runs.
type BallotMode struct {
	NumFields      uint8   `json:"numFields" cbor:"0,keyasint,omitempty"`
	UniqueValues   bool    `json:"uniqueValues" cbor:"1,keyasint,omitempty"`
	MaxValue       *BigInt `json:"maxValue" cbor:"2,keyasint,omitempty"`
	MinValue       *BigInt `json:"minValue" cbor:"3,keyasint,omitempty"`
	MaxValueSum    *BigInt `json:"maxValueSum" cbor:"4,keyasint,omitempty"`
	MinValueSum    *BigInt `json:"minValueSum" cbor:"5,keyasint,omitempty"`
	CostExponent   uint8   `json:"costExponent" cbor:"6,keyasint,omitempty"`
	CostFromWeight bool    `json:"costFromWeight" cbor:"7,keyasint,omitempty"`
}

// Validate checks that the ballot mode is complete and self-consistent. It
// does not enforce election business rules, only that the struct can be used
// to size and hash a ballot.
func (b *BallotMode) Validate() error {
	if int(b.NumFields) > params.FieldsPerBallot {
		return fmt.Errorf("numFields %d is greater than max size %d", b.NumFields, params.FieldsPerBallot)
	}

	if b.MaxValue == nil {
		return fmt.Errorf("maxValue is nil")
	}
	if b.MinValue == nil {
		return fmt.Errorf("minValue is nil")
	}
	if b.MaxValueSum == nil {
		return fmt.Errorf("maxValueSum is nil")
	}
	if b.MinValueSum == nil {
		return fmt.Errorf("minValueSum is nil")
	}

	// Per-field values must stay inside the range the tally side can
	// recover with a bounded discrete log search
	if b.MaxValue.MathBigInt().Cmp(big.NewInt(params.MaxValuePerBallotField)) > 0 {
		return fmt.Errorf("maxValue %s exceeds the per-field limit %d", b.MaxValue.String(), params.MaxValuePerBallotField)
	}

	// Ensure MinValue is not greater than MaxValue
	if b.MinValue.MathBigInt().Cmp(b.MaxValue.MathBigInt()) > 0 {
		return fmt.Errorf("minValue %s is greater than maxValue %s", b.MinValue.String(), b.MaxValue.String())
	}

	// Ensure MinValueSum is not greater than MaxValueSum
	if b.MinValueSum.MathBigInt().Cmp(b.MaxValueSum.MathBigInt()) > 0 {
		return fmt.Errorf("minValueSum %s is greater than maxValueSum %s", b.MinValueSum.String(), b.MaxValueSum.String())
	}

	return nil
}

// BigInts returns the ballot mode scalars as big ints in the canonical
// circuit order: numFields, uniqueValues, maxValue, minValue, maxValueSum,
// minValueSum, costExponent, costFromWeight. Booleans encode as 0 or 1.
func (b *BallotMode) BigInts() []*big.Int {
	boolToInt := func(v bool) *big.Int {
		if v {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	}
	return []*big.Int{
		big.NewInt(int64(b.NumFields)),
		boolToInt(b.UniqueValues),
		b.MaxValue.MathBigInt(),
		b.MinValue.MathBigInt(),
		b.MaxValueSum.MathBigInt(),
		b.MinValueSum.MathBigInt(),
		big.NewInt(int64(b.CostExponent)),
		boolToInt(b.CostFromWeight),
	}
}

// writeBigInt serializes a types.BigInt into the buffer as length + bytes
func writeBigInt(buf *bytes.Buffer, bi *BigInt) error {
	data := bi.Bytes()
	length := uint32(len(data))
	err := binary.Write(buf, binary.BigEndian, length)
	if err != nil {
		return fmt.Errorf("failed to write big int length: %v", err)
	}
	if length > 0 {
		_, err = buf.Write(data)
		if err != nil {
			return fmt.Errorf("failed to write big int data: %v", err)
		}
	}
	return nil
}

// readBigInt deserializes a types.BigInt from the buffer
func readBigInt(buf *bytes.Reader, bi *BigInt) error {
	if bi == nil {
		return fmt.Errorf("big int is nil")
	}
	var length uint32
	err := binary.Read(buf, binary.BigEndian, &length)
	if err != nil {
		return fmt.Errorf("failed to read big int length: %v", err)
	}
	data := make([]byte, length)
	if length > 0 {
		_, err = buf.Read(data)
		if err != nil {
			return fmt.Errorf("failed to read big int data: %v", err)
		}
	}
	bi.SetBytes(data)
	return nil
}

// Marshal serializes the BallotMode into a byte slice
func (b *BallotMode) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)

	// NumFields (1 byte)
	if err := buf.WriteByte(b.NumFields); err != nil {
		return nil, fmt.Errorf("failed to write NumFields: %v", err)
	}

	// UniqueValues (1 byte: 0 or 1)
	unique := byte(0)
	if b.UniqueValues {
		unique = 1
	}
	if err := buf.WriteByte(unique); err != nil {
		return nil, fmt.Errorf("failed to write UniqueValues: %v", err)
	}

	// MaxValue
	if err := writeBigInt(buf, b.MaxValue); err != nil {
		return nil, err
	}

	// MinValue
	if err := writeBigInt(buf, b.MinValue); err != nil {
		return nil, err
	}

	// MaxValueSum
	if err := writeBigInt(buf, b.MaxValueSum); err != nil {
		return nil, err
	}

	// MinValueSum
	if err := writeBigInt(buf, b.MinValueSum); err != nil {
		return nil, err
	}

	// CostExponent (1 byte)
	if err := buf.WriteByte(b.CostExponent); err != nil {
		return nil, fmt.Errorf("failed to write CostExponent: %v", err)
	}

	// CostFromWeight (1 byte: 0 or 1)
	costW := byte(0)
	if b.CostFromWeight {
		costW = 1
	}
	if err := buf.WriteByte(costW); err != nil {
		return nil, fmt.Errorf("failed to write CostFromWeight: %v", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal deserializes the BallotMode from a byte slice
func (b *BallotMode) Unmarshal(data []byte) error {
	buf := bytes.NewReader(data)

	// NumFields
	numFields, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read NumFields: %v", err)
	}
	b.NumFields = numFields

	// UniqueValues
	unique, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read UniqueValues: %v", err)
	}
	b.UniqueValues = (unique == 1)

	// MaxValue
	b.MaxValue = new(BigInt)
	if err := readBigInt(buf, b.MaxValue); err != nil {
		return err
	}

	// MinValue
	b.MinValue = new(BigInt)
	if err := readBigInt(buf, b.MinValue); err != nil {
		return err
	}

	// MaxValueSum
	b.MaxValueSum = new(BigInt)
	if err := readBigInt(buf, b.MaxValueSum); err != nil {
		return err
	}

	// MinValueSum
	b.MinValueSum = new(BigInt)
	if err := readBigInt(buf, b.MinValueSum); err != nil {
		return err
	}

	// CostExponent
	costExponent, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read CostExponent: %v", err)
	}
	b.CostExponent = costExponent

	// CostFromWeight
	costW, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read CostFromWeight: %v", err)
	}
	b.CostFromWeight = (costW == 1)

	return nil
}

// String returns a string representation of the BallotMode
func (b *BallotMode) String() string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return string(data)
}
