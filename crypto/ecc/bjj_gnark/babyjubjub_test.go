package bjj

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

func TestPointRoundTrips(t *testing.T) {
	c := qt.New(t)

	p := New()
	p.ScalarBaseMult(big.NewInt(12345))

	// binary
	restored := New()
	c.Assert(restored.Unmarshal(p.Marshal()), qt.IsNil)
	c.Assert(restored.Equal(p), qt.IsTrue)

	// json, as an array of decimal string coordinates
	data, err := json.Marshal(p)
	c.Assert(err, qt.IsNil)
	x, y := p.Point()
	var coords []string
	c.Assert(json.Unmarshal(data, &coords), qt.IsNil)
	c.Assert(coords, qt.DeepEquals, []string{x.String(), y.String()})

	fromJSON := New().(*BJJ)
	c.Assert(json.Unmarshal(data, fromJSON), qt.IsNil)
	c.Assert(fromJSON.Equal(p), qt.IsTrue)

	// cbor
	data, err = cbor.Marshal(p.(*BJJ))
	c.Assert(err, qt.IsNil)
	fromCBOR := New().(*BJJ)
	c.Assert(cbor.Unmarshal(data, fromCBOR), qt.IsNil)
	c.Assert(fromCBOR.Equal(p), qt.IsTrue)
}

func TestPointSetGet(t *testing.T) {
	c := qt.New(t)

	p := New()
	p.ScalarBaseMult(big.NewInt(99))
	x, y := p.Point()

	q := New().SetPoint(x, y)
	c.Assert(q.Equal(p), qt.IsTrue)

	z := New()
	c.Assert(z.(*BJJ).IsZero(), qt.IsTrue)
	zx, zy := z.Point()
	c.Assert(zx.Sign(), qt.Equals, 0)
	c.Assert(zy.Int64(), qt.Equals, int64(1))
}

func TestIsOnCurve(t *testing.T) {
	c := qt.New(t)

	p := New().(*BJJ)
	p.ScalarBaseMult(big.NewInt(7))
	c.Assert(p.IsOnCurve(), qt.IsTrue)

	bogus := New().SetPoint(big.NewInt(1), big.NewInt(1)).(*BJJ)
	c.Assert(bogus.IsOnCurve(), qt.IsFalse)
}

func TestUnmarshalJSONErrors(t *testing.T) {
	c := qt.New(t)

	p := New().(*BJJ)
	c.Assert(json.Unmarshal([]byte(`["1"]`), p), qt.IsNotNil)
	c.Assert(json.Unmarshal([]byte(`["a","b"]`), p), qt.IsNotNil)
	c.Assert(json.Unmarshal([]byte(`"notanarray"`), p), qt.IsNotNil)
}
