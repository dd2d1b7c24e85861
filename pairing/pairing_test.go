package pairing

import (
	"bytes"
	"testing"
)

func TestFpArithmetic(t *testing.T) {
	a, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Add(b).Sub(b).Equal(a) {
		t.Errorf("(a+b)-b != a")
	}
	if !a.Mul(FpOne()).Equal(a) {
		t.Errorf("a*1 != a")
	}
	if a.IsZero() {
		t.Fatalf("random element unexpectedly zero")
	}
	if !a.Mul(a.Inverse()).Equal(FpOne()) {
		t.Errorf("a * a^-1 != 1")
	}
}

func TestG1AdditionMatchesScalarMultiplication(t *testing.T) {
	ctx := NewContext()
	two := FpFromInt64(2)
	doubled := ctx.G1Base.Add(ctx.G1Base)
	scaled := ctx.G1Base.ScalarMul(two)
	if !doubled.Equal(scaled) {
		t.Errorf("G1Base+G1Base != 2*G1Base")
	}
}

func TestG2AdditionMatchesScalarMultiplication(t *testing.T) {
	ctx := NewContext()
	three := FpFromInt64(3)
	sum := ctx.G2Base.Add(ctx.G2Base).Add(ctx.G2Base)
	scaled := ctx.G2Base.ScalarMul(three)
	if !sum.Equal(scaled) {
		t.Errorf("G2Base+G2Base+G2Base != 3*G2Base")
	}
}

func TestPairIsBilinear(t *testing.T) {
	ctx := NewContext()
	a, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lhs := Pair(ctx.G1Base.ScalarMul(a), ctx.G2Base.ScalarMul(b))
	rhs := Pair(ctx.G1Base, ctx.G2Base).Pow(a.Mul(b))
	if !lhs.Equal(rhs) {
		t.Errorf("e(a*P, b*Q) != e(P,Q)^(a*b)")
	}
}

func TestMultiPairMatchesProductOfPairs(t *testing.T) {
	ctx := NewContext()
	a, _ := FpRand()
	b, _ := FpRand()
	p1 := ctx.G1Base.ScalarMul(a)
	p2 := ctx.G1Base.ScalarMul(b)
	q := ctx.G2Base

	want := Pair(p1, q).Mul(Pair(p2, q))
	got := MultiPair([]PairTerm{{p1, q}, {p2, q}})
	if !want.Equal(got) {
		t.Errorf("MultiPair diverges from the product of individual pairings")
	}
}

func TestG1RoundTripsThroughBinary(t *testing.T) {
	ctx := NewContext()
	encoded := ctx.G1Base.MarshalBinary()
	decoded, err := UnmarshalG1(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(ctx.G1Base) {
		t.Errorf("G1 point did not round-trip through MarshalBinary/UnmarshalG1")
	}
}

func TestG2RoundTripsThroughBinary(t *testing.T) {
	ctx := NewContext()
	encoded := ctx.G2Base.MarshalBinary()
	decoded, err := UnmarshalG2(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(ctx.G2Base) {
		t.Errorf("G2 point did not round-trip through MarshalBinary/UnmarshalG2")
	}
}

func TestHashToG1IsDeterministic(t *testing.T) {
	p1, err := HashToG1([]byte("gsnizk test message"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := HashToG1([]byte("gsnizk test message"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p1.Equal(p2) {
		t.Errorf("HashToG1 is not deterministic for the same input")
	}
	p3, err := HashToG1([]byte("a different message"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1.Equal(p3) {
		t.Errorf("HashToG1 collided for distinct messages")
	}
}

func TestFpWriteReadRoundTrips(t *testing.T) {
	a, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteFp(&buf, a); err != nil {
		t.Fatalf("WriteFp: %v", err)
	}
	got, err := ReadFp(&buf)
	if err != nil {
		t.Fatalf("ReadFp: %v", err)
	}
	if !got.Equal(a) {
		t.Errorf("Fp element did not round-trip through WriteFp/ReadFp")
	}
}

func TestGTWriteReadRoundTrips(t *testing.T) {
	ctx := NewContext()
	a, err := FpRand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elem := ctx.GTBase.Pow(a)

	var buf bytes.Buffer
	if err := WriteGT(&buf, elem); err != nil {
		t.Fatalf("WriteGT: %v", err)
	}
	got, err := ReadGT(&buf)
	if err != nil {
		t.Fatalf("ReadGT: %v", err)
	}
	if !got.Equal(elem) {
		t.Errorf("GT element did not round-trip through WriteGT/ReadGT")
	}
}

func TestGTMarshalBinaryMatchesWriteGT(t *testing.T) {
	ctx := NewContext()
	var buf bytes.Buffer
	if err := WriteGT(&buf, ctx.GTBase); err != nil {
		t.Fatalf("WriteGT: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), ctx.GTBase.MarshalBinary()) {
		t.Errorf("GT.MarshalBinary output diverges from WriteGT's wire encoding")
	}
}
