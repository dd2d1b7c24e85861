package gsnizk

import (
	"bytes"
	"testing"

	"github.com/bazin-remi/gsnizk/pairing"
	"github.com/bazin-remi/gsnizk/testutils"
)

func TestCRSRoundTripsThroughCodec(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCRS(&buf, crs); err != nil {
		t.Fatalf("WriteCRS: %v", err)
	}
	got, err := ReadCRS(&buf)
	if err != nil {
		t.Fatalf("ReadCRS: %v", err)
	}
	if got.Kind != crs.Kind {
		t.Errorf("Kind mismatch after round trip")
	}
	if !got.U1.Equal(crs.U1) || !got.V1.Equal(crs.V1) || !got.W1.Equal(crs.W1) {
		t.Errorf("B1 base elements did not round trip")
	}
	if !got.U2.Equal(crs.U2) || !got.V2.Equal(crs.V2) || !got.W2.Equal(crs.W2) {
		t.Errorf("B2 base elements did not round trip")
	}
	if !got.Eps1.Equal(crs.Eps1) || !got.Rho1.Equal(crs.Rho1) || !got.V1Scalar.Equal(crs.V1Scalar) {
		t.Errorf("trapdoor scalars did not round trip")
	}
}

func TestCommitmentsRoundTripThroughCodec(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	c1 := testutils.MustFp()
	p := New(ctx, NormalCommit)
	left := FpConstValue(c1).MulG1(G1Var(0))
	p.AddEquationG1(left, nil)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{pairing.G1Zero()}}
	com, _, err := p.Prove(crs, in)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCommitments(&buf, com); err != nil {
		t.Fatalf("WriteCommitments: %v", err)
	}
	got, err := ReadCommitments(&buf, p.numFpVars, p.numG1Vars, p.numG2Vars)
	if err != nil {
		t.Fatalf("ReadCommitments: %v", err)
	}
	for i := range com.G1 {
		if !got.G1[i].Equal(com.G1[i]) {
			t.Errorf("G1 commitment %d did not round trip", i)
		}
	}
}

func TestProofRoundTripsThroughCodec(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	x, y := testutils.MustFp(), testutils.MustFp()
	z := x.Mul(y)
	p := New(ctx, NormalCommit)
	p.AddEquationFp(FpVar(0).Mul(FpVar(1)), FpConstValue(z))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, FpVars: []pairing.Fp{x, y}}
	_, proof, err := p.Prove(crs, in)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteProof(&buf, proof, p.tFp); err != nil {
		t.Fatalf("WriteProof: %v", err)
	}
	got, err := ReadProof(&buf, p.tFp, len(p.eqsG1), len(p.eqsG2), len(p.eqsGT))
	if err != nil {
		t.Fatalf("ReadProof: %v", err)
	}
	for i := range proof.Fp {
		if !got.Fp[i].Pi.Equal(proof.Fp[i].Pi) || !got.Fp[i].Theta.Equal(proof.Fp[i].Theta) ||
			!got.Fp[i].Rho.Equal(proof.Fp[i].Rho) {
			t.Errorf("F_p proof element %d did not round trip", i)
		}
	}
}

func TestProofRoundTripsThroughCodecWithReducedFpShape(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	c := testutils.MustFp()
	p := New(ctx, NormalCommit)
	// Var 0 gets its own equation (indices must stay dense) and lands on
	// the B1 side; var 1 lands on the B2 side by the alternate-by-parity
	// default, giving the second equation no B1-side witness at all:
	// classify.go must tag it EqQConstG and codec.go must drop Pi from
	// the wire.
	p.AddEquationFp(FpVar(0), FpConstValue(pairing.FpZero()))
	p.AddEquationFp(FpVar(1), FpConstValue(c))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := p.tFp[1]; got != EqQConstG {
		t.Fatalf("expected EqQConstG, got %v", got)
	}

	in := &Instantiation{Ctx: ctx, FpVars: []pairing.Fp{pairing.FpZero(), c}}
	_, proof, err := p.Prove(crs, in)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !proof.Fp[1].Pi.Equal(b2Zero()) {
		t.Fatalf("expected Pi to stay zero for an EqQConstG equation")
	}

	var buf bytes.Buffer
	if err := WriteProof(&buf, proof, p.tFp); err != nil {
		t.Fatalf("WriteProof: %v", err)
	}
	got, err := ReadProof(&buf, p.tFp, len(p.eqsG1), len(p.eqsG2), len(p.eqsGT))
	if err != nil {
		t.Fatalf("ReadProof: %v", err)
	}
	if !got.Fp[1].Pi.Equal(proof.Fp[1].Pi) || !got.Fp[1].Theta.Equal(proof.Fp[1].Theta) ||
		!got.Fp[1].Rho.Equal(proof.Fp[1].Rho) {
		t.Errorf("F_p proof element did not round trip under the reduced shape")
	}
}

func TestProofModelRoundTripsThroughWriteToAndReadProofModel(t *testing.T) {
	ctx := testutils.NewContext()
	c1 := testutils.MustFp()

	p := New(ctx, SelectedEncryption)
	left := PairingOf(G1Var(0), G2Var(0))
	right := PairingOf(G1ConstValue(testutils.MustG1(ctx)), G2ConstValue(testutils.MustG2(ctx)))
	p.AddEquationGT(left, right)
	p.AddEquationFp(FpConstValue(c1).Mul(FpVar(0)), nil)

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadProofModel(&buf, ctx)
	if err != nil {
		t.Fatalf("ReadProofModel: %v", err)
	}
	if got.Mode != p.Mode {
		t.Errorf("Mode did not round trip: got %v, want %v", got.Mode, p.Mode)
	}
	if len(got.eqsGT) != len(p.eqsGT) || len(got.eqsFp) != len(p.eqsFp) {
		t.Fatalf("equation counts did not round trip")
	}
	if err := got.Finalize(); err != nil {
		t.Fatalf("Finalize on round-tripped system: %v", err)
	}
}

func TestPublicInputsRoundTripThroughCodec(t *testing.T) {
	ctx := testutils.NewContext()
	pub := &PublicInputs{
		Ctx:      ctx,
		FpConsts: []pairing.Fp{testutils.MustFp(), testutils.MustFp()},
		G1Consts: []pairing.G1{testutils.MustG1(ctx)},
		G2Consts: []pairing.G2{testutils.MustG2(ctx)},
		GTConsts: []pairing.GT{pairing.Pair(testutils.MustG1(ctx), testutils.MustG2(ctx))},
	}

	var buf bytes.Buffer
	if err := WritePublicInputs(&buf, pub); err != nil {
		t.Fatalf("WritePublicInputs: %v", err)
	}
	got, err := ReadPublicInputs(&buf, ctx, len(pub.FpConsts), len(pub.G1Consts), len(pub.G2Consts), len(pub.GTConsts))
	if err != nil {
		t.Fatalf("ReadPublicInputs: %v", err)
	}
	for i := range pub.FpConsts {
		if !got.FpConsts[i].Equal(pub.FpConsts[i]) {
			t.Errorf("F_p constant %d did not round trip", i)
		}
	}
	for i := range pub.G1Consts {
		if !got.G1Consts[i].Equal(pub.G1Consts[i]) {
			t.Errorf("G1 constant %d did not round trip", i)
		}
	}
	for i := range pub.GTConsts {
		if !got.GTConsts[i].Equal(pub.GTConsts[i]) {
			t.Errorf("GT constant %d did not round trip", i)
		}
	}
}
