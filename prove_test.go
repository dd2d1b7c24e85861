package gsnizk

import (
	"testing"

	"github.com/bazin-remi/gsnizk/pairing"
	"github.com/bazin-remi/gsnizk/testutils"
)

// proveAndCheck runs the full Prove/CheckProof round trip and fails the
// test if either step errors or the proof does not verify.
func proveAndCheck(t *testing.T, p *NIZKProof, crs *CRS, in *Instantiation) (*Commitments, *Proof) {
	t.Helper()
	com, proof, err := p.Prove(crs, in)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := p.CheckProof(crs, in.Public(), com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if !ok {
		t.Fatalf("CheckProof rejected a valid proof")
	}
	return com, proof
}

func TestLinearG1EquationProvesAndVerifies(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	x0, x1 := testutils.MustG1(ctx), testutils.MustG1(ctx)
	c1, c2 := testutils.MustFp(), testutils.MustFp()
	target := x0.ScalarMul(c1).Add(x1.ScalarMul(c2))

	p := New(ctx, NormalCommit)
	left := FpConstValue(c1).MulG1(G1Var(0)).Add(FpConstValue(c2).MulG1(G1Var(1)))
	p.AddEquationG1(left, G1ConstValue(target))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{x0, x1}}
	if !p.VerifySolution(in) {
		t.Fatalf("VerifySolution rejected a satisfying instantiation")
	}
	proveAndCheck(t, p, crs, in)
}

func TestLinearG1EquationRejectsWrongWitness(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	x0, x1 := testutils.MustG1(ctx), testutils.MustG1(ctx)
	c1, c2 := testutils.MustFp(), testutils.MustFp()
	target := x0.ScalarMul(c1).Add(x1.ScalarMul(c2))

	p := New(ctx, NormalCommit)
	left := FpConstValue(c1).MulG1(G1Var(0)).Add(FpConstValue(c2).MulG1(G1Var(1)))
	p.AddEquationG1(left, G1ConstValue(target))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	wrong := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{x0, testutils.MustG1(ctx)}}
	com, proof, err := p.Prove(crs, wrong)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := p.CheckProof(crs, wrong.Public(), com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if ok {
		t.Errorf("CheckProof accepted a proof built from an unsatisfying instantiation")
	}
}

func TestLinearG2EquationProvesAndVerifies(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	y0, y1 := testutils.MustG2(ctx), testutils.MustG2(ctx)
	c1, c2 := testutils.MustFp(), testutils.MustFp()
	target := y0.ScalarMul(c1).Add(y1.ScalarMul(c2))

	p := New(ctx, NormalCommit)
	left := FpConstValue(c1).MulG2(G2Var(0)).Add(FpConstValue(c2).MulG2(G2Var(1)))
	p.AddEquationG2(left, G2ConstValue(target))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G2Vars: []pairing.G2{y0, y1}}
	proveAndCheck(t, p, crs, in)
}

func TestQuadraticFpEquationProvesAndVerifies(t *testing.T) {
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
	// the two factors must land on opposite commitment sides for the
	// quadratic proof construction to apply.
	if p.fpVarInB1[0] == p.fpVarInB1[1] {
		t.Fatalf("expected FpVar(0) and FpVar(1) on opposite commitment sides")
	}

	in := &Instantiation{Ctx: ctx, FpVars: []pairing.Fp{x, y}}
	proveAndCheck(t, p, crs, in)
}

func TestQuadraticFpEquationRejectsWrongWitness(t *testing.T) {
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

	wrong := &Instantiation{Ctx: ctx, FpVars: []pairing.Fp{x, testutils.MustFp()}}
	com, proof, err := p.Prove(crs, wrong)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := p.CheckProof(crs, wrong.Public(), com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if ok {
		t.Errorf("CheckProof accepted a proof for x*y=z built from a wrong y")
	}
}

func TestPairingProductEquationProvesAndVerifies(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	a, b := testutils.MustG1(ctx), testutils.MustG2(ctx)

	p := New(ctx, NormalCommit)
	left := PairingOf(G1Var(0), G2Var(0))
	right := PairingOf(G1ConstValue(a), G2ConstValue(b))
	p.AddEquationGT(left, right)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{a}, G2Vars: []pairing.G2{b}}
	proveAndCheck(t, p, crs, in)
}

func TestPairingProductEquationRejectsMismatchedWitness(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	a, b := testutils.MustG1(ctx), testutils.MustG2(ctx)

	p := New(ctx, NormalCommit)
	left := PairingOf(G1Var(0), G2Var(0))
	right := PairingOf(G1ConstValue(a), G2ConstValue(b))
	p.AddEquationGT(left, right)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	wrong := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{a}, G2Vars: []pairing.G2{testutils.MustG2(ctx)}}
	com, proof, err := p.Prove(crs, wrong)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := p.CheckProof(crs, wrong.Public(), com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if ok {
		t.Errorf("CheckProof accepted a pairing-product proof for a mismatched witness")
	}
}

func TestTwoPairingTermEquationProvesAndVerifies(t *testing.T) {
	// e(A, B) * e(C, D) = e(P, Q) * e(R, S), with A,B,C,D all witnesses
	// and P,Q,R,S public constants equal to their respective witnesses:
	// a GT equation built from two independent witness-witness pairing
	// terms on each side.
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	A, C := testutils.MustG1(ctx), testutils.MustG1(ctx)
	B, D := testutils.MustG2(ctx), testutils.MustG2(ctx)

	p := New(ctx, NormalCommit)
	left := PairingOf(G1Var(0), G2Var(0)).Mul(PairingOf(G1Var(1), G2Var(1)))
	right := PairingOf(G1ConstValue(A), G2ConstValue(B)).
		Mul(PairingOf(G1ConstValue(C), G2ConstValue(D)))
	p.AddEquationGT(left, right)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{A, C}, G2Vars: []pairing.G2{B, D}}
	proveAndCheck(t, p, crs, in)
}

func TestGTEquationWithStandaloneConstantIsUnsupported(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	a, b := testutils.MustG1(ctx), testutils.MustG2(ctx)
	p := New(ctx, NormalCommit)
	left := PairingOf(G1Var(0), G2Var(0))
	// a bare GT constant never arose from a Pairing node: its discrete
	// log relative to the CRS base is unknown, so it cannot be embedded.
	p.AddEquationGT(left, GTConstValue(pairing.Pair(a, b)))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in := &Instantiation{Ctx: ctx, G1Vars: []pairing.G1{a}, G2Vars: []pairing.G2{b}}
	_, _, err = p.Prove(crs, in)
	if err == nil {
		t.Fatalf("expected Prove to reject a standalone GT constant target")
	}
}
