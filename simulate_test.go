package gsnizk

import (
	"testing"

	"github.com/bazin-remi/gsnizk/testutils"
)

func TestSimulateProofAcceptsHomogeneousEquation(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	c1, c2 := testutils.MustFp(), testutils.MustFp()
	p := New(ctx, NormalCommit)
	left := FpConstValue(c1).MulG1(G1Var(0)).Add(FpConstValue(c2).MulG1(G1Var(1)))
	// left equation to the identity: zeroing every witness trivially
	// satisfies it.
	p.AddEquationG1(left, nil)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pub := &PublicInputs{Ctx: ctx}
	com, proof, err := p.SimulateProof(crs, pub)
	if err != nil {
		t.Fatalf("SimulateProof: %v", err)
	}
	ok, err := p.CheckProof(crs, pub, com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if !ok {
		t.Errorf("CheckProof rejected a simulated proof of a homogeneous equation")
	}
}

// TestSimulateProofAcceptsNonHomogeneousEquation exercises an equation
// whose witness-free part (a public constant) is nonzero once the witness
// is zeroed -- k*a = d for nonzero k, d -- the shape a simulator that only
// ever zeroes every witness can never satisfy. SimulateProof must instead
// pivot-solve a = d/k and produce a genuinely accepting proof.
func TestSimulateProofAcceptsNonHomogeneousEquation(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	k, d := testutils.MustFp(), testutils.MustFp()
	p := New(ctx, NormalCommit)
	p.AddEquationFp(FpConstValue(k).Mul(FpVar(0)), FpConstValue(d))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pub := &PublicInputs{Ctx: ctx}
	com, proof, err := p.SimulateProof(crs, pub)
	if err != nil {
		t.Fatalf("SimulateProof: %v", err)
	}
	ok, err := p.CheckProof(crs, pub, com, proof)
	if err != nil {
		t.Fatalf("CheckProof: %v", err)
	}
	if !ok {
		t.Errorf("CheckProof rejected a simulated proof of a non-homogeneous equation")
	}
}

// TestSimulateProofRejectsUnsatisfiableGTConstants covers a pairing-product
// equation whose witness-free part is a genuine public identity mismatch:
// no witness assignment can fix it, so SimulateProof must report an error
// rather than hand back an unsound proof.
func TestSimulateProofRejectsUnsatisfiableGTConstants(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}

	g1a, g2a := testutils.MustG1(ctx), testutils.MustG2(ctx)
	g1b, g2b := testutils.MustG1(ctx), testutils.MustG2(ctx)

	p := New(ctx, NormalCommit)
	// Both sides are fully public pairings with no witness anywhere; for
	// independently sampled points they are overwhelmingly unlikely to
	// actually be equal, so this equation's witness-free part can never
	// be satisfied no matter what SimulateProof assigns elsewhere.
	p.AddEquationGT(PairingOf(G1ConstValue(g1a), G2ConstValue(g2a)), PairingOf(G1ConstValue(g1b), G2ConstValue(g2b)))
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pub := &PublicInputs{Ctx: ctx}
	if _, _, err := p.SimulateProof(crs, pub); err == nil {
		t.Fatalf("expected SimulateProof to reject an unsatisfiable all-public GT equation")
	}
}

func TestSimulateProofRequiresHidingCRS(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx) // CRSExtract, not CRSZK
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}

	p := New(ctx, NormalCommit)
	p.AddEquationG1(G1Var(0), nil)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pub := &PublicInputs{Ctx: ctx}
	_, _, err = p.SimulateProof(crs, pub)
	if err == nil {
		t.Fatalf("expected SimulateProof to reject a non-hiding CRS")
	}
}

func TestSimulateProofRequiresFinalizedSystem(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}
	p := New(ctx, NormalCommit)
	p.AddEquationG1(G1Var(0), nil)

	_, _, err = p.SimulateProof(crs, &PublicInputs{Ctx: ctx})
	if err != ErrNotFinalized {
		t.Errorf("expected ErrNotFinalized before Finalize, got %v", err)
	}
}

// TestSimulateProofRandomizesCommitments checks that two simulated proofs
// for the same equation use independent blinding randomness, rather than
// some fixed encoding of the zeroed witness.
func TestSimulateProofRandomizesCommitments(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewHidingCRS(ctx)
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}
	p := New(ctx, NormalCommit)
	p.AddEquationG1(G1Var(0), nil)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pub := &PublicInputs{Ctx: ctx}
	com1, _, err := p.SimulateProof(crs, pub)
	if err != nil {
		t.Fatalf("SimulateProof: %v", err)
	}
	com2, _, err := p.SimulateProof(crs, pub)
	if err != nil {
		t.Fatalf("SimulateProof: %v", err)
	}
	if com1.G1[0].Equal(com2.G1[0]) {
		t.Errorf("two SimulateProof calls produced identical commitments")
	}
}
