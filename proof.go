package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// CommitMode selects how G1/G2 witnesses are committed once a NIZKProof is
// finalized.
type CommitMode int

const (
	// NormalCommit commits every G1/G2 witness directly (two blinding
	// scalars each); simplest, and zero-knowledge only when every
	// equation's witnesses are themselves eligible (see IsZeroKnowledge).
	NormalCommit CommitMode = iota
	// SelectedEncryption runs the SAT solver to choose, per G1/G2
	// witness, whether it must be "encrypted" (single blinding scalar)
	// to keep every equation zero-knowledge, committing the rest
	// directly.
	SelectedEncryption
	// AllEncrypted encrypts every G1/G2 witness unconditionally.
	AllEncrypted
)

type fpEq struct{ left, right *FpNode }
type g1Eq struct{ left, right *G1Node }
type g2Eq struct{ left, right *G2Node }
type gtEq struct{ left, right *GTNode }

// NIZKProof collects a system of equations over F_p, G1, G2 and GT,
// normalizes and classifies it once via Finalize, and from then on can
// produce, verify or simulate proofs of knowledge of a satisfying
// instantiation.
type NIZKProof struct {
	Mode CommitMode
	ctx  *pairing.Context

	eqsFp []fpEq
	eqsG1 []g1Eq
	eqsG2 []g2Eq
	eqsGT []gtEq

	fixed bool
	zk    bool

	numFpVars, numFpConsts int
	numG1Vars, numG1Consts int
	numG2Vars, numG2Consts int
	numGTConsts            int

	// fpVarInB1[i] is true if F_p variable i is committed on the G1 side
	// (B1), false for the G2 side (B2). Populated by Finalize.
	fpVarInB1 []bool

	// encryptedG1[i]/encryptedG2[i] record, for SelectedEncryption mode,
	// whether variable i must be encrypted rather than committed
	// directly. Populated by Finalize.
	encryptedG1, encryptedG2 []bool

	tFp []EqType
	tG1 []EqType
	tG2 []EqType
	tGT []EqType
}

// New creates an empty proof system over ctx's pairing, ready to accept
// equations.
func New(ctx *pairing.Context, mode CommitMode) *NIZKProof {
	return &NIZKProof{Mode: mode, ctx: ctx}
}

// AddEquationFp appends the equation left = right (right defaults to the
// constant zero value FpConstValue(FpZero()) when nil).
func (p *NIZKProof) AddEquationFp(left, right *FpNode) {
	if right == nil {
		right = FpConstValue(pairing.FpZero())
	}
	p.eqsFp = append(p.eqsFp, fpEq{left, right})
}

// AddEquationG1 appends left = right (right defaults to the G1 identity).
func (p *NIZKProof) AddEquationG1(left, right *G1Node) {
	if right == nil {
		right = G1ConstValue(pairing.G1Zero())
	}
	p.eqsG1 = append(p.eqsG1, g1Eq{left, right})
}

// AddEquationG2 appends left = right (right defaults to the G2 identity).
func (p *NIZKProof) AddEquationG2(left, right *G2Node) {
	if right == nil {
		right = G2ConstValue(pairing.G2Zero())
	}
	p.eqsG2 = append(p.eqsG2, g2Eq{left, right})
}

// AddEquationGT appends left = right (right defaults to the GT identity).
func (p *NIZKProof) AddEquationGT(left, right *GTNode) {
	if right == nil {
		right = GTConstValue(pairing.GTOne())
	}
	p.eqsGT = append(p.eqsGT, gtEq{left, right})
}

// IsZeroKnowledge reports whether the finalized system of equations admits
// a zero-knowledge proof. It always returns false before Finalize succeeds.
func (p *NIZKProof) IsZeroKnowledge() bool { return p.fixed && p.zk }

// Clone returns a copy of p whose normalizer bookkeeping slices are copied
// while every DAG node is shared. Finalize's auxiliary-variable promotion
// rewrites scalar nodes of G2 and GT equations in place, so two copies
// made before Finalize share those rewrites; copies of a finalized p can
// be driven from separate goroutines. Useful for computing several proofs
// from the same equation system concurrently.
func (p *NIZKProof) Clone() *NIZKProof {
	cp := *p
	cp.fpVarInB1 = append([]bool(nil), p.fpVarInB1...)
	cp.encryptedG1 = append([]bool(nil), p.encryptedG1...)
	cp.encryptedG2 = append([]bool(nil), p.encryptedG2...)
	cp.tFp = append([]EqType(nil), p.tFp...)
	cp.tG1 = append([]EqType(nil), p.tG1...)
	cp.tG2 = append([]EqType(nil), p.tG2...)
	cp.tGT = append([]EqType(nil), p.tGT...)
	cp.eqsFp = append([]fpEq(nil), p.eqsFp...)
	cp.eqsG1 = append([]g1Eq(nil), p.eqsG1...)
	cp.eqsG2 = append([]g2Eq(nil), p.eqsG2...)
	cp.eqsGT = append([]gtEq(nil), p.eqsGT...)
	return &cp
}
