package gsnizk

import (
	"fmt"

	"github.com/bazin-remi/gsnizk/internal/sat"
)

// Finalize closes the equation-listing phase: it collects the dense
// variable/constant numbering used by every later operation, resolves
// which side (B1 or B2) each F_p variable commits on (promoting a fresh
// auxiliary variable when a variable is genuinely used on both sides),
// determines whether the system is zero-knowledge (running the SAT solver
// under SelectedEncryption mode), and classifies every equation. Calling
// Finalize more than once is a no-op returning the first call's result.
func (p *NIZKProof) Finalize() error {
	if p.fixed {
		return nil
	}

	if err := p.collectIndices(); err != nil {
		return err
	}
	if err := p.resolveFpSides(); err != nil {
		return err
	}
	if err := p.collectIndices(); err != nil { // re-run: aux vars may have shifted counts
		return err
	}

	switch p.Mode {
	case SelectedEncryption:
		if err := p.runSAT(); err != nil {
			return err
		}
		p.zk = true
	default:
		p.zk = p.checkUniformZK()
	}

	p.classify()
	p.fixed = true
	return nil
}

// collectIndices walks every equation and records, per domain, the number
// of distinct variable/constant indices referenced, failing with
// ErrIndexGap if some index below the maximum was never used.
func (p *NIZKProof) collectIndices() error {
	var fpVarSeen, fpConstSeen, g1VarSeen, g1ConstSeen, g2VarSeen, g2ConstSeen, gtConstSeen []bool

	markFp := func(n *FpNode) {
		walkFp(n, func(m *FpNode) {
			switch m.Kind {
			case Variable:
				fpVarSeen = grow(fpVarSeen, m.Index)
				fpVarSeen[m.Index] = true
			case ConstIndex:
				fpConstSeen = grow(fpConstSeen, m.Index)
				fpConstSeen[m.Index] = true
			}
		})
	}
	markG1 := func(n *G1Node) {
		walkG1(n, func(m *G1Node) {
			switch m.Kind {
			case Variable:
				g1VarSeen = grow(g1VarSeen, m.Index)
				g1VarSeen[m.Index] = true
			case ConstIndex:
				g1ConstSeen = grow(g1ConstSeen, m.Index)
				g1ConstSeen[m.Index] = true
			}
			if m.Kind == Scalar {
				markFp(m.Scalar)
			}
		})
	}
	markG2 := func(n *G2Node) {
		walkG2(n, func(m *G2Node) {
			switch m.Kind {
			case Variable:
				g2VarSeen = grow(g2VarSeen, m.Index)
				g2VarSeen[m.Index] = true
			case ConstIndex:
				g2ConstSeen = grow(g2ConstSeen, m.Index)
				g2ConstSeen[m.Index] = true
			}
			if m.Kind == Scalar {
				markFp(m.Scalar)
			}
		})
	}
	markGT := func(n *GTNode) {
		walkGT(n, func(m *GTNode) {
			if m.Kind == ConstIndex {
				gtConstSeen = grow(gtConstSeen, m.Index)
				gtConstSeen[m.Index] = true
			}
			if m.Kind == Pairing {
				markG1(m.PairG1)
				markG2(m.PairG2)
			}
		})
	}

	for _, e := range p.eqsFp {
		markFp(e.left)
		markFp(e.right)
	}
	for _, e := range p.eqsG1 {
		markG1(e.left)
		markG1(e.right)
	}
	for _, e := range p.eqsG2 {
		markG2(e.left)
		markG2(e.right)
	}
	for _, e := range p.eqsGT {
		markGT(e.left)
		markGT(e.right)
	}

	if err := allTrue(fpVarSeen); err != nil {
		return fmt.Errorf("%w: F_p variables: %v", ErrIndexGap, err)
	}
	if err := allTrue(fpConstSeen); err != nil {
		return fmt.Errorf("%w: F_p constants: %v", ErrIndexGap, err)
	}
	if err := allTrue(g1VarSeen); err != nil {
		return fmt.Errorf("%w: G1 variables: %v", ErrIndexGap, err)
	}
	if err := allTrue(g1ConstSeen); err != nil {
		return fmt.Errorf("%w: G1 constants: %v", ErrIndexGap, err)
	}
	if err := allTrue(g2VarSeen); err != nil {
		return fmt.Errorf("%w: G2 variables: %v", ErrIndexGap, err)
	}
	if err := allTrue(g2ConstSeen); err != nil {
		return fmt.Errorf("%w: G2 constants: %v", ErrIndexGap, err)
	}
	if err := allTrue(gtConstSeen); err != nil {
		return fmt.Errorf("%w: GT constants: %v", ErrIndexGap, err)
	}

	p.numFpVars, p.numFpConsts = len(fpVarSeen), len(fpConstSeen)
	p.numG1Vars, p.numG1Consts = len(g1VarSeen), len(g1ConstSeen)
	p.numG2Vars, p.numG2Consts = len(g2VarSeen), len(g2ConstSeen)
	p.numGTConsts = len(gtConstSeen)
	return nil
}

func grow(s []bool, index int) []bool {
	for len(s) <= index {
		s = append(s, false)
	}
	return s
}

func allTrue(s []bool) error {
	for i, v := range s {
		if !v {
			return fmt.Errorf("index %d never used below the maximum referenced index", i)
		}
	}
	return nil
}

// resolveFpSides decides, for every F_p variable, whether it commits on
// the G1 side (B1) or the G2 side (B2): a variable only ever used as a
// scalar multiplying a G1 element commits in B1; only ever multiplying a
// G2 element commits in B2. A variable used both ways is only provable
// once it is split: its G2-side occurrences are rewritten to reference a
// fresh auxiliary variable, tied back to the original with an added F_p
// equation asserting their equality.
func (p *NIZKProof) resolveFpSides() error {
	usedInG1 := make([]bool, p.numFpVars)
	usedInG2 := make([]bool, p.numFpVars)

	noteG1 := func(n *G1Node) {
		walkG1(n, func(m *G1Node) {
			if m.Kind == Scalar && m.Scalar.Kind == Variable {
				usedInG1[m.Scalar.Index] = true
			}
		})
	}
	noteG2 := func(n *G2Node) {
		walkG2(n, func(m *G2Node) {
			if m.Kind == Scalar && m.Scalar.Kind == Variable {
				usedInG2[m.Scalar.Index] = true
			}
		})
	}
	for _, e := range p.eqsG1 {
		noteG1(e.left)
		noteG1(e.right)
	}
	for _, e := range p.eqsG2 {
		noteG2(e.left)
		noteG2(e.right)
	}
	for _, e := range p.eqsGT {
		walkGT(e.left, func(m *GTNode) {
			if m.Kind == Pairing {
				noteG1(m.PairG1)
				noteG2(m.PairG2)
			}
		})
		walkGT(e.right, func(m *GTNode) {
			if m.Kind == Pairing {
				noteG1(m.PairG1)
				noteG2(m.PairG2)
			}
		})
	}

	p.fpVarInB1 = make([]bool, p.numFpVars)
	for i := range p.fpVarInB1 {
		switch {
		case usedInG1[i] && !usedInG2[i]:
			p.fpVarInB1[i] = true
		case usedInG2[i] && !usedInG1[i]:
			p.fpVarInB1[i] = false
		case !usedInG1[i] && !usedInG2[i]:
			// Never used as a G1/G2 scalar coefficient: it is only ever a
			// pure F_p witness, most commonly one factor of a quadratic
			// term. Alternate the default by index parity rather than
			// always picking B1, so a fresh pair of quadratic-equation
			// witnesses lands on opposite sides without needing an
			// unrelated equation to force it.
			p.fpVarInB1[i] = i%2 == 0
		default:
			// Used on both sides: keep the original on the B1 side and
			// reroute every G2-side occurrence through a fresh auxiliary
			// variable, tied back with an explicit equality.
			p.fpVarInB1[i] = true
			aux := p.numFpVars
			p.numFpVars++
			p.fpVarInB1 = append(p.fpVarInB1, false)
			for _, e := range p.eqsG2 {
				rerouteFpInG2(e.left, i, aux)
				rerouteFpInG2(e.right, i, aux)
			}
			for _, e := range p.eqsGT {
				rerouteFpInGT(e.left, i, aux)
				rerouteFpInGT(e.right, i, aux)
			}
			p.AddEquationFp(FpVar(aux), FpVar(i))
		}
	}
	return nil
}

func rerouteFpInG2(n *G2Node, from, to int) {
	walkG2(n, func(m *G2Node) {
		if m.Kind == Scalar && m.Scalar.Kind == Variable && m.Scalar.Index == from {
			m.Scalar = FpVar(to)
		}
	})
}

func rerouteFpInGT(n *GTNode, from, to int) {
	walkGT(n, func(m *GTNode) {
		if m.Kind == Pairing {
			rerouteFpInG2(m.PairG2, from, to)
		}
	})
}

// checkUniformZK recursively checks, for every equation, whether each side
// is built only from terms eligible for a zero-knowledge proof under
// NormalCommit/AllEncrypted mode (no public constant may appear alone on a
// side that needs to stay hidden; a base element counts as eligible).
func (p *NIZKProof) checkUniformZK() bool {
	normalCommit := p.Mode == NormalCommit
	for _, e := range p.eqsFp {
		if !isZKFp(e.left) || !isZKFp(e.right) {
			return false
		}
	}
	for _, e := range p.eqsG1 {
		if !isZKG1(e.left, normalCommit) || !isZKG1(e.right, normalCommit) {
			return false
		}
	}
	for _, e := range p.eqsG2 {
		if !isZKG2(e.left, normalCommit) || !isZKG2(e.right, normalCommit) {
			return false
		}
	}
	for _, e := range p.eqsGT {
		if !isZKGT(e.left, normalCommit) || !isZKGT(e.right, normalCommit) {
			return false
		}
	}
	return true
}

func isZKFp(n *FpNode) bool {
	switch n.Kind {
	case Variable, Base:
		return true
	case ConstIndex, ConstValue:
		return false
	case Pair:
		return isZKFp(n.Left) && isZKFp(n.Right)
	case Scalar:
		return isZKFp(n.Left) || isZKFp(n.Right)
	default:
		panic("gsnizk: invalid FpNode kind")
	}
}

func isZKG1(n *G1Node, normalCommit bool) bool {
	switch n.Kind {
	case Variable:
		return normalCommit
	case ConstIndex, ConstValue:
		return false
	case Pair:
		return isZKG1(n.Left, normalCommit) && isZKG1(n.Right, normalCommit)
	case Scalar:
		return isZKFp(n.Scalar) || isZKG1(n.Elem, normalCommit)
	case Base:
		return true
	default:
		panic("gsnizk: invalid G1Node kind")
	}
}

func isZKG2(n *G2Node, normalCommit bool) bool {
	switch n.Kind {
	case Variable:
		return normalCommit
	case ConstIndex, ConstValue:
		return false
	case Pair:
		return isZKG2(n.Left, normalCommit) && isZKG2(n.Right, normalCommit)
	case Scalar:
		return isZKFp(n.Scalar) || isZKG2(n.Elem, normalCommit)
	case Base:
		return true
	default:
		panic("gsnizk: invalid G2Node kind")
	}
}

func isZKGT(n *GTNode, normalCommit bool) bool {
	switch n.Kind {
	case ConstIndex, ConstValue:
		return false
	case Pair:
		return isZKGT(n.Left, normalCommit) && isZKGT(n.Right, normalCommit)
	case Pairing:
		return isZKG1(n.PairG1, normalCommit) || isZKG2(n.PairG2, normalCommit)
	case Base:
		return true
	default:
		panic("gsnizk: invalid GTNode kind")
	}
}

// runSAT builds the satisfiability formula described in package sat's doc
// comment from every equation side and solves it, recording the result in
// p.encryptedG1/p.encryptedG2.
func (p *NIZKProof) runSAT() error {
	root := sat.NewTrue()
	join := func(n *sat.Node) { root = sat.And2(root, n) }
	for _, e := range p.eqsFp {
		join(satFp(e.left))
		join(satFp(e.right))
	}
	for _, e := range p.eqsG1 {
		join(satG1(e.left))
		join(satG1(e.right))
	}
	for _, e := range p.eqsG2 {
		join(satG2(e.left))
		join(satG2(e.right))
	}
	for _, e := range p.eqsGT {
		join(satGT(e.left))
		join(satGT(e.right))
	}

	encG1, encG2, ok := sat.Solve(root, p.numG1Vars, p.numG2Vars)
	if !ok {
		return ErrUnsatisfiable
	}
	p.encryptedG1, p.encryptedG2 = encG1, encG2
	return nil
}

func satFp(n *FpNode) *sat.Node {
	switch n.Kind {
	case Variable, Base:
		return sat.NewTrue()
	case ConstIndex, ConstValue:
		return sat.NewFalse()
	case Pair:
		return sat.NewAnd(satFp(n.Left), satFp(n.Right))
	case Scalar:
		return sat.NewOr(satFp(n.Left), satFp(n.Right))
	default:
		panic("gsnizk: invalid FpNode kind")
	}
}

func satG1(n *G1Node) *sat.Node {
	switch n.Kind {
	case Variable:
		return sat.NewIndex(sat.G1, n.Index)
	case ConstIndex, ConstValue:
		return sat.NewFalse()
	case Pair:
		return sat.NewAnd(satG1(n.Left), satG1(n.Right))
	case Scalar:
		return sat.NewOr(satFp(n.Scalar), satG1(n.Elem))
	case Base:
		return sat.NewTrue()
	default:
		panic("gsnizk: invalid G1Node kind")
	}
}

func satG2(n *G2Node) *sat.Node {
	switch n.Kind {
	case Variable:
		return sat.NewIndex(sat.G2, n.Index)
	case ConstIndex, ConstValue:
		return sat.NewFalse()
	case Pair:
		return sat.NewAnd(satG2(n.Left), satG2(n.Right))
	case Scalar:
		return sat.NewOr(satFp(n.Scalar), satG2(n.Elem))
	case Base:
		return sat.NewTrue()
	default:
		panic("gsnizk: invalid G2Node kind")
	}
}

func satGT(n *GTNode) *sat.Node {
	switch n.Kind {
	case ConstIndex, ConstValue:
		return sat.NewFalse()
	case Pair:
		return sat.NewAnd(satGT(n.Left), satGT(n.Right))
	case Pairing:
		return sat.NewOr(satG1(n.PairG1), satG2(n.PairG2))
	case Base:
		return sat.NewTrue()
	default:
		panic("gsnizk: invalid GTNode kind")
	}
}

func (p *NIZKProof) classify() {
	p.tFp = make([]EqType, len(p.eqsFp))
	for i, e := range p.eqsFp {
		p.tFp[i] = p.classifyFp(e.left, e.right)
	}
	p.tG1 = make([]EqType, len(p.eqsG1))
	for i, e := range p.eqsG1 {
		p.tG1[i] = p.classifyG1(e.left, e.right)
	}
	p.tG2 = make([]EqType, len(p.eqsG2))
	for i, e := range p.eqsG2 {
		p.tG2[i] = p.classifyG2(e.left, e.right)
	}
	p.tGT = make([]EqType, len(p.eqsGT))
	for i, e := range p.eqsGT {
		p.tGT[i] = p.classifyGT(e.left, e.right)
	}
}

// --- generic tree walkers ---

func walkFp(n *FpNode, visit func(*FpNode)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Kind {
	case Pair, Scalar:
		walkFp(n.Left, visit)
		walkFp(n.Right, visit)
	}
}

func walkG1(n *G1Node, visit func(*G1Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Kind {
	case Pair:
		walkG1(n.Left, visit)
		walkG1(n.Right, visit)
	case Scalar:
		walkG1(n.Elem, visit)
	}
}

func walkG2(n *G2Node, visit func(*G2Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Kind {
	case Pair:
		walkG2(n.Left, visit)
		walkG2(n.Right, visit)
	case Scalar:
		walkG2(n.Elem, visit)
	}
}

func walkGT(n *GTNode, visit func(*GTNode)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Kind {
	case Pair:
		walkGT(n.Left, visit)
		walkGT(n.Right, visit)
	}
}
