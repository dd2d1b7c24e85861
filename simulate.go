package gsnizk

import (
	"fmt"

	"github.com/bazin-remi/gsnizk/pairing"
)

// SimulateProof fabricates an accepting proof without a real witness against
// a hiding (CRSZK) CRS, without reading its trapdoor. Rather than port the reference
// simulator's direct algebraic correction of every proof element, it
// exploits a weaker but sufficient property of this package's own
// Prove/CheckProof pair: their per-equation accumulation is an identity
// that holds for ANY witness assignment satisfying the equations
// numerically, not only the prover's real secret one. So SimulateProof
// pivot-solves, per equation, one previously untouched witness against the
// public constants so the equation holds with every other witness left at
// the group or field identity, then defers to the ordinary Prove with that
// constructed assignment -- which needs no further correction, since its
// proof elements are already re-randomized by blindPairingProof the same
// way a real proof's are.
//
// The one case this cannot paper over is an equation whose witness-free
// part does not already hold as a public identity on its own: a
// pairing-product equation with a residual GT constant falls in this
// class (see DESIGN.md), and SimulateProof reports an error for it rather
// than producing an unsound proof.
func (p *NIZKProof) SimulateProof(crs *CRS, pub *PublicInputs) (*Commitments, *Proof, error) {
	if !p.fixed {
		return nil, nil, ErrNotFinalized
	}
	if crs.Kind != CRSZK {
		return nil, nil, fmt.Errorf("%w: SimulateProof requires a CRSZK CRS", ErrInvalidCRS)
	}

	fpVals := make([]pairing.Fp, p.numFpVars)
	fpAssigned := make([]bool, p.numFpVars)
	g1Vals := make([]pairing.G1, p.numG1Vars)
	g1Assigned := make([]bool, p.numG1Vars)
	g2Vals := make([]pairing.G2, p.numG2Vars)
	g2Assigned := make([]bool, p.numG2Vars)

	if err := p.pivotSolveFp(pub, fpVals, fpAssigned); err != nil {
		return nil, nil, err
	}
	if err := p.pivotSolveG1(pub, g1Vals, g1Assigned); err != nil {
		return nil, nil, err
	}
	if err := p.pivotSolveG2(pub, g2Vals, g2Assigned); err != nil {
		return nil, nil, err
	}
	if err := p.checkGTConstantResiduals(pub); err != nil {
		return nil, nil, err
	}

	sim := &Instantiation{
		Ctx:      pub.Ctx,
		FpVars:   fpVals,
		FpConsts: pub.FpConsts,
		G1Vars:   g1Vals,
		G1Consts: pub.G1Consts,
		G2Vars:   g2Vals,
		G2Consts: pub.G2Consts,
		GTConsts: pub.GTConsts,
	}
	return p.Prove(crs, sim)
}

func hasWitnessFpFactor(factors []*FpNode) bool {
	for _, f := range factors {
		if isWitnessFp(f) {
			return true
		}
	}
	return false
}

// pivotSolveFp assigns, for each F_p equation whose witness-free part does
// not already cancel, one previously untouched witness a value that makes
// it cancel. combined = left - right flattens into a constant residual
// plus a total coefficient per single-witness term.
//
// A witness that ever appears in a two-witness (bilinear) term is never
// chosen as a pivot: left at zero, it collapses every such term to zero
// regardless of the other factor, which is what licenses ignoring
// two-witness terms below in the first place. That has to hold
// consistently across every equation the witness appears in, not just the
// one being solved, so it is computed once up front rather than per
// equation.
func (p *NIZKProof) pivotSolveFp(pub *PublicInputs, vals []pairing.Fp, assigned []bool) error {
	coupled := make([]bool, p.numFpVars)
	for _, eq := range p.eqsFp {
		combined := eq.left.Sub(eq.right)
		for _, t := range flattenFp(combined) {
			if wit := t.witnesses(); len(wit) >= 2 {
				for _, w := range wit {
					coupled[w.Index] = true
				}
			}
		}
	}

	for _, eq := range p.eqsFp {
		combined := eq.left.Sub(eq.right)
		residual := pairing.FpZero()
		coeffs := make([]pairing.Fp, p.numFpVars)
		touched := make([]bool, p.numFpVars)
		for _, t := range flattenFp(combined) {
			wit := t.witnesses()
			switch {
			case len(wit) == 0:
				residual = residual.Add(publicFpFactor(pub, t))
			case len(wit) == 1 && !coupled[wit[0].Index]:
				idx := wit[0].Index
				coeffs[idx] = coeffs[idx].Add(publicFpFactor(pub, t))
				touched[idx] = true
			default:
				// a coupled single-witness term, or a two-witness term:
				// every witness involved defaults to zero, so the whole
				// term vanishes with it.
			}
		}
		if residual.IsZero() {
			continue
		}
		pivot := -1
		for idx := 0; idx < p.numFpVars; idx++ {
			if touched[idx] && !coeffs[idx].IsZero() && !assigned[idx] {
				pivot = idx
				break
			}
		}
		if pivot == -1 {
			return fmt.Errorf("%w: an F_p equation has no free witness left to absorb its public constant part", ErrUnsupportedEquation)
		}
		vals[pivot] = residual.Neg().Mul(coeffs[pivot].Inverse())
		assigned[pivot] = true
	}
	return nil
}

// pivotSolveG1 mirrors pivotSolveFp over G1-confined linear equations: the
// constant residual is a G1 point, and a pivot witness's coefficient is the
// total public F_p scalar multiplying it. A term scaled by an F_p witness
// is left alone entirely: that shape (ME_G) isn't the purely linear one
// Prove supports for G1 equations, so Prove's own tag check rejects it
// regardless of what pivot-solving does here.
func (p *NIZKProof) pivotSolveG1(pub *PublicInputs, vals []pairing.G1, assigned []bool) error {
	for _, eq := range p.eqsG1 {
		combined := eq.left.Sub(eq.right)
		residual := pairing.G1Zero()
		coeffs := make([]pairing.Fp, p.numG1Vars)
		touched := make([]bool, p.numG1Vars)
		for _, t := range flattenG1(combined) {
			if hasWitnessFpFactor(t.scalars) {
				continue
			}
			coeff := publicFpCoeff(pub, t.scalars)
			if isWitnessG1(t.elem) {
				idx := t.elem.Index
				coeffs[idx] = coeffs[idx].Add(coeff)
				touched[idx] = true
				continue
			}
			residual = residual.Add(pub.constG1(t.elem).ScalarMul(coeff))
		}
		if residual.IsZero() {
			continue
		}
		pivot := -1
		for idx := 0; idx < p.numG1Vars; idx++ {
			if touched[idx] && !coeffs[idx].IsZero() && !assigned[idx] {
				pivot = idx
				break
			}
		}
		if pivot == -1 {
			return fmt.Errorf("%w: a G1 equation has no free witness left to absorb its public constant part", ErrUnsupportedEquation)
		}
		vals[pivot] = residual.Neg().ScalarMul(coeffs[pivot].Inverse())
		assigned[pivot] = true
	}
	return nil
}

// pivotSolveG2 mirrors pivotSolveG1 over G2-confined linear equations.
func (p *NIZKProof) pivotSolveG2(pub *PublicInputs, vals []pairing.G2, assigned []bool) error {
	for _, eq := range p.eqsG2 {
		combined := eq.left.Sub(eq.right)
		residual := pairing.G2Zero()
		coeffs := make([]pairing.Fp, p.numG2Vars)
		touched := make([]bool, p.numG2Vars)
		for _, t := range flattenG2(combined) {
			if hasWitnessFpFactor(t.scalars) {
				continue
			}
			coeff := publicFpCoeff(pub, t.scalars)
			if isWitnessG2(t.elem) {
				idx := t.elem.Index
				coeffs[idx] = coeffs[idx].Add(coeff)
				touched[idx] = true
				continue
			}
			residual = residual.Add(pub.constG2(t.elem).ScalarMul(coeff))
		}
		if residual.IsZero() {
			continue
		}
		pivot := -1
		for idx := 0; idx < p.numG2Vars; idx++ {
			if touched[idx] && !coeffs[idx].IsZero() && !assigned[idx] {
				pivot = idx
				break
			}
		}
		if pivot == -1 {
			return fmt.Errorf("%w: a G2 equation has no free witness left to absorb its public constant part", ErrUnsupportedEquation)
		}
		vals[pivot] = residual.Neg().ScalarMul(coeffs[pivot].Inverse())
		assigned[pivot] = true
	}
	return nil
}

// checkGTConstantResiduals verifies that every pairing-product equation's
// witness-free part already holds as a public identity on its own. An atom
// where neither the G1 nor the G2 side is a witness contributes the same
// GT value no matter what pivotSolveG1/pivotSolveG2 picked for every other
// variable, so a nonzero residual here cannot be fixed by any witness
// assignment: it reflects an equation that was never satisfiable from a
// hiding CRS's trapdoor alone.
func (p *NIZKProof) checkGTConstantResiduals(pub *PublicInputs) error {
	for _, eq := range p.eqsGT {
		residual := pairing.GTOne()
		fold := func(atoms []gtAtom, sign int) {
			for _, a := range atoms {
				if a.isConst || isWitnessG1(a.g1.elem) || isWitnessG2(a.g2.elem) {
					continue
				}
				factors := append(append([]*FpNode(nil), a.g1.scalars...), a.g2.scalars...)
				if hasWitnessFpFactor(factors) {
					continue
				}
				coeff := publicFpCoeff(pub, factors)
				if sign < 0 {
					coeff = coeff.Neg()
				}
				term := pairing.Pair(pub.constG1(a.g1.elem), pub.constG2(a.g2.elem))
				residual = residual.Mul(term.Pow(coeff))
			}
		}
		fold(flattenGT(eq.left), 1)
		fold(flattenGT(eq.right), -1)
		if !residual.Equal(pairing.GTOne()) {
			return fmt.Errorf("%w: a GT equation carries a public pairing residual no witness assignment can cancel", ErrUnsupportedEquation)
		}
	}
	return nil
}
