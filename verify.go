package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// VerifySolution checks an Instantiation directly against every equation
// p has accumulated, in the clear. It is a sanity helper for tests and
// for callers who want to validate a witness before committing to it; it
// is not the zero-knowledge verification path (see CheckProof).
func (p *NIZKProof) VerifySolution(in *Instantiation) bool {
	for _, eq := range p.eqsFp {
		if !in.evalFp(eq.left).Equal(in.evalFp(eq.right)) {
			return false
		}
	}
	for _, eq := range p.eqsG1 {
		if !in.evalG1(eq.left).Equal(in.evalG1(eq.right)) {
			return false
		}
	}
	for _, eq := range p.eqsG2 {
		if !in.evalG2(eq.left).Equal(in.evalG2(eq.right)) {
			return false
		}
	}
	for _, eq := range p.eqsGT {
		if !in.evalGT(eq.left).Equal(in.evalGT(eq.right)) {
			return false
		}
	}
	return true
}

// CheckProof verifies a proof against the public inputs and commitments
// it was produced for. p must be the same finalized equation system that
// produced proof (same Finalize-assigned sides, encryption choices and
// classification): both Prove and CheckProof work from the shared
// statement that p represents, never from witness values.
func (p *NIZKProof) CheckProof(crs *CRS, pub *PublicInputs, com *Commitments, proof *Proof) (bool, error) {
	if !p.fixed {
		return false, ErrNotFinalized
	}
	if len(proof.Fp) != len(p.eqsFp) || len(proof.G1) != len(p.eqsG1) ||
		len(proof.G2) != len(p.eqsG2) || len(proof.GT) != len(p.eqsGT) {
		return false, ErrDataMismatch
	}

	for i, eq := range p.eqsFp {
		ok, err := p.checkFpEquation(crs, pub, com, eq, proof.Fp[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for i, eq := range p.eqsG1 {
		ok, err := checkG1Equation(pub, com, crs, eq, proof.G1[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for i, eq := range p.eqsG2 {
		ok, err := checkG2Equation(pub, com, crs, eq, proof.G2[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for i, eq := range p.eqsGT {
		ok, err := p.checkGTEquation(crs, pub, com, eq, proof.GT[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// checkG1Equation reconstructs the weighted sum of commitments (witness
// terms) and constants (folded in with zero randomness) and checks it
// against the blinding randomness the proof reveals.
func checkG1Equation(pub *PublicInputs, com *Commitments, crs *CRS, eq g1Eq, pf linearProof) (bool, error) {
	combined := eq.left.Sub(eq.right)
	lhs := b1Zero()
	for _, t := range flattenG1(combined) {
		for _, f := range t.scalars {
			if isWitnessFp(f) {
				return false, ErrUnsupportedEquation
			}
		}
		coeff := publicFpCoeff(pub, t.scalars)
		if isWitnessG1(t.elem) {
			lhs = lhs.Add(com.G1[t.elem.Index].ScalarMul(coeff))
		} else {
			lhs = lhs.Add(B1{pairing.G1Zero(), pub.constG1(t.elem)}.ScalarMul(coeff))
		}
	}
	rhs := crs.V1.ScalarMul(pf.R).Add(crs.W1.ScalarMul(pf.S))
	return lhs.Equal(rhs), nil
}

func checkG2Equation(pub *PublicInputs, com *Commitments, crs *CRS, eq g2Eq, pf linearProof) (bool, error) {
	combined := eq.left.Sub(eq.right)
	lhs := b2Zero()
	for _, t := range flattenG2(combined) {
		for _, f := range t.scalars {
			if isWitnessFp(f) {
				return false, ErrUnsupportedEquation
			}
		}
		coeff := publicFpCoeff(pub, t.scalars)
		if isWitnessG2(t.elem) {
			lhs = lhs.Add(com.G2[t.elem.Index].ScalarMul(coeff))
		} else {
			lhs = lhs.Add(B2{pairing.G2Zero(), pub.constG2(t.elem)}.ScalarMul(coeff))
		}
	}
	rhs := crs.V2.ScalarMul(pf.R).Add(crs.W2.ScalarMul(pf.S))
	return lhs.Equal(rhs), nil
}

// checkFpEquation mirrors proveFpEquation's embedding: every term,
// witness or constant, multiplies into lhs via the BT pairing it would
// induce if committed with zero randomness (for constants) or via its
// real commitment (for witnesses); the proof's (Pi, Theta, Rho) then
// corrects for the cross-randomness noise a real commitment introduces.
func (p *NIZKProof) checkFpEquation(crs *CRS, pub *PublicInputs, com *Commitments, eq fpEq, pf pairingProof) (bool, error) {
	combined := eq.left.Sub(eq.right)
	lhs := btOne()
	u1u2 := PairB1B2(crs.U1, crs.U2)

	for _, t := range flattenFp(combined) {
		wit := t.witnesses()
		coeff := publicFpFactor(pub, t)
		switch len(wit) {
		case 0:
			lhs = lhs.Mul(u1u2.Pow(coeff))
		case 1:
			idx := wit[0].Index
			var term BT
			if p.fpVarInB1[idx] {
				term = PairB1B2(com.FpG1[idx], crs.U2)
			} else {
				term = PairB1B2(crs.U1, com.FpG2[idx])
			}
			lhs = lhs.Mul(term.Pow(coeff))
		case 2:
			g1Idx, g2Idx, ok := p.splitFpPair(wit[0].Index, wit[1].Index)
			if !ok {
				return false, ErrUnsupportedEquation
			}
			term := PairB1B2(com.FpG1[g1Idx], com.FpG2[g2Idx])
			lhs = lhs.Mul(term.Pow(coeff))
		default:
			return false, ErrUnsupportedEquation
		}
	}

	rhs := PairB1B2(crs.V1, pf.Pi).Mul(PairB1B2(pf.Theta, crs.V2)).
		Div(PairB1B2(crs.V1, crs.V2).Pow(pf.Rho))
	return lhs.Equal(rhs), nil
}

// checkGTEquation mirrors proveGTEquation: every atom must be a genuine
// pairing (no standalone GT constant), embedding constants with zero
// randomness and witnesses via their real commitments, then checking the
// product against the (Pi, Theta, Rho) correction.
func (p *NIZKProof) checkGTEquation(crs *CRS, pub *PublicInputs, com *Commitments, eq gtEq, pf pairingProof) (bool, error) {
	lhs := btOne()

	accumulate := func(atoms []gtAtom, sign int) error {
		for _, a := range atoms {
			if a.isConst {
				return ErrUnsupportedEquation
			}
			factors := append(append([]*FpNode(nil), a.g1.scalars...), a.g2.scalars...)
			for _, f := range factors {
				if isWitnessFp(f) {
					return ErrUnsupportedEquation
				}
			}
			coeff := publicFpCoeff(pub, factors)
			if sign < 0 {
				coeff = coeff.Neg()
			}

			var g1c B1
			if isWitnessG1(a.g1.elem) {
				g1c = com.G1[a.g1.elem.Index]
			} else {
				g1c = B1{pairing.G1Zero(), pub.constG1(a.g1.elem)}
			}
			var g2c B2
			if isWitnessG2(a.g2.elem) {
				g2c = com.G2[a.g2.elem.Index]
			} else {
				g2c = B2{pairing.G2Zero(), pub.constG2(a.g2.elem)}
			}
			lhs = lhs.Mul(PairB1B2(g1c, g2c).Pow(coeff))
		}
		return nil
	}

	if err := accumulate(flattenGT(eq.left), 1); err != nil {
		return false, err
	}
	if err := accumulate(flattenGT(eq.right), -1); err != nil {
		return false, err
	}

	rhs := PairB1B2(crs.V1, pf.Pi).Mul(PairB1B2(pf.Theta, crs.V2)).
		Div(PairB1B2(crs.V1, crs.V2).Pow(pf.Rho))
	return lhs.Equal(rhs), nil
}
