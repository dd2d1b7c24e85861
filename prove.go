package gsnizk

import (
	"fmt"

	"github.com/bazin-remi/gsnizk/pairing"
)

// Commitments carries the per-witness commitments a Prove call produces:
// one B1 or B2 element for every F_p variable (on whichever side Finalize
// assigned it), and one B1/B2 element for every G1/G2 variable.
type Commitments struct {
	FpG1 []B1
	FpG2 []B2
	G1   []B1
	G2   []B2
}

// linearProof is the proof element for an equation confined to G1 or to
// G2: the combined blinding randomness that makes the equation check out
// against the CRS's V/W base elements.
type linearProof struct{ R, S pairing.Fp }

// pairingProof is the proof element for an equation that couples two
// witnesses bilinearly (an F_p quadratic equation or a GT pairing-product
// equation): the cross-commitments and correcting scalar a Groth-Sahai
// proof reveals for such a term.
type pairingProof struct {
	Pi    B2
	Theta B1
	Rho   pairing.Fp
}

// Proof is the full proof for one finalized NIZKProof: one proof element
// per declared equation, in declaration order.
type Proof struct {
	Fp []pairingProof
	G1 []linearProof
	G2 []linearProof
	GT []pairingProof
}

// proverState holds the randomness sampled for one Prove call, alongside
// the commitments it produced, so the per-equation proof builders below
// can look a witness's own blinding scalars back up by index.
type proverState struct {
	crs *CRS
	in  *Instantiation
	p   *NIZKProof

	fpR []pairing.Fp

	g1R, g1S []pairing.Fp
	g1Enc    []bool
	g2R, g2S []pairing.Fp
	g2Enc    []bool

	com Commitments
}

// Prove builds a proof that in satisfies every equation p has
// accumulated. p must already be finalized, and crs must be the CRS the
// verifier will check against.
func (p *NIZKProof) Prove(crs *CRS, in *Instantiation) (*Commitments, *Proof, error) {
	if !p.fixed {
		return nil, nil, ErrNotFinalized
	}

	st, err := p.newProverState(crs, in)
	if err != nil {
		return nil, nil, err
	}

	proof := &Proof{
		Fp: make([]pairingProof, len(p.eqsFp)),
		G1: make([]linearProof, len(p.eqsG1)),
		G2: make([]linearProof, len(p.eqsG2)),
		GT: make([]pairingProof, len(p.eqsGT)),
	}

	for i, eq := range p.eqsFp {
		pf, err := st.proveFpEquation(eq, p.tFp[i])
		if err != nil {
			return nil, nil, fmt.Errorf("proving F_p equation %d: %w", i, err)
		}
		proof.Fp[i] = pf
	}
	for i, eq := range p.eqsG1 {
		pf, err := st.proveG1Equation(eq, p.tG1[i])
		if err != nil {
			return nil, nil, fmt.Errorf("proving G1 equation %d: %w", i, err)
		}
		proof.G1[i] = pf
	}
	for i, eq := range p.eqsG2 {
		pf, err := st.proveG2Equation(eq, p.tG2[i])
		if err != nil {
			return nil, nil, fmt.Errorf("proving G2 equation %d: %w", i, err)
		}
		proof.G2[i] = pf
	}
	for i, eq := range p.eqsGT {
		pf, err := st.proveGTEquation(eq, p.tGT[i])
		if err != nil {
			return nil, nil, fmt.Errorf("proving GT equation %d: %w", i, err)
		}
		proof.GT[i] = pf
	}

	return &st.com, proof, nil
}

func (st *proverState) publicInputs() *PublicInputs { return st.in.Public() }

// gtWitnessVars reports, for every G1/G2 variable, whether it is ever
// paired against another side inside a GT equation. Such a variable is
// always committed in the single-randomness "encrypted" form, since the
// pairing-based proof construction below only tracks one blinding scalar
// per side of a bilinear term.
func (p *NIZKProof) gtWitnessVars() (g1, g2 []bool) {
	g1 = make([]bool, p.numG1Vars)
	g2 = make([]bool, p.numG2Vars)
	for _, eq := range p.eqsGT {
		for _, atoms := range [][]gtAtom{flattenGT(eq.left), flattenGT(eq.right)} {
			for _, a := range atoms {
				if a.isConst {
					continue
				}
				if isWitnessG1(a.g1.elem) {
					g1[a.g1.elem.Index] = true
				}
				if isWitnessG2(a.g2.elem) {
					g2[a.g2.elem.Index] = true
				}
			}
		}
	}
	return g1, g2
}

func (p *NIZKProof) newProverState(crs *CRS, in *Instantiation) (*proverState, error) {
	st := &proverState{crs: crs, in: in, p: p}

	st.fpR = make([]pairing.Fp, p.numFpVars)
	st.com.FpG1 = make([]B1, p.numFpVars)
	st.com.FpG2 = make([]B2, p.numFpVars)
	for i := 0; i < p.numFpVars; i++ {
		r, err := pairing.FpRand()
		if err != nil {
			return nil, fmt.Errorf("sampling F_p commitment randomness: %w", err)
		}
		st.fpR[i] = r
		if p.fpVarInB1[i] {
			st.com.FpG1[i] = crs.CommitScalarG1(in.FpVars[i], r)
		} else {
			st.com.FpG2[i] = crs.CommitScalarG2(in.FpVars[i], r)
		}
	}

	forcedG1, forcedG2 := p.gtWitnessVars()

	st.g1R = make([]pairing.Fp, p.numG1Vars)
	st.g1S = make([]pairing.Fp, p.numG1Vars)
	st.g1Enc = make([]bool, p.numG1Vars)
	st.com.G1 = make([]B1, p.numG1Vars)
	for i := 0; i < p.numG1Vars; i++ {
		enc := forcedG1[i] || p.Mode == AllEncrypted ||
			(p.Mode == SelectedEncryption && i < len(p.encryptedG1) && p.encryptedG1[i])
		r, err := pairing.FpRand()
		if err != nil {
			return nil, fmt.Errorf("sampling G1 commitment randomness: %w", err)
		}
		st.g1R[i] = r
		st.g1Enc[i] = enc
		if enc {
			st.com.G1[i] = crs.CommitGroupEncG1(in.G1Vars[i], r)
			continue
		}
		s, err := pairing.FpRand()
		if err != nil {
			return nil, fmt.Errorf("sampling G1 commitment randomness: %w", err)
		}
		st.g1S[i] = s
		st.com.G1[i] = crs.CommitGroupComG1(in.G1Vars[i], r, s)
	}

	st.g2R = make([]pairing.Fp, p.numG2Vars)
	st.g2S = make([]pairing.Fp, p.numG2Vars)
	st.g2Enc = make([]bool, p.numG2Vars)
	st.com.G2 = make([]B2, p.numG2Vars)
	for i := 0; i < p.numG2Vars; i++ {
		enc := forcedG2[i] || p.Mode == AllEncrypted ||
			(p.Mode == SelectedEncryption && i < len(p.encryptedG2) && p.encryptedG2[i])
		r, err := pairing.FpRand()
		if err != nil {
			return nil, fmt.Errorf("sampling G2 commitment randomness: %w", err)
		}
		st.g2R[i] = r
		st.g2Enc[i] = enc
		if enc {
			st.com.G2[i] = crs.CommitGroupEncG2(in.G2Vars[i], r)
			continue
		}
		s, err := pairing.FpRand()
		if err != nil {
			return nil, fmt.Errorf("sampling G2 commitment randomness: %w", err)
		}
		st.g2S[i] = s
		st.com.G2[i] = crs.CommitGroupComG2(in.G2Vars[i], r, s)
	}

	return st, nil
}

// g1EffectiveRS returns the (R, S) pair that actually appears in variable
// idx's commitment formula: a single combined scalar (S always zero) for
// an encrypted variable or for a CRSPrivate/CRSExtract CRS (which folds S
// into R via Rho1), or the independent (r, s) pair otherwise.
func (st *proverState) g1EffectiveRS(idx int) (pairing.Fp, pairing.Fp) {
	if st.g1Enc[idx] {
		return st.g1R[idx], pairing.FpZero()
	}
	if st.crs.Kind == CRSPrivate || st.crs.Kind == CRSExtract {
		return st.g1R[idx].Add(st.crs.Rho1.Mul(st.g1S[idx])), pairing.FpZero()
	}
	return st.g1R[idx], st.g1S[idx]
}

func (st *proverState) g2EffectiveRS(idx int) (pairing.Fp, pairing.Fp) {
	if st.g2Enc[idx] {
		return st.g2R[idx], pairing.FpZero()
	}
	if st.crs.Kind == CRSPrivate || st.crs.Kind == CRSExtract {
		return st.g2R[idx].Add(st.crs.Rho2.Mul(st.g2S[idx])), pairing.FpZero()
	}
	return st.g2R[idx], st.g2S[idx]
}

// proveG1Equation handles an equation confined to G1 with public scalar
// coefficients, via additive commitment homomorphism: the revealed (R, S)
// is the same weighted sum of blinding scalars that Com(0, R, S) would
// carry, since the weighted sum of the committed elements is zero for a
// valid instantiation. Only the EqMLinG family is implemented: any other
// tag (an F_p witness scalar coefficient, or an encrypted G1 witness) is
// rejected with ErrUnsupportedEquation.
func (st *proverState) proveG1Equation(eq g1Eq, tag EqType) (linearProof, error) {
	if tag != EqMLinG {
		return linearProof{}, ErrUnsupportedEquation
	}
	combined := eq.left.Sub(eq.right)
	pub := st.publicInputs()
	totalR, totalS := pairing.FpZero(), pairing.FpZero()
	for _, t := range flattenG1(combined) {
		if !isWitnessG1(t.elem) {
			continue
		}
		coeff := publicFpCoeff(pub, t.scalars)
		r, s := st.g1EffectiveRS(t.elem.Index)
		totalR = totalR.Add(coeff.Mul(r))
		totalS = totalS.Add(coeff.Mul(s))
	}
	return linearProof{R: totalR, S: totalS}, nil
}

func (st *proverState) proveG2Equation(eq g2Eq, tag EqType) (linearProof, error) {
	if tag != EqMLinH {
		return linearProof{}, ErrUnsupportedEquation
	}
	combined := eq.left.Sub(eq.right)
	pub := st.publicInputs()
	totalR, totalS := pairing.FpZero(), pairing.FpZero()
	for _, t := range flattenG2(combined) {
		if !isWitnessG2(t.elem) {
			continue
		}
		coeff := publicFpCoeff(pub, t.scalars)
		r, s := st.g2EffectiveRS(t.elem.Index)
		totalR = totalR.Add(coeff.Mul(r))
		totalS = totalS.Add(coeff.Mul(s))
	}
	return linearProof{R: totalR, S: totalS}, nil
}

// splitFpPair orders a quadratic term's two witnesses as (B1-side,
// B2-side); only supported when they land on opposite sides.
func (p *NIZKProof) splitFpPair(a, b int) (g1Idx, g2Idx int, ok bool) {
	switch {
	case p.fpVarInB1[a] && !p.fpVarInB1[b]:
		return a, b, true
	case p.fpVarInB1[b] && !p.fpVarInB1[a]:
		return b, a, true
	default:
		return 0, 0, false
	}
}

// blindPairingProof re-randomizes a pairing proof element with a fresh,
// independently-sampled pair (alpha, gamma): folding alpha*V2 into Pi and
// gamma*V1 into Theta shifts e(V1,Pi)*e(Theta,V2) by e(V1,V2)^(alpha+gamma),
// which Rho absorbs by the same amount, so CheckProof's identity still
// holds. This makes the proof element something other than a deterministic
// function of the witnesses' own commitment randomness, the property a
// zero-knowledge proof needs.
func blindPairingProof(pf pairingProof, crs *CRS) (pairingProof, error) {
	alpha, err := pairing.FpRand()
	if err != nil {
		return pairingProof{}, fmt.Errorf("sampling proof blinding scalar: %w", err)
	}
	gamma, err := pairing.FpRand()
	if err != nil {
		return pairingProof{}, fmt.Errorf("sampling proof blinding scalar: %w", err)
	}
	pf.Pi = pf.Pi.Add(crs.V2.ScalarMul(alpha))
	pf.Theta = pf.Theta.Add(crs.V1.ScalarMul(gamma))
	pf.Rho = pf.Rho.Add(alpha).Add(gamma)
	return pf, nil
}

// proveFpEquation handles an F_p quadratic equation (which may also carry
// linear and constant terms). A term with one witness embeds as a
// pairing against the CRS's U1/U2 base (the canonical embedding of the
// constant 1); a term with two witnesses, required to be split across
// the B1/B2 sides, embeds as a pairing of their own commitments. Constant
// terms need no proof contribution: CheckProof folds them directly into
// the equation's left-hand side via the same U1/U2 embedding.
//
// EqQConstG/EqQConstH equations carry no B1- or B2-side witness
// respectively, so Pi/Theta stays provably zero by construction; codec.go
// relies on that to drop the zero half from the wire. Only the genuinely
// two-sided EqQE tag gets the extra blindPairingProof randomization, since
// blinding either half of a QConst equation would break that invariant.
func (st *proverState) proveFpEquation(eq fpEq, tag EqType) (pairingProof, error) {
	combined := eq.left.Sub(eq.right)
	pub := st.publicInputs()

	pi := b2Zero()
	theta := b1Zero()
	rho := pairing.FpZero()

	for _, t := range flattenFp(combined) {
		wit := t.witnesses()
		switch len(wit) {
		case 0:
			// folds into the target on the verifier side only.
		case 1:
			coeff := publicFpFactor(pub, t)
			idx := wit[0].Index
			if st.p.fpVarInB1[idx] {
				pi = pi.Add(st.crs.U2.ScalarMul(coeff.Mul(st.fpR[idx])))
			} else {
				theta = theta.Add(st.crs.U1.ScalarMul(coeff.Mul(st.fpR[idx])))
			}
		case 2:
			coeff := publicFpFactor(pub, t)
			g1Idx, g2Idx, ok := st.p.splitFpPair(wit[0].Index, wit[1].Index)
			if !ok {
				return pairingProof{}, ErrUnsupportedEquation
			}
			pi = pi.Add(st.com.FpG2[g2Idx].ScalarMul(coeff.Mul(st.fpR[g1Idx])))
			theta = theta.Add(st.com.FpG1[g1Idx].ScalarMul(coeff.Mul(st.fpR[g2Idx])))
			rho = rho.Add(coeff.Mul(st.fpR[g1Idx]).Mul(st.fpR[g2Idx]))
		default:
			return pairingProof{}, ErrUnsupportedEquation
		}
	}
	pf := pairingProof{Pi: pi, Theta: theta, Rho: rho}
	if tag == EqQE {
		return blindPairingProof(pf, st.crs)
	}
	return pf, nil
}

// proveGTEquation handles a pairing-product equation. Every atom must be
// a genuine pairing of a G1 side against a G2 side (standalone GT
// constants not arising from a pairing are not supported: express a
// target value as a product of pairings of public elements instead). A
// witness-witness atom embeds as a pairing of the two commitments; an
// atom with one side constant embeds the constant directly (zero
// randomness) as the other side's pairing partner. The result is always
// passed through blindPairingProof: unlike the F_p case, no GT tag
// guarantees Pi or Theta stays zero, so there is no shape to preserve.
func (st *proverState) proveGTEquation(eq gtEq, _ EqType) (pairingProof, error) {
	pub := st.publicInputs()
	pi := b2Zero()
	theta := b1Zero()
	rho := pairing.FpZero()

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

			g1Witness := isWitnessG1(a.g1.elem)
			g2Witness := isWitnessG2(a.g2.elem)
			switch {
			case g1Witness && g2Witness:
				g1Idx, g2Idx := a.g1.elem.Index, a.g2.elem.Index
				pi = pi.Add(st.com.G2[g2Idx].ScalarMul(coeff.Mul(st.g1R[g1Idx])))
				theta = theta.Add(st.com.G1[g1Idx].ScalarMul(coeff.Mul(st.g2R[g2Idx])))
				rho = rho.Add(coeff.Mul(st.g1R[g1Idx]).Mul(st.g2R[g2Idx]))
			case g1Witness:
				g1Idx := a.g1.elem.Index
				partner := B2{pairing.G2Zero(), pub.constG2(a.g2.elem)}
				pi = pi.Add(partner.ScalarMul(coeff.Mul(st.g1R[g1Idx])))
			case g2Witness:
				g2Idx := a.g2.elem.Index
				partner := B1{pairing.G1Zero(), pub.constG1(a.g1.elem)}
				theta = theta.Add(partner.ScalarMul(coeff.Mul(st.g2R[g2Idx])))
			default:
				// constant-constant atom: folds into the target only.
			}
		}
		return nil
	}

	if err := accumulate(flattenGT(eq.left), 1); err != nil {
		return pairingProof{}, err
	}
	if err := accumulate(flattenGT(eq.right), -1); err != nil {
		return pairingProof{}, err
	}
	return blindPairingProof(pairingProof{Pi: pi, Theta: theta, Rho: rho}, st.crs)
}
