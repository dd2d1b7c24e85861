package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// B1 is a commitment in the doubled group G1 x G1, the left-hand
// commitment module of the Groth-Sahai construction.
type B1 struct{ X1, X2 pairing.G1 }

// B2 is a commitment in G2 x G2, the right-hand commitment module.
type B2 struct{ X1, X2 pairing.G2 }

// BT is a commitment in GT^4, produced by pairing a B1 commitment against
// a B2 commitment. It is the target-group module the verification
// equation is ultimately checked in.
type BT struct{ X11, X12, X21, X22 pairing.GT }

func (a B1) Add(b B1) B1 { return B1{a.X1.Add(b.X1), a.X2.Add(b.X2)} }
func (a B1) Sub(b B1) B1 { return B1{a.X1.Sub(b.X1), a.X2.Sub(b.X2)} }
func (a B1) Neg() B1     { return B1{a.X1.Neg(), a.X2.Neg()} }
func (a B1) ScalarMul(s pairing.Fp) B1 {
	return B1{a.X1.ScalarMul(s), a.X2.ScalarMul(s)}
}
func (a B1) Equal(b B1) bool { return a.X1.Equal(b.X1) && a.X2.Equal(b.X2) }

func (a B2) Add(b B2) B2 { return B2{a.X1.Add(b.X1), a.X2.Add(b.X2)} }
func (a B2) Sub(b B2) B2 { return B2{a.X1.Sub(b.X1), a.X2.Sub(b.X2)} }
func (a B2) Neg() B2     { return B2{a.X1.Neg(), a.X2.Neg()} }
func (a B2) ScalarMul(s pairing.Fp) B2 {
	return B2{a.X1.ScalarMul(s), a.X2.ScalarMul(s)}
}
func (a B2) Equal(b B2) bool { return a.X1.Equal(b.X1) && a.X2.Equal(b.X2) }

func (a BT) Mul(b BT) BT {
	return BT{a.X11.Mul(b.X11), a.X12.Mul(b.X12), a.X21.Mul(b.X21), a.X22.Mul(b.X22)}
}
func (a BT) Div(b BT) BT {
	return BT{a.X11.Div(b.X11), a.X12.Div(b.X12), a.X21.Div(b.X21), a.X22.Div(b.X22)}
}
func (a BT) Pow(s pairing.Fp) BT {
	return BT{a.X11.Pow(s), a.X12.Pow(s), a.X21.Pow(s), a.X22.Pow(s)}
}
func (a BT) Equal(b BT) bool {
	return a.X11.Equal(b.X11) && a.X12.Equal(b.X12) && a.X21.Equal(b.X21) && a.X22.Equal(b.X22)
}

func b1Zero() B1 { return B1{pairing.G1Zero(), pairing.G1Zero()} }
func b2Zero() B2 { return B2{pairing.G2Zero(), pairing.G2Zero()} }

func btOne() BT {
	one := pairing.GTOne()
	return BT{one, one, one, one}
}

// PairB1B2 computes the BT commitment induced by pairing every component
// of a against every component of b.
func PairB1B2(a B1, b B2) BT {
	return BT{
		X11: pairing.Pair(a.X1, b.X1),
		X12: pairing.Pair(a.X1, b.X2),
		X21: pairing.Pair(a.X2, b.X1),
		X22: pairing.Pair(a.X2, b.X2),
	}
}

// BPair is one (B1, B2) factor of a batched BT pairing.
type BPair struct {
	A B1
	B B2
}

// PairB1B2Batch computes the sum (as a BT product) of PairB1B2(pairs[i].A,
// pairs[i].B), batching each of the four limbs into one multi-pairing call
// instead of len(pairs) separate ones.
func PairB1B2Batch(pairs []BPair) BT {
	if len(pairs) == 0 {
		return BT{pairing.GTOne(), pairing.GTOne(), pairing.GTOne(), pairing.GTOne()}
	}
	var t11, t12, t21, t22 []pairing.PairTerm
	for _, p := range pairs {
		t11 = append(t11, pairing.PairTerm{A: p.A.X1, B: p.B.X1})
		t12 = append(t12, pairing.PairTerm{A: p.A.X1, B: p.B.X2})
		t21 = append(t21, pairing.PairTerm{A: p.A.X2, B: p.B.X1})
		t22 = append(t22, pairing.PairTerm{A: p.A.X2, B: p.B.X2})
	}
	return BT{
		X11: pairing.MultiPair(t11),
		X12: pairing.MultiPair(t12),
		X21: pairing.MultiPair(t21),
		X22: pairing.MultiPair(t22),
	}
}

// ExtractB1 recovers the underlying G1 witness committed to in c, using the
// CRS's extraction trapdoor. Only meaningful for a binding (Extract-kind)
// CRS.
func (crs *CRS) ExtractB1(c B1) pairing.G1 {
	return c.X2.Sub(c.X1.ScalarMul(crs.Eps1.Inverse()))
}

// ExtractB2 is ExtractB1's G2 counterpart.
func (crs *CRS) ExtractB2(c B2) pairing.G2 {
	return c.X2.Sub(c.X1.ScalarMul(crs.Eps2.Inverse()))
}

// CommitScalarG1 commits an F_p value m on the G1 side with randomness r,
// i.e. m*U1 + r*V1.
func (crs *CRS) CommitScalarG1(m, r pairing.Fp) B1 {
	return B1{crs.U1.X1.ScalarMul(m).Add(crs.V1.X1.ScalarMul(r)),
		crs.U1.X2.ScalarMul(m).Add(crs.V1.X2.ScalarMul(r))}
}

// CommitScalarG2 is CommitScalarG1's G2 counterpart.
func (crs *CRS) CommitScalarG2(m, r pairing.Fp) B2 {
	return B2{crs.U2.X1.ScalarMul(m).Add(crs.V2.X1.ScalarMul(r)),
		crs.U2.X2.ScalarMul(m).Add(crs.V2.X2.ScalarMul(r))}
}

// CommitGroupEncG1 commits a G1 witness el with a single blinding scalar r,
// producing an "encrypted" (ElGamal-style) commitment: el + r*V1. This is
// the form used for variables the SelectedEncryption mode decides to
// encrypt rather than commit under both trapdoor scalars.
func (crs *CRS) CommitGroupEncG1(el pairing.G1, r pairing.Fp) B1 {
	return B1{crs.V1.X1.ScalarMul(r), el.Add(crs.V1.X2.ScalarMul(r))}
}

func (crs *CRS) CommitGroupEncG2(el pairing.G2, r pairing.Fp) B2 {
	return B2{crs.V2.X1.ScalarMul(r), el.Add(crs.V2.X2.ScalarMul(r))}
}

// CommitGroupComG1 commits a G1 witness el under two blinding scalars r, s,
// the form used for variables committed directly (not encrypted). Under a
// CRSPrivate or CRSExtract CRS the two trapdoors collapse into one combined
// term; CRSZK keeps them as separate V1/W1 contributions.
func (crs *CRS) CommitGroupComG1(el pairing.G1, r, s pairing.Fp) B1 {
	base := B1{pairing.G1Zero(), el}
	if crs.Kind == CRSPrivate || crs.Kind == CRSExtract {
		return base.Add(crs.V1.ScalarMul(r.Add(crs.Rho1.Mul(s))))
	}
	return base.Add(crs.V1.ScalarMul(r)).Add(crs.W1.ScalarMul(s))
}

func (crs *CRS) CommitGroupComG2(el pairing.G2, r, s pairing.Fp) B2 {
	base := B2{pairing.G2Zero(), el}
	if crs.Kind == CRSPrivate || crs.Kind == CRSExtract {
		return base.Add(crs.V2.ScalarMul(r.Add(crs.Rho2.Mul(s))))
	}
	return base.Add(crs.V2.ScalarMul(r)).Add(crs.W2.ScalarMul(s))
}
