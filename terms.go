package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// This file decomposes an equation's DAG into a flat sum of product terms,
// fully distributing Pair (sum) nodes over Scalar/Pairing (product) nodes.
// prove.go and verify.go consume the flattened form to classify each term
// as a public constant, a term linear in one witness, or a term bilinear
// in two witnesses, and to build the corresponding proof elements.

// fpTerm is one product term of an F_p expression: the multiset of leaf
// factors (Variable, ConstIndex, ConstValue or Base) that multiply
// together.
type fpTerm struct{ factors []*FpNode }

func flattenFp(n *FpNode) []fpTerm {
	switch n.Kind {
	case Variable, ConstIndex, ConstValue, Base:
		return []fpTerm{{factors: []*FpNode{n}}}
	case Pair:
		return append(flattenFp(n.Left), flattenFp(n.Right)...)
	case Scalar:
		left, right := flattenFp(n.Left), flattenFp(n.Right)
		out := make([]fpTerm, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				factors := append(append([]*FpNode(nil), l.factors...), r.factors...)
				out = append(out, fpTerm{factors: factors})
			}
		}
		return out
	default:
		panic("gsnizk: invalid FpNode kind")
	}
}

func (t fpTerm) witnesses() []*FpNode {
	var vars []*FpNode
	for _, f := range t.factors {
		if f.Kind == Variable {
			vars = append(vars, f)
		}
	}
	return vars
}

// publicFpFactor evaluates the product of every non-witness factor in t.
func publicFpFactor(pub *PublicInputs, t fpTerm) pairing.Fp {
	v := pairing.FpOne()
	for _, f := range t.factors {
		if f.Kind != Variable {
			v = v.Mul(pub.evalFp(f))
		}
	}
	return v
}

// g1Term is one product term of a G1 expression: a (possibly empty) list
// of F_p scalar factors multiplying a single terminal G1 element.
type g1Term struct {
	scalars []*FpNode
	elem    *G1Node
}

func flattenG1(n *G1Node) []g1Term {
	switch n.Kind {
	case Variable, ConstIndex, ConstValue, Base:
		return []g1Term{{elem: n}}
	case Pair:
		return append(flattenG1(n.Left), flattenG1(n.Right)...)
	case Scalar:
		scalars := flattenFp(n.Scalar)
		elems := flattenG1(n.Elem)
		out := make([]g1Term, 0, len(scalars)*len(elems))
		for _, s := range scalars {
			for _, e := range elems {
				factors := append(append([]*FpNode(nil), s.factors...), e.scalars...)
				out = append(out, g1Term{scalars: factors, elem: e.elem})
			}
		}
		return out
	default:
		panic("gsnizk: invalid G1Node kind")
	}
}

type g2Term struct {
	scalars []*FpNode
	elem    *G2Node
}

func flattenG2(n *G2Node) []g2Term {
	switch n.Kind {
	case Variable, ConstIndex, ConstValue, Base:
		return []g2Term{{elem: n}}
	case Pair:
		return append(flattenG2(n.Left), flattenG2(n.Right)...)
	case Scalar:
		scalars := flattenFp(n.Scalar)
		elems := flattenG2(n.Elem)
		out := make([]g2Term, 0, len(scalars)*len(elems))
		for _, s := range scalars {
			for _, e := range elems {
				factors := append(append([]*FpNode(nil), s.factors...), e.scalars...)
				out = append(out, g2Term{scalars: factors, elem: e.elem})
			}
		}
		return out
	default:
		panic("gsnizk: invalid G2Node kind")
	}
}

func isWitnessFp(n *FpNode) bool { return n.Kind == Variable }
func isWitnessG1(n *G1Node) bool { return n.Kind == Variable }
func isWitnessG2(n *G2Node) bool { return n.Kind == Variable }

// publicFpCoeff evaluates the product of scalar factors, panicking if any
// is a witness: callers must only invoke this once they have established
// the term carries no witness coefficient.
func publicFpCoeff(pub *PublicInputs, factors []*FpNode) pairing.Fp {
	v := pairing.FpOne()
	for _, f := range factors {
		if isWitnessFp(f) {
			panic("gsnizk: publicFpCoeff called on a witness factor")
		}
		v = v.Mul(pub.evalFp(f))
	}
	return v
}

// gtAtom is one elementary pairing (or constant) term of a flattened GT
// expression.
type gtAtom struct {
	isConst bool
	constOf *GTNode // isConst == true

	g1 g1Term // isConst == false
	g2 g2Term
}

func flattenGT(n *GTNode) []gtAtom {
	switch n.Kind {
	case ConstIndex, ConstValue, Base:
		return []gtAtom{{isConst: true, constOf: n}}
	case Pair:
		return append(flattenGT(n.Left), flattenGT(n.Right)...)
	case Pairing:
		g1s := flattenG1(n.PairG1)
		g2s := flattenG2(n.PairG2)
		out := make([]gtAtom, 0, len(g1s)*len(g2s))
		for _, a := range g1s {
			for _, b := range g2s {
				out = append(out, gtAtom{g1: a, g2: b})
			}
		}
		return out
	default:
		panic("gsnizk: invalid GTNode kind")
	}
}
