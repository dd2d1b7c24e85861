package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// PublicInputs supplies the values a verifier is allowed to know: the
// pairing context and every declared constant, but none of the witness
// values an Instantiation would also carry. CheckProof takes one of these
// instead of a full Instantiation.
type PublicInputs struct {
	Ctx *pairing.Context

	FpConsts []pairing.Fp
	G1Consts []pairing.G1
	G2Consts []pairing.G2
	GTConsts []pairing.GT
}

// Public projects an Instantiation down to the PublicInputs a verifier may
// see.
func (in *Instantiation) Public() *PublicInputs {
	return &PublicInputs{
		Ctx:      in.Ctx,
		FpConsts: in.FpConsts,
		G1Consts: in.G1Consts,
		G2Consts: in.G2Consts,
		GTConsts: in.GTConsts,
	}
}

// evalFp resolves a terminal, non-witness F_p node.
func (pub *PublicInputs) evalFp(n *FpNode) pairing.Fp {
	switch n.Kind {
	case ConstIndex:
		return pub.FpConsts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return pairing.FpOne()
	default:
		panic("gsnizk: PublicInputs.evalFp called on a non-constant node")
	}
}

// constG1 resolves a terminal, non-witness G1 node.
func (pub *PublicInputs) constG1(n *G1Node) pairing.G1 {
	switch n.Kind {
	case ConstIndex:
		return pub.G1Consts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return pub.Ctx.G1Base
	default:
		panic("gsnizk: PublicInputs.constG1 called on a non-constant node")
	}
}

func (pub *PublicInputs) constG2(n *G2Node) pairing.G2 {
	switch n.Kind {
	case ConstIndex:
		return pub.G2Consts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return pub.Ctx.G2Base
	default:
		panic("gsnizk: PublicInputs.constG2 called on a non-constant node")
	}
}

func (pub *PublicInputs) constGT(n *GTNode) pairing.GT {
	switch n.Kind {
	case ConstIndex:
		return pub.GTConsts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return pub.Ctx.GTBase
	default:
		panic("gsnizk: PublicInputs.constGT called on a non-constant node")
	}
}
