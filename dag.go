package gsnizk

import "github.com/bazin-remi/gsnizk/pairing"

// Kind tags the shape of one DAG node. The same seven shapes serve all
// four typed node structs below; not every shape is meaningful for
// every type (GT, for instance, has no Variable shape: GT never carries a
// witness directly, only constants derived from G1/G2 witnesses via
// Pairing nodes).
type Kind int

const (
	Variable Kind = iota
	ConstIndex
	ConstValue
	Base
	Pair    // domain group operation: Fp+Fp, G1+G1, G2+G2, GT*GT
	Scalar  // Fp*Fp, or Fp*G1, or Fp*G2
	Pairing // G1 x G2 -> GT
)

// FpNode is one node of an F_p-valued expression.
type FpNode struct {
	Kind        Kind
	Index       int // Variable or ConstIndex
	Value       pairing.Fp
	Left, Right *FpNode // Pair (add) and Scalar (mul)
}

// G1Node is one node of a G1-valued expression.
type G1Node struct {
	Kind        Kind
	Index       int
	Value       pairing.G1
	Left, Right *G1Node // Pair (add)
	Scalar      *FpNode // Scalar: Scalar * Elem
	Elem        *G1Node
}

// G2Node is one node of a G2-valued expression.
type G2Node struct {
	Kind        Kind
	Index       int
	Value       pairing.G2
	Left, Right *G2Node
	Scalar      *FpNode
	Elem        *G2Node
}

// GTNode is one node of a GT-valued expression.
type GTNode struct {
	Kind        Kind
	Index       int // ConstIndex
	Value       pairing.GT
	Left, Right *GTNode // Pair (mul)
	PairG1      *G1Node // Pairing
	PairG2      *G2Node
}

// --- F_p builders ---

func FpVar(index int) *FpNode            { return &FpNode{Kind: Variable, Index: index} }
func FpConst(index int) *FpNode          { return &FpNode{Kind: ConstIndex, Index: index} }
func FpConstValue(v pairing.Fp) *FpNode  { return &FpNode{Kind: ConstValue, Value: v} }
func FpUnit() *FpNode                    { return &FpNode{Kind: Base} }

func (a *FpNode) Add(b *FpNode) *FpNode { return &FpNode{Kind: Pair, Left: a, Right: b} }
func (a *FpNode) Mul(b *FpNode) *FpNode { return &FpNode{Kind: Scalar, Left: a, Right: b} }
func (a *FpNode) Neg() *FpNode          { return a.Mul(FpConstValue(pairing.FpFromInt64(-1))) }
func (a *FpNode) Sub(b *FpNode) *FpNode { return a.Add(b.Neg()) }

// --- G1 builders ---

func G1Var(index int) *G1Node           { return &G1Node{Kind: Variable, Index: index} }
func G1Const(index int) *G1Node         { return &G1Node{Kind: ConstIndex, Index: index} }
func G1ConstValue(v pairing.G1) *G1Node { return &G1Node{Kind: ConstValue, Value: v} }
func G1Base() *G1Node                   { return &G1Node{Kind: Base} }

func (a *G1Node) Add(b *G1Node) *G1Node { return &G1Node{Kind: Pair, Left: a, Right: b} }
func (s *FpNode) MulG1(e *G1Node) *G1Node {
	return &G1Node{Kind: Scalar, Scalar: s, Elem: e}
}
func (a *G1Node) Neg() *G1Node          { return FpConstValue(pairing.FpFromInt64(-1)).MulG1(a) }
func (a *G1Node) Sub(b *G1Node) *G1Node { return a.Add(b.Neg()) }

// --- G2 builders ---

func G2Var(index int) *G2Node           { return &G2Node{Kind: Variable, Index: index} }
func G2Const(index int) *G2Node         { return &G2Node{Kind: ConstIndex, Index: index} }
func G2ConstValue(v pairing.G2) *G2Node { return &G2Node{Kind: ConstValue, Value: v} }
func G2Base() *G2Node                   { return &G2Node{Kind: Base} }

func (a *G2Node) Add(b *G2Node) *G2Node { return &G2Node{Kind: Pair, Left: a, Right: b} }
func (s *FpNode) MulG2(e *G2Node) *G2Node {
	return &G2Node{Kind: Scalar, Scalar: s, Elem: e}
}
func (a *G2Node) Neg() *G2Node          { return FpConstValue(pairing.FpFromInt64(-1)).MulG2(a) }
func (a *G2Node) Sub(b *G2Node) *G2Node { return a.Add(b.Neg()) }

// --- GT builders ---

func GTConst(index int) *GTNode         { return &GTNode{Kind: ConstIndex, Index: index} }
func GTConstValue(v pairing.GT) *GTNode { return &GTNode{Kind: ConstValue, Value: v} }
func GTBase() *GTNode                   { return &GTNode{Kind: Base} }

func (a *GTNode) Mul(b *GTNode) *GTNode { return &GTNode{Kind: Pair, Left: a, Right: b} }

// GTConstValueInv wraps the inverse of v directly, for equations whose
// right-hand side needs to be divided through (GT expressions have no
// general Div builder since every constant the DAG carries is already
// resolved to a concrete value at build time).
func GTConstValueInv(v pairing.GT) *GTNode { return &GTNode{Kind: ConstValue, Value: v.Inverse()} }

// PairingOf builds the GT node e(a, b).
func PairingOf(a *G1Node, b *G2Node) *GTNode { return &GTNode{Kind: Pairing, PairG1: a, PairG2: b} }

// --- Evaluation ---

// Instantiation supplies concrete values for every variable and constant
// index an equation system references, plus the pairing context used to
// resolve Base nodes.
type Instantiation struct {
	Ctx *pairing.Context

	FpVars, FpConsts []pairing.Fp
	G1Vars, G1Consts []pairing.G1
	G2Vars, G2Consts []pairing.G2
	GTConsts         []pairing.GT
}

func (in *Instantiation) evalFp(n *FpNode) pairing.Fp {
	switch n.Kind {
	case Variable:
		return in.FpVars[n.Index]
	case ConstIndex:
		return in.FpConsts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return pairing.FpOne()
	case Pair:
		return in.evalFp(n.Left).Add(in.evalFp(n.Right))
	case Scalar:
		return in.evalFp(n.Left).Mul(in.evalFp(n.Right))
	default:
		panic("gsnizk: invalid FpNode kind")
	}
}

func (in *Instantiation) evalG1(n *G1Node) pairing.G1 {
	switch n.Kind {
	case Variable:
		return in.G1Vars[n.Index]
	case ConstIndex:
		return in.G1Consts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return in.Ctx.G1Base
	case Pair:
		return in.evalG1(n.Left).Add(in.evalG1(n.Right))
	case Scalar:
		return in.evalG1(n.Elem).ScalarMul(in.evalFp(n.Scalar))
	default:
		panic("gsnizk: invalid G1Node kind")
	}
}

func (in *Instantiation) evalG2(n *G2Node) pairing.G2 {
	switch n.Kind {
	case Variable:
		return in.G2Vars[n.Index]
	case ConstIndex:
		return in.G2Consts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return in.Ctx.G2Base
	case Pair:
		return in.evalG2(n.Left).Add(in.evalG2(n.Right))
	case Scalar:
		return in.evalG2(n.Elem).ScalarMul(in.evalFp(n.Scalar))
	default:
		panic("gsnizk: invalid G2Node kind")
	}
}

func (in *Instantiation) evalGT(n *GTNode) pairing.GT {
	switch n.Kind {
	case ConstIndex:
		return in.GTConsts[n.Index]
	case ConstValue:
		return n.Value
	case Base:
		return in.Ctx.GTBase
	case Pair:
		return in.evalGT(n.Left).Mul(in.evalGT(n.Right))
	case Pairing:
		return pairing.Pair(in.evalG1(n.PairG1), in.evalG2(n.PairG2))
	default:
		panic("gsnizk: invalid GTNode kind")
	}
}
