package gsnizk

import (
	"fmt"
	"io"

	"github.com/bazin-remi/gsnizk/pairing"
)

// This file serializes the equation system a NIZKProof carries (its Mode
// and every AddEquation* call's left/right DAG), independent of any
// Finalize bookkeeping. A system read back with ReadProofModel still needs
// Finalize before it can Prove/CheckProof/SimulateProof: only the raw
// equations travel over the wire, exactly as AddEquation* built them.

func writeFpNode(w io.Writer, n *FpNode) error {
	if err := writeUint16(w, uint16(n.Kind)); err != nil {
		return err
	}
	switch n.Kind {
	case Variable, ConstIndex:
		return writeUint16(w, uint16(n.Index))
	case ConstValue:
		return pairing.WriteFp(w, n.Value)
	case Base:
		return nil
	case Pair, Scalar:
		if err := writeFpNode(w, n.Left); err != nil {
			return err
		}
		return writeFpNode(w, n.Right)
	default:
		return fmt.Errorf("gsnizk: invalid FpNode kind %d", n.Kind)
	}
}

func readFpNode(r io.Reader) (*FpNode, error) {
	kindVal, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	kind := Kind(kindVal)
	n := &FpNode{Kind: kind}
	switch kind {
	case Variable, ConstIndex:
		idx, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		n.Index = int(idx)
	case ConstValue:
		v, err := pairing.ReadFp(r)
		if err != nil {
			return nil, err
		}
		n.Value = v
	case Base:
	case Pair, Scalar:
		left, err := readFpNode(r)
		if err != nil {
			return nil, err
		}
		right, err := readFpNode(r)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = left, right
	default:
		return nil, fmt.Errorf("gsnizk: invalid F_p node tag %d on the wire", kind)
	}
	return n, nil
}

func writeG1Node(w io.Writer, n *G1Node) error {
	if err := writeUint16(w, uint16(n.Kind)); err != nil {
		return err
	}
	switch n.Kind {
	case Variable, ConstIndex:
		return writeUint16(w, uint16(n.Index))
	case ConstValue:
		return pairing.WriteG1(w, n.Value)
	case Base:
		return nil
	case Pair:
		if err := writeG1Node(w, n.Left); err != nil {
			return err
		}
		return writeG1Node(w, n.Right)
	case Scalar:
		if err := writeFpNode(w, n.Scalar); err != nil {
			return err
		}
		return writeG1Node(w, n.Elem)
	default:
		return fmt.Errorf("gsnizk: invalid G1Node kind %d", n.Kind)
	}
}

func readG1Node(r io.Reader) (*G1Node, error) {
	kindVal, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	kind := Kind(kindVal)
	n := &G1Node{Kind: kind}
	switch kind {
	case Variable, ConstIndex:
		idx, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		n.Index = int(idx)
	case ConstValue:
		v, err := pairing.ReadG1(r)
		if err != nil {
			return nil, err
		}
		n.Value = v
	case Base:
	case Pair:
		left, err := readG1Node(r)
		if err != nil {
			return nil, err
		}
		right, err := readG1Node(r)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = left, right
	case Scalar:
		scalar, err := readFpNode(r)
		if err != nil {
			return nil, err
		}
		elem, err := readG1Node(r)
		if err != nil {
			return nil, err
		}
		n.Scalar, n.Elem = scalar, elem
	default:
		return nil, fmt.Errorf("gsnizk: invalid G1 node tag %d on the wire", kind)
	}
	return n, nil
}

func writeG2Node(w io.Writer, n *G2Node) error {
	if err := writeUint16(w, uint16(n.Kind)); err != nil {
		return err
	}
	switch n.Kind {
	case Variable, ConstIndex:
		return writeUint16(w, uint16(n.Index))
	case ConstValue:
		return pairing.WriteG2(w, n.Value)
	case Base:
		return nil
	case Pair:
		if err := writeG2Node(w, n.Left); err != nil {
			return err
		}
		return writeG2Node(w, n.Right)
	case Scalar:
		if err := writeFpNode(w, n.Scalar); err != nil {
			return err
		}
		return writeG2Node(w, n.Elem)
	default:
		return fmt.Errorf("gsnizk: invalid G2Node kind %d", n.Kind)
	}
}

func readG2Node(r io.Reader) (*G2Node, error) {
	kindVal, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	kind := Kind(kindVal)
	n := &G2Node{Kind: kind}
	switch kind {
	case Variable, ConstIndex:
		idx, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		n.Index = int(idx)
	case ConstValue:
		v, err := pairing.ReadG2(r)
		if err != nil {
			return nil, err
		}
		n.Value = v
	case Base:
	case Pair:
		left, err := readG2Node(r)
		if err != nil {
			return nil, err
		}
		right, err := readG2Node(r)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = left, right
	case Scalar:
		scalar, err := readFpNode(r)
		if err != nil {
			return nil, err
		}
		elem, err := readG2Node(r)
		if err != nil {
			return nil, err
		}
		n.Scalar, n.Elem = scalar, elem
	default:
		return nil, fmt.Errorf("gsnizk: invalid G2 node tag %d on the wire", kind)
	}
	return n, nil
}

func writeGTNode(w io.Writer, n *GTNode) error {
	if err := writeUint16(w, uint16(n.Kind)); err != nil {
		return err
	}
	switch n.Kind {
	case ConstIndex:
		return writeUint16(w, uint16(n.Index))
	case ConstValue:
		return pairing.WriteGT(w, n.Value)
	case Base:
		return nil
	case Pair:
		if err := writeGTNode(w, n.Left); err != nil {
			return err
		}
		return writeGTNode(w, n.Right)
	case Pairing:
		if err := writeG1Node(w, n.PairG1); err != nil {
			return err
		}
		return writeG2Node(w, n.PairG2)
	default:
		return fmt.Errorf("gsnizk: invalid GTNode kind %d", n.Kind)
	}
}

func readGTNode(r io.Reader) (*GTNode, error) {
	kindVal, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	kind := Kind(kindVal)
	n := &GTNode{Kind: kind}
	switch kind {
	case ConstIndex:
		idx, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		n.Index = int(idx)
	case ConstValue:
		v, err := pairing.ReadGT(r)
		if err != nil {
			return nil, err
		}
		n.Value = v
	case Base:
	case Pair:
		left, err := readGTNode(r)
		if err != nil {
			return nil, err
		}
		right, err := readGTNode(r)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = left, right
	case Pairing:
		g1, err := readG1Node(r)
		if err != nil {
			return nil, err
		}
		g2, err := readG2Node(r)
		if err != nil {
			return nil, err
		}
		n.PairG1, n.PairG2 = g1, g2
	default:
		return nil, fmt.Errorf("gsnizk: invalid GT node tag %d on the wire", kind)
	}
	return n, nil
}

// WriteTo writes p's equation system (commit mode plus every AddEquation*
// call's left/right expression, in declaration order) so a peer holding the
// same pairing context can reconstruct an equivalent, not-yet-finalized
// NIZKProof with ReadProofModel.
func (p *NIZKProof) WriteTo(w io.Writer) error {
	if err := writeUint16(w, uint16(p.Mode)); err != nil {
		return err
	}
	for _, n := range []int{len(p.eqsFp), len(p.eqsG1), len(p.eqsG2), len(p.eqsGT)} {
		if err := writeUint16(w, uint16(n)); err != nil {
			return err
		}
	}
	for _, eq := range p.eqsFp {
		if err := writeFpNode(w, eq.left); err != nil {
			return err
		}
		if err := writeFpNode(w, eq.right); err != nil {
			return err
		}
	}
	for _, eq := range p.eqsG1 {
		if err := writeG1Node(w, eq.left); err != nil {
			return err
		}
		if err := writeG1Node(w, eq.right); err != nil {
			return err
		}
	}
	for _, eq := range p.eqsG2 {
		if err := writeG2Node(w, eq.left); err != nil {
			return err
		}
		if err := writeG2Node(w, eq.right); err != nil {
			return err
		}
	}
	for _, eq := range p.eqsGT {
		if err := writeGTNode(w, eq.left); err != nil {
			return err
		}
		if err := writeGTNode(w, eq.right); err != nil {
			return err
		}
	}
	return nil
}

// ReadProofModel reconstructs an equation system written by
// (*NIZKProof).WriteTo. The result still needs Finalize before it can
// Prove, CheckProof or SimulateProof.
func ReadProofModel(r io.Reader, ctx *pairing.Context) (*NIZKProof, error) {
	mode, err := readUint16(r)
	if err != nil {
		return nil, fmt.Errorf("reading commit mode: %w", err)
	}
	counts := make([]int, 4)
	for i := range counts {
		n, err := readUint16(r)
		if err != nil {
			return nil, fmt.Errorf("reading equation count %d: %w", i, err)
		}
		counts[i] = int(n)
	}

	p := New(ctx, CommitMode(mode))
	for i := 0; i < counts[0]; i++ {
		left, err := readFpNode(r)
		if err != nil {
			return nil, fmt.Errorf("reading F_p equation %d left side: %w", i, err)
		}
		right, err := readFpNode(r)
		if err != nil {
			return nil, fmt.Errorf("reading F_p equation %d right side: %w", i, err)
		}
		p.eqsFp = append(p.eqsFp, fpEq{left, right})
	}
	for i := 0; i < counts[1]; i++ {
		left, err := readG1Node(r)
		if err != nil {
			return nil, fmt.Errorf("reading G1 equation %d left side: %w", i, err)
		}
		right, err := readG1Node(r)
		if err != nil {
			return nil, fmt.Errorf("reading G1 equation %d right side: %w", i, err)
		}
		p.eqsG1 = append(p.eqsG1, g1Eq{left, right})
	}
	for i := 0; i < counts[2]; i++ {
		left, err := readG2Node(r)
		if err != nil {
			return nil, fmt.Errorf("reading G2 equation %d left side: %w", i, err)
		}
		right, err := readG2Node(r)
		if err != nil {
			return nil, fmt.Errorf("reading G2 equation %d right side: %w", i, err)
		}
		p.eqsG2 = append(p.eqsG2, g2Eq{left, right})
	}
	for i := 0; i < counts[3]; i++ {
		left, err := readGTNode(r)
		if err != nil {
			return nil, fmt.Errorf("reading GT equation %d left side: %w", i, err)
		}
		right, err := readGTNode(r)
		if err != nil {
			return nil, fmt.Errorf("reading GT equation %d right side: %w", i, err)
		}
		p.eqsGT = append(p.eqsGT, gtEq{left, right})
	}
	return p, nil
}
