package gsnizk

import (
	"fmt"
	"io"

	"github.com/bazin-remi/gsnizk/pairing"
)

// This file is the binary wire codec for CRS, Commitments and Proof
// values: every field is written in a fixed order with no length
// prefixes, since every count (number of variables, number of
// equations) is already known to both sides from the shared NIZKProof
// the CRS/Commitments/Proof belong to.

func writeB1(w io.Writer, b B1) error {
	if err := pairing.WriteG1(w, b.X1); err != nil {
		return err
	}
	return pairing.WriteG1(w, b.X2)
}

func readB1(r io.Reader) (B1, error) {
	x1, err := pairing.ReadG1(r)
	if err != nil {
		return B1{}, err
	}
	x2, err := pairing.ReadG1(r)
	if err != nil {
		return B1{}, err
	}
	return B1{x1, x2}, nil
}

func writeB2(w io.Writer, b B2) error {
	if err := pairing.WriteG2(w, b.X1); err != nil {
		return err
	}
	return pairing.WriteG2(w, b.X2)
}

func readB2(r io.Reader) (B2, error) {
	x1, err := pairing.ReadG2(r)
	if err != nil {
		return B2{}, err
	}
	x2, err := pairing.ReadG2(r)
	if err != nil {
		return B2{}, err
	}
	return B2{x1, x2}, nil
}

// WriteCRS writes every base element and trapdoor scalar crs carries.
// Trapdoor fields a CRS's Kind does not use are their zero value and
// round-trip as such; Kind itself is written first so ReadCRS can tag
// the result correctly.
func WriteCRS(w io.Writer, crs *CRS) error {
	if err := writeUint16(w, uint16(crs.Kind)); err != nil {
		return err
	}
	for _, b := range []B1{crs.U1, crs.V1, crs.W1} {
		if err := writeB1(w, b); err != nil {
			return err
		}
	}
	for _, b := range []B2{crs.U2, crs.V2, crs.W2} {
		if err := writeB2(w, b); err != nil {
			return err
		}
	}
	for _, f := range []pairing.Fp{crs.Rho1, crs.Eps1, crs.Rho2, crs.Eps2, crs.V1Scalar, crs.V2Scalar} {
		if err := pairing.WriteFp(w, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadCRS reads a CRS written by WriteCRS.
func ReadCRS(r io.Reader) (*CRS, error) {
	kind, err := readUint16(r)
	if err != nil {
		return nil, fmt.Errorf("reading CRS kind: %w", err)
	}
	crs := &CRS{Kind: Kind(kind)}

	b1s := make([]*B1, 3)
	b1s[0], b1s[1], b1s[2] = &crs.U1, &crs.V1, &crs.W1
	for _, dst := range b1s {
		b, err := readB1(r)
		if err != nil {
			return nil, fmt.Errorf("reading CRS B1 element: %w", err)
		}
		*dst = b
	}

	b2s := make([]*B2, 3)
	b2s[0], b2s[1], b2s[2] = &crs.U2, &crs.V2, &crs.W2
	for _, dst := range b2s {
		b, err := readB2(r)
		if err != nil {
			return nil, fmt.Errorf("reading CRS B2 element: %w", err)
		}
		*dst = b
	}

	scalars := []*pairing.Fp{&crs.Rho1, &crs.Eps1, &crs.Rho2, &crs.Eps2, &crs.V1Scalar, &crs.V2Scalar}
	for _, dst := range scalars {
		f, err := pairing.ReadFp(r)
		if err != nil {
			return nil, fmt.Errorf("reading CRS trapdoor scalar: %w", err)
		}
		*dst = f
	}
	return crs, nil
}

// WriteCommitments writes every commitment in com, in FpG1, FpG2, G1, G2
// order.
func WriteCommitments(w io.Writer, com *Commitments) error {
	for _, b := range com.FpG1 {
		if err := writeB1(w, b); err != nil {
			return err
		}
	}
	for _, b := range com.FpG2 {
		if err := writeB2(w, b); err != nil {
			return err
		}
	}
	for _, b := range com.G1 {
		if err := writeB1(w, b); err != nil {
			return err
		}
	}
	for _, b := range com.G2 {
		if err := writeB2(w, b); err != nil {
			return err
		}
	}
	return nil
}

// ReadCommitments reads commitments for a system with the given variable
// counts, matching a finalized NIZKProof's numFpVars/numG1Vars/numG2Vars.
func ReadCommitments(r io.Reader, numFpVars, numG1Vars, numG2Vars int) (*Commitments, error) {
	com := &Commitments{
		FpG1: make([]B1, numFpVars),
		FpG2: make([]B2, numFpVars),
		G1:   make([]B1, numG1Vars),
		G2:   make([]B2, numG2Vars),
	}
	for i := range com.FpG1 {
		b, err := readB1(r)
		if err != nil {
			return nil, fmt.Errorf("reading F_p/G1 commitment %d: %w", i, err)
		}
		com.FpG1[i] = b
	}
	for i := range com.FpG2 {
		b, err := readB2(r)
		if err != nil {
			return nil, fmt.Errorf("reading F_p/G2 commitment %d: %w", i, err)
		}
		com.FpG2[i] = b
	}
	for i := range com.G1 {
		b, err := readB1(r)
		if err != nil {
			return nil, fmt.Errorf("reading G1 commitment %d: %w", i, err)
		}
		com.G1[i] = b
	}
	for i := range com.G2 {
		b, err := readB2(r)
		if err != nil {
			return nil, fmt.Errorf("reading G2 commitment %d: %w", i, err)
		}
		com.G2[i] = b
	}
	return com, nil
}

func writeLinearProof(w io.Writer, pf linearProof) error {
	if err := pairing.WriteFp(w, pf.R); err != nil {
		return err
	}
	return pairing.WriteFp(w, pf.S)
}

func readLinearProof(r io.Reader) (linearProof, error) {
	rv, err := pairing.ReadFp(r)
	if err != nil {
		return linearProof{}, err
	}
	s, err := pairing.ReadFp(r)
	if err != nil {
		return linearProof{}, err
	}
	return linearProof{R: rv, S: s}, nil
}

func writePairingProof(w io.Writer, pf pairingProof) error {
	if err := writeB2(w, pf.Pi); err != nil {
		return err
	}
	if err := writeB1(w, pf.Theta); err != nil {
		return err
	}
	return pairing.WriteFp(w, pf.Rho)
}

func readPairingProof(r io.Reader) (pairingProof, error) {
	pi, err := readB2(r)
	if err != nil {
		return pairingProof{}, err
	}
	theta, err := readB1(r)
	if err != nil {
		return pairingProof{}, err
	}
	rho, err := pairing.ReadFp(r)
	if err != nil {
		return pairingProof{}, err
	}
	return pairingProof{Pi: pi, Theta: theta, Rho: rho}, nil
}

// writeFpProofElement writes an F_p proof element's shape according to its
// tag: EqQConstG omits Pi (always the B2 zero element by construction,
// since no B1-side witness exists to write it), EqQConstH omits Theta for
// the symmetric reason, and EqQE writes the full three-field shape.
func writeFpProofElement(w io.Writer, pf pairingProof, tag EqType) error {
	if tag != EqQConstG {
		if err := writeB2(w, pf.Pi); err != nil {
			return err
		}
	}
	if tag != EqQConstH {
		if err := writeB1(w, pf.Theta); err != nil {
			return err
		}
	}
	return pairing.WriteFp(w, pf.Rho)
}

func readFpProofElement(r io.Reader, tag EqType) (pairingProof, error) {
	pf := pairingProof{Pi: b2Zero(), Theta: b1Zero()}
	if tag != EqQConstG {
		pi, err := readB2(r)
		if err != nil {
			return pairingProof{}, err
		}
		pf.Pi = pi
	}
	if tag != EqQConstH {
		theta, err := readB1(r)
		if err != nil {
			return pairingProof{}, err
		}
		pf.Theta = theta
	}
	rho, err := pairing.ReadFp(r)
	if err != nil {
		return pairingProof{}, err
	}
	pf.Rho = rho
	return pf, nil
}

// WriteProof writes every proof element in proof, in Fp, G1, G2, GT
// order, matching the declaration order of a finalized NIZKProof's
// equations. tFp is that system's per-equation F_p classification
// (NIZKProof.tFp after Finalize): it drives the reduced QConst_G/QConst_H
// wire shape for the F_p elements. G1/G2/GT elements always use their full
// shape (see DESIGN.md for why the reduction is not extended there).
func WriteProof(w io.Writer, proof *Proof, tFp []EqType) error {
	for i, pf := range proof.Fp {
		if err := writeFpProofElement(w, pf, tFp[i]); err != nil {
			return err
		}
	}
	for _, pf := range proof.G1 {
		if err := writeLinearProof(w, pf); err != nil {
			return err
		}
	}
	for _, pf := range proof.G2 {
		if err := writeLinearProof(w, pf); err != nil {
			return err
		}
	}
	for _, pf := range proof.GT {
		if err := writePairingProof(w, pf); err != nil {
			return err
		}
	}
	return nil
}

// ReadProof reads a proof for a system with the given equation counts,
// matching a finalized NIZKProof's len(eqsFp)/len(eqsG1)/len(eqsG2)/
// len(eqsGT). tFp must be that same system's NIZKProof.tFp.
func ReadProof(r io.Reader, tFp []EqType, numG1Eqs, numG2Eqs, numGTEqs int) (*Proof, error) {
	proof := &Proof{
		Fp: make([]pairingProof, len(tFp)),
		G1: make([]linearProof, numG1Eqs),
		G2: make([]linearProof, numG2Eqs),
		GT: make([]pairingProof, numGTEqs),
	}
	for i := range proof.Fp {
		pf, err := readFpProofElement(r, tFp[i])
		if err != nil {
			return nil, fmt.Errorf("reading F_p proof element %d: %w", i, err)
		}
		proof.Fp[i] = pf
	}
	for i := range proof.G1 {
		pf, err := readLinearProof(r)
		if err != nil {
			return nil, fmt.Errorf("reading G1 proof element %d: %w", i, err)
		}
		proof.G1[i] = pf
	}
	for i := range proof.G2 {
		pf, err := readLinearProof(r)
		if err != nil {
			return nil, fmt.Errorf("reading G2 proof element %d: %w", i, err)
		}
		proof.G2[i] = pf
	}
	for i := range proof.GT {
		pf, err := readPairingProof(r)
		if err != nil {
			return nil, fmt.Errorf("reading GT proof element %d: %w", i, err)
		}
		proof.GT[i] = pf
	}
	return proof, nil
}

// WritePublicInputs writes every constant a PublicInputs carries, in
// F_p, G1, G2, GT order. The counts are not written: ReadPublicInputs
// takes them from the caller, matching a finalized NIZKProof's
// numFpConsts/numG1Consts/numG2Consts/numGTConsts.
func WritePublicInputs(w io.Writer, pub *PublicInputs) error {
	for _, f := range pub.FpConsts {
		if err := pairing.WriteFp(w, f); err != nil {
			return err
		}
	}
	for _, g := range pub.G1Consts {
		if err := pairing.WriteG1(w, g); err != nil {
			return err
		}
	}
	for _, g := range pub.G2Consts {
		if err := pairing.WriteG2(w, g); err != nil {
			return err
		}
	}
	for _, g := range pub.GTConsts {
		if err := pairing.WriteGT(w, g); err != nil {
			return err
		}
	}
	return nil
}

// ReadPublicInputs reads constants written by WritePublicInputs. ctx is
// not read from the wire: callers already hold the pairing context both
// sides agreed on out of band.
func ReadPublicInputs(r io.Reader, ctx *pairing.Context, numFpConsts, numG1Consts, numG2Consts, numGTConsts int) (*PublicInputs, error) {
	pub := &PublicInputs{
		Ctx:      ctx,
		FpConsts: make([]pairing.Fp, numFpConsts),
		G1Consts: make([]pairing.G1, numG1Consts),
		G2Consts: make([]pairing.G2, numG2Consts),
		GTConsts: make([]pairing.GT, numGTConsts),
	}
	for i := range pub.FpConsts {
		f, err := pairing.ReadFp(r)
		if err != nil {
			return nil, fmt.Errorf("reading F_p constant %d: %w", i, err)
		}
		pub.FpConsts[i] = f
	}
	for i := range pub.G1Consts {
		g, err := pairing.ReadG1(r)
		if err != nil {
			return nil, fmt.Errorf("reading G1 constant %d: %w", i, err)
		}
		pub.G1Consts[i] = g
	}
	for i := range pub.G2Consts {
		g, err := pairing.ReadG2(r)
		if err != nil {
			return nil, fmt.Errorf("reading G2 constant %d: %w", i, err)
		}
		pub.G2Consts[i] = g
	}
	for i := range pub.GTConsts {
		g, err := pairing.ReadGT(r)
		if err != nil {
			return nil, fmt.Errorf("reading GT constant %d: %w", i, err)
		}
		pub.GTConsts[i] = g
	}
	return pub, nil
}

// writeUint16/readUint16 encode small fixed integers (equation-system
// tags, kind markers) as two big-endian bytes, matching the fixed-width
// framing the rest of this codec uses for every other field.
func writeUint16(w io.Writer, v uint16) error {
	buf := [2]byte{byte(v >> 8), byte(v)}
	_, err := w.Write(buf[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}
