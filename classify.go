package gsnizk

// EqType tags the shape of one finalized equation with the full,
// fine-grained family the original Groth-Sahai construction distinguishes:
// which side(s) carry witness content, and whether that content is
// committed in the clear or single-scalar "encrypted". prove.go and
// codec.go consult these tags to decide which proof elements an equation
// actually needs and how blinding may be applied; see DESIGN.md for the
// derivation from the reference implementation's getPType/getEqProofTypes.
type EqType int

const (
	// GT-domain (pairing-product) equations.
	EqPPE     EqType = iota // both sides carry witness pairing content
	EqPEncG                 // G1 witnesses all encrypted; no encrypted G2 witness, no public G2 constant
	EqPConstG               // no G1 witness; no encrypted G2 witness, no public G2 constant
	EqPEncH                 // G2 witnesses all encrypted; no encrypted G1 witness, no public G1 constant
	EqPConstH               // no G2 witness; no encrypted G1 witness, no public G1 constant

	// G1-domain (linear) equations.
	EqMEG     // G1 witnesses committed, scalar-multiplied by an F_p witness
	EqMEncG   // an encrypted G1 witness (and, with an F_p witness scalar, no committed one)
	EqMConstG // F_p witness scalars on public G1 elements only (no G1 witness)
	EqMLinG   // purely linear in committed G1 witnesses (no scalar witness)

	// G2-domain (linear) equations, mirroring the G1 family.
	EqMEH
	EqMEncH
	EqMConstH
	EqMLinH

	// F_p-domain (quadratic) equations.
	EqQE      // witnesses on both sides of the split (genuinely quadratic)
	EqQConstG // no B1-side witness: the B2 proof component is always zero
	EqQConstH // no B2-side witness: the B1 proof component is always zero
)

func (t EqType) String() string {
	switch t {
	case EqPPE:
		return "PPE"
	case EqPEncG:
		return "PEnc_G"
	case EqPConstG:
		return "PConst_G"
	case EqPEncH:
		return "PEnc_H"
	case EqPConstH:
		return "PConst_H"
	case EqMEG:
		return "ME_G"
	case EqMEncG:
		return "MEnc_G"
	case EqMConstG:
		return "MConst_G"
	case EqMLinG:
		return "MLin_G"
	case EqMEH:
		return "ME_H"
	case EqMEncH:
		return "MEnc_H"
	case EqMConstH:
		return "MConst_H"
	case EqMLinH:
		return "MLin_H"
	case EqQE:
		return "QE"
	case EqQConstG:
		return "QConst_G"
	case EqQConstH:
		return "QConst_H"
	default:
		return "Unknown"
	}
}

// classifyFp tags an F_p equation by which side of the commitment split its
// witnesses fall on. scaG/scaH track whether any witness landed in B1/B2
// respectively (mirrors the reference implementation's SCA_G/SCA_H element
// classes); fpVarInB1 has already been resolved by the time classify runs.
func (p *NIZKProof) classifyFp(left, right *FpNode) EqType {
	var scaG, scaH bool
	for _, n := range []*FpNode{left, right} {
		for _, t := range flattenFp(n) {
			for _, w := range t.witnesses() {
				if p.fpVarInB1[w.Index] {
					scaG = true
				} else {
					scaH = true
				}
			}
		}
	}
	switch {
	case !scaG:
		return EqQConstG
	case !scaH:
		return EqQConstH
	default:
		return EqQE
	}
}

func (p *NIZKProof) g1Encrypted(idx int) bool {
	return p.Mode == AllEncrypted || (p.Mode == SelectedEncryption && idx < len(p.encryptedG1) && p.encryptedG1[idx])
}

func (p *NIZKProof) g2Encrypted(idx int) bool {
	return p.Mode == AllEncrypted || (p.Mode == SelectedEncryption && idx < len(p.encryptedG2) && p.encryptedG2[idx])
}

// classifyG1 tags a G1-confined linear equation. scaH/comG/encG mirror the
// reference SCA_H/COM_G/ENC_G element classes: scaH is an F_p witness
// scalar multiplying a term (the coupling that turns a plain linear
// equation into a quadratic-shaped one, the same way a QE's two witness
// factors do in classifyFp), comG/encG a committed-in-the-clear or
// encrypted G1 witness element. A bare public G1 constant term, with no
// witness scalar anywhere, does not by itself change the equation's shape
// -- Σ c_i*X_i = T with public c_i and T is the ordinary MLin_G case.
func (p *NIZKProof) classifyG1(left, right *G1Node) EqType {
	var scaH, comG, encG bool
	for _, n := range []*G1Node{left, right} {
		for _, t := range flattenG1(n) {
			for _, s := range t.scalars {
				if isWitnessFp(s) {
					scaH = true
				}
			}
			if isWitnessG1(t.elem) {
				if p.g1Encrypted(t.elem.Index) {
					encG = true
				} else {
					comG = true
				}
			}
		}
	}
	switch {
	case scaH:
		switch {
		case comG:
			return EqMEG
		case encG:
			return EqMEncG
		default:
			return EqMConstG
		}
	default:
		if encG {
			return EqMEncG
		}
		return EqMLinG
	}
}

// classifyG2 mirrors classifyG1 with the G2-side element classes.
func (p *NIZKProof) classifyG2(left, right *G2Node) EqType {
	var scaG, comH, encH bool
	for _, n := range []*G2Node{left, right} {
		for _, t := range flattenG2(n) {
			for _, s := range t.scalars {
				if isWitnessFp(s) {
					scaG = true
				}
			}
			if isWitnessG2(t.elem) {
				if p.g2Encrypted(t.elem.Index) {
					encH = true
				} else {
					comH = true
				}
			}
		}
	}
	switch {
	case scaG:
		switch {
		case comH:
			return EqMEH
		case encH:
			return EqMEncH
		default:
			return EqMConstH
		}
	default:
		if encH {
			return EqMEncH
		}
		return EqMLinH
	}
}

// classifyGT tags a pairing-product equation by which side(s) of its
// flattened atoms carry witness content, and whether that content is
// committed or encrypted. pubL/pubR mirror the reference combination of
// PUB_G/COM_H and PUB_H/COM_G used to decide between the PPE family and
// the one-sided PEnc_*/PConst_* families.
func (p *NIZKProof) classifyGT(left, right *GTNode) EqType {
	var pubG, pubH, comG, comH, encG, encH bool
	for _, n := range []*GTNode{left, right} {
		for _, a := range flattenGT(n) {
			if a.isConst {
				pubG, pubH = true, true
				continue
			}
			switch {
			case isWitnessG1(a.g1.elem):
				if p.g1Encrypted(a.g1.elem.Index) {
					encG = true
				} else {
					comG = true
				}
			case a.g1.elem.Kind == ConstIndex || a.g1.elem.Kind == ConstValue:
				pubG = true
			}
			switch {
			case isWitnessG2(a.g2.elem):
				if p.g2Encrypted(a.g2.elem.Index) {
					encH = true
				} else {
					comH = true
				}
			case a.g2.elem.Kind == ConstIndex || a.g2.elem.Kind == ConstValue:
				pubH = true
			}
		}
	}
	pubL := pubG || comH
	pubR := pubH || comG
	switch {
	case pubL && pubR:
		return EqPPE
	case pubL:
		switch {
		case encH:
			return EqPPE
		case encG:
			return EqPEncG
		default:
			return EqPConstG
		}
	case pubR:
		switch {
		case encG:
			return EqPPE
		case encH:
			return EqPEncH
		default:
			return EqPConstH
		}
	default:
		switch {
		case encG && encH:
			return EqPPE
		case encG:
			return EqPEncG
		case encH:
			return EqPEncH
		default:
			return EqPConstG
		}
	}
}
