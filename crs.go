package gsnizk

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bazin-remi/gsnizk/pairing"
)

// Kind identifies which of the four CRS variants a CRS value is.
type Kind int

const (
	// CRSPublic carries no trapdoor: anyone can commit and verify, no one
	// can extract or simulate.
	CRSPublic Kind = iota
	// CRSExtract is binding: it carries the extraction trapdoors
	// (Eps1, Eps2) that let a holder recover committed witnesses.
	CRSExtract
	// CRSZK is hiding: it carries the simulation trapdoor that lets a
	// holder fabricate proofs without a witness.
	CRSZK
	// CRSPrivate carries only the efficiency trapdoors (Rho1, Rho2),
	// collapsing the two commitment blinding terms into one for smaller
	// commitments, at the cost of the binding/hiding guarantee.
	CRSPrivate
)

// CRS is a Groth-Sahai common reference string: the base elements U1/V1/W1
// (in B1) and U2/V2/W2 (in B2) that every commitment in a proof system is
// made against, plus whichever trapdoor scalars this CRS's Kind carries.
type CRS struct {
	Kind Kind

	U1, V1, W1 B1
	U2, V2, W2 B2

	// Rho1/Rho2 are the efficiency trapdoors (set for CRSPrivate,
	// CRSExtract and CRSZK); Eps1/Eps2 are the extraction trapdoors (set for
	// CRSExtract and CRSZK, which both derive v1._1 = Eps1 * v1._2).
	Rho1, Eps1, Rho2, Eps2 pairing.Fp

	// V1Scalar/V2Scalar are the discrete logs of V1.X2/V2.X2 relative to
	// the pairing context's G1Base/G2Base. Both CRSExtract and CRSZK carry
	// them (stripped by Publish along with the other trapdoors); no
	// operation in this package reads them.
	V1Scalar, V2Scalar pairing.Fp
}

// NewCRS builds a fresh binding CRSExtract CRS over ctx's base points
// (binding commitments, extraction trapdoor). NewHidingCRS builds the
// hiding CRSZK counterpart.
func NewCRS(ctx *pairing.Context) (*CRS, error) {
	return newTrapdoorCRS(ctx, CRSExtract)
}

// NewHidingCRS builds a fresh hiding (CRSZK) CRS.
func NewHidingCRS(ctx *pairing.Context) (*CRS, error) {
	return newTrapdoorCRS(ctx, CRSZK)
}

func newTrapdoorCRS(ctx *pairing.Context, kind Kind) (*CRS, error) {
	v1Scalar, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling v1 scalar: %w", err)
	}
	v2Scalar, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling v2 scalar: %w", err)
	}
	rho1, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling rho1: %w", err)
	}
	eps1, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling eps1: %w", err)
	}
	rho2, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling rho2: %w", err)
	}
	eps2, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling eps2: %w", err)
	}

	crs := &CRS{
		Kind: kind,
		V1:   B1{pairing.G1Zero(), ctx.G1Base.ScalarMul(v1Scalar)},
		V2:   B2{pairing.G2Zero(), ctx.G2Base.ScalarMul(v2Scalar)},
		Rho1: rho1, Eps1: eps1, Rho2: rho2, Eps2: eps2,
		V1Scalar: v1Scalar, V2Scalar: v2Scalar,
	}
	crs.computeElements(ctx)
	return crs, nil
}

// computeElements derives U1/W1/U2/W2 from V1/V2, the trapdoor scalars and
// (for CRSExtract, whose U = W + (0, base point)) ctx's base points,
// branching on Kind since CRSPrivate collapses the two trapdoor terms into
// one while CRSExtract and CRSZK keep them separate (to different effect:
// CRSExtract lets W1.X2/W2.X2 support extraction, CRSZK lets them support
// simulation).
func (crs *CRS) computeElements(ctx *pairing.Context) {
	if crs.Kind == CRSPrivate {
		crs.W1 = B1{crs.V1.X1.ScalarMul(crs.Rho1), crs.V1.X2.ScalarMul(crs.Rho1)}
		crs.U1 = B1{crs.W1.X1, crs.W1.X2.Add(crs.V1.X2)}
		crs.W2 = B2{crs.V2.X1.ScalarMul(crs.Rho2), crs.V2.X2.ScalarMul(crs.Rho2)}
		crs.U2 = B2{crs.W2.X1, crs.W2.X2.Add(crs.V2.X2)}
		return
	}

	crs.V1.X1 = crs.V1.X2.ScalarMul(crs.Eps1)
	crs.V2.X1 = crs.V2.X2.ScalarMul(crs.Eps2)
	crs.W1.X1 = crs.V1.X1.ScalarMul(crs.Rho1)
	crs.U1.X1 = crs.W1.X1
	crs.W2.X1 = crs.V2.X1.ScalarMul(crs.Rho2)
	crs.U2.X1 = crs.W2.X1

	if crs.Kind == CRSExtract {
		crs.W1.X2 = crs.V1.X2.ScalarMul(crs.Rho1)
		crs.U1.X2 = crs.W1.X2.Add(ctx.G1Base)
		crs.W2.X2 = crs.V2.X2.ScalarMul(crs.Rho2)
		crs.U2.X2 = crs.W2.X2.Add(ctx.G2Base)
	} else {
		crs.U1.X2 = crs.V1.X2.ScalarMul(crs.Rho1)
		crs.W1.X2 = crs.U1.X2.Sub(crs.V1.X2)
		crs.U2.X2 = crs.V2.X2.ScalarMul(crs.Rho2)
		crs.W2.X2 = crs.U2.X2.Sub(crs.V2.X2)
	}
}

// Publish strips every trapdoor from the CRS, returning a fresh CRSPublic
// value any party can use to commit and verify, but not to extract or
// simulate.
func (crs *CRS) Publish() *CRS {
	if crs.Kind == CRSPublic {
		return crs
	}
	pub := *crs
	pub.Kind = CRSPublic
	pub.Rho1, pub.Eps1, pub.Rho2, pub.Eps2 = pairing.Fp{}, pairing.Fp{}, pairing.Fp{}, pairing.Fp{}
	pub.V1Scalar, pub.V2Scalar = pairing.Fp{}, pairing.Fp{}
	return &pub
}

// privateCRSProof is the Schnorr-style proof of knowledge accompanying a
// delegated private CRS: knowledge of Rho1 (resp. Rho2) such that
// W1.X1 = Rho1 * V1.X1 (resp. W2.X1 = Rho2 * V2.X1). Lets the recipient of a
// derived CRSPrivate check it was honestly generated from the expected V1/V2
// base points, without trusting the deriver.
type privateCRSProof struct {
	comm1 pairing.G1
	resp1 pairing.Fp
	comm2 pairing.G2
	resp2 pairing.Fp
}

func schnorrChallenge(label string, points ...[]byte) pairing.Fp {
	var buf bytes.Buffer
	buf.WriteString(label)
	for _, p := range points {
		buf.Write(p)
	}
	f, err := pairing.HashToFpBytes(buf.Bytes())
	if err != nil {
		// HashToFpBytes hashes with SHA-256 and always returns a nil
		// error; the check only guards against a future change there.
		panic(fmt.Sprintf("gsnizk: deriving Fiat-Shamir challenge: %v", err))
	}
	return f
}

// DerivePrivate derives a fresh CRSPrivate CRS sharing this CRS's V1/V2
// base points but fresh efficiency trapdoors, and writes a non-interactive
// proof that the derivation was done correctly (knowledge of the new
// trapdoor scalars) to sink. The receiving party recovers the private CRS
// independently and calls VerifyPrivate to check the accompanying proof.
func (crs *CRS) DerivePrivate(ctx *pairing.Context, sink io.Writer) (*CRS, error) {
	if crs.Kind != CRSPublic {
		return nil, fmt.Errorf("%w: DerivePrivate requires a public CRS", ErrInvalidCRS)
	}
	priv := &CRS{Kind: CRSPrivate, V1: crs.V1, V2: crs.V2}
	rho1, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling private rho1: %w", err)
	}
	rho2, err := pairing.FpRand()
	if err != nil {
		return nil, fmt.Errorf("sampling private rho2: %w", err)
	}
	priv.Rho1, priv.Rho2 = rho1, rho2
	priv.computeElements(ctx)

	proof, err := proveSchnorrDelegation(priv)
	if err != nil {
		return nil, fmt.Errorf("proving private CRS delegation: %w", err)
	}
	if err := writePrivateCRSProof(sink, proof); err != nil {
		return nil, fmt.Errorf("writing private CRS delegation proof: %w", err)
	}
	return priv, nil
}

func proveSchnorrDelegation(priv *CRS) (*privateCRSProof, error) {
	k1, err := pairing.FpRand()
	if err != nil {
		return nil, err
	}
	k2, err := pairing.FpRand()
	if err != nil {
		return nil, err
	}
	comm1 := priv.V1.X1.ScalarMul(k1)
	comm2 := priv.V2.X1.ScalarMul(k2)
	c := schnorrChallenge("gsnizk-private-crs",
		priv.V1.X1.MarshalBinary(), priv.W1.X1.MarshalBinary(), comm1.MarshalBinary(),
		priv.V2.X1.MarshalBinary(), priv.W2.X1.MarshalBinary(), comm2.MarshalBinary())
	resp1 := k1.Add(c.Mul(priv.Rho1))
	resp2 := k2.Add(c.Mul(priv.Rho2))
	return &privateCRSProof{comm1: comm1, resp1: resp1, comm2: comm2, resp2: resp2}, nil
}

// VerifyPrivate checks the delegation proof source produced for candidate
// against this (public) CRS.
func (crs *CRS) VerifyPrivate(source io.Reader, candidate *CRS) (bool, error) {
	if crs.Kind != CRSPublic || candidate.Kind != CRSPrivate {
		return false, fmt.Errorf("%w: VerifyPrivate requires a public CRS and a private candidate", ErrInvalidCRS)
	}
	if !crs.V1.X1.Equal(candidate.V1.X1) || !crs.V2.X1.Equal(candidate.V2.X1) {
		return false, nil
	}
	proof, err := readPrivateCRSProof(source)
	if err != nil {
		return false, fmt.Errorf("reading private CRS delegation proof: %w", err)
	}
	c := schnorrChallenge("gsnizk-private-crs",
		candidate.V1.X1.MarshalBinary(), candidate.W1.X1.MarshalBinary(), proof.comm1.MarshalBinary(),
		candidate.V2.X1.MarshalBinary(), candidate.W2.X1.MarshalBinary(), proof.comm2.MarshalBinary())

	lhs1 := candidate.V1.X1.ScalarMul(proof.resp1)
	rhs1 := proof.comm1.Add(candidate.W1.X1.ScalarMul(c))
	lhs2 := candidate.V2.X1.ScalarMul(proof.resp2)
	rhs2 := proof.comm2.Add(candidate.W2.X1.ScalarMul(c))
	ok := lhs1.Equal(rhs1) && lhs2.Equal(rhs2)
	if !ok {
		logf("gsnizk: private CRS delegation proof failed Schnorr check")
	}
	return ok, nil
}

func writePrivateCRSProof(w io.Writer, p *privateCRSProof) error {
	if err := pairing.WriteG1(w, p.comm1); err != nil {
		return err
	}
	if err := pairing.WriteFp(w, p.resp1); err != nil {
		return err
	}
	if err := pairing.WriteG2(w, p.comm2); err != nil {
		return err
	}
	return pairing.WriteFp(w, p.resp2)
}

func readPrivateCRSProof(r io.Reader) (*privateCRSProof, error) {
	comm1, err := pairing.ReadG1(r)
	if err != nil {
		return nil, err
	}
	resp1, err := pairing.ReadFp(r)
	if err != nil {
		return nil, err
	}
	comm2, err := pairing.ReadG2(r)
	if err != nil {
		return nil, err
	}
	resp2, err := pairing.ReadFp(r)
	if err != nil {
		return nil, err
	}
	return &privateCRSProof{comm1, resp1, comm2, resp2}, nil
}
