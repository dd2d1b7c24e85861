// Package pairing wraps the BN254 type-3 pairing exposed by gnark-crypto
// behind the small surface the Groth-Sahai engine needs: a scalar field, two
// source groups and a target group linked by a bilinear map, plus the
// serialization and hash-to-group helpers the rest of gsnizk builds on.
//
// Nothing in this package is specific to Groth-Sahai; it could back any
// pairing-based protocol over BN254.
package pairing

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// domainSeparationTag scopes this package's hash-to-curve calls away from
// any other protocol that might hash into the same BN254 groups.
const domainSeparationTag = "GSNIZK-BN254-"

// Fp is an element of the scalar field shared by G1, G2 and GT.
type Fp struct{ v fr.Element }

// G1 is an affine point on the first source group.
type G1 struct{ v bn254.G1Affine }

// G2 is an affine point on the second source group.
type G2 struct{ v bn254.G2Affine }

// GT is an element of the target group, i.e. a value in the Fp12 tower.
type GT struct{ v bn254.GT }

// Context carries the distinguished base points every CRS and commitment is
// built from. Callers construct one explicitly and thread it through,
// rather than relying on package-level state, so multiple pairing setups
// can coexist in one process.
type Context struct {
	G1Base G1
	G2Base G2
	GTBase GT
}

// NewContext returns the context built from BN254's standard generators.
func NewContext() *Context {
	_, _, g1, g2 := bn254.Generators()
	ctx := &Context{G1Base: G1{g1}, G2Base: G2{g2}}
	ctx.GTBase = Pair(ctx.G1Base, ctx.G2Base)
	return ctx
}

// --- Fp ---

// FpZero returns the additive identity.
func FpZero() Fp { return Fp{} }

// FpOne returns the multiplicative identity.
func FpOne() Fp { var f fr.Element; f.SetOne(); return Fp{f} }

// FpFromInt64 builds a field element from a small signed integer.
func FpFromInt64(n int64) Fp { var f fr.Element; f.SetInt64(n); return Fp{f} }

// FpRand samples a uniformly random field element.
func FpRand() (Fp, error) {
	var f fr.Element
	if _, err := f.SetRandom(); err != nil {
		return Fp{}, fmt.Errorf("sampling random scalar: %w", err)
	}
	return Fp{f}, nil
}

// HashToFpBytes derives a scalar field element by hashing msg with SHA-256
// and reducing the digest modulo the field order. It is used to derive
// Fiat-Shamir challenges, not for domain-separated hash-to-curve (see
// HashToG1/HashToG2 for that).
func HashToFpBytes(msg []byte) (Fp, error) {
	digest := sha256.Sum256(msg)
	var f fr.Element
	f.SetBytes(digest[:])
	return Fp{f}, nil
}

// BigInt returns the element's canonical big.Int representation.
func (a Fp) BigInt() *big.Int {
	var z big.Int
	a.v.BigInt(&z)
	return &z
}

// FpFromBigInt builds an Fp element by reducing an arbitrary big.Int.
func FpFromBigInt(z *big.Int) Fp {
	var f fr.Element
	f.SetBigInt(z)
	return Fp{f}
}

func (a Fp) Add(b Fp) Fp { var r fr.Element; r.Add(&a.v, &b.v); return Fp{r} }
func (a Fp) Sub(b Fp) Fp { var r fr.Element; r.Sub(&a.v, &b.v); return Fp{r} }
func (a Fp) Neg() Fp     { var r fr.Element; r.Neg(&a.v); return Fp{r} }
func (a Fp) Mul(b Fp) Fp { var r fr.Element; r.Mul(&a.v, &b.v); return Fp{r} }

// Inverse returns a^-1, panicking only if a is zero (an internal invariant
// violation for every caller in this package: GS trapdoor scalars must be
// sampled nonzero).
func (a Fp) Inverse() Fp {
	if a.v.IsZero() {
		panic("pairing: Fp.Inverse of zero element")
	}
	var r fr.Element
	r.Inverse(&a.v)
	return Fp{r}
}

// Div returns a * b^-1.
func (a Fp) Div(b Fp) Fp { return a.Mul(b.Inverse()) }

func (a Fp) IsZero() bool   { return a.v.IsZero() }
func (a Fp) Equal(b Fp) bool { return a.v.Equal(&b.v) }

// --- G1 ---

func G1Zero() G1 { return G1{} }

func (a G1) Add(b G1) G1 {
	var r bn254.G1Affine
	var j1, j2, jr bn254.G1Jac
	j1.FromAffine(&a.v)
	j2.FromAffine(&b.v)
	jr.Set(&j1).AddAssign(&j2)
	r.FromJacobian(&jr)
	return G1{r}
}

func (a G1) Neg() G1 {
	var r bn254.G1Affine
	r.Neg(&a.v)
	return G1{r}
}

func (a G1) Sub(b G1) G1 { return a.Add(b.Neg()) }

// ScalarMul returns s*a.
func (a G1) ScalarMul(s Fp) G1 {
	var r bn254.G1Affine
	r.ScalarMultiplication(&a.v, s.BigInt())
	return G1{r}
}

func (a G1) Equal(b G1) bool { return a.v.Equal(&b.v) }
func (a G1) IsZero() bool    { return a.v.IsInfinity() }

// HashToG1 hashes msg into G1 under this package's domain-separation tag.
func HashToG1(msg []byte) (G1, error) {
	p, err := bn254.HashToG1(msg, []byte(domainSeparationTag))
	if err != nil {
		return G1{}, fmt.Errorf("hashing to G1: %w", err)
	}
	return G1{p}, nil
}

// --- G2 ---

func G2Zero() G2 { return G2{} }

func (a G2) Add(b G2) G2 {
	var r bn254.G2Affine
	var j1, j2, jr bn254.G2Jac
	j1.FromAffine(&a.v)
	j2.FromAffine(&b.v)
	jr.Set(&j1).AddAssign(&j2)
	r.FromJacobian(&jr)
	return G2{r}
}

func (a G2) Neg() G2 {
	var r bn254.G2Affine
	r.Neg(&a.v)
	return G2{r}
}

func (a G2) Sub(b G2) G2 { return a.Add(b.Neg()) }

func (a G2) ScalarMul(s Fp) G2 {
	var r bn254.G2Affine
	r.ScalarMultiplication(&a.v, s.BigInt())
	return G2{r}
}

func (a G2) Equal(b G2) bool { return a.v.Equal(&b.v) }
func (a G2) IsZero() bool    { return a.v.IsInfinity() }

// HashToG2 hashes msg into G2 under this package's domain-separation tag.
func HashToG2(msg []byte) (G2, error) {
	p, err := bn254.HashToG2(msg, []byte(domainSeparationTag))
	if err != nil {
		return G2{}, fmt.Errorf("hashing to G2: %w", err)
	}
	return G2{p}, nil
}

// --- GT ---

func GTOne() GT { var g bn254.GT; g.SetOne(); return GT{g} }

func (a GT) Mul(b GT) GT { var r bn254.GT; r.Mul(&a.v, &b.v); return GT{r} }

func (a GT) Inverse() GT {
	var r bn254.GT
	r.Inverse(&a.v)
	return GT{r}
}

func (a GT) Div(b GT) GT { return a.Mul(b.Inverse()) }

// Pow returns a^s, with s interpreted as an exponent in Z via its canonical
// representative.
func (a GT) Pow(s Fp) GT {
	var r bn254.GT
	r.Exp(a.v, s.BigInt())
	return GT{r}
}

func (a GT) Equal(b GT) bool { return a.v.Equal(&b.v) }

// PairTerm is one (G1, G2) factor of a multi-pairing product.
type PairTerm struct {
	A G1
	B G2
}

// Pair computes e(a, b).
func Pair(a G1, b G2) GT {
	g, err := bn254.Pair([]bn254.G1Affine{a.v}, []bn254.G2Affine{b.v})
	if err != nil {
		// Only fails on malformed inputs, which cannot occur for affine
		// points already validated by construction or deserialization.
		panic(fmt.Sprintf("pairing: Pair: %v", err))
	}
	return GT{g}
}

// MultiPair computes the product Prod_i e(terms[i].A, terms[i].B) via a
// single Miller loop and final exponentiation, rather than multiplying
// together the results of separate Pair calls.
func MultiPair(terms []PairTerm) GT {
	if len(terms) == 0 {
		return GTOne()
	}
	as := make([]bn254.G1Affine, len(terms))
	bs := make([]bn254.G2Affine, len(terms))
	for i, t := range terms {
		as[i] = t.A.v
		bs[i] = t.B.v
	}
	g, err := bn254.Pair(as, bs)
	if err != nil {
		panic(fmt.Sprintf("pairing: MultiPair: %v", err))
	}
	return GT{g}
}

// PrecomputeMultiply and PrecomputePairing are deliberate no-ops:
// gnark-crypto's affine arithmetic does not expose a precomputed-table API.
// The methods are kept so call sites that expect to warm a point before
// heavy reuse still have somewhere to do it.
func (a G1) PrecomputeMultiply() {}
func (a G2) PrecomputeMultiply() {}
func (a G2) PrecomputePairing()  {}

// --- Serialization ---

// MarshalBinary encodes a into BN254's compressed G1 representation.
func (a G1) MarshalBinary() []byte { b := a.v.Bytes(); return b[:] }

// UnmarshalG1 decodes a compressed G1 point.
func UnmarshalG1(data []byte) (G1, error) {
	var p bn254.G1Affine
	if _, err := p.SetBytes(data); err != nil {
		return G1{}, fmt.Errorf("decoding G1 point: %w", err)
	}
	return G1{p}, nil
}

func (a G2) MarshalBinary() []byte { b := a.v.Bytes(); return b[:] }

func UnmarshalG2(data []byte) (G2, error) {
	var p bn254.G2Affine
	if _, err := p.SetBytes(data); err != nil {
		return G2{}, fmt.Errorf("decoding G2 point: %w", err)
	}
	return G2{p}, nil
}

func (a Fp) MarshalBinary() []byte { b := a.v.Bytes(); return b[:] }

func UnmarshalFp(data []byte) (Fp, error) {
	var f fr.Element
	f.SetBytes(data)
	return Fp{f}, nil
}

// WriteFp writes a fixed-width scalar to w.
func WriteFp(w io.Writer, a Fp) error {
	b := a.v.Bytes()
	_, err := w.Write(b[:])
	return err
}

// ReadFp reads a fixed-width scalar from r.
func ReadFp(r io.Reader) (Fp, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Fp{}, fmt.Errorf("reading Fp element: %w", err)
	}
	var f fr.Element
	f.SetBytes(buf[:])
	return Fp{f}, nil
}

// WriteG1 writes a compressed G1 point to w.
func WriteG1(w io.Writer, a G1) error {
	b := a.v.Bytes()
	_, err := w.Write(b[:])
	return err
}

// ReadG1 reads a compressed G1 point from r.
func ReadG1(r io.Reader) (G1, error) {
	var buf [bn254.SizeOfG1AffineCompressed]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return G1{}, fmt.Errorf("reading G1 point: %w", err)
	}
	return UnmarshalG1(buf[:])
}

// MarshalBinary encodes a into its full (uncompressed) Fp12 representation.
func (a GT) MarshalBinary() []byte { b := a.v.Bytes(); return b[:] }

// WriteGT writes a fixed-width target-group element to w.
func WriteGT(w io.Writer, a GT) error {
	b := a.v.Bytes()
	_, err := w.Write(b[:])
	return err
}

// ReadGT reads a fixed-width target-group element from r.
func ReadGT(r io.Reader) (GT, error) {
	var probe bn254.GT
	buf := make([]byte, len(probe.Bytes()))
	if _, err := io.ReadFull(r, buf); err != nil {
		return GT{}, fmt.Errorf("reading GT element: %w", err)
	}
	var g bn254.GT
	if _, err := g.SetBytes(buf); err != nil {
		return GT{}, fmt.Errorf("decoding GT element: %w", err)
	}
	return GT{g}, nil
}

// WriteG2 writes a compressed G2 point to w.
func WriteG2(w io.Writer, a G2) error {
	b := a.v.Bytes()
	_, err := w.Write(b[:])
	return err
}

// ReadG2 reads a compressed G2 point from r.
func ReadG2(r io.Reader) (G2, error) {
	var buf [bn254.SizeOfG2AffineCompressed]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return G2{}, fmt.Errorf("reading G2 point: %w", err)
	}
	return UnmarshalG2(buf[:])
}
