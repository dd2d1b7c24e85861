// Package testutils provides shared fixtures for the gsnizk test suite:
// a fresh pairing context, random scalars/group elements, and small
// witness/CRS builders so individual tests can focus on the equation
// shape they are exercising instead of re-deriving boilerplate.
package testutils

import (
	"fmt"

	"github.com/bazin-remi/gsnizk/pairing"
)

// NewContext returns a fresh pairing context over the standard generators.
func NewContext() *pairing.Context { return pairing.NewContext() }

// MustFp samples a random scalar field element, panicking on error. Tests
// use this to keep fixture setup on one line; it is never used to derive
// a value a proof's soundness depends on.
func MustFp() pairing.Fp {
	f, err := pairing.FpRand()
	if err != nil {
		panic(fmt.Sprintf("testutils: sampling scalar: %v", err))
	}
	return f
}

// MustG1 returns a random multiple of ctx's G1 base point.
func MustG1(ctx *pairing.Context) pairing.G1 {
	return ctx.G1Base.ScalarMul(MustFp())
}

// MustG2 returns a random multiple of ctx's G2 base point.
func MustG2(ctx *pairing.Context) pairing.G2 {
	return ctx.G2Base.ScalarMul(MustFp())
}

// FpRange samples n independent random scalars.
func FpRange(n int) []pairing.Fp {
	out := make([]pairing.Fp, n)
	for i := range out {
		out[i] = MustFp()
	}
	return out
}

// G1Range samples n independent random G1 elements.
func G1Range(ctx *pairing.Context, n int) []pairing.G1 {
	out := make([]pairing.G1, n)
	for i := range out {
		out[i] = MustG1(ctx)
	}
	return out
}

// G2Range samples n independent random G2 elements.
func G2Range(ctx *pairing.Context, n int) []pairing.G2 {
	out := make([]pairing.G2, n)
	for i := range out {
		out[i] = MustG2(ctx)
	}
	return out
}
