// Package gsnizk builds, proves, verifies and simulates Groth-Sahai
// non-interactive zero-knowledge proofs over a type-3 bilinear pairing
// (e: G1 x G2 -> GT, backed by the pairing package). Callers build a
// tagged expression DAG describing a system of equations over F_p, G1, G2
// and GT, finalize it once, then either produce a proof from a witness or
// verify/simulate one against a common reference string.
//
// The package is organized around five concerns: the expression DAG
// (dag.go), the doubled commitment modules B1/B2/BT and the CRS that
// parameterizes them (commitment.go, crs.go), the one-time normalization
// and classification pass an equation system goes through before it can
// be proved (normalize.go, classify.go), the prover/verifier/simulator
// (prove.go, verify.go, simulate.go), and the binary wire format for CRS,
// commitment, proof and public-input values (codec.go) plus the equation
// system itself (model_codec.go).
package gsnizk
