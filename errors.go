package gsnizk

import (
	"errors"
	"log"
)

// Logger receives diagnostic messages from VerifyPrivate when
// a delegated private CRS fails its accompanying proof. It is nil by
// default: the package never logs unless a caller opts in by assigning one
// (e.g. Logger = log.Default()). The core proof engine (Prove/CheckProof/
// SimulateProof) never logs; every failure there is reported through a
// returned error or a false verification result instead.
var Logger *log.Logger

func logf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Printf(format, args...)
	}
}

// Sentinel errors returned by this package. Callers should compare against
// these with errors.Is rather than matching error strings.
var (
	// ErrIndexGap is returned by Finalize when a variable or constant
	// index was declared (referenced by some equation) but a lower index
	// in the same domain was never used, leaving a gap in the dense
	// numbering the rest of the engine relies on.
	ErrIndexGap = errors.New("gsnizk: variable or constant index gap")

	// ErrSideConflict names an F_p variable whose forced commitment side
	// (B1 vs B2) cannot be resolved. No function in this package returns
	// it: Finalize resolves every such conflict by auxiliary-variable
	// promotion.
	ErrSideConflict = errors.New("gsnizk: conflicting commitment side for F_p variable")

	// ErrUnsatisfiable is returned by Finalize when SelectedEncryption
	// is requested but no assignment of encrypted/committed G1/G2
	// variables keeps every equation zero-knowledge.
	ErrUnsatisfiable = errors.New("gsnizk: no zero-knowledge encryption selection satisfies the equations")

	// ErrNotFinalized is returned by any operation that requires
	// Finalize to have succeeded first.
	ErrNotFinalized = errors.New("gsnizk: proof system has not been finalized")

	// ErrDataMismatch is returned by CheckProof when a Proof's per-domain
	// element counts differ from the equation system's equation counts.
	// Prove does not check an Instantiation's slice lengths.
	ErrDataMismatch = errors.New("gsnizk: proof does not match the equation system's shape")

	// ErrBadProof names a proof that fails to verify. No function in this
	// package returns it: CheckProof reports a failed check as (false, nil).
	ErrBadProof = errors.New("gsnizk: proof does not verify")

	// ErrInvalidCRS is returned when an operation receives a CRS of the
	// wrong kind (e.g. simulating with a non-hiding CRS).
	ErrInvalidCRS = errors.New("gsnizk: CRS is not suitable for this operation")

	// ErrPrivateCRSProof names a delegation proof that does not check out.
	// No function in this package returns it: VerifyPrivate reports a
	// failed check as (false, nil).
	ErrPrivateCRSProof = errors.New("gsnizk: private CRS delegation proof does not verify")

	// ErrUnsupportedEquation is returned by Prove when an equation's term
	// structure falls outside what this engine's proof construction
	// handles: a witness used as a scalar coefficient in a linear G1/G2
	// equation, an F_p quadratic term whose two witness factors were not
	// split across the B1/B2 sides, or a product of more than two
	// witnesses in one term.
	ErrUnsupportedEquation = errors.New("gsnizk: equation term structure is not supported by this proof construction")
)
