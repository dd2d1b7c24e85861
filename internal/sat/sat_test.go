package sat

import "testing"

func TestSolveTrivialTrue(t *testing.T) {
	_, _, ok := Solve(NewTrue(), 0, 0)
	if !ok {
		t.Fatalf("TRUE formula must be satisfiable")
	}
}

func TestSolveTrivialFalseIsUnsatisfiable(t *testing.T) {
	_, _, ok := Solve(NewFalse(), 0, 0)
	if ok {
		t.Fatalf("FALSE formula must be unsatisfiable")
	}
}

func TestSolvePrefersCommittingOverEncrypting(t *testing.T) {
	// A single G1 variable appearing alone (OR'd with nothing) is only
	// satisfied when TRUE, so it must be left committed (not encrypted).
	root := NewIndex(G1, 0)
	encG1, _, ok := Solve(root, 1, 0)
	if !ok {
		t.Fatalf("expected a satisfying assignment")
	}
	if encG1[0] {
		t.Errorf("variable 0 should be left committed, got encrypted")
	}
}

func TestSolveReportsUnsatisfiableConjunction(t *testing.T) {
	// eq1 requires index0 committed (TRUE); eq2 = AND(index0, FALSE) is
	// FALSE whatever index0 is. The conjunction therefore has no
	// satisfying assignment: test that Solve reports unsatisfiable
	// rather than panicking.
	eq1 := NewIndex(G1, 0)
	eq2 := NewAnd(NewIndex(G1, 0), NewFalse())
	root := NewAnd(eq1, eq2)
	_, _, ok := Solve(root, 1, 0)
	if ok {
		t.Errorf("expected unsatisfiable formula to report ok=false")
	}
}

func TestSolveMultipleVariablesAllCommitted(t *testing.T) {
	root := NewOr(NewIndex(G1, 0), NewIndex(G2, 0))
	encG1, encG2, ok := Solve(root, 1, 1)
	if !ok {
		t.Fatalf("expected a satisfying assignment")
	}
	if encG1[0] || encG2[0] {
		t.Errorf("both alternatives should remain committed, got encG1=%v encG2=%v", encG1[0], encG2[0])
	}
}
