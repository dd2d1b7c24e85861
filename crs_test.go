package gsnizk

import (
	"bytes"
	"testing"

	"github.com/bazin-remi/gsnizk/pairing"
	"github.com/bazin-remi/gsnizk/testutils"
)

func TestNewCRSIsExtractKind(t *testing.T) {
	crs, err := NewCRS(testutils.NewContext())
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}
	if crs.Kind != CRSExtract {
		t.Errorf("NewCRS returned Kind %v, want CRSExtract", crs.Kind)
	}
}

func TestNewHidingCRSIsZKKind(t *testing.T) {
	crs, err := NewHidingCRS(testutils.NewContext())
	if err != nil {
		t.Fatalf("NewHidingCRS: %v", err)
	}
	if crs.Kind != CRSZK {
		t.Errorf("NewHidingCRS returned Kind %v, want CRSZK", crs.Kind)
	}
}

func TestPublishStripsTrapdoors(t *testing.T) {
	crs, err := NewCRS(testutils.NewContext())
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}
	pub := crs.Publish()
	if pub.Kind != CRSPublic {
		t.Errorf("Publish did not set Kind to CRSPublic")
	}
	zero := pairing.FpZero()
	for name, f := range map[string]pairing.Fp{
		"Rho1": pub.Rho1, "Eps1": pub.Eps1, "Rho2": pub.Rho2, "Eps2": pub.Eps2,
		"V1Scalar": pub.V1Scalar, "V2Scalar": pub.V2Scalar,
	} {
		if !f.Equal(zero) {
			t.Errorf("Publish did not strip %s", name)
		}
	}
	// the base elements stay intact: anyone can still commit.
	if !pub.U1.Equal(crs.U1) || !pub.V1.Equal(crs.V1) || !pub.W1.Equal(crs.W1) {
		t.Errorf("Publish altered the public B1 base elements")
	}
}

func TestDerivePrivateVerifies(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}
	pub := crs.Publish()

	var proofBytes bytes.Buffer
	priv, err := pub.DerivePrivate(ctx, &proofBytes)
	if err != nil {
		t.Fatalf("DerivePrivate: %v", err)
	}
	if priv.Kind != CRSPrivate {
		t.Fatalf("DerivePrivate returned Kind %v, want CRSPrivate", priv.Kind)
	}

	ok, err := pub.VerifyPrivate(bytes.NewReader(proofBytes.Bytes()), priv)
	if err != nil {
		t.Fatalf("VerifyPrivate: %v", err)
	}
	if !ok {
		t.Errorf("VerifyPrivate rejected a correctly derived private CRS")
	}
}

func TestVerifyPrivateRejectsTamperedCandidate(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}
	pub := crs.Publish()

	var proofBytes bytes.Buffer
	priv, err := pub.DerivePrivate(ctx, &proofBytes)
	if err != nil {
		t.Fatalf("DerivePrivate: %v", err)
	}
	// Swap in a different W1 after the fact, simulating a tampered
	// delegation: the Schnorr proof no longer matches.
	priv.W1 = B1{testutils.MustG1(ctx), testutils.MustG1(ctx)}

	ok, err := pub.VerifyPrivate(bytes.NewReader(proofBytes.Bytes()), priv)
	if err != nil {
		t.Fatalf("VerifyPrivate: %v", err)
	}
	if ok {
		t.Errorf("VerifyPrivate accepted a tampered private CRS")
	}
}

func TestExtractCRSRecoversScalarCommitment(t *testing.T) {
	ctx := testutils.NewContext()
	crs, err := NewCRS(ctx)
	if err != nil {
		t.Fatalf("NewCRS: %v", err)
	}
	m := testutils.MustFp()
	r := testutils.MustFp()
	c := crs.CommitScalarG2(m, r)
	got := crs.ExtractB2(c)
	want := ctx.G2Base.ScalarMul(m)
	if !got.Equal(want) {
		t.Errorf("ExtractB2 did not recover the committed scalar's G2 image")
	}
}
