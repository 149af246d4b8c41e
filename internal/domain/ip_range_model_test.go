package domain

import (
	"bytes"
	"testing"
)

func TestGenerateKeyHashLength(t *testing.T) {
	r := IPRange{Network: "10.0.0.0/24", CountryCode: "US"}
	r.GenerateKeyHash()

	if len(r.KeyHash) != 32 {
		t.Fatalf("KeyHash length = %d, want 32", len(r.KeyHash))
	}
}

func TestKeyHashIgnoresWhitespaceAndCase(t *testing.T) {
	a := IPRange{Network: "10.0.0.0/24", CountryCode: "us", City: " Berlin "}
	b := IPRange{Network: " 10.0.0.0/24", CountryCode: "US", City: "Berlin"}
	a.GenerateKeyHash()
	b.GenerateKeyHash()

	if !bytes.Equal(a.KeyHash, b.KeyHash) {
		t.Fatal("hashes should match after trimming and country normalization")
	}
}

func TestKeyHashDiffersOnSubdivision(t *testing.T) {
	a := IPRange{Network: "10.0.0.0/24", CountryCode: "US", Subdivision: "CA"}
	b := IPRange{Network: "10.0.0.0/24", CountryCode: "US", Subdivision: "NY"}
	a.GenerateKeyHash()
	b.GenerateKeyHash()

	if bytes.Equal(a.KeyHash, b.KeyHash) {
		t.Fatal("differing subdivisions must not hash alike")
	}
}

func TestBeforeCreateAssignsID(t *testing.T) {
	r := IPRange{Network: "10.0.0.0/24", CountryCode: "US"}
	if err := r.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if r.ID == "" {
		t.Fatal("BeforeCreate should assign an ID")
	}
	if len(r.KeyHash) != 32 {
		t.Fatal("BeforeCreate should compute the key hash")
	}

	keep := IPRange{ID: "fixed", Network: "10.0.0.0/24", CountryCode: "US"}
	if err := keep.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if keep.ID != "fixed" {
		t.Fatalf("BeforeCreate overwrote ID: %q", keep.ID)
	}
}

func TestNormalizedKeyBlankFieldsEqualEmpty(t *testing.T) {
	a := IPRange{Network: "10.0.0.0/24", CountryCode: "US", Subdivision: "  ", City: " "}
	b := IPRange{Network: "10.0.0.0/24", CountryCode: "US"}

	if a.NormalizedKey() != b.NormalizedKey() {
		t.Fatalf("blank fields should normalize to empty: %q vs %q", a.NormalizedKey(), b.NormalizedKey())
	}
}
