package geofeed

import "testing"

func TestIsValidCIDR(t *testing.T) {
	valid := []string{
		"192.0.2.0/24",
		"10.0.0.0/8",
		"0.0.0.0/0",
		"198.51.100.17/32",
		"2001:db8::/32",
		"2001:db8:0:1::/64",
		"::/0",
		"2001:db8::1/128",
		" 192.0.2.0/24 ",
	}
	for _, s := range valid {
		if !IsValidCIDR(s) {
			t.Fatalf("IsValidCIDR(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"192.0.2.0",
		"2001:db8::",
		"192.0.2.0/33",
		"2001:db8::/129",
		"999.0.2.0/24",
		"192.0.2/24",
		"not-a-network/8",
		"192.0.2.0/",
		"/24",
	}
	for _, s := range invalid {
		if IsValidCIDR(s) {
			t.Fatalf("IsValidCIDR(%q) = true, want false", s)
		}
	}
}

func TestIsValidAlpha2Code(t *testing.T) {
	for _, code := range []string{"US", "DE", "GB", "XK", "EU", "AP"} {
		if !IsValidAlpha2Code(code) {
			t.Fatalf("IsValidAlpha2Code(%q) = false, want true", code)
		}
	}

	for _, code := range []string{"ZZ", "UK", "usa", "U", "", "12"} {
		if IsValidAlpha2Code(code) {
			t.Fatalf("IsValidAlpha2Code(%q) = true, want false", code)
		}
	}
}

func TestNormalizeAlpha2Code(t *testing.T) {
	if got := NormalizeAlpha2Code(" us "); got != "US" {
		t.Fatalf("NormalizeAlpha2Code returned %q, want US", got)
	}

	if got := NormalizeAlpha2Code("uk"); got != "GB" {
		t.Fatalf("NormalizeAlpha2Code should map UK to GB, got %q", got)
	}

	// Unknown codes pass through uppercased; validation rejects them later.
	if got := NormalizeAlpha2Code("zz"); got != "ZZ" {
		t.Fatalf("NormalizeAlpha2Code returned %q, want ZZ", got)
	}
}
