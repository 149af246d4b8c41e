package geofeed

import "testing"

func TestNormalizeKeyEquivalence(t *testing.T) {
	key1 := NormalizeKey("10.0.0.0/24", "us", " CA ", "San Jose", " 95134")
	key2 := NormalizeKey(" 10.0.0.0/24 ", "US", "CA", "San Jose ", "95134")

	if key1 != key2 {
		t.Fatalf("keys differ for equivalent rows: %q vs %q", key1, key2)
	}
}

func TestNormalizeKeyEmptyOptionalFields(t *testing.T) {
	withSpaces := NormalizeKey("10.0.0.0/24", "US", "  ", "", " ")
	withEmpty := NormalizeKey("10.0.0.0/24", "US", "", "", "")

	if withSpaces != withEmpty {
		t.Fatalf("whitespace-only optional fields should equal empty: %q vs %q", withSpaces, withEmpty)
	}

	if withEmpty != "10.0.0.0/24|US|||" {
		t.Fatalf("unexpected key shape: %q", withEmpty)
	}
}

func TestNormalizeKeyDistinguishesRows(t *testing.T) {
	a := NormalizeKey("10.0.0.0/24", "US", "CA", "", "")
	b := NormalizeKey("10.0.0.0/24", "US", "NY", "", "")

	if a == b {
		t.Fatal("rows differing in subdivision produced the same key")
	}
}

func TestFormatCSV(t *testing.T) {
	records := []RangeRecord{
		{Network: "192.0.2.0/24", CountryCode: "US", Subdivision: "CA", City: "San Jose", PostalCode: "95134"},
		{Network: "2001:db8::/32", CountryCode: "DE"},
	}

	got := FormatCSV(records)
	want := "192.0.2.0/24,US,CA,San Jose,95134\n2001:db8::/32,DE,,,"
	if got != want {
		t.Fatalf("FormatCSV returned %q, want %q", got, want)
	}

	if FormatCSV(nil) != "" {
		t.Fatal("FormatCSV of empty input should be empty")
	}
}
