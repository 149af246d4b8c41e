package geofeed

import "testing"

func TestParseCSVNormalizesCountryAndFlagsInvalid(t *testing.T) {
	rows := ParseCSV("192.0.2.0/24,us,,,\n198.51.100.0/24,ZZ,,,")

	if len(rows) != 2 {
		t.Fatalf("ParseCSV returned %d rows, want 2", len(rows))
	}

	if !rows[0].Valid {
		t.Fatalf("first row invalid, reason %q", rows[0].Reason)
	}
	if rows[0].CountryCode != "US" {
		t.Fatalf("country not normalized, got %q", rows[0].CountryCode)
	}

	if rows[1].Valid {
		t.Fatal("row with ZZ country should be invalid")
	}
	if rows[1].Reason != ReasonInvalidAlpha2 {
		t.Fatalf("reason = %q, want %q", rows[1].Reason, ReasonInvalidAlpha2)
	}
}

func TestParseCSVWrongFieldCount(t *testing.T) {
	rows := ParseCSV("1.2.3.4,US")

	if len(rows) != 1 {
		t.Fatalf("ParseCSV returned %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Valid {
		t.Fatal("short row should be invalid")
	}
	if row.Reason != ReasonWrongFieldCount {
		t.Fatalf("reason = %q, want %q", row.Reason, ReasonWrongFieldCount)
	}
	// No field-level validation is attempted on malformed records.
	if row.Network != "" || row.CountryCode != "" {
		t.Fatalf("fields should stay empty on malformed rows, got %q/%q", row.Network, row.CountryCode)
	}
}

func TestParseCSVSkipsBlankLinesAndKeepsLineNumbers(t *testing.T) {
	rows := ParseCSV("\n192.0.2.0/24,US,,,\n\n   \n198.51.100.0/24,DE,,,\n")

	if len(rows) != 2 {
		t.Fatalf("ParseCSV returned %d rows, want 2", len(rows))
	}
	if rows[0].Line != 2 || rows[1].Line != 5 {
		t.Fatalf("line numbers = %d/%d, want 2/5", rows[0].Line, rows[1].Line)
	}
}

func TestParseCSVHandlesCRLF(t *testing.T) {
	rows := ParseCSV("192.0.2.0/24,US,,,\r\n198.51.100.0/24,DE,,,")

	if len(rows) != 2 {
		t.Fatalf("ParseCSV returned %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if !row.Valid {
			t.Fatalf("row %d invalid, reason %q", row.Line, row.Reason)
		}
	}
}

func TestParseCSVCIDRCheckedBeforeCountry(t *testing.T) {
	rows := ParseCSV("not-a-network,ZZ,,,")

	if len(rows) != 1 {
		t.Fatalf("ParseCSV returned %d rows, want 1", len(rows))
	}
	if rows[0].Reason != ReasonInvalidCIDR {
		t.Fatalf("reason = %q, want %q", rows[0].Reason, ReasonInvalidCIDR)
	}
}

func TestParseCSVPreservesOriginalLine(t *testing.T) {
	raw := "192.0.2.0/24, us , CA , San Jose ,95134"
	rows := ParseCSV(raw)

	if len(rows) != 1 {
		t.Fatalf("ParseCSV returned %d rows, want 1", len(rows))
	}
	if rows[0].Original != raw {
		t.Fatalf("original line altered: %q", rows[0].Original)
	}
	if rows[0].City != "San Jose" {
		t.Fatalf("fields should be trimmed, got city %q", rows[0].City)
	}
}
