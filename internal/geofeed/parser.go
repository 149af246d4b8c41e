package geofeed

import "strings"

// CandidateRow is one parsed input line on its way through an import. It is
// never persisted; the commit executor builds storage rows from the fields
// after its own re-validation pass.
type CandidateRow struct {
	Line        int // 1-based line number in the source text
	Network     string
	CountryCode string
	Subdivision string
	City        string
	PostalCode  string
	Original    string // untouched input line, for display and diagnostics
	Valid       bool
	Reason      string
	Duplicate   bool
	Conflict    bool
	Selected    bool
}

// Key returns the normalized reconciliation key for the candidate.
func (c CandidateRow) Key() string {
	return NormalizeKey(c.Network, c.CountryCode, c.Subdivision, c.City, c.PostalCode)
}

// Record converts a candidate to the stored-row value shape.
func (c CandidateRow) Record() RangeRecord {
	return RangeRecord{
		Network:     c.Network,
		CountryCode: c.CountryCode,
		Subdivision: c.Subdivision,
		City:        c.City,
		PostalCode:  c.PostalCode,
	}
}

// ParseCSV splits raw geofeed text into candidate rows. Lines are separated
// by LF or CRLF, blank lines are skipped without producing a row, and every
// non-blank line yields exactly one candidate carrying its original line
// number. No storage is consulted here; duplicate and conflict flags are
// left for Reconcile.
func ParseCSV(text string) []CandidateRow {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	rows := make([]CandidateRow, 0, len(lines))

	for i, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		row := CandidateRow{
			Line:     i + 1,
			Original: rawLine,
		}

		parts := strings.Split(line, ",")
		if len(parts) != 5 {
			row.Reason = ReasonWrongFieldCount
			rows = append(rows, row)
			continue
		}

		row.Network = strings.TrimSpace(parts[0])
		row.CountryCode = NormalizeAlpha2Code(parts[1])
		row.Subdivision = strings.TrimSpace(parts[2])
		row.City = strings.TrimSpace(parts[3])
		row.PostalCode = strings.TrimSpace(parts[4])

		switch {
		case row.Network == "" || !IsValidCIDR(row.Network):
			row.Reason = ReasonInvalidCIDR
		case row.CountryCode == "" || !IsValidAlpha2Code(row.CountryCode):
			row.Reason = ReasonInvalidAlpha2
		default:
			row.Valid = true
		}

		rows = append(rows, row)
	}

	return rows
}
