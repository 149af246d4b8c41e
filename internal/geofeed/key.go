package geofeed

import "strings"

// keyDelimiter joins the five identity fields. A pipe inside a trimmed CSV
// cell is the one accepted collision risk; the commit path additionally
// hashes the key into a unique database index, so a collision skips a row
// instead of duplicating one.
const keyDelimiter = "|"

// RangeRecord is the value shape of one stored geofeed row as the engine
// sees it. Storage identifiers are deliberately absent: equality is decided
// by the normalized key alone.
type RangeRecord struct {
	Network     string
	CountryCode string
	Subdivision string
	City        string
	PostalCode  string
}

// NormalizeKey builds the reconciliation key for a row. Whitespace is
// trimmed on every field, the country code goes through the reference
// table normalization, and absent optional fields collapse to the empty
// string, so "" and null inputs compare equal.
func NormalizeKey(network, countryCode, subdivision, city, postalCode string) string {
	return strings.Join([]string{
		strings.TrimSpace(network),
		NormalizeAlpha2Code(countryCode),
		strings.TrimSpace(subdivision),
		strings.TrimSpace(city),
		strings.TrimSpace(postalCode),
	}, keyDelimiter)
}

// Key returns the normalized reconciliation key of a stored record.
func (r RangeRecord) Key() string {
	return NormalizeKey(r.Network, r.CountryCode, r.Subdivision, r.City, r.PostalCode)
}

// FormatCSV renders records in RFC 8805 column order, one record per line,
// empty optional fields kept as empty strings.
func FormatCSV(records []RangeRecord) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join([]string{
			r.Network,
			r.CountryCode,
			r.Subdivision,
			r.City,
			r.PostalCode,
		}, ","))
	}
	return b.String()
}
