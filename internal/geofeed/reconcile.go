package geofeed

import "strings"

// Summary aggregates the verdicts of one reconciliation pass.
type Summary struct {
	Valid     int
	Invalid   int
	Duplicate int
	Conflict  int
}

// Reconcile classifies candidates against the current stored row set of the
// target geofeed. It is pure: the existing snapshot is supplied by the
// caller and the result is a plan, never a mutation.
//
// Classification per candidate, in file order:
//   - parse-invalid rows pass through untouched and are never checked
//     against storage
//   - a key already seen earlier in this batch is a duplicate (first
//     occurrence wins)
//   - a key present in storage is a duplicate
//   - a network present in storage under a different key is a conflict;
//     conflicts are warnings and stay selectable
//   - anything else is a plain new row
//
// Duplicate takes precedence over conflict. Default selection is
// valid && !duplicate.
func Reconcile(candidates []CandidateRow, existing []RangeRecord) ([]CandidateRow, Summary) {
	existingKeys := make(map[string]struct{}, len(existing))
	existingByNetwork := make(map[string][]string, len(existing))
	for _, record := range existing {
		key := record.Key()
		network := strings.TrimSpace(record.Network)
		existingKeys[key] = struct{}{}
		existingByNetwork[network] = append(existingByNetwork[network], key)
	}

	seenInBatch := make(map[string]struct{}, len(candidates))
	rows := make([]CandidateRow, len(candidates))
	var summary Summary

	for i, row := range candidates {
		if !row.Valid {
			summary.Invalid++
			row.Selected = false
			rows[i] = row
			continue
		}
		summary.Valid++

		key := row.Key()

		switch {
		case hasKey(seenInBatch, key):
			row.Duplicate = true
			row.Reason = ReasonBatchDuplicate
			summary.Duplicate++
		case hasKey(existingKeys, key):
			row.Duplicate = true
			row.Reason = ReasonExistingDuplicate
			summary.Duplicate++
		case len(existingByNetwork[row.Network]) > 0:
			row.Conflict = true
			summary.Conflict++
		}

		seenInBatch[key] = struct{}{}
		row.Selected = !row.Duplicate
		rows[i] = row
	}

	return rows, summary
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
