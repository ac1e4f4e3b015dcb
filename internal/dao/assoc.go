package dao

// Array bookkeeping for the id arrays that emulate join tables. All helpers
// preserve the order of first appearance and never return nil, so the arrays
// marshal as [] rather than null.

// unionIDs appends the ids in add that existing does not already carry
func unionIDs(existing, add []string) []string {
	out := dedupeIDs(existing)
	seen := make(map[string]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, id := range add {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// subtractIDs removes the ids in remove from existing
func subtractIDs(existing, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	out := make([]string, 0, len(existing))
	for _, id := range existing {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return dedupeIDs(out)
}

// dedupeIDs removes duplicate ids, keeping first appearance order
func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// diffIDs splits desired against current into the ids to add and the ids to
// remove. Replace operations persist current ∪ added − removed, which is
// just the deduplicated desired set; the split exists so callers can log or
// act on the actual delta.
func diffIDs(current, desired []string) (added, removed []string) {
	have := make(map[string]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[string]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}

	for _, id := range desired {
		if !have[id] {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if !want[id] {
			removed = append(removed, id)
		}
	}
	return added, removed
}
