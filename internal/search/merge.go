package search

// Merge concatenates the given result lists and removes duplicate URLs,
// keeping the first occurrence. Callers merging a narrow query with a broad
// one must pass the narrow list first so its metadata wins on duplicates.
func Merge(lists ...[]Result) []Result {
	total := 0
	for _, list := range lists {
		total += len(list)
	}

	merged := make([]Result, 0, total)
	seen := make(map[string]struct{}, total)

	for _, list := range lists {
		for _, r := range list {
			if _, ok := seen[r.URL]; ok {
				continue
			}
			seen[r.URL] = struct{}{}
			merged = append(merged, r)
		}
	}

	return merged
}
