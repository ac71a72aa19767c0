package session

// lastDistinct returns up to n of the most recent distinct entries of
// items followed by extra, oldest first.
func lastDistinct(n int, items []string, extra ...string) []string {
	if n <= 0 {
		return nil
	}
	all := make([]string, 0, len(items)+len(extra))
	all = append(all, items...)
	all = append(all, extra...)

	seen := make(map[string]bool, n)
	picked := make([]string, 0, n)
	for i := len(all) - 1; i >= 0 && len(picked) < n; i-- {
		if all[i] == "" || seen[all[i]] {
			continue
		}
		seen[all[i]] = true
		picked = append(picked, all[i])
	}

	for i, j := 0, len(picked)-1; i < j; i, j = i+1, j-1 {
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked
}

// lastN returns a copy of the trailing n entries of items.
func lastN[T any](items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) > n {
		items = items[len(items)-n:]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
