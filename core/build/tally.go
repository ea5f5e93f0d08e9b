package build

// Tally counts detected categories while remembering first-seen order.
type Tally struct {
	order  []string
	counts map[string]int
}

// Add records one observation of category.
func (t *Tally) Add(category string) {
	if t.counts == nil {
		t.counts = map[string]int{}
	}
	if _, ok := t.counts[category]; !ok {
		t.order = append(t.order, category)
	}
	t.counts[category]++
}

// Mode returns the most frequent category. Ties go to the category seen first.
func (t *Tally) Mode() (string, bool) {
	best, bestN := "", 0
	for _, c := range t.order {
		if n := t.counts[c]; n > bestN {
			best, bestN = c, n
		}
	}
	return best, bestN > 0
}
