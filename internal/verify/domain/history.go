package domain

// History is a caller-owned, ordered collection of verdicts. The engine never
// keeps one itself; callers pass it in and receive the extended copy back.
type History []Verdict

// Append returns a new History with vs added after the existing entries.
// The receiver is left untouched.
func (h History) Append(vs ...Verdict) History {
	out := make(History, 0, len(h)+len(vs))
	out = append(out, h...)
	return append(out, vs...)
}

// Filter returns the verdicts whose status is one of statuses, in order.
// With no statuses it returns a copy of the whole history.
func (h History) Filter(statuses ...Status) History {
	if len(statuses) == 0 {
		return h.Append()
	}
	want := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		want[s] = struct{}{}
	}
	out := make(History, 0, len(h))
	for _, v := range h {
		if _, ok := want[v.Status()]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Counts tallies verdicts per status.
func (h History) Counts() map[Status]int {
	counts := map[Status]int{
		StatusInvalidFormat: 0,
		StatusDisposable:    0,
		StatusValid:         0,
	}
	for _, v := range h {
		counts[v.Status()]++
	}
	return counts
}

// Batch is the outcome of a bounded bulk classification.
type Batch struct {
	Verdicts  History `json:"verdicts"`
	Truncated bool    `json:"truncated"`
	Dropped   int     `json:"dropped"`
}
