package model

// Count is a completed/total pair.
type Count struct {
	Completed int
	Total     int
}

func (c Count) Pending() int { return c.Total - c.Completed }

// Stats holds per-category counts plus the overall figure.
type Stats struct {
	ByCategory map[Category]Count
	Overall    Count
}

// ComputeStats counts completed and total items.
func ComputeStats(s State) Stats {
	st := Stats{ByCategory: make(map[Category]Count, len(Categories))}
	for _, c := range Categories {
		var n Count
		for _, it := range s[c] {
			n.Total++
			if it.Completed {
				n.Completed++
			}
		}
		st.ByCategory[c] = n
		st.Overall.Completed += n.Completed
		st.Overall.Total += n.Total
	}
	return st
}
