package model

// State maps every category to its ordered items.
// Values are treated as immutable: mutations build a new State via With.
type State map[Category][]Item

// NewState returns the default state: every category present and empty.
func NewState() State {
	s := make(State, len(Categories))
	for _, c := range Categories {
		s[c] = []Item{}
	}
	return s
}

// Normalize returns a copy holding exactly the known categories,
// filling missing ones with empty sequences.
func (s State) Normalize() State {
	out := make(State, len(Categories))
	for _, c := range Categories {
		items := s[c]
		cp := make([]Item, len(items))
		copy(cp, items)
		out[c] = cp
	}
	return out
}

// With returns a copy of s with c replaced by items.
// Other categories share their backing arrays, which is safe since no
// operation writes into an existing slice.
func (s State) With(c Category, items []Item) State {
	out := make(State, len(Categories))
	for _, k := range Categories {
		out[k] = s[k]
	}
	if items == nil {
		items = []Item{}
	}
	out[c] = items
	return out
}

// Find returns the item with id in c.
func (s State) Find(c Category, id int64) (Item, bool) {
	for _, it := range s[c] {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// MaxID is the largest id across all categories, 0 when empty.
func (s State) MaxID() int64 {
	var maxID int64
	for _, items := range s {
		for _, it := range items {
			if it.ID > maxID {
				maxID = it.ID
			}
		}
	}
	return maxID
}
