package model

// Item is a single bucket list entry.
// The JSON shape is the persisted record format; keep the tags stable.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Link      string `json:"link"`
	Completed bool   `json:"completed"`
}

// EditState is the working copy of an item while it is being edited.
// It carries no completion flag: commits keep the stored item's value.
type EditState struct {
	ID       int64
	Category Category
	Name     string
	Link     string
}
