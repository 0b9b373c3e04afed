package cli

import (
	"fmt"

	"github.com/idilsaglam/bucket/internal/model"
	"github.com/idilsaglam/bucket/internal/ui"
)

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// itemLines renders items with their 1-based positions in the category,
// which is what done/rm/edit take.
func itemLines(items []model.Item, idx []int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "  no items yet")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box := ui.C(t.Muted, t.BoxUnchecked)
		name := it.Name
		if len([]rune(name)) > 80 {
			name = string([]rune(name)[:77]) + "..."
		}
		if it.Completed {
			box = ui.C(t.Success, t.BoxChecked)
			name = ui.Strike(name)
		}
		line := fmt.Sprintf("%s %s %s", ui.Dim(fmt.Sprintf("%3d.", idx[i])), box, name)
		if it.Link != "" {
			line += "  " + ui.C(t.Muted, t.SymLink+" "+it.Link)
		}
		out = append(out, line)
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	var pendIdx, doneIdx []int
	for i, it := range items {
		if it.Completed {
			done = append(done, it)
			doneIdx = append(doneIdx, i+1)
		} else {
			pend = append(pend, it)
			pendIdx = append(pendIdx, i+1)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Pending, "  Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "  (none)"))
	} else {
		lines = append(lines, itemLines(pend, pendIdx)...)
	}
	lines = append(lines, ui.C(t.Success, "  Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "  (none)"))
	} else {
		lines = append(lines, itemLines(done, doneIdx)...)
	}
	return lines
}
