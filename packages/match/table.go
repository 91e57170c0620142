package match

// resultTable memoizes pairwise match attempts for one evaluation: one
// row per raised error, one column per expectation. A cell is unset until
// attempted; an empty reason means the pairing succeeded. The table only
// ever grows during an evaluation and is discarded with it.
type resultTable struct {
	cells [][]tableCell // indexed [actual][expected]
}

type tableCell struct {
	checked bool
	reason  string // "" means matched
}

func newResultTable(nExpected, nActual int) *resultTable {
	cells := make([][]tableCell, nActual)
	for i := range cells {
		cells[i] = make([]tableCell, nExpected)
	}
	return &resultTable{cells: cells}
}

func (t *resultTable) set(expected, actual int, reason string) {
	t.cells[actual][expected] = tableCell{checked: true, reason: reason}
}

func (t *resultTable) get(expected, actual int) string {
	c := t.cells[actual][expected]
	if !c.checked {
		panic("pairing result read before being computed")
	}
	return c.reason
}

func (t *resultTable) has(expected, actual int) bool {
	return t.cells[actual][expected].checked
}

// noMatchForExpected reports whether none of the given expectations
// matched any raised error. Requires a fully filled table.
func (t *resultTable) noMatchForExpected(expected []int) bool {
	for _, i := range expected {
		for _, row := range t.cells {
			if row[i].checked && row[i].reason == "" {
				return false
			}
		}
	}
	return true
}

// noMatchForActual reports whether none of the given raised errors
// matched any expectation. Requires a fully filled table.
func (t *resultTable) noMatchForActual(actual []int) bool {
	for _, i := range actual {
		for _, c := range t.cells[i] {
			if c.checked && c.reason == "" {
				return false
			}
		}
	}
	return true
}

// possibleMatch reports whether any assignment pairs every raised error
// with a distinct expectation using only successful cells. Backtracking,
// row by row. Diagnostics only: the verdict always comes from the greedy
// pass.
func possibleMatch(t *resultTable) bool {
	return searchAssignment(t, make(map[int]bool))
}

func searchAssignment(t *resultTable, used map[int]bool) bool {
	row := len(used)
	if row == len(t.cells) {
		return true
	}
	for col, c := range t.cells[row] {
		if c.checked && c.reason == "" && !used[col] {
			used[col] = true
			if searchAssignment(t, used) {
				return true
			}
			delete(used, col)
		}
	}
	return false
}
