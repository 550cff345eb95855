// Package grid maps linear character positions onto a fixed-width text grid.
package grid

// GetGridCoords returns the column and row of the index-th cell in a grid
// cols cells wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Wrap splits s into rows of at most cols runes, placing each rune at the
// cell GetGridCoords assigns it. An empty s yields a single empty row.
func Wrap(s string, cols int) []string {
	if cols <= 0 {
		return []string{s}
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}
	_, last := GetGridCoords(len(runes)-1, cols)
	rows := make([][]rune, last+1)
	for i, r := range runes {
		_, y := GetGridCoords(i, cols)
		rows[y] = append(rows[y], r)
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = string(row)
	}
	return out
}
