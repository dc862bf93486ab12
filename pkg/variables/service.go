// Package variables maps the user-facing display variables to the database
// channel columns that back them.
package variables

import "sort"

// Expand returns the channel columns behind one display variable. The
// three-phase IN and OUT groups fan out; everything else maps to itself.
func Expand(displayVar string) []string {
	switch displayVar {
	case "IN":
		return []string{"U_IN", "V_IN", "W_IN"}
	case "OUT":
		return []string{"U_OUT", "V_OUT", "W_OUT"}
	default:
		return []string{displayVar}
	}
}

// BuildColumnList returns the set of channel columns needed for the chosen
// display variables. Columns shared by several display variables appear
// once; the result is sorted so downstream output order is deterministic.
func BuildColumnList(displayVars []string) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, dv := range displayVars {
		for _, col := range Expand(dv) {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
