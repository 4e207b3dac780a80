// Package salarycap computes projected roster cost under the cheapest-N
// counting rule: only the cheapest countedSlots players count toward the cap,
// so once cheap depth fills the counted slots, expensive players above that
// floor add nothing to the projection.
package salarycap

import (
	"sort"
)

// Epsilon absorbs floating-point drift when comparing against the cap limit.
const Epsilon = 1e-3

// Validate projects the roster cost after adding newCost to currentCosts and
// reports whether the result fits under capLimit. Among the post-addition
// costs, only the cheapest min(len+1, countedSlots) are summed.
func Validate(currentCosts []float64, newCost, capLimit float64, countedSlots int) (bool, float64) {
	costs := make([]float64, 0, len(currentCosts)+1)
	costs = append(costs, currentCosts...)
	costs = append(costs, newCost)
	sort.Float64s(costs)

	counted := countedSlots
	if counted > len(costs) {
		counted = len(costs)
	}
	if counted < 0 {
		counted = 0
	}

	var projected float64
	for _, c := range costs[:counted] {
		projected += c
	}
	return projected <= capLimit+Epsilon, projected
}
