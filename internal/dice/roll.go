package dice

import (
	"strconv"
	"strings"
)

// Roll is the outcome of rolling a Dice spec plus a modifier
type Roll struct {
	dice     Dice
	results  []int
	modifier int
}

// Dice returns the spec that was rolled
func (r Roll) Dice() Dice {
	return r.dice
}

// Results returns a copy of the individual die results
func (r Roll) Results() []int {
	out := make([]int, len(r.results))
	copy(out, r.results)
	return out
}

// Modifier returns the additive modifier
func (r Roll) Modifier() int {
	return r.modifier
}

// Total is the sum of die results plus the modifier
func (r Roll) Total() int {
	total := r.modifier
	for _, v := range r.results {
		total += v
	}
	return total
}

// String renders "3d6 = 4+2+6" or "d4+1 = 3+1"
func (r Roll) String() string {
	parts := make([]string, 0, len(r.results)+1)
	for _, v := range r.results {
		parts = append(parts, strconv.Itoa(v))
	}

	var b strings.Builder
	b.WriteString(r.dice.String())
	switch {
	case r.modifier > 0:
		b.WriteString("+" + strconv.Itoa(r.modifier))
		parts = append(parts, strconv.Itoa(r.modifier))
	case r.modifier < 0:
		b.WriteString(strconv.Itoa(r.modifier))
	}
	b.WriteString(" = ")
	b.WriteString(strings.Join(parts, "+"))
	if r.modifier < 0 {
		b.WriteString(strconv.Itoa(r.modifier))
	}
	return b.String()
}

// Detailed reports whether the roll has more to show than its total
func (r Roll) Detailed() bool {
	return len(r.results) > 1 || r.modifier != 0
}
