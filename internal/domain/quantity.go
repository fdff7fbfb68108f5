package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxQuantity is the ceiling of a single cart line; sums saturate here instead of overflowing.
const MaxQuantity = math.MaxInt32

// NormalizeQuantity maps any value below 1 to 1 and any value above MaxQuantity to MaxQuantity.
func NormalizeQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}

// AddQuantity sums two quantities, saturating at MaxQuantity.
func AddQuantity(q, delta int) int {
	q, delta = NormalizeQuantity(q), NormalizeQuantity(delta)
	if delta > MaxQuantity-q {
		return MaxQuantity
	}
	return q + delta
}

// ParseQuantity reads a quantity typed by the user. Non-numeric input and values below 1 yield 1.
func ParseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return NormalizeQuantity(q)
}
