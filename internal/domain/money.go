package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Cents is a monetary amount in integer minor units. All pricing arithmetic
// happens in cents; decimal strings appear only at the boundary.
type Cents int64

var amountPattern = regexp.MustCompile(`^(\d+)(?:\.(\d{1,2}))?$`)

// ParseAmount converts a decimal string such as "10.99" into cents.
func ParseAmount(s string) (Cents, error) {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var frac int64
	if m[2] != "" {
		frac, _ = strconv.ParseInt(m[2], 10, 64)
		if len(m[2]) == 1 {
			frac *= 10
		}
	}

	return Cents(whole*100 + frac), nil
}

// Mul scales the amount by a line item quantity.
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}

// String renders the amount as a decimal string, e.g. 3497 -> "34.97".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
