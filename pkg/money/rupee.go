// Package money formats rupee amounts the way listings display them.
package money

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping (₹1,00,000), rounded to whole rupees.
func FormatINR(amount float64) string {
	return "₹" + Group(amount)
}

// Group applies Indian grouping: the last three digits, then pairs.
func Group(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return sign + strings.Join(parts, ",") + "," + tail
}
