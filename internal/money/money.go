// Package money converts between stored minor-unit amounts (cents) and
// display strings in USD.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCents renders an integer cents amount as a currency string,
// e.g. 1234 -> "$12.34", 123456789 -> "$1,234,567.89". Total for any int64;
// negative amounts render as "-$x.yy".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := cents / 100
	rem := cents % 100

	return sign + "$" + group(dollars) + fmt.Sprintf(".%02d", rem)
}

// ToCents converts a user-entered major-unit amount to cents, rounding to
// the nearest integer.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// group inserts thousands separators into a non-negative integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
