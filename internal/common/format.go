package common

import (
	"fmt"
	"strings"
)

// FormatMoney renders a dollar amount with thousands grouping: $1,234.56.
func FormatMoney(v float64) string {
	if v < 0 {
		return "-$" + groupThousands(fmt.Sprintf("%.2f", -v))
	}
	return "$" + groupThousands(fmt.Sprintf("%.2f", v))
}

// FormatSignedMoney always carries a sign: +$12.00 / -$12.00.
func FormatSignedMoney(v float64) string {
	if v < 0 {
		return "-$" + groupThousands(fmt.Sprintf("%.2f", -v))
	}
	return "+$" + groupThousands(fmt.Sprintf("%.2f", v))
}

// FormatSignedPct always carries a sign: +5.25% / -5.25%.
func FormatSignedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	if !hasFrac {
		return intPart
	}
	return intPart + "." + frac
}
