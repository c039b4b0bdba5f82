package view

import "fmt"

// NairaFromKobo renders an amount in minor units as a display string.
// 2600000 -> "₦26,000.00"
func NairaFromKobo(kobo int64) string {
	sign := ""
	if kobo < 0 {
		sign = "-"
		kobo = -kobo
	}
	naira := kobo / 100
	rem := kobo % 100
	return fmt.Sprintf("%s₦%s.%02d", sign, group(naira), rem)
}

func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
