package utils

import "strconv"

// FormatWithCommas renders an integer with thousands separators for the CLI
// popularity column.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if n < 0 {
		start = 1
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	out = append(out, s[:start]...)
	for i := start; i < len(s); i++ {
		if i > start && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
