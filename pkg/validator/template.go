package validator

import (
	"strconv"
	"strings"
)

// renderTemplate substitutes placeholders in a single left-to-right pass.
// '#' becomes the field name and '$n' the n-th argument (1-based). Every
// occurrence is replaced; '$n' outside the argument range is kept verbatim.
// Substituted text is not rescanned.
func renderTemplate(tpl, field string, args []any) string {
	var b strings.Builder
	b.Grow(len(tpl) + len(field))

	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		switch c {
		case '#':
			b.WriteString(field)
		case '$':
			j := i + 1
			for j < len(tpl) && tpl[j] >= '0' && tpl[j] <= '9' {
				j++
			}
			if j == i+1 {
				b.WriteByte(c)
				continue
			}
			n, err := strconv.Atoi(tpl[i+1 : j])
			if err != nil || n < 1 || n > len(args) {
				b.WriteString(tpl[i:j])
			} else {
				b.WriteString(stringify(args[n-1]))
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
