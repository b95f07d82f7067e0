package utils

import "strings"

// OnlyDigits remove tudo que não for dígito (usado para normalizar CEPs).
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
