package utils

import (
	"strconv"
	"strings"
)

// ParseMoney converte valores monetários vindos das APIs externas (Bling,
// Melhor Envio, Correios) ou do front para float64. Aceita números ou
// strings com ponto decimal ("31.05"), vírgula decimal ("31,05") e o
// formato brasileiro completo com milhar ("1.234,56").
// Valores inválidos ou nulos resultam em 0.
func ParseMoney(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseMoneyString(n)
	default:
		return 0
	}
}

func parseMoneyString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Tenta o parse direto primeiro ("31.05", "120")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	// Formato brasileiro: remove separador de milhar e troca a vírgula
	br := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if f, err := strconv.ParseFloat(br, 64); err == nil {
		return f
	}

	return 0
}

// FormatBRL formata um valor no padrão monetário brasileiro: "R$ 1.234,56"
// (ponto como separador de milhar, vírgula como separador decimal).
func FormatBRL(v float64) string {
	s := strconv.FormatFloat(RoundWithTwoDecimalPlace(v), 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "R$ -" + b.String() + "," + decPart
	}
	return out
}
