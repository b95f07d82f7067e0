package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{name: "string com vírgula decimal", input: "31,05", expected: 31.05},
		{name: "string com ponto decimal", input: "31.05", expected: 31.05},
		{name: "float64 direto", input: 31.05, expected: 31.05},
		{name: "formato brasileiro com milhar", input: "1.234,56", expected: 1234.56},
		{name: "inteiro", input: 42, expected: 42},
		{name: "string vazia", input: "", expected: 0},
		{name: "string inválida", input: "abc", expected: 0},
		{name: "nil", input: nil, expected: 0},
		{name: "string com espaços", input: "  12,50  ", expected: 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMoney(tt.input))
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "valor com milhar", input: 1234.56, expected: "R$ 1.234,56"},
		{name: "valor redondo", input: 20, expected: "R$ 20,00"},
		{name: "total com frete", input: 25, expected: "R$ 25,00"},
		{name: "zero", input: 0, expected: "R$ 0,00"},
		{name: "milhões", input: 1234567.89, expected: "R$ 1.234.567,89"},
		{name: "arredondamento", input: 10.005, expected: "R$ 10,01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBRL(tt.input))
		})
	}
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "35200000", OnlyDigits("35200-000"))
	assert.Equal(t, "", OnlyDigits("abc"))
	assert.Equal(t, "01310100", OnlyDigits(" 01310-100 "))
}
