package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBRL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"formato brasileiro com milhar", "1.500,50", 1500.50, true},
		{"apenas virgula decimal", "1500,50", 1500.50, true},
		{"negativo inteiro", "-200", -200.0, true},
		{"negativo brasileiro", "-1.500,50", -1500.50, true},
		{"com simbolo de moeda", "R$ 1.234,56", 1234.56, true},
		{"formato internacional", "1500.50", 1500.50, true},
		{"milhar multiplo", "12.345.678,90", 12345678.90, true},
		{"vazio vale zero", "", 0.0, true},
		{"somente espacos", "   ", 0.0, true},
		{"letras", "abc", 0.0, false},
		{"numero com sufixo", "12,3a", 0.0, false},
		{"dois pontos decimais", "1.2.3", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBRL(tt.input)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseBRLNuncaPropagaErro(t *testing.T) {
	// entradas hostis: o contrato é sempre (0, false), nunca panic
	for _, s := range []string{"--", "-", ",", ".", "R$", "1,2,3", "\x00\xff"} {
		got, _ := ParseBRL(s)
		assert.Equal(t, 0.0, got, "entrada %q", s)
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.500,50", FormatBRL(1500.50))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 12.345.678,90", FormatBRL(12345678.9))
	assert.Equal(t, "R$ -200,00", FormatBRL(-200))
	assert.Equal(t, "R$ 999,99", FormatBRL(999.99))
}

func TestFormatBRLInversoDeParse(t *testing.T) {
	for _, v := range []float64{0, 0.01, 1500.50, 12345678.90, 73.10} {
		back, ok := ParseBRL(FormatBRL(v))
		assert.True(t, ok)
		assert.InDelta(t, v, back, 1e-9)
	}
}
