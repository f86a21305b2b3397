// Package money normaliza e formata valores monetários em formato
// brasileiro ou internacional.
package money

import (
	"strconv"
	"strings"
)

// ParseBRL converte um texto livre de valor monetário em float64.
//
// Aceita formato brasileiro ("1.500,50"), internacional ("1500.50"),
// sinal negativo e símbolo R$. Qualquer falha de parse resulta em
// (0, false) — nunca em erro: importações em massa dependem do zero
// silencioso. O booleano permite ao chamador inspecionar o fallback.
func ParseBRL(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0.0, true
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return 0.0, true
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// ponto = milhar, vírgula = decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// FormatBRL exibe o valor no formato "R$ 1.500,50" (milhar com ponto,
// decimal com vírgula); negativos saem como "R$ -200,00". Transformação
// inversa de ParseBRL para valores bem formados.
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	b.WriteString("R$ ")
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}
