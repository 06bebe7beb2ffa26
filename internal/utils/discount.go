package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPrice se devuelve cuando un precio no se puede parsear o cuando
// el precio original es cero (no hay porcentaje posible sobre cero).
var ErrInvalidPrice = errors.New("precio inválido")

// DiscountPercent calcula el porcentaje de descuento entre el precio original
// y el actual, ambos como texto de moneda ("$ 1.234,50", "$1,299.99", "100").
func DiscountPercent(original, current string) (int, error) {
	orig, err := ParsePrice(original)
	if err != nil {
		return 0, err
	}
	curr, err := ParsePrice(current)
	if err != nil {
		return 0, err
	}
	if orig == 0 {
		return 0, ErrInvalidPrice
	}
	return int(math.Round((orig - curr) / orig * 100)), nil
}

// ParsePrice interpreta texto de moneda con símbolo y separadores de miles,
// aceptando tanto coma decimal (es) como punto decimal (en).
func ParsePrice(text string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, ErrInvalidPrice
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// formato es: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// formato en: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return v, nil
}
