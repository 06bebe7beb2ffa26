package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatPrice formatea un monto como texto de moneda localizado:
// FormatPrice(19999.9) == "$ 19.999,90".
func FormatPrice(amount float64) string {
	return pricePrinter.Sprintf("$ %v",
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
