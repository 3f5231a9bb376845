// Package currency formats amounts the way the shop displays prices:
// Colombian pesos, es-ES digit grouping, no decimals ("10.000 COP").
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.EuropeanSpanish)

// Format renders amount as a localized COP string. Fractions are dropped;
// prices in the catalog are whole pesos.
func Format(amount float64) string {
	return printer.Sprintf("%v COP", number.Decimal(amount, number.Scale(0)))
}
