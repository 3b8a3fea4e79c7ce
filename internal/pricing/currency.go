package pricing

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display locales per currency; grouping and decimal separators follow
// the locale (IDR renders 15000 as "15.000").
var currencyLocales = map[string]language.Tag{
	"IDR": language.Indonesian,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"MYR": language.Malay,
	"SGD": language.English,
}

var currencySymbols = map[string]string{
	"IDR": "Rp",
	"USD": "$",
	"EUR": "€",
	"MYR": "RM",
	"SGD": "S$",
}

// FormatAmount renders a money amount for display. Whole amounts drop
// the fraction entirely ("Rp15.000", "$25"); anything else keeps two
// digits. Unknown but valid ISO codes fall back to "CODE 1,234.56".
// Pure function of its inputs: the same pair always yields the same
// string.
func FormatAmount(amount float64, code string) string {
	code = strings.ToUpper(code)
	tag, ok := currencyLocales[code]
	if !ok {
		tag = language.English
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		if unit, err := currency.ParseISO(code); err == nil {
			symbol = unit.String() + " "
		} else {
			symbol = code + " "
		}
	}
	p := message.NewPrinter(tag)
	if amount == math.Trunc(amount) {
		return p.Sprintf("%s%v", symbol, number.Decimal(amount, number.MaxFractionDigits(0)))
	}
	return p.Sprintf("%s%v", symbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
