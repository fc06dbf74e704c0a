package document

import (
	"strings"

	"github.com/divan/num2words"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatRupees renders a whole-rupee amount with thousands separators,
// e.g. "Rs. 50,000".
func FormatRupees(amount int64) string {
	return amountPrinter.Sprintf("Rs. %d", amount)
}

// RupeesInWords spells the amount out, e.g. "Rupees fifty thousand only".
func RupeesInWords(amount int64) string {
	return "Rupees " + strings.TrimSpace(num2words.Convert(int(amount))) + " only"
}
