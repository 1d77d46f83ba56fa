package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

func newPriceFormat() *accounting.Accounting {
	return &accounting.Accounting{
		Precision: 2,
		Thousand:  " ",
		Decimal:   ".",
		Format:    "%v",
	}
}

// Price renders a price with grouped thousands, e.g. "1 499.99".
func Price(amount interface{}) string {
	var d decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v != nil {
			d = *v
		}
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		if parsed, err := decimal.NewFromString(v); err == nil {
			d = parsed
		}
	}
	return newPriceFormat().FormatMoneyDecimal(d)
}
