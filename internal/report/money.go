package report

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "PHP"

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatAmount renders a report value in the given ISO currency, rounding to
// the currency's minor unit. Unknown codes, and amounts too large for
// go-money's int64 minor units, fall back to a plain two-decimal rendering.
// Inf and NaN render as zero.
func FormatAmount(amount float64, currency string) string {
	amount = finite(amount)
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return fmt.Sprintf("%.2f %s", amount, cur.Code)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}
