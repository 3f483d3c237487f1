package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of every amount in the reports. Quotes are not converted.
const Currency = money.USD

// Money formats amount in Currency, rounded to the currency's minor unit.
func Money(amount float64) string {
	cur := money.GetCurrency(Currency)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), Currency).Display()
}
