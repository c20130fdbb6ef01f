// Package money holds the presentation rounding rule for amounts.
package money

import "github.com/shopspring/decimal"

const Places = 2

// Round rounds half away from zero to two decimals.
func Round(d decimal.Decimal) decimal.Decimal { return d.Round(Places) }

// Float is Round as a float64, for JSON responses.
func Float(d decimal.Decimal) float64 { return Round(d).InexactFloat64() }

// Sum adds amounts without intermediate rounding.
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
