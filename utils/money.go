package utils

import "github.com/shopspring/decimal"

// LineTotal multiplies a unit price by a quantity and rounds to two decimal
// places. Rounding happens per line, before summation, so stored totals match
// the per-line figures shown to the customer.
func LineTotal(unitPrice float64, qty int) float64 {
	unit := decimal.NewFromFloat(unitPrice)
	total := unit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	f, _ := total.Float64()
	return f
}

// SumLines adds already-rounded line totals with decimal arithmetic.
func SumLines(lineTotals []float64) float64 {
	sum := decimal.Zero
	for _, lt := range lineTotals {
		sum = sum.Add(decimal.NewFromFloat(lt))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// Round2 rounds an amount to two decimal places.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}
