// Package finance holds the loan math behind a proposal: the level monthly
// payment and the APR implied by upfront costs.
package finance

import "math"

// MonthlyPayment computes the level installment for a fully amortizing loan.
//
//	monthlyRate = annualRatePercent / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A non-positive principal or rate means there is nothing to finance and the
// payment is 0. A non-positive term is also treated as no loan.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if principal <= 0 || annualRatePercent <= 0 || termMonths <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / 100 / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))

	return principal * monthlyRate * factor / (factor - 1)
}

// TotalInterest is what the borrower pays over the life of the loan beyond principal.
func TotalInterest(principal, annualRatePercent float64, termMonths int) float64 {
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	if payment == 0 {
		return 0
	}
	return payment*float64(termMonths) - principal
}
