package finance

import "math"

const (
	aprMaxIterations = 50
	// one cent
	aprTolerance = 0.01

	aprLowerBound = 0.8
	aprUpperBound = 1.5
)

// APRResult carries the solved APR and whether it came from a converged root
// find. Exact is false whenever the nominal rate was returned as a fallback.
type APRResult struct {
	APR   float64
	Exact bool
}

// SolveAPR returns the annual rate, in percent, that discounts the payment
// stream of a principal loan at nominalRatePercent back to the net proceeds
// (principal - upfrontCosts). Degenerate or divergent inputs fall back to the
// nominal rate.
func SolveAPR(principal, nominalRatePercent, upfrontCosts float64, termMonths int) float64 {
	return SolveAPRResult(principal, nominalRatePercent, upfrontCosts, termMonths).APR
}

// SolveAPRResult is SolveAPR with the convergence flag attached.
func SolveAPRResult(principal, nominalRatePercent, upfrontCosts float64, termMonths int) APRResult {
	fallback := APRResult{APR: nominalRatePercent}

	if principal <= 0 || termMonths <= 0 || nominalRatePercent <= 0 {
		return fallback
	}

	netProceeds := principal - upfrontCosts
	if netProceeds <= 0 {
		return fallback
	}

	payment := MonthlyPayment(principal, nominalRatePercent, termMonths)
	initialGuess := nominalRatePercent / 100 / 12
	guess := initialGuess
	converged := false

	for i := 0; i < aprMaxIterations; i++ {
		pv, slope := presentValue(payment, guess, termMonths)
		diff := pv - netProceeds
		if math.Abs(diff) < aprTolerance {
			converged = true
			break
		}
		if slope == 0 {
			break
		}

		guess -= diff / slope
		if guess <= 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
			guess = initialGuess
			break
		}
	}

	apr := guess * 12 * 100
	if math.IsNaN(apr) || apr < aprLowerBound*nominalRatePercent || apr > aprUpperBound*nominalRatePercent {
		return fallback
	}

	return APRResult{APR: apr, Exact: converged}
}

// presentValue discounts termMonths level payments at monthly rate r and
// returns the value with its derivative in r.
func presentValue(payment, r float64, termMonths int) (pv, slope float64) {
	discount := 1 / (1 + r)
	factor := 1.0
	for m := 1; m <= termMonths; m++ {
		factor *= discount // (1+r)^-m
		pv += payment * factor
		slope -= float64(m) * payment * factor * discount
	}
	return pv, slope
}
