package proposal

import (
	"github.com/unclebandit/proposal-backend/internal/finance"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/money"
)

// Compare flattens a proposal set into chart rows and flags the cheapest
// monthly payment and the lowest APR. Options with no payment are ignored
// when picking the winners.
func Compare(set model.ProposalSet) []model.ComparisonRow {
	rows := []model.ComparisonRow{}
	lowestPayment, lowestAPR := -1, -1

	for _, p := range set {
		for _, o := range p.Options {
			rows = append(rows, model.ComparisonRow{
				Product:        p.Type,
				Option:         o.ProductLabel,
				MonthlyPayment: money.Round2(o.MonthlyPayment),
				APR:            o.APR,
				TotalInterest:  money.Round2(finance.TotalInterest(o.LoanAmount, o.NominalRate, o.TermMonths)),
				CashToBorrower: o.CashToBorrower,
			})

			i := len(rows) - 1
			if o.MonthlyPayment <= 0 {
				continue
			}
			if lowestPayment < 0 || rows[i].MonthlyPayment < rows[lowestPayment].MonthlyPayment {
				lowestPayment = i
			}
			if lowestAPR < 0 || rows[i].APR < rows[lowestAPR].APR {
				lowestAPR = i
			}
		}
	}

	if lowestPayment >= 0 {
		rows[lowestPayment].LowestPayment = true
	}
	if lowestAPR >= 0 {
		rows[lowestAPR].LowestAPR = true
	}
	return rows
}
