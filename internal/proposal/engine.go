// Package proposal prices the refinance alternatives shown to a borrower.
package proposal

import (
	"fmt"

	"github.com/unclebandit/proposal-backend/internal/finance"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/money"
)

const (
	termThirtyYears = 360
	termTwentyYears = 240
	termHELOC       = 120
)

// Engine builds proposals from one borrower snapshot and one rate sheet.
// It holds no other state; build a new Engine when either input changes.
type Engine struct {
	facts model.BorrowerFacts
	rates model.RateSheet
}

func NewEngine(facts model.BorrowerFacts, rates model.RateSheet) *Engine {
	return &Engine{facts: facts, rates: rates}
}

// GenerateAll returns the primary product followed by HELOC and HELOAN.
// Without cash-out intent the second-lien products are still priced, with
// zero cash to the borrower.
func (e *Engine) GenerateAll() model.ProposalSet {
	if e.facts.IsCashOut() {
		return model.ProposalSet{
			e.CashOutPrimary(),
			e.HELOC(),
			e.HELOAN(),
		}
	}

	return model.ProposalSet{
		e.RateTermPrimary(),
		e.heloc(0),
		e.heloan(0),
	}
}

// CashOutPrimary prices a 30-year VA refinance for veterans and FHA otherwise.
func (e *Engine) CashOutPrimary() model.Proposal {
	loanType, pricing := "FHA", e.rates.FHA
	if e.facts.IsVeteran {
		loanType, pricing = "VA", e.rates.VA
	}

	base := e.facts.CurrentBalance + e.facts.CashOutAmount
	return model.Proposal{
		Kind: model.ProposalCashOut,
		Type: fmt.Sprintf("Cash Out Refinance (%s)", loanType),
		Description: fmt.Sprintf(
			"This option replaces your current mortgage with a new %s loan, giving you %s in cash.",
			loanType, money.USD(e.facts.CashOutAmount),
		),
		Options: []model.LoanOption{
			price("Option A", "30 Year Fixed", base+pricing.Cost1, pricing.Rate1, pricing.Cost1, termThirtyYears, e.facts.CashOutAmount),
			price("Option B", "30 Year Fixed", base+pricing.Cost2, pricing.Rate2, pricing.Cost2, termThirtyYears, e.facts.CashOutAmount),
		},
	}
}

// RateTermPrimary prices a conventional 30-year refinance of the existing balance.
func (e *Engine) RateTermPrimary() model.Proposal {
	pricing := e.rates.Conventional
	base := e.facts.CurrentBalance

	return model.Proposal{
		Kind:        model.ProposalRateTerm,
		Type:        "Rate/Term Refinance (Conventional)",
		Description: "This option replaces your current mortgage with a new loan at a better rate, potentially lowering your monthly payment.",
		Options: []model.LoanOption{
			price("Option A", "30 Year Fixed", base+pricing.Cost1, pricing.Rate1, pricing.Cost1, termThirtyYears, 0),
			price("Option B", "30 Year Fixed", base+pricing.Cost2, pricing.Rate2, pricing.Cost2, termThirtyYears, 0),
		},
	}
}

// HELOC prices the line of credit as if it amortized over ten years. The
// product is revolving; the payment is an interest-bearing approximation.
func (e *Engine) HELOC() model.Proposal {
	return e.heloc(e.facts.CashOutAmount)
}

// HELOAN prices 20- and 30-year fixed second mortgages.
func (e *Engine) HELOAN() model.Proposal {
	return e.heloan(e.facts.CashOutAmount)
}

func (e *Engine) heloc(cashOut float64) model.Proposal {
	pricing := e.rates.HELOC

	option := price("HELOC", "10 Year ARM", cashOut+pricing.Fees, pricing.Rate, pricing.Fees, termHELOC, cashOut)
	option.Note = "You keep your existing mortgage"

	return model.Proposal{
		Kind:        model.ProposalHELOC,
		Type:        "Home Equity Line of Credit (HELOC)",
		Description: "A revolving line of credit (like a credit card) secured by your home. This is a second mortgage.",
		Options:     []model.LoanOption{option},
	}
}

func (e *Engine) heloan(cashOut float64) model.Proposal {
	pricing := e.rates.HELOAN

	return model.Proposal{
		Kind:        model.ProposalHELOAN,
		Type:        "Home Equity Loan (HELOAN)",
		Description: "A fixed-rate second mortgage with predictable monthly payments. You keep your existing mortgage.",
		Options: []model.LoanOption{
			price("20-Year Fixed", "20 Year Fixed", cashOut+pricing.Cost1, pricing.Rate1, pricing.Cost1, termTwentyYears, cashOut),
			price("30-Year Fixed", "30 Year Fixed", cashOut+pricing.Cost2, pricing.Rate2, pricing.Cost2, termThirtyYears, cashOut),
		},
	}
}

func price(label, term string, loanAmount, rate, cost float64, termMonths int, cashToBorrower float64) model.LoanOption {
	apr := finance.SolveAPRResult(loanAmount, rate, cost, termMonths)

	return model.LoanOption{
		ProductLabel:   label,
		Term:           term,
		LoanAmount:     loanAmount,
		NominalRate:    rate,
		APR:            apr.APR,
		APRExact:       apr.Exact,
		TermMonths:     termMonths,
		MonthlyPayment: finance.MonthlyPayment(loanAmount, rate, termMonths),
		UpfrontCost:    cost,
		CashToBorrower: cashToBorrower,
	}
}
