package proposal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/proposal"
)

func cashOutLead() model.BorrowerFacts {
	return model.BorrowerFacts{
		Name:           "John Smith",
		PropertyValue:  400000,
		CurrentBalance: 200000,
		CashOutAmount:  50000,
	}
}

func testRates() model.RateSheet {
	rates := model.DefaultRateSheet()
	rates.HELOC.Fees = 500
	return rates
}

func TestCashOutPrimaryLoanAmount(t *testing.T) {
	engine := proposal.NewEngine(cashOutLead(), testRates())

	p := engine.CashOutPrimary()

	require.Len(t, p.Options, 2)
	assert.Equal(t, 255600.0, p.Options[0].LoanAmount)
	assert.Equal(t, 254050.0, p.Options[1].LoanAmount)
	for _, o := range p.Options {
		assert.Equal(t, 360, o.TermMonths)
		assert.Equal(t, 50000.0, o.CashToBorrower)
		assert.Greater(t, o.APR, o.NominalRate)
		assert.Greater(t, o.MonthlyPayment, 0.0)
	}
	assert.Contains(t, p.Description, "$50,000")
}

func TestCashOutPrimaryProductByVeteranStatus(t *testing.T) {
	lead := cashOutLead()
	assert.Contains(t, proposal.NewEngine(lead, testRates()).CashOutPrimary().Type, "FHA")

	lead.IsVeteran = true
	rates := testRates()
	rates.VA.Cost1 = 3000
	p := proposal.NewEngine(lead, rates).CashOutPrimary()
	assert.Contains(t, p.Type, "VA")
	assert.Equal(t, 253000.0, p.Options[0].LoanAmount)
}

func TestHELOC(t *testing.T) {
	p := proposal.NewEngine(cashOutLead(), testRates()).HELOC()

	require.Len(t, p.Options, 1)
	o := p.Options[0]
	assert.Equal(t, 50500.0, o.LoanAmount)
	assert.Equal(t, 120, o.TermMonths)
	assert.Equal(t, 500.0, o.UpfrontCost)
	assert.NotEmpty(t, o.Note)
}

func TestHELOAN(t *testing.T) {
	p := proposal.NewEngine(cashOutLead(), testRates()).HELOAN()

	require.Len(t, p.Options, 2)
	assert.Equal(t, 51700.0, p.Options[0].LoanAmount)
	assert.Equal(t, 240, p.Options[0].TermMonths)
	assert.Equal(t, 52500.0, p.Options[1].LoanAmount)
	assert.Equal(t, 360, p.Options[1].TermMonths)
}

func TestRateTermPrimary(t *testing.T) {
	lead := cashOutLead()
	lead.CashOutAmount = 0

	p := proposal.NewEngine(lead, testRates()).RateTermPrimary()

	assert.Contains(t, p.Type, "Conventional")
	assert.Equal(t, 207000.0, p.Options[0].LoanAmount)
	assert.Equal(t, 204500.0, p.Options[1].LoanAmount)
	assert.Zero(t, p.Options[0].CashToBorrower)
}

func TestGenerateAllCashOut(t *testing.T) {
	set := proposal.NewEngine(cashOutLead(), testRates()).GenerateAll()

	require.Len(t, set, 3)
	assert.Equal(t, model.ProposalCashOut, set[0].Kind)
	assert.Equal(t, model.ProposalHELOC, set[1].Kind)
	assert.Equal(t, model.ProposalHELOAN, set[2].Kind)
}

func TestGenerateAllRateTermZeroesSecondLiens(t *testing.T) {
	lead := cashOutLead()
	lead.CashOutAmount = 0
	engine := proposal.NewEngine(lead, testRates())

	set := engine.GenerateAll()

	require.Len(t, set, 3)
	assert.Equal(t, model.ProposalRateTerm, set[0].Kind)
	assert.Equal(t, 500.0, set[1].Options[0].LoanAmount)
	for _, p := range set[1:] {
		for _, o := range p.Options {
			assert.Zero(t, o.CashToBorrower)
		}
	}
}

func TestGenerateAllIsRepeatable(t *testing.T) {
	engine := proposal.NewEngine(cashOutLead(), testRates())

	assert.Equal(t, engine.GenerateAll(), engine.GenerateAll())
}

func TestZeroRateSheetDegradesWithoutPanic(t *testing.T) {
	set := proposal.NewEngine(cashOutLead(), model.RateSheet{}).GenerateAll()

	for _, p := range set {
		for _, o := range p.Options {
			assert.Zero(t, o.MonthlyPayment)
			assert.Zero(t, o.APR)
		}
	}
}
