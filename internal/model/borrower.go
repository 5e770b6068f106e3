package model

import "fmt"

// BorrowerFacts is the intake snapshot a proposal or campaign is built from.
// Optional fields are left at their zero value when the intake did not capture them.
type BorrowerFacts struct {
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	PropertyValue  float64  `json:"property_value"`
	CurrentBalance float64  `json:"current_balance"`
	CashOutAmount  float64  `json:"cash_out_amount"`
	IsVeteran      bool     `json:"is_veteran"`
	AnnualIncome   *float64 `json:"annual_income,omitempty"`
	Address        string   `json:"address,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
}

// IsCashOut reports whether the borrower asked to take equity out.
func (b BorrowerFacts) IsCashOut() bool {
	return b.CashOutAmount > 0
}

func (b BorrowerFacts) Validate() error {
	if b.PropertyValue < 0 {
		return fmt.Errorf("property_value must not be negative")
	}
	if b.CurrentBalance < 0 {
		return fmt.Errorf("current_balance must not be negative")
	}
	if b.CashOutAmount < 0 {
		return fmt.Errorf("cash_out_amount must not be negative")
	}
	if b.AnnualIncome != nil && *b.AnnualIncome < 0 {
		return fmt.Errorf("annual_income must not be negative")
	}
	return nil
}
