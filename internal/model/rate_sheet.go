package model

import "fmt"

// PricingPoints holds the two competing rate/cost pairs quoted for an amortizing product.
// Rates are percentages (6.5 means 6.5%).
type PricingPoints struct {
	Rate1 float64 `json:"rate1"`
	Rate2 float64 `json:"rate2"`
	Cost1 float64 `json:"cost1"`
	Cost2 float64 `json:"cost2"`
}

type HELOCPricing struct {
	Rate float64 `json:"rate"`
	Fees float64 `json:"fees"`
}

// RateSheet is the operator's daily pricing, read-only to the proposal engine.
type RateSheet struct {
	EffectiveDate string        `json:"effective_date,omitempty"`
	FHA           PricingPoints `json:"fha"`
	VA            PricingPoints `json:"va"`
	Conventional  PricingPoints `json:"conventional"`
	HELOC         HELOCPricing  `json:"heloc"`
	HELOAN        PricingPoints `json:"heloan"`
}

// DefaultRateSheet returns the starting pricing the desk opens with before the
// operator enters the day's numbers.
func DefaultRateSheet() RateSheet {
	return RateSheet{
		FHA:          PricingPoints{Rate1: 4.990, Rate2: 5.125, Cost1: 5600, Cost2: 4050},
		VA:           PricingPoints{Rate1: 4.990, Rate2: 5.125, Cost1: 5600, Cost2: 4050},
		Conventional: PricingPoints{Rate1: 6.000, Rate2: 6.750, Cost1: 7000, Cost2: 4500},
		HELOC:        HELOCPricing{Rate: 7.600, Fees: 2892},
		HELOAN:       PricingPoints{Rate1: 5.900, Rate2: 6.525, Cost1: 1700, Cost2: 2500},
	}
}

func (p PricingPoints) validate(product string) error {
	if p.Rate1 < 0 || p.Rate2 < 0 {
		return fmt.Errorf("%s: rates must not be negative", product)
	}
	if p.Cost1 < 0 || p.Cost2 < 0 {
		return fmt.Errorf("%s: costs must not be negative", product)
	}
	return nil
}

func (r RateSheet) Validate() error {
	products := []struct {
		name   string
		points PricingPoints
	}{
		{"fha", r.FHA},
		{"va", r.VA},
		{"conventional", r.Conventional},
		{"heloan", r.HELOAN},
	}
	for _, p := range products {
		if err := p.points.validate(p.name); err != nil {
			return err
		}
	}
	if r.HELOC.Rate < 0 || r.HELOC.Fees < 0 {
		return fmt.Errorf("heloc: rate and fees must not be negative")
	}
	return nil
}
