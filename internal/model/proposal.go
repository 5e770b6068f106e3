package model

// LoanOption is one priced alternative inside a proposal. It is never mutated;
// a changed input means a fresh proposal set.
type LoanOption struct {
	ProductLabel   string  `json:"product_label"`
	Term           string  `json:"term"`
	LoanAmount     float64 `json:"loan_amount"`
	NominalRate    float64 `json:"nominal_rate"`
	APR            float64 `json:"apr"`
	APRExact       bool    `json:"apr_exact"`
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	UpfrontCost    float64 `json:"upfront_cost"`
	CashToBorrower float64 `json:"cash_to_borrower"`
	Note           string  `json:"note,omitempty"`
}

type ProposalKind string

const (
	ProposalCashOut  ProposalKind = "cash_out"
	ProposalRateTerm ProposalKind = "rate_term"
	ProposalHELOC    ProposalKind = "heloc"
	ProposalHELOAN   ProposalKind = "heloan"
)

type Proposal struct {
	Kind        ProposalKind `json:"kind"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Options     []LoanOption `json:"options"`
}

// ProposalSet is the primary product followed by HELOC and HELOAN.
type ProposalSet []Proposal

// ComparisonRow flattens one option for charting.
type ComparisonRow struct {
	Product        string  `json:"product"`
	Option         string  `json:"option"`
	MonthlyPayment float64 `json:"monthly_payment"`
	APR            float64 `json:"apr"`
	TotalInterest  float64 `json:"total_interest"`
	CashToBorrower float64 `json:"cash_to_borrower"`
	LowestPayment  bool    `json:"lowest_payment"`
	LowestAPR      bool    `json:"lowest_apr"`
}
