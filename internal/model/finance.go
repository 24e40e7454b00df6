package model

// FinanceSummary is an FEC campaign finance summary for one cycle
type FinanceSummary struct {
	CandidateID             string  `json:"candidateId"`
	CandidateName           string  `json:"candidateName"`
	Cycle                   int     `json:"cycle"`
	Receipts                float64 `json:"receipts"`
	Disbursements           float64 `json:"disbursements"`
	CashOnHand              float64 `json:"cashOnHand"`
	Debts                   float64 `json:"debts"`
	IndividualContributions float64 `json:"individualContributions"`
	PACContributions        float64 `json:"pacContributions"`
	IndividualPercent       float64 `json:"individualPercent"`
	PACPercent              float64 `json:"pacPercent"`
	CoverageEndDate         string  `json:"coverageEndDate,omitempty"`
}
