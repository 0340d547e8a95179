package domain

type Refund struct {
	ID                string
	PaymentID         string
	Amount            int64
	Status            string
	CreatedDate       string
	SettlementSummary *SettlementSummary
}

type Refunds struct {
	PaymentID string
	Refunds   []Refund
}
