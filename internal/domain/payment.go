package domain

type PaymentState struct {
	Status   string
	Finished bool
	Code     string
	Message  string
}

type Address struct {
	Line1    string
	Line2    string
	Postcode string
	City     string
	Country  string
}

type CardDetails struct {
	LastDigits     string
	FirstDigits    string
	CardholderName string
	ExpiryDate     string
	CardBrand      string
	CardType       string
	BillingAddress *Address
}

type RefundSummary struct {
	Status          string
	AmountAvailable int64
	AmountSubmitted int64
}

type SettlementSummary struct {
	CaptureSubmitTime string
	CapturedDate      string
	SettledDate       string
}

// Payment is the backend-agnostic view of a charge, built from either a
// connector charge or a ledger transaction.
type Payment struct {
	ID                string
	Amount            int64
	Description       string
	Reference         string
	Language          string
	Email             string
	ReturnURL         string
	State             PaymentState
	PaymentProvider   string
	CreatedDate       string
	DelayedCapture    bool
	Moto              bool
	Fee               *int64
	NetAmount         *int64
	TotalAmount       *int64
	RefundSummary     *RefundSummary
	SettlementSummary *SettlementSummary
	CardDetails       *CardDetails
	Metadata          map[string]any
	AgreementID       string
	AuthorisationMode string
	NextURL           *Link
	Cancellable       bool
	Capturable        bool
}
