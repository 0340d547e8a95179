package domain

type PaymentEvent struct {
	PaymentID string
	State     PaymentState
	Updated   string
}

type PaymentEvents struct {
	PaymentID string
	Events    []PaymentEvent
}
