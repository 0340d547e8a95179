package domain

type Agreement struct {
	ID             string
	Reference      string
	Description    string
	UserIdentifier string
	Status         string
	CreatedDate    string
}

type Mandate struct {
	ID              string
	Reference       string
	Description     string
	ReturnURL       string
	State           string
	PaymentProvider string
	CreatedDate     string
	NextURL         *Link
}
