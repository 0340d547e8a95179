package domain

type TokenType string

const (
	TokenTypeCard        TokenType = "CARD"
	TokenTypeDirectDebit TokenType = "DIRECT_DEBIT"
)

// Account is the gateway account a bearer token was issued for. It is
// resolved by the token issuer; the gateway only reads it.
type Account struct {
	ID        string
	TokenType TokenType
	Live      bool
}

func (a Account) IsLive() bool { return a.Live }
