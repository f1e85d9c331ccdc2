package repository

import "time"

// Account represents an accounts row. Address is the 0x-prefixed checksummed hex.
type Account struct {
	Address   string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Token represents a tokens row.
type Token struct {
	CurrencyID  string
	ChainID     int64
	Address     string
	Name        string
	Symbol      string
	LogoURL     *string
	IsNative    bool
	Decimals    int
	SafetyLevel string
}

// Balance is what an account holds of a token. Quantity and PriceUSD are decimal strings.
type Balance struct {
	AccountAddress string
	CurrencyID     string
	Quantity       string
	PriceUSD       *string
	UpdatedAt      time.Time
}

// NameRecord maps an address to an ENS name or unitag.
type NameRecord struct {
	Address   string
	Kind      string
	Value     string
	AvatarURI *string
}

// Dismissal records an acknowledged token warning.
type Dismissal struct {
	CurrencyID  string
	DismissedAt time.Time
}
