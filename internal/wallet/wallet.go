// Package wallet holds the view-facing wallet types shared by the store, services and TUI.
package wallet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/jask/jaskwallet/internal/safety"
)

// Account is a wallet account the user can switch between.
type Account struct {
	Address common.Address
	Name    string
}

// CurrencyInfo is a token's display identity.
type CurrencyInfo struct {
	CurrencyID  string
	ChainID     int64
	Address     common.Address
	Name        string
	Symbol      string
	LogoURL     string
	IsNative    bool
	Decimals    int
	SafetyLevel safety.Level
}

// TokenOption is one row of the token list: a token plus what the active account holds of it.
type TokenOption struct {
	Currency   CurrencyInfo
	Quantity   decimal.Decimal
	BalanceUSD decimal.NullDecimal
}

// ID is the key used for warning dismissals.
func (o TokenOption) ID() string { return o.Currency.CurrencyID }

// CurrencyID builds the "<chainID>-<lowercase address>" identity of a token.
func CurrencyID(chainID int64, addr common.Address) string {
	return fmt.Sprintf("%d-%s", chainID, strings.ToLower(addr.Hex()))
}

// ChainName returns a short label for well-known chains.
func ChainName(chainID int64) string {
	switch chainID {
	case 1:
		return "Ethereum"
	case 10:
		return "Optimism"
	case 56:
		return "BNB"
	case 137:
		return "Polygon"
	case 8453:
		return "Base"
	case 42161:
		return "Arbitrum"
	default:
		return fmt.Sprintf("Chain %d", chainID)
	}
}
