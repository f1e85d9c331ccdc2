package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress validates s and returns the address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ShortenAddress keeps chars hex digits on each side of the checksummed address,
// e.g. 0xd8dA...6045 for chars = 4.
func ShortenAddress(addr common.Address, chars int) string {
	hex := addr.Hex()
	if chars <= 0 || 2+2*chars >= len(hex) {
		return hex
	}
	return hex[:2+chars] + "..." + hex[len(hex)-chars:]
}
