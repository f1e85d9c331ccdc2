package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"

	"github.com/jask/jaskwallet/internal/safety"
	"github.com/jask/jaskwallet/internal/wallet"
)

var avatarPalette = []lipgloss.Color{"#f5c2e7", "#cba6f7", "#fab387", "#a6e3a1", "#94e2d5", "#89dceb", "#74c7ec", "#b4befe"}

// TokenLogo renders a short symbol badge, plus a network badge off mainnet.
func TokenLogo(c wallet.CurrencyInfo) string {
	sym := strings.ToUpper(c.Symbol)
	if utf8.RuneCountInString(sym) > 4 {
		sym = string([]rune(sym)[:4])
	}
	if sym == "" {
		sym = "?"
	}
	badge := accentStyle.Render("[" + sym + "]")
	if c.ChainID != 1 && c.ChainID != 0 {
		badge += mutedStyle.Render("·" + networkBadge(c.ChainID))
	}
	return badge
}

func networkBadge(chainID int64) string {
	name := wallet.ChainName(chainID)
	if strings.HasPrefix(name, "Chain ") {
		return name
	}
	return strings.ToLower(string([]rune(name)[:min(3, utf8.RuneCountInString(name))]))
}

// SafetyIcon marks tokens in the list. Only strong warnings and blocked tokens
// get an icon; medium warnings surface when the token is selected.
func SafetyIcon(level safety.Level) string {
	switch level {
	case safety.StrongWarning:
		return warnStrongStyle.Render("⚠!")
	case safety.Blocked:
		return blockedStyle.Render("⛔")
	default:
		return ""
	}
}

// SafetyLabel is the long form of SafetyIcon used on the details screen.
func SafetyLabel(level safety.Level) string {
	switch level {
	case safety.MediumWarning:
		return warnMediumStyle.Render("⚠ Unverified")
	case safety.StrongWarning:
		return warnStrongStyle.Render("⚠ Suspicious")
	case safety.Blocked:
		return blockedStyle.Render("⛔ Blocked")
	default:
		return verifiedStyle.Render("✓ Verified")
	}
}

// AvatarGlyph draws the account avatar. Accounts with a resolved avatar get a
// filled disc; the rest get a disc coloured from the address.
func AvatarGlyph(addr common.Address, hasAvatar bool) string {
	color := avatarPalette[int(addr[common.AddressLength-1])%len(avatarPalette)]
	glyph := "●"
	if hasAvatar {
		glyph = "◉"
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(glyph)
}
