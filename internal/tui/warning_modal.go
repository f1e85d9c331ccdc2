package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"

	"github.com/jask/jaskwallet/internal/safety"
	"github.com/jask/jaskwallet/internal/wallet"
)

type warningCopy struct {
	title  string
	body   string
	border lipgloss.Color
}

func warningText(level safety.Level, c wallet.CurrencyInfo) warningCopy {
	label := c.Symbol
	if c.Name != "" {
		label = fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
	}
	switch level {
	case safety.Blocked:
		return warningCopy{
			title:  blockedStyle.Render("⛔ Token blocked"),
			body:   label + " has been blocked and can't be used from this wallet.",
			border: colorError,
		}
	case safety.StrongWarning:
		return warningCopy{
			title:  warnStrongStyle.Render("⚠ Suspicious token"),
			body:   label + " has been flagged as suspicious. It may be a scam or a copy of another token.\nCheck the contract address before doing anything with it.",
			border: colorDanger,
		}
	default:
		return warningCopy{
			title:  warnMediumStyle.Render("⚠ Unverified token"),
			body:   label + " isn't on any verified token list. Anyone can create a token,\nincluding fake versions of existing ones. Do your own research.",
			border: colorWarn,
		}
	}
}

// renderWarningModal draws the pending warning over base. The accept action is
// not offered for blocked tokens.
func (a *App) renderWarningModal(base string) string {
	pending, ok := a.gate.Pending()
	if !ok {
		return base
	}
	info := wallet.CurrencyInfo{CurrencyID: pending.TokenID, Symbol: pending.TokenID}
	if opt, found := a.optionByID(pending.TokenID); found {
		info = opt.Currency
	}
	text := warningText(pending.Level, info)

	var b strings.Builder
	b.WriteString(text.title)
	b.WriteString("\n\n")
	b.WriteString(text.body)
	if !info.IsNative && info.Address != (common.Address{}) {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(info.Address.Hex()))
	}
	b.WriteString("\n\n")
	if pending.Level.Dismissible() {
		b.WriteString(keyStyle.Render("[enter]") + " I understand  ")
	}
	b.WriteString(keyStyle.Render("[esc]") + " Close")
	return renderPopup(base, b.String(), a.width, a.height, text.border)
}
