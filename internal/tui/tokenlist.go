package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/locale"
	"github.com/jask/jaskwallet/internal/safety"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/wallet"
)

const (
	logoWidth     = 12
	nameWidth     = 22
	quantityWidth = 20
	fiatWidth     = 14
	addressWidth  = 13
)

// visibleOptions applies the small balance filter and the search query.
func (a *App) visibleOptions() []wallet.TokenOption {
	opts := a.options
	if a.cfg.Tokens.HideSmallBalances {
		opts = service.HideSmallBalances(opts, decimal.NewFromFloat(a.cfg.Tokens.SmallBalanceUSD))
	}
	return service.Search(opts, a.search.Value())
}

// rowDimmed reports whether a row is drawn faded: blocked tokens while
// warnings are on.
func (a *App) rowDimmed(opt wallet.TokenOption) bool {
	return a.cfg.Tokens.WarningsEnabled && opt.Currency.SafetyLevel == safety.Blocked
}

// renderTokenRow draws one token. withAddress adds the shortened contract
// address of non-native tokens, used while searching to tell look-alikes apart.
func (a *App) renderTokenRow(opt wallet.TokenOption, selected, withAddress bool) string {
	c := opt.Currency

	marker := " "
	if selected {
		marker = "▶"
	}
	name := nameStyle.Render(c.Name)
	if icon := SafetyIcon(c.SafetyLevel); icon != "" {
		name += " " + icon
	}
	cols := []string{marker, fitCells(TokenLogo(c), logoWidth), fitCells(name, nameWidth)}
	if withAddress {
		addr := ""
		if !c.IsNative {
			addr = mutedStyle.Render(identity.ShortenAddress(c.Address, 4))
		}
		cols = append(cols, fitCells(addr, addressWidth))
	}
	if !opt.Quantity.IsZero() {
		qty := a.deps.Format.FormatNumber(opt.Quantity, locale.TokenQuantity) + " " + c.Symbol
		fiat := a.deps.Format.FormatFiatOptional(opt.BalanceUSD, locale.FiatBalance)
		cols = append(cols, padLeft(qty, quantityWidth), padLeft(fiat, fiatWidth))
	}

	row := strings.TrimRight(strings.Join(cols, " "), " ")
	if a.rowDimmed(opt) {
		row = dimStyle.Render(ansi.Strip(row))
	}
	if selected {
		return cursorStyle.Render(row)
	}
	return row
}

func padLeft(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func (a *App) renderTokenList() string {
	if !a.loaded {
		return mutedStyle.Render("loading balances...")
	}
	opts := a.visibleOptions()
	if len(opts) == 0 {
		if a.search.Value() != "" {
			return mutedStyle.Render("No tokens match " + fmt.Sprintf("%q", a.search.Value()))
		}
		return mutedStyle.Render("No tokens yet")
	}
	rows := make([]string, 0, len(opts))
	for i, opt := range opts {
		rows = append(rows, a.renderTokenRow(opt, i == a.cursor, a.search.Value() != ""))
	}
	return strings.Join(rows, "\n")
}
