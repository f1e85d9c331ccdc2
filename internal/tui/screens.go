package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/locale"
	"github.com/jask/jaskwallet/internal/wallet"
)

type settingItem int

const (
	settingWarnings settingItem = iota
	settingHideSmall
	settingResetDismissals
	settingResetWallet
	settingCount
)

func (a *App) handleDetailsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Back) {
		a.nav.Back()
	}
	return a, nil
}

func (a *App) handleAccountsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	accounts := a.deps.State.Accounts()
	switch {
	case key.Matches(m, a.keys.Back):
		a.nav.Back()
	case key.Matches(m, a.keys.Up):
		if a.accountCursor > 0 {
			a.accountCursor--
			return a, a.hapticSelection()
		}
	case key.Matches(m, a.keys.Down):
		if a.accountCursor < len(accounts)-1 {
			a.accountCursor++
			return a, a.hapticSelection()
		}
	case key.Matches(m, a.keys.Select):
		if a.accountCursor < len(accounts) {
			return a, a.switchAccount(accounts[a.accountCursor].Address)
		}
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		a.nav.Back()
	case key.Matches(m, a.keys.Up):
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.settingsCursor < int(settingCount)-1 {
			a.settingsCursor++
		}
	case key.Matches(m, a.keys.Toggle):
		switch settingItem(a.settingsCursor) {
		case settingWarnings:
			a.cfg.Tokens.WarningsEnabled = !a.cfg.Tokens.WarningsEnabled
			a.gate.SetWarningsEnabled(a.cfg.Tokens.WarningsEnabled)
			return a, a.saveConfigCmd()
		case settingHideSmall:
			a.cfg.Tokens.HideSmallBalances = !a.cfg.Tokens.HideSmallBalances
			a.clampCursor()
			return a, a.saveConfigCmd()
		case settingResetDismissals:
			return a, a.resetDismissalsCmd()
		case settingResetWallet:
			a.confirmReset = true
		}
	}
	return a, nil
}

func (a *App) renderTokenDetails() string {
	help := helpLine(a.keys.Back, a.keys.Quit)
	id := a.nav.Current().Params["currencyId"]
	opt, ok := a.optionByID(id)
	if !ok {
		return titleStyle.Render("Token") + "\n" + mutedStyle.Render("Token not found") + "\n\n" + help
	}
	c := opt.Currency
	f := a.deps.Format

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(TokenLogo(c) + " " + c.Symbol + "  " + SafetyLabel(c.SafetyLevel))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Network:  %s\n", wallet.ChainName(c.ChainID))
	if c.IsNative {
		b.WriteString("Contract: " + mutedStyle.Render("native asset") + "\n")
	} else {
		b.WriteString("Contract: " + identity.ShortenAddress(c.Address, 6) + "\n")
	}
	fmt.Fprintf(&b, "Decimals: %s\n", f.FormatNumber(decimal.NewFromInt(int64(c.Decimals)), locale.Integer))
	fmt.Fprintf(&b, "Balance:  %s %s\n", f.FormatNumber(opt.Quantity, locale.TokenQuantity), c.Symbol)
	fmt.Fprintf(&b, "Value:    %s\n", f.FormatFiatOptional(opt.BalanceUSD, locale.FiatBalance))
	if opt.BalanceUSD.Valid && a.totalUSD.IsPositive() {
		share := opt.BalanceUSD.Decimal.Div(a.totalUSD).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(&b, "Share:    %s\n", f.FormatNumber(share, locale.Percent))
	}
	price := decimal.NullDecimal{}
	if opt.BalanceUSD.Valid && !opt.Quantity.IsZero() {
		price = decimal.NewNullDecimal(opt.BalanceUSD.Decimal.Div(opt.Quantity))
	}
	fmt.Fprintf(&b, "Price:    %s\n", f.FormatFiatOptional(price, locale.FiatPrice))
	if c.LogoURL != "" {
		b.WriteString("Logo:     " + mutedStyle.Render(c.LogoURL) + "\n")
	}
	b.WriteString("\n" + help)
	return b.String()
}

func (a *App) renderAccounts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n")
	accounts := a.deps.State.Accounts()
	if len(accounts) == 0 {
		b.WriteString(mutedStyle.Render("No accounts") + "\n")
	}
	active, hasActive := a.deps.State.ActiveAddress()
	for i, acct := range accounts {
		marker := " "
		if i == a.accountCursor {
			marker = "▶"
		}
		label := acct.Name
		if a.deps.Names != nil {
			if dn, ok := a.deps.Names.DisplayName(a.ctx, acct.Address); ok && dn.Kind != identity.KindAddress {
				label = strings.TrimSpace(label + " " + mutedStyle.Render(dn.Value))
			}
		}
		line := fmt.Sprintf("%s %s %s  %s", marker, AvatarGlyph(acct.Address, false), nameStyle.Render(label), identity.ShortenAddress(acct.Address, 4))
		if hasActive && acct.Address == active {
			line += "  " + accentStyle.Render("(active)")
			if a.loaded {
				line += " " + mutedStyle.Render(a.deps.Format.FormatFiat(a.totalUSD, locale.FiatCompact))
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpLine(a.keys.Up, a.keys.Down, a.keys.Select, a.keys.Back, a.keys.Quit))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return verifiedStyle.Render("on")
	}
	return mutedStyle.Render("off")
}

func (a *App) renderSettings() string {
	threshold := a.deps.Format.FormatFiat(decimal.NewFromFloat(a.cfg.Tokens.SmallBalanceUSD), locale.FiatBalance)
	rows := []string{
		fmt.Sprintf("%-26s %s", "Token warnings", onOff(a.cfg.Tokens.WarningsEnabled)),
		fmt.Sprintf("%-26s %s  %s", "Hide small balances", onOff(a.cfg.Tokens.HideSmallBalances), mutedStyle.Render("under "+threshold)),
		"Reset dismissed warnings",
		"Reset wallet data",
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	for i, r := range rows {
		marker := " "
		if i == a.settingsCursor {
			marker = "▶"
		}
		b.WriteString(marker + " " + r + "\n")
	}
	b.WriteString("\n" + helpLine(a.keys.Up, a.keys.Down, a.keys.Toggle, a.keys.Back, a.keys.Quit))
	return b.String()
}

func (a *App) renderConfirmReset(base string) string {
	var b strings.Builder
	b.WriteString(blockedStyle.Render("Reset wallet data?"))
	b.WriteString("\n\n")
	b.WriteString("Accounts, tokens, balances, names and dismissed\nwarnings are removed. Settings are kept.")
	b.WriteString("\n\n")
	b.WriteString(helpLine(a.keys.Confirm, a.keys.Cancel))
	return renderPopup(base, b.String(), a.width, a.height, colorError)
}
