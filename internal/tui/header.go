package tui

import (
	"strings"

	"github.com/jask/jaskwallet/internal/identity"
)

// renderHeader shows the active account. Without an active address it renders
// nothing; without a display name only the address line is shown.
func (a *App) renderHeader() string {
	addr, ok := a.deps.State.ActiveAddress()
	if !ok {
		return ""
	}
	var hasAvatar bool
	if a.deps.Avatars != nil {
		_, hasAvatar = a.deps.Avatars.Avatar(a.ctx, addr)
	}
	var (
		name    identity.DisplayName
		hasName bool
	)
	if a.deps.Names != nil {
		name, hasName = a.deps.Names.DisplayName(a.ctx, addr)
	}

	short := identity.ShortenAddress(addr, 4)
	copyHint := keyStyle.Render("[c]") + " " + helpDescStyle.Render("copy")

	var lines []string
	first := AvatarGlyph(addr, hasAvatar)
	if hasName && name.Kind != identity.KindAddress {
		first += " " + nameStyle.Render(name.Value)
		if name.Kind == identity.KindUnitag {
			first += " " + accentStyle.Render("✓")
		}
		lines = append(lines, first, "  "+mutedStyle.Render(short)+"  "+copyHint)
	} else {
		lines = append(lines, first+" "+nameStyle.Render(short)+"  "+copyHint)
	}
	if acct, ok := a.deps.State.ActiveAccount(); ok && acct.Name != "" {
		lines[0] += "  " + mutedStyle.Render("("+acct.Name+")")
	}
	return strings.Join(lines, "\n")
}
