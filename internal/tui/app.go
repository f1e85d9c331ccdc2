package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jask/jaskwallet/internal/config"
	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/locale"
	"github.com/jask/jaskwallet/internal/platform"
	"github.com/jask/jaskwallet/internal/safety"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
	"github.com/jask/jaskwallet/internal/wallet"
)

// PortfolioLoader loads the token list of one account.
type PortfolioLoader interface {
	Load(ctx context.Context, addr common.Address) (service.Snapshot, error)
}

// AccountActivator persists the active account.
type AccountActivator interface {
	SetActive(ctx context.Context, addr common.Address) error
}

// DismissalStore records warning dismissals and answers whether one exists.
type DismissalStore interface {
	safety.Dismisser
	Dismissed(ctx context.Context, tokenID string) (bool, error)
}

// Maintenance runs the destructive actions offered in settings.
type Maintenance interface {
	ResetDismissals(ctx context.Context) (int64, error)
	Reset(ctx context.Context) error
}

// Deps are the collaborators the App reads from and writes to.
type Deps struct {
	State       store.Reader
	Dispatch    store.Dispatcher
	Names       identity.NameResolver
	Avatars     identity.AvatarResolver
	Portfolio   PortfolioLoader
	Accounts    AccountActivator
	Dismissals  DismissalStore
	Maintenance Maintenance
	Format      *locale.Formatter
	Clipboard   platform.Clipboard
	Haptics     platform.Haptics
	SaveConfig  func(config.Config) error
	Log         *zap.Logger
}

// App ties together views.
type App struct {
	ctx    context.Context
	cfg    config.Config
	deps   Deps
	keys   keyMap
	nav    Navigator
	gate   *safety.Gate
	search textinput.Model

	options   []wallet.TokenOption
	dismissed map[string]bool
	totalUSD  decimal.Decimal
	loaded    bool

	cursor         int
	accountCursor  int
	settingsCursor int

	confirmReset bool

	status    string
	statusErr bool
	width     int
	height    int
	toastTTL  time.Duration
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	deps.Log = deps.Log.Named("tui")
	if deps.Haptics == nil {
		deps.Haptics = platform.NoHaptics{}
	}
	if deps.Format == nil {
		f, err := locale.New(cfg.UI.Language, cfg.UI.CurrencySymbol)
		if err != nil {
			deps.Log.Warn("falling back to default locale", zap.Error(err))
			f, _ = locale.New("", cfg.UI.CurrencySymbol)
		}
		deps.Format = f
	}

	search := textinput.New()
	search.Placeholder = "search tokens"
	search.Prompt = "/ "

	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		deps:      deps,
		keys:      defaultKeys(),
		nav:       newRouteStack(ScreenPortfolio),
		search:    search,
		dismissed: map[string]bool{},
		totalUSD:  decimal.Zero,
		toastTTL:  2 * time.Second,
	}
	a.gate = safety.NewGate(dismissRecorder{a: a},
		safety.WithWarningsEnabled(cfg.Tokens.WarningsEnabled),
		safety.WithBlurInput(func() { a.search.Blur() }),
	)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadPortfolio()
}

func (a *App) loadPortfolio() tea.Cmd {
	addr, ok := a.deps.State.ActiveAddress()
	if !ok || a.deps.Portfolio == nil {
		return func() tea.Msg { return portfolioMsg{} }
	}
	return func() tea.Msg {
		snap, err := a.deps.Portfolio.Load(a.ctx, addr)
		if err != nil {
			return errMsg{err}
		}
		return portfolioMsg{snapshot: snap}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		if a.gate.State() == safety.WarningVisible {
			return a.handleWarningKey(m)
		}
		if a.confirmReset {
			return a.handleConfirmResetKey(m)
		}
		if a.search.Focused() {
			return a.handleSearchKey(m)
		}
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		switch a.nav.Current().Screen {
		case ScreenAccounts:
			return a.handleAccountsKey(m)
		case ScreenSettings:
			return a.handleSettingsKey(m)
		case ScreenTokenDetails:
			return a.handleDetailsKey(m)
		default:
			return a.handlePortfolioKey(m)
		}
	case portfolioMsg:
		if active, ok := a.deps.State.ActiveAddress(); ok && m.snapshot.Address != (common.Address{}) && m.snapshot.Address != active {
			// stale load for an account we already switched away from
			return a, nil
		}
		a.options = m.snapshot.Options
		a.totalUSD = m.snapshot.TotalUSD
		a.dismissed = map[string]bool{}
		for id, ok := range m.snapshot.Dismissed {
			a.dismissed[id] = ok
		}
		a.loaded = true
		a.clampCursor()
	case addressCopiedMsg:
		a.deps.Log.Debug("address copied", zap.Stringer("address", m.address))
		return a, a.notifyCopied()
	case copyFailedMsg:
		a.deps.Log.Error("copy address", zap.Error(m.err))
		a.setError(m.err)
		return a, a.notify(store.NotificationError, "Couldn't copy address")
	case notificationExpiredMsg:
		if err := a.deps.Dispatch.Dispatch(store.PopNotification{ID: m.id}); err != nil {
			a.deps.Log.Debug("pop notification", zap.Error(err))
		}
	case accountSwitchedMsg:
		a.setStatus("switched to " + identity.ShortenAddress(m.address, 4))
		return a, tea.Batch(a.loadPortfolio(), a.hapticSelection())
	case dismissalsResetMsg:
		a.dismissed = map[string]bool{}
		a.setStatus(fmt.Sprintf("%d dismissed warnings reset", m.count))
		return a, a.notify(store.NotificationInfo, "Warnings will show again")
	case walletResetMsg:
		if err := a.deps.Dispatch.Dispatch(store.SetAccounts{}); err != nil {
			a.setError(err)
			return a, nil
		}
		a.nav.Reset()
		a.options = nil
		a.dismissed = map[string]bool{}
		a.totalUSD = decimal.Zero
		a.loaded = false
		a.cursor = 0
		a.search.Reset()
		a.setStatus("wallet data reset")
		return a, tea.Batch(a.notify(store.NotificationInfo, "Wallet data reset"), a.loadPortfolio())
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.deps.Log.Error("command failed", zap.Error(m.error))
		a.setError(m.error)
	}
	if a.search.Focused() {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.nav.Current().Screen {
	case ScreenTokenDetails:
		body = a.renderTokenDetails()
	case ScreenAccounts:
		body = a.renderAccounts()
	case ScreenSettings:
		body = a.renderSettings()
	default:
		body = a.renderPortfolio()
	}
	if toast := a.renderToast(); toast != "" {
		body += "\n" + toast
	}
	if a.status != "" {
		if a.statusErr {
			body += "\n" + statusErrStyle.Render(a.status)
		} else {
			body += "\n" + statusStyle.Render(a.status)
		}
	}
	switch {
	case a.gate.State() == safety.WarningVisible:
		body = a.renderWarningModal(body)
	case a.confirmReset:
		body = a.renderConfirmReset(body)
	}
	return body
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "error: " + err.Error()
	a.statusErr = true
}

func (a *App) clampCursor() {
	n := len(a.visibleOptions())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) optionByID(id string) (wallet.TokenOption, bool) {
	for _, o := range a.options {
		if o.ID() == id {
			return o, true
		}
	}
	return wallet.TokenOption{}, false
}

// key handling

func (a *App) handlePortfolioKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := a.visibleOptions()
	switch {
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
			return a, a.hapticSelection()
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(opts)-1 {
			a.cursor++
			return a, a.hapticSelection()
		}
	case key.Matches(m, a.keys.Select):
		if a.cursor < len(opts) {
			return a, a.selectToken(opts[a.cursor])
		}
	case key.Matches(m, a.keys.Search):
		a.status = ""
		return a, a.search.Focus()
	case key.Matches(m, a.keys.Copy):
		return a, a.copyAddress()
	case key.Matches(m, a.keys.Accounts):
		a.accountCursor = 0
		if active, ok := a.deps.State.ActiveAddress(); ok {
			for i, acct := range a.deps.State.Accounts() {
				if acct.Address == active {
					a.accountCursor = i
				}
			}
		}
		a.nav.Navigate(ScreenAccounts, nil)
	case key.Matches(m, a.keys.Settings):
		a.settingsCursor = 0
		a.nav.Navigate(ScreenSettings, nil)
	case key.Matches(m, a.keys.Back):
		if a.search.Value() != "" {
			a.search.Reset()
			a.cursor = 0
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.search.Blur()
		a.search.Reset()
		a.cursor = 0
		return a, nil
	case tea.KeyUp:
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case tea.KeyDown:
		if a.cursor < len(a.visibleOptions())-1 {
			a.cursor++
		}
		return a, nil
	case tea.KeyEnter:
		opts := a.visibleOptions()
		if a.cursor >= len(opts) {
			a.search.Blur()
			return a, nil
		}
		cmd := a.selectToken(opts[a.cursor])
		if a.gate.State() == safety.Idle {
			a.search.Blur()
		}
		return a, cmd
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.cursor = 0
	return a, cmd
}

func (a *App) handleWarningKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(m, a.keys.Select):
		err := a.gate.Accept(a.ctx)
		switch {
		case errors.Is(err, safety.ErrBlockedToken):
			a.setStatus("blocked tokens can't be selected")
		case err != nil:
			a.deps.Log.Error("record dismissal", zap.Error(err))
			a.setError(err)
		default:
			return a, a.hapticSelection()
		}
	case key.Matches(m, a.keys.Back):
		if err := a.gate.Close(); err != nil {
			a.deps.Log.Debug("close warning", zap.Error(err))
		}
	}
	return a, nil
}

// selectToken runs the selection through the warning gate. Selecting opens
// the token details screen.
func (a *App) selectToken(opt wallet.TokenOption) tea.Cmd {
	id := opt.ID()
	decision := a.gate.Select(id, opt.Currency.SafetyLevel, a.isDismissed(id), func() {
		a.nav.Navigate(ScreenTokenDetails, Params{"currencyId": id})
	})
	if decision == safety.ShowWarning {
		a.deps.Log.Info("token warning shown",
			zap.String("currency_id", id),
			zap.Stringer("level", opt.Currency.SafetyLevel))
		return nil
	}
	return a.hapticSelection()
}

// isDismissed checks the loaded snapshot first, then the dismissal store for
// dismissals recorded since the snapshot was taken. A failed read counts as
// not dismissed so the warning still shows.
func (a *App) isDismissed(id string) bool {
	if a.dismissed[id] {
		return true
	}
	if a.deps.Dismissals == nil {
		return false
	}
	ok, err := a.deps.Dismissals.Dismissed(a.ctx, id)
	if err != nil {
		a.deps.Log.Warn("read dismissal", zap.String("currency_id", id), zap.Error(err))
		return false
	}
	if ok {
		a.dismissed[id] = true
	}
	return ok
}

func (a *App) handleConfirmResetKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(m, a.keys.Confirm):
		a.confirmReset = false
		return a, a.resetWalletCmd()
	case key.Matches(m, a.keys.Cancel):
		a.confirmReset = false
	}
	return a, nil
}

// commands

func (a *App) copyAddress() tea.Cmd {
	addr, ok := a.deps.State.ActiveAddress()
	if !ok || a.deps.Clipboard == nil {
		return nil
	}
	clip := a.deps.Clipboard
	return func() tea.Msg {
		if err := clip.SetText(addr.Hex()); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy address: %w", err)}
		}
		return addressCopiedMsg{address: addr}
	}
}

// notifyCopied runs only after the clipboard write succeeded.
func (a *App) notifyCopied() tea.Cmd {
	cmd := a.notify(store.NotificationCopied, "Address copied")
	if cmd == nil {
		return nil
	}
	return tea.Batch(a.hapticImpact(), cmd)
}

// notify pushes a toast and schedules its removal.
func (a *App) notify(kind store.NotificationKind, text string) tea.Cmd {
	n := store.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := a.deps.Dispatch.Dispatch(store.PushNotification{Notification: n}); err != nil {
		a.setError(err)
		return nil
	}
	id := n.ID
	return tea.Tick(a.toastTTL, func(time.Time) tea.Msg { return notificationExpiredMsg{id: id} })
}

func (a *App) switchAccount(addr common.Address) tea.Cmd {
	if err := a.deps.Dispatch.Dispatch(store.SetActiveAccount{Address: addr}); err != nil {
		a.setError(err)
		return nil
	}
	a.nav.Reset()
	a.options = nil
	a.loaded = false
	a.cursor = 0
	a.search.Reset()
	activator := a.deps.Accounts
	return func() tea.Msg {
		if activator != nil {
			if err := activator.SetActive(a.ctx, addr); err != nil {
				return errMsg{err}
			}
		}
		return accountSwitchedMsg{address: addr}
	}
}

func (a *App) saveConfigCmd() tea.Cmd {
	if a.deps.SaveConfig == nil {
		return nil
	}
	cfg, save := a.cfg, a.deps.SaveConfig
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return errMsg{fmt.Errorf("save settings: %w", err)}
		}
		return statusMsg("settings saved")
	}
}

func (a *App) resetDismissalsCmd() tea.Cmd {
	if a.deps.Maintenance == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("maintenance not configured")} }
	}
	return func() tea.Msg {
		n, err := a.deps.Maintenance.ResetDismissals(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return dismissalsResetMsg{count: n}
	}
}

func (a *App) resetWalletCmd() tea.Cmd {
	if a.deps.Maintenance == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("maintenance not configured")} }
	}
	return func() tea.Msg {
		if err := a.deps.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{fmt.Errorf("reset wallet: %w", err)}
		}
		return walletResetMsg{}
	}
}

func (a *App) hapticSelection() tea.Cmd {
	h, log := a.deps.Haptics, a.deps.Log
	return func() tea.Msg {
		if err := h.Selection(); err != nil {
			log.Debug("haptic selection", zap.Error(err))
		}
		return nil
	}
}

func (a *App) hapticImpact() tea.Cmd {
	h, log := a.deps.Haptics, a.deps.Log
	return func() tea.Msg {
		if err := h.Impact(); err != nil {
			log.Debug("haptic impact", zap.Error(err))
		}
		return nil
	}
}

// dismissRecorder persists a dismissal and mirrors it into the loaded snapshot.
type dismissRecorder struct{ a *App }

func (d dismissRecorder) Dismiss(ctx context.Context, tokenID string) error {
	if d.a.deps.Dismissals != nil {
		if err := d.a.deps.Dismissals.Dismiss(ctx, tokenID); err != nil {
			return err
		}
	}
	d.a.dismissed[tokenID] = true
	return nil
}

// views

func (a *App) renderPortfolio() string {
	var b strings.Builder
	if h := a.renderHeader(); h != "" {
		b.WriteString(h)
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render("Portfolio"))
	if a.loaded {
		b.WriteString("  " + nameStyle.Render(a.deps.Format.FormatFiat(a.totalUSD, locale.FiatBalance)))
	}
	b.WriteString("\n")
	if a.search.Focused() || a.search.Value() != "" {
		b.WriteString(a.search.View())
		b.WriteString("\n")
	}
	b.WriteString(a.renderTokenList())
	b.WriteString("\n\n")
	b.WriteString(helpLine(a.keys.Up, a.keys.Down, a.keys.Select, a.keys.Search, a.keys.Copy, a.keys.Accounts, a.keys.Settings, a.keys.Quit))
	return b.String()
}

func (a *App) renderToast() string {
	notes := a.deps.State.Notifications()
	if len(notes) == 0 {
		return ""
	}
	n := notes[len(notes)-1]
	if n.Kind == store.NotificationError {
		return toastStyle.Foreground(colorError).Render(n.Text)
	}
	return toastStyle.Render(n.Text)
}

// messages
type portfolioMsg struct {
	snapshot service.Snapshot
}

type addressCopiedMsg struct {
	address common.Address
}

type notificationExpiredMsg struct {
	id string
}

type accountSwitchedMsg struct {
	address common.Address
}

type copyFailedMsg struct{ err error }

type dismissalsResetMsg struct {
	count int64
}

type walletResetMsg struct{}

type statusMsg string

type errMsg struct{ error }
