package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/jaskwallet/internal/catalog"
	"github.com/jask/jaskwallet/internal/config"
	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/locale"
	"github.com/jask/jaskwallet/internal/logging"
	"github.com/jask/jaskwallet/internal/platform"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
	"github.com/jask/jaskwallet/internal/tui"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "jaskwallet: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	// repositories
	tokenRepo := repository.NewTokenRepo(db)
	acctRepo := repository.NewAccountRepo(db)
	balanceRepo := repository.NewBalanceRepo(db)
	nameRepo := repository.NewNameRepo(db)
	dismissalRepo := repository.NewDismissalRepo(db)

	ingester := &service.IngestService{Tokens: tokenRepo, Accounts: acctRepo, Balances: balanceRepo, Names: nameRepo, Log: logger}
	if _, err := ingester.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	if cfg.Tokens.CatalogPath != "" {
		cat, err := catalog.Load(cfg.Tokens.CatalogPath)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		res, err := ingester.ImportCatalog(ctx, cat)
		if err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
		for _, e := range res.Errors {
			logger.Warn("catalog row skipped", zap.Error(e))
		}
	}

	accounts := &service.AccountService{Accounts: acctRepo}
	list, active, err := accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	st := store.New(store.State{})
	if err := st.Dispatch(store.SetAccounts{Accounts: list, Active: active}); err != nil {
		return fmt.Errorf("accounts: %w", err)
	}

	resolver := identity.NewResolver(nameRepo, cfg.Identity.CacheTTL, logger)
	st.Subscribe(resolver.ActiveWatcher(st.Snapshot().ActiveAddress))
	formatter, err := locale.New(cfg.UI.Language, cfg.UI.CurrencySymbol)
	if err != nil {
		return fmt.Errorf("locale: %w", err)
	}

	var clip platform.Clipboard
	if sc := (platform.SystemClipboard{}); sc.Available() {
		clip = sc
	} else {
		logger.Warn("system clipboard unavailable; copy disabled")
	}

	app := tui.New(ctx, cfg, tui.Deps{
		State:       st,
		Dispatch:    st,
		Names:       resolver,
		Avatars:     resolver,
		Portfolio:   &service.Portfolio{Tokens: tokenRepo, Balances: balanceRepo, Dismissals: dismissalRepo, Log: logger},
		Accounts:    accounts,
		Dismissals:  &service.DismissalStore{Repo: dismissalRepo, Log: logger},
		Maintenance: &service.MaintenanceService{DB: db},
		Format:      formatter,
		Clipboard:   clip,
		Haptics:     platform.NewBell(os.Stderr, cfg.UI.Haptics),
		SaveConfig:  config.Save,
		Log:         logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
