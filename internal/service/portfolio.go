package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/safety"
	"github.com/jask/jaskwallet/internal/wallet"
)

// Portfolio assembles the token list of an account.
type Portfolio struct {
	Tokens     *repository.TokenRepo
	Balances   *repository.BalanceRepo
	Dismissals *repository.DismissalRepo
	Log        *zap.Logger
}

// Snapshot is everything the token list needs for one account.
type Snapshot struct {
	Address   common.Address
	Options   []wallet.TokenOption
	Dismissed map[string]bool
	TotalUSD  decimal.Decimal
}

func (p *Portfolio) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log.Named("portfolio")
}

// Load reads tokens, balances and dismissals for addr and returns the options
// sorted by fiat value, largest first.
func (p *Portfolio) Load(ctx context.Context, addr common.Address) (Snapshot, error) {
	var (
		tokens     []repository.Token
		balances   []repository.Balance
		dismissals []repository.Dismissal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tokens, err = p.Tokens.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		balances, err = p.Balances.ListForAccount(gctx, addr.Hex())
		return err
	})
	g.Go(func() error {
		var err error
		dismissals, err = p.Dismissals.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load portfolio %s: %w", addr.Hex(), err)
	}

	log := p.logger()
	byID := make(map[string]repository.Token, len(tokens))
	for _, t := range tokens {
		byID[t.CurrencyID] = t
	}

	snap := Snapshot{
		Address:   addr,
		Dismissed: make(map[string]bool, len(dismissals)),
		TotalUSD:  decimal.Zero,
	}
	for _, d := range dismissals {
		snap.Dismissed[d.CurrencyID] = true
	}

	for _, b := range balances {
		tok, ok := byID[b.CurrencyID]
		if !ok {
			log.Warn("balance for unknown token", zap.String("currency_id", b.CurrencyID))
			continue
		}
		opt, err := tokenOption(tok, b)
		if err != nil {
			log.Warn("skipping balance", zap.String("currency_id", b.CurrencyID), zap.Error(err))
			continue
		}
		if opt.Currency.SafetyLevel == safety.StrongWarning && tok.SafetyLevel != safety.StrongWarning.String() {
			log.Warn("unknown safety level treated as strong warning",
				zap.String("currency_id", tok.CurrencyID), zap.String("level", tok.SafetyLevel))
		}
		if opt.BalanceUSD.Valid {
			snap.TotalUSD = snap.TotalUSD.Add(opt.BalanceUSD.Decimal)
		}
		snap.Options = append(snap.Options, opt)
	}

	SortOptions(snap.Options)
	return snap, nil
}

func tokenOption(tok repository.Token, b repository.Balance) (wallet.TokenOption, error) {
	qty, err := decimal.NewFromString(b.Quantity)
	if err != nil {
		return wallet.TokenOption{}, fmt.Errorf("quantity %q: %w", b.Quantity, err)
	}
	level, err := safety.ParseLevel(tok.SafetyLevel)
	if err != nil {
		level = safety.StrongWarning
	}
	info := wallet.CurrencyInfo{
		CurrencyID:  tok.CurrencyID,
		ChainID:     tok.ChainID,
		Address:     common.HexToAddress(tok.Address),
		Name:        tok.Name,
		Symbol:      tok.Symbol,
		IsNative:    tok.IsNative,
		Decimals:    tok.Decimals,
		SafetyLevel: level,
	}
	if tok.LogoURL != nil {
		info.LogoURL = *tok.LogoURL
	}
	opt := wallet.TokenOption{Currency: info, Quantity: qty}
	if b.PriceUSD != nil {
		price, err := decimal.NewFromString(*b.PriceUSD)
		if err != nil {
			return wallet.TokenOption{}, fmt.Errorf("price %q: %w", *b.PriceUSD, err)
		}
		opt.BalanceUSD = decimal.NewNullDecimal(qty.Mul(price))
	}
	return opt, nil
}

// SortOptions orders by fiat balance descending; unpriced tokens go last, ties by symbol.
func SortOptions(opts []wallet.TokenOption) {
	sort.SliceStable(opts, func(i, j int) bool {
		a, b := opts[i], opts[j]
		if a.BalanceUSD.Valid != b.BalanceUSD.Valid {
			return a.BalanceUSD.Valid
		}
		if a.BalanceUSD.Valid && !a.BalanceUSD.Decimal.Equal(b.BalanceUSD.Decimal) {
			return a.BalanceUSD.Decimal.GreaterThan(b.BalanceUSD.Decimal)
		}
		return strings.ToLower(a.Currency.Symbol) < strings.ToLower(b.Currency.Symbol)
	})
}

// HideSmallBalances drops priced options worth less than threshold.
// Unpriced options are kept.
func HideSmallBalances(opts []wallet.TokenOption, threshold decimal.Decimal) []wallet.TokenOption {
	out := make([]wallet.TokenOption, 0, len(opts))
	for _, o := range opts {
		if o.BalanceUSD.Valid && o.BalanceUSD.Decimal.LessThan(threshold) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Search filters opts by query against symbol and name. Exact and prefix
// matches rank first, then substrings, then symbols within one edit.
func Search(opts []wallet.TokenOption, query string) []wallet.TokenOption {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return opts
	}
	type ranked struct {
		opt   wallet.TokenOption
		score int
	}
	var hits []ranked
	for _, o := range opts {
		if s, ok := matchScore(o, q); ok {
			hits = append(hits, ranked{opt: o, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]wallet.TokenOption, len(hits))
	for i, h := range hits {
		out[i] = h.opt
	}
	return out
}

func matchScore(o wallet.TokenOption, q string) (int, bool) {
	sym := strings.ToLower(o.Currency.Symbol)
	name := strings.ToLower(o.Currency.Name)
	switch {
	case sym == q:
		return 0, true
	case strings.HasPrefix(sym, q):
		return 1, true
	case strings.HasPrefix(name, q):
		return 2, true
	case strings.Contains(sym, q) || strings.Contains(name, q):
		return 3, true
	case strings.EqualFold(o.Currency.Address.Hex(), q):
		return 3, true
	}
	if len([]rune(q)) >= 3 {
		if dist := levenshtein.ComputeDistance(sym, q); dist <= 1 {
			return 4 + dist, true
		}
	}
	return 0, false
}
