package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/jaskwallet/internal/catalog"
	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/identity"
	"github.com/jask/jaskwallet/internal/wallet"
)

// IngestService loads token catalogs into the database.
type IngestService struct {
	Tokens   *repository.TokenRepo
	Accounts *repository.AccountRepo
	Balances *repository.BalanceRepo
	Names    *repository.NameRepo
	Log      *zap.Logger
}

type IngestResult struct {
	Tokens   int
	Accounts int
	Balances int
	Names    int
	Errors   []error
}

func (s *IngestService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log.Named("ingest")
}

// SeedDefaults imports the bundled catalog into an empty database.
// It is idempotent and safe to run on every startup.
func (s *IngestService) SeedDefaults(ctx context.Context) (IngestResult, error) {
	n, err := s.Tokens.Count(ctx)
	if err != nil {
		return IngestResult{}, fmt.Errorf("count tokens: %w", err)
	}
	if n > 0 {
		return IngestResult{}, nil
	}
	cat, err := catalog.Default()
	if err != nil {
		return IngestResult{}, err
	}
	return s.ImportCatalog(ctx, cat)
}

// ImportCatalog upserts every entry of cat. Row failures are collected in the
// result; the returned error is reserved for failures that stop the import.
func (s *IngestService) ImportCatalog(ctx context.Context, cat catalog.Catalog) (IngestResult, error) {
	res := IngestResult{}
	log := s.logger()

	for i, t := range cat.Tokens {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		addr, err := identity.ParseAddress(t.Address)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("token %d (%s): %w", i, t.Symbol, err))
			continue
		}
		tok := repository.Token{
			CurrencyID:  wallet.CurrencyID(t.ChainID, addr),
			ChainID:     t.ChainID,
			Address:     addr.Hex(),
			Name:        strings.TrimSpace(t.Name),
			Symbol:      strings.TrimSpace(t.Symbol),
			IsNative:    t.Native,
			Decimals:    t.Decimals,
			SafetyLevel: t.Safety.String(),
		}
		if t.LogoURL != "" {
			logo := t.LogoURL
			tok.LogoURL = &logo
		}
		if err := s.Tokens.Upsert(ctx, tok); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("token %d (%s): %w", i, t.Symbol, err))
			continue
		}
		res.Tokens++
	}

	// the catalog active flag only applies while no account is active
	current, err := s.Accounts.Active(ctx)
	if err != nil {
		return res, fmt.Errorf("read active account: %w", err)
	}
	hasActive := current != nil

	for i, a := range cat.Accounts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		addr, err := identity.ParseAddress(a.Address)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("account %d: %w", i, err))
			continue
		}
		acct := repository.Account{Address: addr.Hex(), Name: strings.TrimSpace(a.Name)}
		if err := s.Accounts.Upsert(ctx, acct); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("account %d: %w", i, err))
			continue
		}
		if a.Active && !hasActive {
			if err := s.Accounts.SetActive(ctx, acct.Address); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("account %d activate: %w", i, err))
			} else {
				hasActive = true
			}
		}
		res.Accounts++

		for j, b := range a.Balances {
			token, err := identity.ParseAddress(b.Token)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("account %d balance %d: %w", i, j, err))
				continue
			}
			bal := repository.Balance{
				AccountAddress: acct.Address,
				CurrencyID:     wallet.CurrencyID(b.ChainID, token),
				Quantity:       b.Quantity,
			}
			if b.PriceUSD != "" {
				price := b.PriceUSD
				bal.PriceUSD = &price
			}
			if err := s.Balances.Upsert(ctx, bal); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("account %d balance %d: %w", i, j, err))
				continue
			}
			res.Balances++
		}
	}

	for i, n := range cat.Names {
		addr, err := identity.ParseAddress(n.Address)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("name %d: %w", i, err))
			continue
		}
		rec := repository.NameRecord{
			Address: addr.Hex(),
			Kind:    strings.ToLower(n.Kind),
			Value:   strings.TrimSpace(n.Value),
		}
		if n.Avatar != "" {
			avatar := n.Avatar
			rec.AvatarURI = &avatar
		}
		if err := s.Names.Upsert(ctx, rec); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("name %d: %w", i, err))
			continue
		}
		res.Names++
	}

	log.Info("catalog imported",
		zap.Int("tokens", res.Tokens),
		zap.Int("accounts", res.Accounts),
		zap.Int("balances", res.Balances),
		zap.Int("names", res.Names),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}
