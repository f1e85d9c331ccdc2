package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.OpenMigrated(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

const (
	mainAddr  = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	saverAddr = "0x1111111111111111111111111111111111111111"
	usdcID    = "1-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

func TestAccountRepoActiveSwitch(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	repo := repository.NewAccountRepo(openTestDB(t))

	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Nil(t, active)

	require.NoError(t, repo.Upsert(ctx, repository.Account{Address: mainAddr, Name: "Main", IsActive: true}))
	require.NoError(t, repo.Upsert(ctx, repository.Account{Address: saverAddr, Name: "Saver"}))

	active, err = repo.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, mainAddr, active.Address)

	require.NoError(t, repo.SetActive(ctx, saverAddr))
	active, err = repo.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, saverAddr, active.Address)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	activeCount := 0
	for _, a := range list {
		if a.IsActive {
			activeCount++
		}
	}
	require.Equal(t, 1, activeCount)

	err = repo.SetActive(ctx, "0x2222222222222222222222222222222222222222")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTokenAndBalanceRepos(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	db := openTestDB(t)
	tokens := repository.NewTokenRepo(db)
	balances := repository.NewBalanceRepo(db)
	accounts := repository.NewAccountRepo(db)

	missing, err := tokens.Get(ctx, usdcID)
	require.NoError(t, err)
	require.Nil(t, missing)

	logo := "https://example.invalid/usdc.png"
	require.NoError(t, tokens.Upsert(ctx, repository.Token{
		CurrencyID: usdcID, ChainID: 1, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Name: "USD Coin", Symbol: "USDC", LogoURL: &logo, Decimals: 6, SafetyLevel: "verified",
	}))
	require.NoError(t, tokens.Upsert(ctx, repository.Token{
		CurrencyID: usdcID, ChainID: 1, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Name: "USD Coin", Symbol: "USDC", Decimals: 6, SafetyLevel: "strong_warning",
	}))

	got, err := tokens.Get(ctx, usdcID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "strong_warning", got.SafetyLevel)
	require.Nil(t, got.LogoURL)

	n, err := tokens.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, accounts.Upsert(ctx, repository.Account{Address: mainAddr}))
	price := "1.00"
	require.NoError(t, balances.Upsert(ctx, repository.Balance{AccountAddress: mainAddr, CurrencyID: usdcID, Quantity: "10.5", PriceUSD: &price}))
	require.NoError(t, balances.Upsert(ctx, repository.Balance{AccountAddress: mainAddr, CurrencyID: usdcID, Quantity: "12"}))

	list, err := balances.ListForAccount(ctx, mainAddr)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "12", list[0].Quantity)
	require.Nil(t, list[0].PriceUSD)

	none, err := balances.ListForAccount(ctx, saverAddr)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestNameRepo(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	repo := repository.NewNameRepo(openTestDB(t))

	rec, err := repo.Get(ctx, mainAddr)
	require.NoError(t, err)
	require.Nil(t, rec)

	avatar := "ipfs://avatar"
	require.NoError(t, repo.Upsert(ctx, repository.NameRecord{Address: mainAddr, Kind: "ens", Value: "vitalik.eth", AvatarURI: &avatar}))
	rec, err = repo.Get(ctx, mainAddr)
	require.NoError(t, err)
	require.Equal(t, "vitalik.eth", rec.Value)
	require.Equal(t, avatar, *rec.AvatarURI)
}

func TestDismissalRepo(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	repo := repository.NewDismissalRepo(openTestDB(t))

	ok, err := repo.IsDismissed(ctx, usdcID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Dismiss(ctx, usdcID))
	require.NoError(t, repo.Dismiss(ctx, usdcID))

	ok, err = repo.IsDismissed(ctx, usdcID)
	require.NoError(t, err)
	require.True(t, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, usdcID, list[0].CurrencyID)
	require.False(t, list[0].DismissedAt.IsZero())

	removed, err := repo.Clear(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	ok, err = repo.IsDismissed(ctx, usdcID)
	require.NoError(t, err)
	require.False(t, ok)
}
