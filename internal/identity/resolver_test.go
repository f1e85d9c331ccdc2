package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/store"
	"github.com/jask/jaskwallet/internal/wallet"
)

type fakeSource struct {
	records map[string]*repository.NameRecord
	err     error
	calls   int
}

func (f *fakeSource) Get(_ context.Context, address string) (*repository.NameRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[address], nil
}

var vitalik = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")

func strPtr(s string) *string { return &s }

func TestShortenAddress(t *testing.T) {
	require.Equal(t, "0xd8dA...6045", ShortenAddress(vitalik, 4))
	require.Equal(t, "0xd8dA6B...A96045", ShortenAddress(vitalik, 6))
	require.Equal(t, vitalik.Hex(), ShortenAddress(vitalik, 0))
	require.Equal(t, vitalik.Hex(), ShortenAddress(vitalik, 40))
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress(" 0xd8da6bf26964af9d7eed9e03e53415d37aa96045 ")
	require.NoError(t, err)
	require.Equal(t, vitalik, addr)

	_, err = ParseAddress("vitalik.eth")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDisplayNamePrefersRecords(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{records: map[string]*repository.NameRecord{
		vitalik.Hex(): {Address: vitalik.Hex(), Kind: "ens", Value: "vitalik.eth", AvatarURI: strPtr("https://euc.li/vitalik.eth")},
	}}
	r := NewResolver(src, time.Minute, nil)

	name, ok := r.DisplayName(ctx, vitalik)
	require.True(t, ok)
	require.Equal(t, DisplayName{Kind: KindENS, Value: "vitalik.eth"}, name)

	avatar, ok := r.Avatar(ctx, vitalik)
	require.True(t, ok)
	require.Equal(t, "https://euc.li/vitalik.eth", avatar.URI)
	require.Equal(t, 1, src.calls, "second lookup is served from cache")

	src.records[vitalik.Hex()] = &repository.NameRecord{Kind: "unitag", Value: "vitalik"}
	r.Invalidate(vitalik)
	name, _ = r.DisplayName(ctx, vitalik)
	require.Equal(t, KindUnitag, name.Kind)
	_, ok = r.Avatar(ctx, vitalik)
	require.False(t, ok)
}

func TestDisplayNameFallsBackToAddress(t *testing.T) {
	ctx := context.Background()
	other := common.HexToAddress("0x1111111111111111111111111111111111111111")

	r := NewResolver(&fakeSource{}, time.Minute, nil)
	name, ok := r.DisplayName(ctx, other)
	require.True(t, ok)
	require.Equal(t, KindAddress, name.Kind)
	require.Equal(t, "0x1111...1111", name.Value)

	_, ok = r.DisplayName(ctx, common.Address{})
	require.False(t, ok)
}

func TestLookupErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{err: errors.New("db locked")}
	r := NewResolver(src, time.Minute, nil)

	name, ok := r.DisplayName(ctx, vitalik)
	require.True(t, ok)
	require.Equal(t, KindAddress, name.Kind)

	src.err = nil
	src.records = map[string]*repository.NameRecord{vitalik.Hex(): {Kind: "ens", Value: "vitalik.eth"}}
	name, _ = r.DisplayName(ctx, vitalik)
	require.Equal(t, "vitalik.eth", name.Value)
	require.Equal(t, 2, src.calls)
}

func TestActiveWatcherInvalidatesOnSwitch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	saver := common.HexToAddress("0x2222222222222222222222222222222222222222")
	src := &fakeSource{records: map[string]*repository.NameRecord{}}
	r := NewResolver(src, time.Minute, nil)

	st := store.New(store.State{})
	require.NoError(t, st.Dispatch(store.SetAccounts{
		Accounts: []wallet.Account{{Address: vitalik}, {Address: saver}},
		Active:   &vitalik,
	}))
	st.Subscribe(r.ActiveWatcher(st.Snapshot().ActiveAddress))

	name, _ := r.DisplayName(ctx, saver)
	require.Equal(t, KindAddress, name.Kind)

	// a name imported after the first lookup is picked up once the account is activated
	src.records[saver.Hex()] = &repository.NameRecord{Kind: "ens", Value: "saver.eth"}
	name, _ = r.DisplayName(ctx, saver)
	require.Equal(t, KindAddress, name.Kind, "still cached")

	require.NoError(t, st.Dispatch(store.SetActiveAccount{Address: saver}))
	name, _ = r.DisplayName(ctx, saver)
	require.Equal(t, DisplayName{Kind: KindENS, Value: "saver.eth"}, name)

	calls := src.calls
	require.NoError(t, st.Dispatch(store.PushNotification{Notification: store.Notification{ID: "n"}}))
	_, _ = r.DisplayName(ctx, saver)
	require.Equal(t, calls, src.calls, "unrelated dispatches keep the cache")
}
