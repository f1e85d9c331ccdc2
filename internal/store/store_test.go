package store

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/wallet"
)

var (
	addrMain  = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	addrSaver = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func TestStoreEmptyHasNoActiveAccount(t *testing.T) {
	s := New(State{})
	_, ok := s.ActiveAddress()
	require.False(t, ok)
	_, ok = s.ActiveAccount()
	require.False(t, ok)
}

func TestSetAccountsDefaultsToFirst(t *testing.T) {
	s := New(State{})
	require.NoError(t, s.Dispatch(SetAccounts{Accounts: []wallet.Account{
		{Address: addrMain, Name: "Main"},
		{Address: addrSaver, Name: "Saver"},
	}}))

	addr, ok := s.ActiveAddress()
	require.True(t, ok)
	require.Equal(t, addrMain, addr)

	acct, ok := s.ActiveAccount()
	require.True(t, ok)
	require.Equal(t, "Main", acct.Name)
}

func TestSetAccountsKeepsActiveWhenStillPresent(t *testing.T) {
	s := New(State{})
	accounts := []wallet.Account{{Address: addrMain}, {Address: addrSaver}}
	require.NoError(t, s.Dispatch(SetAccounts{Accounts: accounts, Active: &addrSaver}))
	require.NoError(t, s.Dispatch(SetAccounts{Accounts: accounts}))

	addr, _ := s.ActiveAddress()
	require.Equal(t, addrSaver, addr)
}

func TestSetActiveAccountRejectsUnknown(t *testing.T) {
	s := New(State{})
	require.NoError(t, s.Dispatch(SetAccounts{Accounts: []wallet.Account{{Address: addrMain}}}))

	err := s.Dispatch(SetActiveAccount{Address: addrSaver})
	require.ErrorIs(t, err, ErrUnknownAccount)

	addr, _ := s.ActiveAddress()
	require.Equal(t, addrMain, addr)
}

func TestNotificationsPushPop(t *testing.T) {
	s := New(State{})
	var seen []int
	s.Subscribe(func(st State) { seen = append(seen, len(st.Notifications)) })

	require.NoError(t, s.Dispatch(PushNotification{Notification: Notification{ID: "a", Kind: NotificationCopied, Text: "copied"}}))
	require.NoError(t, s.Dispatch(PushNotification{Notification: Notification{ID: "b", Kind: NotificationInfo}}))
	require.NoError(t, s.Dispatch(PopNotification{ID: "a"}))

	got := s.Notifications()
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, []int{1, 2, 1}, seen)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := State{Notifications: []Notification{{ID: "a"}}}
	after, err := Reduce(before, PushNotification{Notification: Notification{ID: "b"}})
	require.NoError(t, err)
	require.Len(t, before.Notifications, 1)
	require.Len(t, after.Notifications, 2)
}

func TestSubscribersRunAfterCommit(t *testing.T) {
	t.Parallel()
	s := New(State{})
	var got []State
	s.Subscribe(func(st State) {
		// reading back from inside a subscriber must not block on the store lock
		require.Equal(t, st.Notifications, s.Snapshot().Notifications)
		got = append(got, st)
	})

	require.NoError(t, s.Dispatch(PushNotification{Notification: Notification{ID: "a"}}))
	require.Error(t, s.Dispatch(SetActiveAccount{Address: addrSaver}))
	require.Len(t, got, 1, "failed dispatches do not notify")
	require.Len(t, got[0].Notifications, 1)
}
