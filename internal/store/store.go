// Package store is the wallet view state: accounts, the active account and
// transient notifications. Components read it through Reader and change it
// only by dispatching actions.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jask/jaskwallet/internal/wallet"
)

// ErrUnknownAccount is returned when activating an address that is not a known account.
var ErrUnknownAccount = errors.New("unknown account")

// NotificationKind distinguishes toast messages.
type NotificationKind string

const (
	NotificationCopied NotificationKind = "copied"
	NotificationError  NotificationKind = "error"
	NotificationInfo   NotificationKind = "info"
)

// Notification is a toast shown until popped.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Text      string
	CreatedAt time.Time
}

// State is an immutable snapshot; Reduce returns a new one.
type State struct {
	Accounts      []wallet.Account
	ActiveAddress *common.Address
	Notifications []Notification
}

// Action is anything Reduce understands.
type Action interface{ action() }

// SetAccounts replaces the account list. Active may be nil to keep the current
// active account when it is still present.
type SetAccounts struct {
	Accounts []wallet.Account
	Active   *common.Address
}

type SetActiveAccount struct {
	Address common.Address
}

type PushNotification struct {
	Notification Notification
}

type PopNotification struct {
	ID string
}

func (SetAccounts) action()      {}
func (SetActiveAccount) action() {}
func (PushNotification) action() {}
func (PopNotification) action()  {}

// Reduce applies a to s.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case SetAccounts:
		next := State{
			Accounts:      append([]wallet.Account(nil), act.Accounts...),
			Notifications: s.Notifications,
		}
		active := act.Active
		if active == nil {
			active = s.ActiveAddress
		}
		if active != nil && indexOf(next.Accounts, *active) >= 0 {
			addr := *active
			next.ActiveAddress = &addr
		} else if len(next.Accounts) > 0 {
			addr := next.Accounts[0].Address
			next.ActiveAddress = &addr
		}
		return next, nil
	case SetActiveAccount:
		if indexOf(s.Accounts, act.Address) < 0 {
			return s, fmt.Errorf("%w: %s", ErrUnknownAccount, act.Address.Hex())
		}
		addr := act.Address
		s.ActiveAddress = &addr
		return s, nil
	case PushNotification:
		s.Notifications = append(append([]Notification(nil), s.Notifications...), act.Notification)
		return s, nil
	case PopNotification:
		out := make([]Notification, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			if n.ID != act.ID {
				out = append(out, n)
			}
		}
		s.Notifications = out
		return s, nil
	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}
}

func indexOf(accounts []wallet.Account, addr common.Address) int {
	for i, a := range accounts {
		if a.Address == addr {
			return i
		}
	}
	return -1
}

// Reader exposes selectors over the current state.
type Reader interface {
	ActiveAddress() (common.Address, bool)
	ActiveAccount() (wallet.Account, bool)
	Accounts() []wallet.Account
	Notifications() []Notification
}

// Dispatcher applies actions.
type Dispatcher interface {
	Dispatch(a Action) error
}

// Store is the in-process implementation of Reader and Dispatcher.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

func New(initial State) *Store {
	return &Store{state: initial}
}

// Subscribe registers fn to run after every successful dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	next, err := Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) ActiveAddress() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveAddress == nil {
		return common.Address{}, false
	}
	return *s.state.ActiveAddress, true
}

func (s *Store) ActiveAccount() (wallet.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveAddress == nil {
		return wallet.Account{}, false
	}
	idx := indexOf(s.state.Accounts, *s.state.ActiveAddress)
	if idx < 0 {
		return wallet.Account{}, false
	}
	return s.state.Accounts[idx], true
}

func (s *Store) Accounts() []wallet.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wallet.Account(nil), s.state.Accounts...)
}

func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.state.Notifications...)
}
