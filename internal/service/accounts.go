package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/wallet"
)

// AccountService reads and switches wallet accounts.
type AccountService struct {
	Accounts *repository.AccountRepo
}

// List returns the accounts and the active one, if any is marked.
func (s *AccountService) List(ctx context.Context) ([]wallet.Account, *common.Address, error) {
	rows, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]wallet.Account, 0, len(rows))
	var active *common.Address
	for _, r := range rows {
		addr := common.HexToAddress(r.Address)
		out = append(out, wallet.Account{Address: addr, Name: r.Name})
		if r.IsActive {
			a := addr
			active = &a
		}
	}
	return out, active, nil
}

func (s *AccountService) SetActive(ctx context.Context, addr common.Address) error {
	if err := s.Accounts.SetActive(ctx, addr.Hex()); err != nil {
		return fmt.Errorf("activate %s: %w", addr.Hex(), err)
	}
	return nil
}
