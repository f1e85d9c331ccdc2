package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// DismissalStore is the persisted side of token warning dismissals.
type DismissalStore struct {
	Repo *repository.DismissalRepo
	Log  *zap.Logger
}

func (s *DismissalStore) Dismissed(ctx context.Context, tokenID string) (bool, error) {
	ok, err := s.Repo.IsDismissed(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("read dismissal %s: %w", tokenID, err)
	}
	return ok, nil
}

// Dismiss records that the user acknowledged tokenID's warning.
func (s *DismissalStore) Dismiss(ctx context.Context, tokenID string) error {
	if err := s.Repo.Dismiss(ctx, tokenID); err != nil {
		return fmt.Errorf("record dismissal %s: %w", tokenID, err)
	}
	if s.Log != nil {
		s.Log.Named("dismissals").Info("token warning dismissed", zap.String("currency_id", tokenID))
	}
	return nil
}
