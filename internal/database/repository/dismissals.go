package repository

import (
	"context"
	"database/sql"
)

// DismissalRepo persists acknowledged token warnings.
type DismissalRepo struct {
	db *sql.DB
}

func NewDismissalRepo(db *sql.DB) *DismissalRepo { return &DismissalRepo{db: db} }

// Dismiss records currencyID. Dismissing twice keeps the first timestamp.
func (r *DismissalRepo) Dismiss(ctx context.Context, currencyID string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO token_warning_dismissals(currency_id, dismissed_at) VALUES (?, CURRENT_TIMESTAMP)
	ON CONFLICT(currency_id) DO NOTHING;
	`, currencyID)
	return err
}

func (r *DismissalRepo) IsDismissed(ctx context.Context, currencyID string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM token_warning_dismissals WHERE currency_id = ?`, currencyID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DismissalRepo) List(ctx context.Context) ([]Dismissal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT currency_id, dismissed_at FROM token_warning_dismissals ORDER BY dismissed_at, currency_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Dismissal
	for rows.Next() {
		var d Dismissal
		if err := rows.Scan(&d.CurrencyID, &d.DismissedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Clear forgets every dismissal and returns how many were removed.
func (r *DismissalRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM token_warning_dismissals`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
