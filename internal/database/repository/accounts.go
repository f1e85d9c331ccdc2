package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// AccountRepo handles accounts.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Upsert(ctx context.Context, a Account) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(address, name, is_active, created_at, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(address) DO UPDATE SET
	 name=excluded.name,
	 updated_at=CURRENT_TIMESTAMP;
	`, a.Address, a.Name, a.IsActive)
	return err
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT address, name, is_active, created_at, updated_at FROM accounts ORDER BY created_at, address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.Address, &a.Name, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetActive marks address as the only active account.
func (r *AccountRepo) SetActive(ctx context.Context, address string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE accounts SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE address = ?`, address)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("account %s: %w", address, sql.ErrNoRows)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET is_active = 0 WHERE address <> ?`, address); err != nil {
		return err
	}
	return tx.Commit()
}

// Active returns the active account, or nil when none is marked.
func (r *AccountRepo) Active(ctx context.Context) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT address, name, is_active, created_at, updated_at FROM accounts WHERE is_active = 1 LIMIT 1`)
	var a Account
	if err := row.Scan(&a.Address, &a.Name, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
