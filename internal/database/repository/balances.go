package repository

import (
	"context"
	"database/sql"
)

// BalanceRepo handles per-account token holdings.
type BalanceRepo struct {
	db *sql.DB
}

func NewBalanceRepo(db *sql.DB) *BalanceRepo { return &BalanceRepo{db: db} }

func (r *BalanceRepo) Upsert(ctx context.Context, b Balance) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO balances(account_address, currency_id, quantity, price_usd, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(account_address, currency_id) DO UPDATE SET
	 quantity=excluded.quantity,
	 price_usd=excluded.price_usd,
	 updated_at=CURRENT_TIMESTAMP;
	`, b.AccountAddress, b.CurrencyID, b.Quantity, b.PriceUSD)
	return err
}

func (r *BalanceRepo) ListForAccount(ctx context.Context, address string) ([]Balance, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT account_address, currency_id, quantity, price_usd, updated_at
	FROM balances WHERE account_address = ? ORDER BY currency_id`, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.AccountAddress, &b.CurrencyID, &b.Quantity, &b.PriceUSD, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
