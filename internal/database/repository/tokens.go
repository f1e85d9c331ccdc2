package repository

import (
	"context"
	"database/sql"
)

// TokenRepo handles the token catalog.
type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

func (r *TokenRepo) Upsert(ctx context.Context, t Token) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tokens(currency_id, chain_id, address, name, symbol, logo_url, is_native, decimals, safety_level)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(currency_id) DO UPDATE SET
	 name=excluded.name,
	 symbol=excluded.symbol,
	 logo_url=excluded.logo_url,
	 is_native=excluded.is_native,
	 decimals=excluded.decimals,
	 safety_level=excluded.safety_level;
	`, t.CurrencyID, t.ChainID, t.Address, t.Name, t.Symbol, t.LogoURL, t.IsNative, t.Decimals, t.SafetyLevel)
	return err
}

const tokenColumns = `currency_id, chain_id, address, name, symbol, logo_url, is_native, decimals, safety_level`

func scanToken(s interface{ Scan(...any) error }) (Token, error) {
	var t Token
	err := s.Scan(&t.CurrencyID, &t.ChainID, &t.Address, &t.Name, &t.Symbol, &t.LogoURL, &t.IsNative, &t.Decimals, &t.SafetyLevel)
	return t, err
}

// Get returns the token or nil when it is unknown.
func (r *TokenRepo) Get(ctx context.Context, currencyID string) (*Token, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE currency_id = ?`, currencyID)
	t, err := scanToken(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepo) List(ctx context.Context) ([]Token, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tokenColumns+` FROM tokens ORDER BY chain_id, symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TokenRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens`).Scan(&n)
	return n, err
}
