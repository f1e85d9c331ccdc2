package repository

import (
	"context"
	"database/sql"
)

// NameRepo handles ENS and unitag records.
type NameRepo struct {
	db *sql.DB
}

func NewNameRepo(db *sql.DB) *NameRepo { return &NameRepo{db: db} }

func (r *NameRepo) Upsert(ctx context.Context, n NameRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO name_records(address, kind, value, avatar_uri) VALUES (?, ?, ?, ?)
	ON CONFLICT(address) DO UPDATE SET kind=excluded.kind, value=excluded.value, avatar_uri=excluded.avatar_uri;
	`, n.Address, n.Kind, n.Value, n.AvatarURI)
	return err
}

// Get returns the record for address, or nil when none exists.
func (r *NameRepo) Get(ctx context.Context, address string) (*NameRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT address, kind, value, avatar_uri FROM name_records WHERE address = ?`, address)
	var n NameRecord
	if err := row.Scan(&n.Address, &n.Kind, &n.Value, &n.AvatarURI); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
