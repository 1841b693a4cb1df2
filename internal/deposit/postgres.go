package deposit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists deposit records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a deposit store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Deposit, error) {
	row := s.db.QueryRow(ctx, `SELECT id, destination_id, amount, reference, status, created_at
        FROM deposits WHERE id = $1`, id)
	var d Deposit
	if err := row.Scan(&d.ID, &d.DestinationID, &d.Amount, &d.Reference, &d.Status, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}

func (s *PostgresStore) Create(ctx context.Context, deposit Deposit) error {
	_, err := s.db.Exec(ctx, `INSERT INTO deposits (id, destination_id, amount, reference, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		deposit.ID, deposit.DestinationID, deposit.Amount, deposit.Reference, deposit.Status, deposit.CreatedAt.UTC())
	return err
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.db.Exec(ctx, `UPDATE deposits SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
