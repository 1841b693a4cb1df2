package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

const walletColumns = `id, bank_id, seed, created_at`

const uniqueViolation = "23505"

// PostgresStore stores wallet identities in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a wallet store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Wallet, error) {
	row := s.db.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
	return scanWallet(row)
}

func (s *PostgresStore) FindBySeed(ctx context.Context, seed string, bankID *string) (*Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE seed = $1`
	args := []any{seed}
	if bankID != nil {
		query += ` AND bank_id = $2`
		args = append(args, *bankID)
	}
	row := s.db.QueryRow(ctx, query, args...)
	return scanWallet(row)
}

func (s *PostgresStore) FindPairByID(ctx context.Context, firstID, secondID string) (*Wallet, *Wallet, error) {
	rows, err := s.db.Query(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1 OR id = $2`, firstID, secondID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch wallet pair: %w", err)
	}
	defer rows.Close()

	var first, second *Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch wallet pair: %w", err)
		}
		if w.ID == firstID {
			first = w
		}
		if w.ID == secondID {
			copied := *w
			second = &copied
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("fetch wallet pair: %w", err)
	}
	return first, second, nil
}

func (s *PostgresStore) List(ctx context.Context, bankID *string, req paging.Request) (paging.Page[Wallet], error) {
	where := ` WHERE bank_id IS NULL`
	args := []any{}
	if bankID != nil {
		where = ` WHERE bank_id = $1`
		args = append(args, *bankID)
	}

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM wallets`+where, args...).Scan(&total); err != nil {
		return paging.Page[Wallet]{}, fmt.Errorf("count wallets: %w", err)
	}

	args = append(args, req.PageSize, req.Offset())
	query := `SELECT ` + walletColumns + ` FROM wallets` + where +
		fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return paging.Page[Wallet]{}, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	items := make([]Wallet, 0, req.PageSize)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return paging.Page[Wallet]{}, fmt.Errorf("list wallets: %w", err)
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[Wallet]{}, fmt.Errorf("list wallets: %w", err)
	}
	return paging.Page[Wallet]{Items: items, TotalCount: total, Page: req.Page, PageSize: req.PageSize}, nil
}

func (s *PostgresStore) Create(ctx context.Context, wallet Wallet) error {
	_, err := s.db.Exec(ctx, `INSERT INTO wallets (id, bank_id, seed, created_at) VALUES ($1, $2, $3, $4)`,
		wallet.ID, wallet.BankID, wallet.Seed, wallet.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrExists
	}
	return err
}

func (s *PostgresStore) Update(ctx context.Context, wallet Wallet) error {
	tag, err := s.db.Exec(ctx, `UPDATE wallets SET bank_id = $2, seed = $3 WHERE id = $1`,
		wallet.ID, wallet.BankID, wallet.Seed)
	if isUniqueViolation(err) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, wallet Wallet) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, wallet.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWallet(row pgx.Row) (*Wallet, error) {
	var w Wallet
	if err := row.Scan(&w.ID, &w.BankID, &w.Seed, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return &w, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
