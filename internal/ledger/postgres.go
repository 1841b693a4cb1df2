package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezaamd/digitalwallet/internal/paging"
)

const transferColumns = `id, origin_id, destination_id, amount, origin_balance, destination_balance, created_at, seq`

// PostgresStore persists transfer rows in PostgreSQL. Rows are ordered by
// (created_at, seq) where seq is a bigserial assigned on insert, which makes
// the latest-transfer tie-break deterministic.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed transfer store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Transfer, error) {
	row := s.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("find transfer", err)
	}
	return t, nil
}

func (s *PostgresStore) LatestForWallet(ctx context.Context, walletID string) (*Transfer, error) {
	row := s.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers
        WHERE origin_id = $1 OR destination_id = $1
        ORDER BY created_at DESC, seq DESC LIMIT 1`, walletID)
	t, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("latest transfer", err)
	}
	return t, nil
}

// LatestPairForWallets fetches every transfer touching either wallet in one
// query, newest first, and resolves each side's latest from that shared set.
func (s *PostgresStore) LatestPairForWallets(ctx context.Context, firstID, secondID string) (*Transfer, *Transfer, error) {
	rows, err := s.db.Query(ctx, `SELECT `+transferColumns+` FROM transfers
        WHERE origin_id = $1 OR destination_id = $1 OR origin_id = $2 OR destination_id = $2
        ORDER BY created_at DESC, seq DESC`, firstID, secondID)
	if err != nil {
		return nil, nil, storeErr("latest transfer pair", err)
	}
	defer rows.Close()

	var first, second *Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, nil, storeErr("latest transfer pair", err)
		}
		if first == nil && t.Touches(firstID) {
			first = t
		}
		if second == nil && t.Touches(secondID) {
			second = t
		}
		if first != nil && second != nil {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeErr("latest transfer pair", err)
	}
	return first, second, nil
}

func (s *PostgresStore) History(ctx context.Context, filter Filter, req paging.Request) (paging.Page[Transfer], error) {
	var (
		conds []string
		args  []any
	)
	if filter.WalletID != "" {
		args = append(args, filter.WalletID)
		conds = append(conds, fmt.Sprintf("(origin_id = $%d OR destination_id = $%d)", len(args), len(args)))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate.UTC())
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate.UTC())
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM transfers`+where, args...).Scan(&total); err != nil {
		return paging.Page[Transfer]{}, storeErr("count history", err)
	}

	args = append(args, req.PageSize, req.Offset())
	query := `SELECT ` + transferColumns + ` FROM transfers` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return paging.Page[Transfer]{}, storeErr("query history", err)
	}
	defer rows.Close()

	items := make([]Transfer, 0, req.PageSize)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return paging.Page[Transfer]{}, storeErr("scan history", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[Transfer]{}, storeErr("query history", err)
	}
	return paging.Page[Transfer]{Items: items, TotalCount: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// Append inserts the transfer after locking the participating wallet rows and
// re-checking each wallet's latest transfer against the heads the caller
// observed. A moved head means another writer committed first.
func (s *PostgresStore) Append(ctx context.Context, transfer Transfer, heads Heads) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeErr("begin append", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	// Lock wallet rows in sorted id order so two writers on the same pair
	// cannot deadlock.
	ids := walletIDs(transfer)
	rows, err := tx.Query(ctx, `SELECT id FROM wallets WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return storeErr("lock wallets", err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return storeErr("lock wallets", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storeErr("lock wallets", err)
	}
	if locked != len(ids) {
		// A participating wallet disappeared since it was resolved.
		return ErrConflict
	}

	if err := s.checkHead(ctx, tx, transfer.OriginID, heads.Origin); err != nil {
		return err
	}
	if err := s.checkHead(ctx, tx, transfer.DestinationID, heads.Destination); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transfers
        (id, origin_id, destination_id, amount, origin_balance, destination_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transfer.ID, nullID(transfer.OriginID), nullID(transfer.DestinationID),
		transfer.Amount, transfer.OriginBalance, transfer.DestinationBalance, transfer.CreatedAt.UTC()); err != nil {
		return storeErr("insert transfer", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit append", err)
	}
	return nil
}

func (s *PostgresStore) checkHead(ctx context.Context, tx pgx.Tx, walletID, head string) error {
	if walletID == "" {
		return nil
	}
	var latest string
	err := tx.QueryRow(ctx, `SELECT id FROM transfers
        WHERE origin_id = $1 OR destination_id = $1
        ORDER BY created_at DESC, seq DESC LIMIT 1`, walletID).Scan(&latest)
	if errors.Is(err, pgx.ErrNoRows) {
		latest = ""
	} else if err != nil {
		return storeErr("check head", err)
	}
	if latest != head {
		return ErrConflict
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, transfer Transfer) error {
	_, err := s.db.Exec(ctx, `INSERT INTO transfers
        (id, origin_id, destination_id, amount, origin_balance, destination_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transfer.ID, nullID(transfer.OriginID), nullID(transfer.DestinationID),
		transfer.Amount, transfer.OriginBalance, transfer.DestinationBalance, transfer.CreatedAt.UTC())
	if err != nil {
		return storeErr("create transfer", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, transfer Transfer) error {
	tag, err := s.db.Exec(ctx, `UPDATE transfers SET origin_id = $2, destination_id = $3,
        amount = $4, origin_balance = $5, destination_balance = $6, created_at = $7
        WHERE id = $1`,
		transfer.ID, nullID(transfer.OriginID), nullID(transfer.DestinationID),
		transfer.Amount, transfer.OriginBalance, transfer.DestinationBalance, transfer.CreatedAt.UTC())
	if err != nil {
		return storeErr("update transfer", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, transfer Transfer) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM transfers WHERE id = $1`, transfer.ID)
	if err != nil {
		return storeErr("delete transfer", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransfer(row pgx.Row) (*Transfer, error) {
	var (
		t            Transfer
		origin, dest *string
	)
	if err := row.Scan(&t.ID, &origin, &dest, &t.Amount, &t.OriginBalance, &t.DestinationBalance, &t.CreatedAt, &t.Seq); err != nil {
		return nil, err
	}
	if origin != nil {
		t.OriginID = *origin
	}
	if dest != nil {
		t.DestinationID = *dest
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func walletIDs(t Transfer) []string {
	var ids []string
	if t.OriginID != "" {
		ids = append(ids, t.OriginID)
	}
	if t.DestinationID != "" && t.DestinationID != t.OriginID {
		ids = append(ids, t.DestinationID)
	}
	sort.Strings(ids)
	return ids
}

func nullID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
