package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getStaffKeyByHashSQL = `SELECT id, key_hash, name, role FROM staff_keys WHERE key_hash = $1`

	upsertStaffKeySQL = `INSERT INTO staff_keys (id, key_hash, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key_hash) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role`
)

// ErrKeyNotFound is returned when no staff key matches the given hash.
var ErrKeyNotFound = errors.New("staff key not found")

// StaffKey identifies a staff member authorized for POS and order-management
// operations.
type StaffKey struct {
	ID      string
	KeyHash string
	Name    string
	Role    string
}

// StaffKeyRepository provides lookup of staff API keys by their HMAC hash.
type StaffKeyRepository struct {
	pool *pgxpool.Pool
}

// NewStaffKeyRepository returns a StaffKeyRepository that uses the given pool.
func NewStaffKeyRepository(pool *pgxpool.Pool) *StaffKeyRepository {
	return &StaffKeyRepository{pool: pool}
}

// FindByHash looks up a staff key by its hex-encoded HMAC-SHA256 hash.
func (r *StaffKeyRepository) FindByHash(ctx context.Context, hash string) (*StaffKey, error) {
	rows, err := r.pool.Query(ctx, getStaffKeyByHashSQL, hash)
	if err != nil {
		return nil, fmt.Errorf("finding staff key: %w", err)
	}

	k, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (StaffKey, error) {
		var k StaffKey
		err := row.Scan(&k.ID, &k.KeyHash, &k.Name, &k.Role)
		return k, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("finding staff key: %w", err)
	}
	return &k, nil
}

// Upsert inserts or refreshes a staff key.
func (r *StaffKeyRepository) Upsert(ctx context.Context, k StaffKey) error {
	_, err := r.pool.Exec(ctx, upsertStaffKeySQL, k.ID, k.KeyHash, k.Name, k.Role)
	if err != nil {
		return fmt.Errorf("upserting staff key %q: %w", k.Name, err)
	}
	return nil
}
