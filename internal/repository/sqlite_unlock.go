package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/google/uuid"
)

const unlockColumns = `id, unlock_type, unlock_key, unlocked_at, is_equipped`

// SQLiteUnlockRepo implements UnlockRepo using a SQLite database.
type SQLiteUnlockRepo struct {
	db db.DBTX
}

// NewSQLiteUnlockRepo creates a new SQLiteUnlockRepo.
func NewSQLiteUnlockRepo(conn db.DBTX) *SQLiteUnlockRepo {
	return &SQLiteUnlockRepo{db: conn}
}

func (r *SQLiteUnlockRepo) Grant(ctx context.Context, u *domain.UnlockRecord) (bool, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `INSERT INTO unlocks (` + unlockColumns + `) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(unlock_type, unlock_key) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		u.ID,
		string(u.Category),
		u.Key,
		formatTimestamp(u.UnlockedAt),
		boolToInt(u.Equipped),
	)
	if err != nil {
		return false, fmt.Errorf("inserting unlock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting unlock: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteUnlockRepo) Get(ctx context.Context, category domain.UnlockCategory, key string) (*domain.UnlockRecord, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlocks WHERE unlock_type = ? AND unlock_key = ?`
	u, err := scanUnlock(r.db.QueryRowContext(ctx, query, string(category), key))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("unlock %s/%s: %w", category, key, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (r *SQLiteUnlockRepo) List(ctx context.Context) ([]*domain.UnlockRecord, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlocks ORDER BY unlocked_at, unlock_type, unlock_key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing unlocks: %w", err)
	}
	defer rows.Close()
	return scanUnlocks(rows)
}

func (r *SQLiteUnlockRepo) ListByCategory(ctx context.Context, category domain.UnlockCategory) ([]*domain.UnlockRecord, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlocks WHERE unlock_type = ? ORDER BY unlocked_at, unlock_key`
	rows, err := r.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("listing unlocks by category: %w", err)
	}
	defer rows.Close()
	return scanUnlocks(rows)
}

func (r *SQLiteUnlockRepo) GetEquipped(ctx context.Context, category domain.UnlockCategory) (*domain.UnlockRecord, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlocks WHERE unlock_type = ? AND is_equipped = 1
		ORDER BY unlocked_at DESC LIMIT 1`
	u, err := scanUnlock(r.db.QueryRowContext(ctx, query, string(category)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("equipped %s: %w", category, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (r *SQLiteUnlockRepo) SetEquipped(ctx context.Context, category domain.UnlockCategory, key string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE unlocks SET is_equipped = 0 WHERE unlock_type = ? AND is_equipped = 1`, string(category)); err != nil {
		return fmt.Errorf("clearing equipped %s: %w", category, err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE unlocks SET is_equipped = 1 WHERE unlock_type = ? AND unlock_key = ?`, string(category), key)
	if err != nil {
		return fmt.Errorf("equipping %s/%s: %w", category, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("equipping %s/%s: %w", category, key, err)
	}
	if n == 0 {
		return fmt.Errorf("unlock %s/%s: %w", category, key, ErrNotFound)
	}
	return nil
}

func scanUnlocks(rows *sql.Rows) ([]*domain.UnlockRecord, error) {
	var out []*domain.UnlockRecord
	for rows.Next() {
		u, err := scanUnlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unlocks: %w", err)
	}
	return out, nil
}

func scanUnlock(sc rowScanner) (*domain.UnlockRecord, error) {
	var u domain.UnlockRecord
	var category, unlockedAt string
	var equipped int
	err := sc.Scan(&u.ID, &category, &u.Key, &unlockedAt, &equipped)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning unlock: %w", err)
	}
	u.Category = domain.UnlockCategory(category)
	u.Equipped = intToBool(equipped)
	u.UnlockedAt, err = time.Parse(timestampLayout, unlockedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing unlocked_at: %w", err)
	}
	return &u, nil
}
