package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/NereaCassian/C-3PO/internal/adapters/kv"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

var _ ports.WatchableStore = (*SyncStore)(nil)

// SyncStore persists the extension's synced storage in the sync_storage table.
type SyncStore struct {
	*Repo
	kv.Notifier
}

func NewSyncStore(db *sql.DB) *SyncStore { return &SyncStore{Repo: NewRepo(db)} }

func (r *SyncStore) Get(ctx context.Context, key string) (string, bool, error) {
	sqlStr, args, _ := r.SQ.Select("value").From("sync_storage").Where(sq.Eq{"key": key}).ToSql()
	var v string
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *SyncStore) Set(ctx context.Context, key, value string) error {
	var old *string
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		prev, err := r.lookup(ctx, tx, key)
		if err != nil {
			return err
		}
		old = prev
		now := time.Now().UTC().Format(time.RFC3339)
		sqlStr, args, _ := r.SQ.Insert("sync_storage").Columns("key", "value", "updated_at").
			Values(key, value, now).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
			ToSql()
		_, err = tx.ExecContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if ch, ok := kv.Change(key, old, &value); ok {
		r.Notify(ctx, ch)
	}
	return nil
}

func (r *SyncStore) Delete(ctx context.Context, key string) error {
	var old *string
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		prev, err := r.lookup(ctx, tx, key)
		if err != nil || prev == nil {
			return err
		}
		old = prev
		sqlStr, args, _ := r.SQ.Delete("sync_storage").Where(sq.Eq{"key": key}).ToSql()
		_, err = tx.ExecContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if old != nil {
		r.Notify(ctx, ports.StorageChange{Key: key, OldValue: old})
	}
	return nil
}

// Keys lists stored keys in name order.
func (r *SyncStore) Keys(ctx context.Context) ([]string, error) {
	sqlStr, args, _ := r.SQ.Select("key").From("sync_storage").OrderBy("key").ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *SyncStore) lookup(ctx context.Context, tx *sql.Tx, key string) (*string, error) {
	sqlStr, args, _ := r.SQ.Select("value").From("sync_storage").Where(sq.Eq{"key": key}).ToSql()
	var v string
	err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
