package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// KV is a string-keyed document store. Values are opaque strings (JSON in
// practice); every write replaces the whole value stored under a key.
type KV interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix, in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// kvRepo implements KV on the kv_entries table.
type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTableName)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTableName).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Remove(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvTableName).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("key").
		From(entsql.Table(kvTableName)).
		Where(entsql.HasPrefix("key", prefix)).
		OrderBy("key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		// SQLite LIKE ignores ASCII case.
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, rows.Err()
}
