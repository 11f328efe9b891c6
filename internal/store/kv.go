package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/kanaflash/internal/kv"
)

const kvTable = "kv_entries"

// KVRepo implements kv.Store on the kv_entries table.
type KVRepo struct {
	drv *entsql.Driver
}

var _ kv.Store = (*KVRepo)(nil)

func (r *KVRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.drv.Dialect())
}

func (r *KVRepo) Get(ctx context.Context, key string) (string, error) {
	b := r.builder()
	query, args := b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return "", fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	var values []string
	if err := entsql.ScanSlice(rows, &values); err != nil {
		return "", fmt.Errorf("scan %q: %w", key, err)
	}
	if len(values) == 0 {
		return "", kv.ErrNotFound
	}
	return values[0], nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query, args := r.builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *KVRepo) Remove(ctx context.Context, key string) error {
	query, args := r.builder().Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
