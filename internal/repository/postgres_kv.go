package repository

import (
	"context"
	"errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type postgresKV struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgresKV(pool *pgxpool.Pool) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresKVWithTx(tx pgx.Tx) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	entry, err := r.q.GetEntry(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("q.GetEntry", err)
	}

	return entry.Value, true, nil
}

// Set leaves updated_at untouched when the stored document already equals value.
func (r *postgresKV) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return errEmptyKey
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (bool, error) {
		current, err := q.GetEntryForUpdate(ctx, key)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return false, unavailable("q.GetEntryForUpdate", err)
		case current.Value == value:
			return false, nil
		}

		if err := q.UpsertEntry(ctx, db.UpsertEntryParams{Key: key, Value: value}); err != nil {
			return false, unavailable("q.UpsertEntry", err)
		}

		return true, nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *postgresKV) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if _, err := r.q.DeleteEntry(ctx, key); err != nil {
		return unavailable("q.DeleteEntry", err)
	}

	return nil
}
