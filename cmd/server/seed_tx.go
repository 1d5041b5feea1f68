package main

import (
	"context"
	"database/sql"
	"time"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/store/memory"
	pgstore "servicecatalog/internal/catalog/store/postgres"
	dErrors "servicecatalog/pkg/domain-errors"
	"servicecatalog/pkg/platform/tx"
)

const defaultSeedTxTimeout = 30 * time.Second

// seedPostgresTx writes a seed into Postgres in a single transaction so a
// partially applied seed is never visible to snapshots.
type seedPostgresTx struct {
	db      *sql.DB
	store   *pgstore.PostgresStore
	timeout time.Duration
}

func newSeedPostgresTx(db *sql.DB, store *pgstore.PostgresStore) *seedPostgresTx {
	return &seedPostgresTx{db: db, store: store}
}

// Apply upserts every version of seed and returns how many were written.
func (t *seedPostgresTx) Apply(ctx context.Context, seed memory.Seed) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeTimeout, "seed aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultSeedTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	n := 0
	err := tx.Run(ctx, t.db, func(ctx context.Context) error {
		return seed.Each(func(v models.Version, rows []models.LanguageAvailability) error {
			n++
			return t.store.Upsert(ctx, v, rows...)
		})
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
