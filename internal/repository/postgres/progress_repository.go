// Package postgres stores learner progress in a PostgreSQL slot table.
package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const schema = `
CREATE TABLE IF NOT EXISTS progress_slots (
    learner_id TEXT NOT NULL,
    slot TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (learner_id, slot)
)`

// Open creates a connection pool from dsn and makes sure the schema exists.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create progress_slots: %w", err)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type progressRepository struct {
	pool      *pgxpool.Pool
	maxHearts int
}

// NewProgressRepository creates a ProgressRepository on pool. Each update
// holds a transaction-scoped advisory lock keyed by the learner id.
func NewProgressRepository(pool *pgxpool.Pool, maxHearts int) repository.ProgressRepository {
	return &progressRepository{pool: pool, maxHearts: maxHearts}
}

func (r *progressRepository) Load(ctx context.Context, learnerID string) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("pg_repo")
	log.Debug("loading progress: learner=%s", learnerID)

	slots, err := loadSlots(ctx, r.pool, learnerID)
	if err != nil {
		log.Error("failed to load slots: %v", err)
		return models.Progress{}, err
	}
	return repository.DecodeProgress(slots, r.maxHearts)
}

func (r *progressRepository) Update(ctx context.Context, learnerID string, fn repository.UpdateFunc) error {
	log := logger.FromContext(ctx).WithPrefix("pg_repo")
	log.Debug("updating progress: learner=%s", learnerID)

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, learnerID); err != nil {
			log.Error("failed to take learner lock: %v", err)
			return fmt.Errorf("advisory lock: %w", err)
		}
		slots, err := loadSlots(ctx, tx, learnerID)
		if err != nil {
			return err
		}
		changed, err := repository.Transition(slots, r.maxHearts, fn)
		if err != nil {
			return err
		}
		for _, slot := range repository.Slots {
			value, ok := changed[slot]
			if !ok {
				continue
			}
			query, args, err := sqlBuilder.Insert("progress_slots").
				Columns("learner_id", "slot", "value").
				Values(learnerID, slot, value).
				Suffix("ON CONFLICT (learner_id, slot) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				log.Error("failed to write slot %s: %v", slot, err)
				return fmt.Errorf("write slot %s: %w", slot, err)
			}
		}
		log.Debug("progress updated: learner=%s, slots=%d", learnerID, len(changed))
		return nil
	})
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func loadSlots(ctx context.Context, q querier, learnerID string) (map[string]string, error) {
	query, args, err := sqlBuilder.Select("slot", "value").
		From("progress_slots").
		Where(squirrel.Eq{"learner_id": learnerID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	slots := make(map[string]string)
	for rows.Next() {
		var slot, value string
		if err := rows.Scan(&slot, &value); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots[slot] = value
	}
	return slots, rows.Err()
}
