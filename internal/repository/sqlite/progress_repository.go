package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

type progressRepository struct {
	db        *sql.DB
	maxHearts int
}

// NewProgressRepository creates a ProgressRepository over the progress_slots table
func NewProgressRepository(db *sql.DB, maxHearts int) repository.ProgressRepository {
	return &progressRepository{db: db, maxHearts: maxHearts}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *progressRepository) Load(ctx context.Context, learnerID string) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("loading progress: learner=%s", learnerID)

	slots, err := loadSlots(ctx, r.db, learnerID)
	if err != nil {
		log.Error("failed to load slots: %v", err)
		return models.Progress{}, err
	}
	return repository.DecodeProgress(slots, r.maxHearts)
}

func (r *progressRepository) Update(ctx context.Context, learnerID string, fn repository.UpdateFunc) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("updating progress: learner=%s", learnerID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		slots, err := loadSlots(ctx, tx, learnerID)
		if err != nil {
			log.Error("failed to load slots: %v", err)
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
				Suffix("ON CONFLICT(learner_id, slot) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
				ToSql()
			if err != nil {
				log.Error("failed to build query: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to write slot %s: %v", slot, err)
				return fmt.Errorf("write slot %s: %w", slot, err)
			}
		}
		log.Debug("progress updated: learner=%s, slots=%d", learnerID, len(changed))
		return nil
	})
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func loadSlots(ctx context.Context, q queryer, learnerID string) (map[string]string, error) {
	query, args, err := sqlBuilder.Select("slot", "value").
		From("progress_slots").
		Where(squirrel.Eq{"learner_id": learnerID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
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
