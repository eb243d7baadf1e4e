// Package redis stores learner progress as one Redis hash per learner.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

const (
	// KeyPrefix namespaces the per-learner progress hashes.
	KeyPrefix = "lingualearn:progress:"

	maxTxAttempts = 32
)

// ErrTxConflict is returned when an update kept losing optimistic races.
var ErrTxConflict = errors.New("redis: progress update conflicted too many times")

// Config holds Redis connection configuration.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type progressRepository struct {
	client    *redis.Client
	maxHearts int
}

// NewProgressRepository creates a ProgressRepository on client. Updates use
// WATCH/MULTI and are retried when another writer touched the same learner.
func NewProgressRepository(client *redis.Client, maxHearts int) repository.ProgressRepository {
	return &progressRepository{client: client, maxHearts: maxHearts}
}

func key(learnerID string) string {
	return KeyPrefix + learnerID
}

func (r *progressRepository) Load(ctx context.Context, learnerID string) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("redis_repo")
	log.Debug("loading progress: learner=%s", learnerID)

	slots, err := r.client.HGetAll(ctx, key(learnerID)).Result()
	if err != nil {
		log.Error("failed to read progress hash: %v", err)
		return models.Progress{}, err
	}
	return repository.DecodeProgress(slots, r.maxHearts)
}

func (r *progressRepository) Update(ctx context.Context, learnerID string, fn repository.UpdateFunc) error {
	log := logger.FromContext(ctx).WithPrefix("redis_repo")
	k := key(learnerID)

	txf := func(tx *redis.Tx) error {
		slots, err := tx.HGetAll(ctx, k).Result()
		if err != nil {
			return err
		}
		changed, err := repository.Transition(slots, r.maxHearts, fn)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		values := make([]any, 0, 2*len(changed))
		for slot, value := range changed {
			values = append(values, slot, value)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, values...)
			return nil
		})
		return err
	}

	return retryConflicts(log, learnerID, func() error {
		return r.client.Watch(ctx, txf, k)
	})
}

// retryConflicts repeats attempt while it loses optimistic races, up to
// maxTxAttempts times.
func retryConflicts(log *logger.Logger, learnerID string, attempt func() error) error {
	for n := 1; n <= maxTxAttempts; n++ {
		err := attempt()
		if errors.Is(err, redis.TxFailedErr) {
			log.Debug("progress update conflict: learner=%s, attempt=%d", learnerID, n)
			continue
		}
		if err != nil {
			log.Debug("update aborted: learner=%s, err=%v", learnerID, err)
		}
		return err
	}
	log.Error("giving up on progress update after %d attempts: learner=%s", maxTxAttempts, learnerID)
	return ErrTxConflict
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
