package episoderepo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/mirkojp/mandalorian-rental/model"
)

// ErrNotFound reports an id with no seeded record.
var ErrNotFound = errors.New("episode not found")

// Fields is a partial update. Values must be strings; the empty string
// stores an unset timestamp.
type Fields map[string]interface{}

type Repo interface {
	// GetAll returns every seeded episode ordered by id ascending.
	GetAll(ctx context.Context) ([]model.Episode, error)
	GetOne(ctx context.Context, id int64) (*model.Episode, error)
	UpdateFields(ctx context.Context, id int64, f Fields) error

	// UpdateFieldsIfStatus applies f only when the stored status still
	// equals expect, atomically with respect to concurrent writers.
	// Returns false when the guard fails or another writer got there first.
	UpdateFieldsIfStatus(ctx context.Context, id int64, expect model.EpisodeStatus, f Fields) (bool, error)

	// Seed wipes the store and loads the catalog. Destructive; call once
	// at startup only.
	Seed(ctx context.Context, episodes []model.Episode) error
}

type repo struct{ rdb *redis.Client }

func New(rdb *redis.Client) Repo { return &repo{rdb: rdb} }

func key(id int64) string { return fmt.Sprintf("episode:%d", id) }

func (r *repo) GetAll(ctx context.Context) ([]model.Episode, error) {
	keys, err := r.rdb.Keys(ctx, "episode:*").Result()
	if err != nil {
		return nil, err
	}

	out := make([]model.Episode, 0, len(keys))
	for _, k := range keys {
		rec, err := r.rdb.HGetAll(ctx, k).Result()
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		ep, err := decodeRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *repo) GetOne(ctx context.Context, id int64) (*model.Episode, error) {
	rec, err := r.rdb.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, ErrNotFound
	}
	ep, err := decodeRecord(rec)
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

func (r *repo) UpdateFields(ctx context.Context, id int64, f Fields) error {
	n, err := r.rdb.Exists(ctx, key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return r.rdb.HSet(ctx, key(id), map[string]interface{}(f)).Err()
}

func (r *repo) UpdateFieldsIfStatus(ctx context.Context, id int64, expect model.EpisodeStatus, f Fields) (bool, error) {
	k := key(id)
	applied := false

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		status, err := tx.HGet(ctx, k, "status").Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if status != string(expect) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, map[string]interface{}(f))
			return nil
		})
		if err == nil {
			applied = true
		}
		return err
	}, k)

	if errors.Is(err, redis.TxFailedErr) {
		// A concurrent writer changed the record between WATCH and EXEC;
		// the contested transition loses.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *repo) Seed(ctx context.Context, episodes []model.Episode) error {
	if err := r.rdb.FlushDB(ctx).Err(); err != nil {
		return err
	}
	for _, ep := range episodes {
		if err := r.rdb.HSet(ctx, key(ep.ID), encodeRecord(ep)).Err(); err != nil {
			return err
		}
	}
	return nil
}
