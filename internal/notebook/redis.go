package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

const redisKeyPrefix = "immortalis:notebook:"

// RedisStore keeps each session as a metadata key plus an entry list, both
// expiring with the session.
type RedisStore struct {
	c   *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewRedisStore(c *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{c: c, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string { return redisKeyPrefix + id + ":session" }
func entriesKey(id string) string { return redisKeyPrefix + id + ":entries" }

func (r *RedisStore) Create(ctx context.Context) (Session, error) {
	now := r.now()
	sess := Session{ID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(r.ttl)}
	raw, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode notebook session: %w", err)
	}
	if err := r.c.Set(ctx, sessionKey(sess.ID), raw, r.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("create notebook session: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return sess, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := r.c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, sessionNotFound(id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get notebook session: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode notebook session %q: %w", id, err)
	}
	if sess.Expired(r.now()) {
		return Session{}, sessionNotFound(id)
	}
	return sess, nil
}

func (r *RedisStore) Append(ctx context.Context, sess Session, content string, at time.Time) (model.NotebookEntry, error) {
	if at.IsZero() {
		at = r.now()
	}
	entry, err := newEntry(content, at)
	if err != nil {
		return model.NotebookEntry{}, err
	}
	live, err := r.Get(ctx, sess.ID)
	if err != nil {
		return model.NotebookEntry{}, err
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return model.NotebookEntry{}, fmt.Errorf("encode notebook entry: %w", err)
	}
	_, err = r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, entriesKey(live.ID), raw)
		p.ExpireAt(ctx, entriesKey(live.ID), live.ExpiresAt)
		return nil
	})
	if err != nil {
		return model.NotebookEntry{}, fmt.Errorf("append notebook entry: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return entry, nil
}

func (r *RedisStore) List(ctx context.Context, sess Session, limit int) ([]model.NotebookEntry, error) {
	live, err := r.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raws, err := r.c.LRange(ctx, entriesKey(live.ID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notebook entries: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	entries := make([]model.NotebookEntry, 0, len(raws))
	for _, raw := range raws {
		var e model.NotebookEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode notebook entry: %w", err)
		}
		entries = append(entries, e)
	}
	return newestFirst(entries, 0), nil
}
