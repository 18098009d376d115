// Package storage records generated posts in Redis so operators can inspect
// recent runs and the topic picker can avoid immediate repeats. Every method
// is best-effort from the pipeline's point of view: a dead Redis never blocks
// a post.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogforge/internal/post"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 30 * 24 * time.Hour

type HistoryStore struct {
	rdb *redis.Client
}

func NewHistoryStore(rdb *redis.Client) *HistoryStore {
	return &HistoryStore{rdb: rdb}
}

func timelineKey() string {
	return "blog:posts:timeline"
}

func recordKey(date, slug string) string {
	return fmt.Sprintf("blog:post:%s:%s", date, slug)
}

// entry is the persisted subset of a post record.
type entry struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Date   string `json:"date"`
	Origin string `json:"origin"`
	Cover  string `json:"cover"`
}

// RecordPost stores a generated post and pushes it onto the timeline. A
// re-run of the same (date, slug) overwrites the stored record, matching the
// overwrite semantics of the content tree.
func (s *HistoryStore) RecordPost(ctx context.Context, r post.Record) error {
	date := r.Date.Format("2006-01-02")
	b, err := json.Marshal(entry{
		Title:  r.Title,
		Slug:   r.Slug,
		Date:   date,
		Origin: string(r.Origin),
		Cover:  string(r.Image.Origin),
	})
	if err != nil {
		return err
	}
	key := recordKey(date, r.Slug)
	if err := s.rdb.Set(ctx, key, b, historyTTL).Err(); err != nil {
		return err
	}
	z := redis.Z{Score: float64(r.Date.Unix()), Member: key}
	return s.rdb.ZAdd(ctx, timelineKey(), z).Err()
}

// Entry is a recorded post as returned to callers.
type Entry struct {
	Title  string
	Slug   string
	Date   string
	Origin string
	Cover  string
}

// Recent returns up to n most recently recorded posts, newest first. Records
// expired from under the timeline are skipped.
func (s *HistoryStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	keys, err := s.rdb.ZRevRange(ctx, timelineKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		b, err := s.rdb.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var e entry
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, err
		}
		out = append(out, Entry(e))
	}
	return out, nil
}

// RecentTopics returns the titles of the most recent n posts, for the topic
// picker to avoid immediate repeats.
func (s *HistoryStore) RecentTopics(ctx context.Context, n int) ([]string, error) {
	entries, err := s.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, e.Title)
	}
	return topics, nil
}
