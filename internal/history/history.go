// Package history stores the chapters a reader has opened.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"scripture-tui/internal/schema"
	"scripture-tui/internal/textnorm"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type Store struct {
	d      *diskv.Diskv
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the time source used for entries without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open returns a store rooted at dir, creating it if needed.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	s := &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 256 * 1024,
		}),
		dir:    dir,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Add validates and records one visit. A zero timestamp is set to now.
func (s *Store) Add(ctx context.Context, entry schema.ChapterHistory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = s.now().UnixMilli()
	}
	if err := schema.Validate(entry); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	// Keys sort by time; the uuid keeps same-millisecond visits apart.
	key := fmt.Sprintf("%015d-%s", entry.Timestamp, uuid.NewString())
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit is clamped to
// 1..100; zero or less means 50.
func (s *Store) List(ctx context.Context, limit int) ([]schema.ChapterHistory, error) {
	return s.collect(ctx, limit, func(schema.ChapterHistory) bool { return true })
}

// Search returns entries whose book, book name or version match query,
// ignoring case, accents and spaces.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]schema.ChapterHistory, error) {
	return s.collect(ctx, limit, func(e schema.ChapterHistory) bool {
		return textnorm.Contains(e.BookName, query) ||
			textnorm.Contains(e.Book, query) ||
			textnorm.Contains(e.VersionName, query)
	})
}

// Latest returns the most recent entry, if any.
func (s *Store) Latest(ctx context.Context) (schema.ChapterHistory, bool, error) {
	entries, err := s.List(ctx, 1)
	if err != nil || len(entries) == 0 {
		return schema.ChapterHistory{}, false, err
	}
	return entries[0], true, nil
}

// Clear removes every entry.
func (s *Store) Clear() error {
	if err := s.d.EraseAll(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return os.MkdirAll(s.dir, 0o755)
}

func (s *Store) collect(ctx context.Context, limit int, keep func(schema.ChapterHistory) bool) ([]schema.ChapterHistory, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]schema.ChapterHistory, 0, min(limit, len(keys)))
	for _, key := range keys {
		if len(out) == limit {
			break
		}
		data, err := s.d.Read(key)
		if err != nil {
			s.logger.Warn("read history entry", zap.String("key", key), zap.Error(err))
			continue
		}
		var entry schema.ChapterHistory
		if err := json.Unmarshal(data, &entry); err != nil {
			s.logger.Warn("decode history entry", zap.String("key", key), zap.Error(err))
			continue
		}
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}
