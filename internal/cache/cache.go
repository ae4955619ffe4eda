// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache memoizes registry fetch results in a SQLite database with
// a time-to-live. The cache is purely an optimization layer between the
// pipeline and the registry client: a miss, an expired entry, or any
// cache-side error falls through to a live fetch, and stale-within-TTL
// results are acceptable by contract.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/prazg/brain-trials-finder/internal/registry"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// now is swapped by tests to control expiry.
var now = time.Now

const defaultTTL = time.Hour

// Store holds cached fetch results.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database at cfg.Path and ensures the
// schema exists.
func Open(cfg types.CacheConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS fetch_results (
		key TEXT PRIMARY KEY,
		fetched_at TEXT NOT NULL,
		studies TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the cached studies for key when present and fresher than
// the TTL.
func (s *Store) Get(ctx context.Context, key string) ([]types.Study, bool, error) {
	var fetchedAt, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, studies FROM fetch_results WHERE key = ?`, key,
	).Scan(&fetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || now().Sub(t) > s.ttl {
		return nil, false, nil
	}

	var studies []types.Study
	if err := json.Unmarshal([]byte(payload), &studies); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return studies, true, nil
}

// Put stores the studies for key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, studies []types.Study) error {
	payload, err := json.Marshal(studies)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO fetch_results (key, fetched_at, studies) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			fetched_at=excluded.fetched_at, studies=excluded.studies`,
		key, now().UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Key derives the cache key for a fetch: the term list plus the registry
// parameters that shape the result set.
func Key(terms []string, cfg types.RegistryConfig) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(terms, "\x1f")))
	h.Write([]byte("\x1e"))
	h.Write([]byte(strings.Join(cfg.Statuses, ",")))
	h.Write([]byte("\x1e"))
	h.Write([]byte(strconv.Itoa(cfg.PageSize) + ":" + strconv.Itoa(cfg.MaxPages)))
	return hex.EncodeToString(h.Sum(nil))
}

// Fetcher wraps a live fetcher with the store. On a fresh hit the
// registry is never contacted; term errors are only ever reported on live
// fetches.
type Fetcher struct {
	Live  liveFetcher
	Store *Store
	Cfg   types.RegistryConfig
	Log   zerolog.Logger
}

type liveFetcher interface {
	FetchAllTerms(ctx context.Context, terms []string) registry.FetchResult
}

// FetchAllTerms serves from the cache when possible, otherwise fetches
// live and stores the result. Fully failed fetches are not cached, so a
// transient outage does not poison the TTL window.
func (f *Fetcher) FetchAllTerms(ctx context.Context, terms []string) registry.FetchResult {
	key := Key(terms, f.Cfg)

	if studies, ok, err := f.Store.Get(ctx, key); err != nil {
		f.Log.Warn().Err(err).Msg("cache read failed, fetching live")
	} else if ok {
		f.Log.Debug().Str("key", key[:12]).Int("studies", len(studies)).Msg("cache hit")
		return registry.FetchResult{Studies: studies}
	}

	res := f.Live.FetchAllTerms(ctx, terms)
	if len(res.TermErrors) < len(terms) {
		if err := f.Store.Put(ctx, key, res.Studies); err != nil {
			f.Log.Warn().Err(err).Msg("cache write failed")
		}
	}
	return res
}
