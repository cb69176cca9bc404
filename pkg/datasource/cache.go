package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/g-claudino/Cartola-FC-Tournament-Analysis/internal/logger"
	_ "modernc.org/sqlite"
)

const createPageCacheSQL = `CREATE TABLE IF NOT EXISTS page_cache (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// PageCache keeps fetched pages in a SQLite file so repeated runs don't hit
// Wikipedia or the Cartola API again. Entries older than the TTL are
// ignored; a TTL of zero keeps them forever.
type PageCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenPageCache opens (creating if needed) the cache at path. ":memory:"
// gives a throwaway cache.
func OpenPageCache(path string, ttl time.Duration) (*PageCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection, otherwise every pooled connection to ":memory:" is a new database
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.Exec(createPageCacheSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table page_cache: %w", err)
	}

	logger.Debug("Page cache opened", path)
	return &PageCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *PageCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached body for url and whether a fresh entry was found
func (c *PageCache) Get(url string) ([]byte, bool, error) {
	var body []byte
	var fetchedAt int64
	err := c.db.QueryRow("SELECT body, fetched_at FROM page_cache WHERE url = ?", url).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", url, err)
	}
	if c.ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		logger.Debug("Cache entry expired", url)
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body for url, replacing any previous entry
func (c *PageCache) Put(url string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO page_cache (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, c.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", url, err)
	}
	return nil
}

// Wrap returns a Fetcher that answers from the cache and falls back to next,
// storing whatever next returns. Cache failures are logged, never fatal.
func (c *PageCache) Wrap(next Fetcher) Fetcher {
	return func(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
		body, ok, err := c.Get(url)
		if err != nil {
			logger.Warn("Page cache read failed", err)
		} else if ok {
			logger.Debug("Cache hit", url)
			return body, nil
		}

		body, err = next(ctx, url, headers)
		if err != nil {
			return nil, err
		}
		if err := c.Put(url, body); err != nil {
			logger.Warn("Page cache write failed", err)
		}
		return body, nil
	}
}
