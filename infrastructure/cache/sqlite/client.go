// ABOUTME: SQLite-backed persistent cache for search bundles and page bodies
// ABOUTME: Survives restarts and sweeps expired rows on a background ticker

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("key not found or expired")

const (
	defaultPath            = "cache.db"
	defaultTable           = "cache"
	defaultCleanupInterval = 5 * time.Minute
)

// Option configures a Client.
type Option func(*Client)

// WithLogger reports suspicious keys and failed sweeps.
func WithLogger(logger Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTable stores entries in the named table instead of "cache".
func WithTable(name string) Option {
	return func(c *Client) { c.table = name }
}

// WithCleanupInterval sets how often expired rows are removed.
// A non-positive interval disables the sweeper.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Client) { c.cleanupInterval = d }
}

// Client implements the Cache interface using SQLite
type Client struct {
	db              *sql.DB
	filePath        string
	table           string
	stmts           statements
	logger          Logger
	cleanupInterval time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// NewSQLiteCache opens (or creates) the database at filePath.
func NewSQLiteCache(filePath string, opts ...Option) (*Client, error) {
	if filePath == "" {
		filePath = defaultPath
	}

	c := &Client{
		filePath:        filePath,
		table:           defaultTable,
		cleanupInterval: defaultCleanupInterval,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	stmts, err := buildStatements(c.table)
	if err != nil {
		return nil, fmt.Errorf("invalid cache table: %w", err)
	}
	c.stmts = stmts

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	c.db = db

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if c.cleanupInterval > 0 {
		go c.cleanupRoutine()
	}
	return c, nil
}

func (c *Client) initSchema() error {
	// c.table passed validateName in buildStatements.
	_, err := c.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_expiry ON %[1]s(expiry);
	`, c.table))
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx, c.stmts.get, key, now()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// Set stores a value with the given TTL. A zero TTL never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	expiry := int64(math.MaxInt64)
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixMilli()
	}

	if _, err := c.db.ExecContext(ctx, c.stmts.set, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, c.stmts.del, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

func (c *Client) cleanupRoutine() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if _, err := c.Cleanup(context.Background()); err != nil && c.logger != nil {
				c.logger.Warn("SQLite cache sweep failed", map[string]interface{}{
					"error": err.Error(),
					"path":  c.filePath,
				})
			}
		}
	}
}

// Cleanup removes expired entries and reports how many were dropped.
func (c *Client) Cleanup(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, c.stmts.cleanup, now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close stops the sweeper and closes the database connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.db.Close()
	})
	return err
}

func now() int64 {
	return time.Now().UnixMilli()
}
