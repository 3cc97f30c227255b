package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a pgx-backed pool for the trip catalog. A planning run reads the
// whole catalog up front and then works in memory, so the pool stays
// small and idle connections are recycled quickly.
func Open(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	pool.SetMaxOpenConns(8)
	pool.SetMaxIdleConns(4)
	pool.SetConnMaxLifetime(30 * time.Minute)
	pool.SetConnMaxIdleTime(5 * time.Minute)

	if err := pool.Ping(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("open catalog db: verify connection: %w", err)
	}

	return pool, nil
}
