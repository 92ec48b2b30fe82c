package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PoolConfig tunes the connection pool. Zero fields fall back to defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var defaultPool = PoolConfig{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: 5 * time.Minute,
	ConnMaxIdleTime: 1 * time.Minute,
	PingTimeout:     5 * time.Second,
}

func (p PoolConfig) withDefaults() PoolConfig {
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = defaultPool.MaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = defaultPool.MaxIdleConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = defaultPool.ConnMaxLifetime
	}
	if p.ConnMaxIdleTime <= 0 {
		p.ConnMaxIdleTime = defaultPool.ConnMaxIdleTime
	}
	if p.PingTimeout <= 0 {
		p.PingTimeout = defaultPool.PingTimeout
	}
	return p
}

// NewPostgresConnection opens the center database (read side only) and pings it.
func NewPostgresConnection(dataSourceName string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool = pool.withDefaults()
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pool.PingTimeout)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
