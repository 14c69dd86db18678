package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PoolOptions bounds the connection pool. Zero values keep database/sql defaults.
type PoolOptions struct {
	MaxOpenConns int
	MaxIdleConns int
}

func Connect(
	host, port, name, user, password string,
	pool PoolOptions,
) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, name, user, password,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
