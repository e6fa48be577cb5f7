package sqlite

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// A private in-memory database lives as long as its single connection, so the
// pool is pinned to one connection and nothing outlives the process.
const dsn = ":memory:"

const schema = `
CREATE TABLE customers (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      INTEGER NOT NULL,
	name    TEXT    NOT NULL,
	address TEXT    NOT NULL
);
CREATE INDEX customers_id ON customers (id, seq);

CREATE TABLE products (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	id    INTEGER NOT NULL,
	name  TEXT    NOT NULL,
	price TEXT    NOT NULL
);
CREATE INDEX products_id ON products (id, seq);

CREATE TABLE sales (
	seq              INTEGER PRIMARY KEY AUTOINCREMENT,
	id               INTEGER NOT NULL,
	customer_id      INTEGER NOT NULL,
	customer_name    TEXT    NOT NULL,
	customer_address TEXT    NOT NULL
);

CREATE TABLE sale_items (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	sale_seq   INTEGER NOT NULL REFERENCES sales (seq),
	product_id INTEGER NOT NULL,
	name       TEXT    NOT NULL,
	price      TEXT    NOT NULL
);
`

func Open() (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// The database dies with its connection: a recycled connection would
	// come back empty and without a schema.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return db, nil
}
