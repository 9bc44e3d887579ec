// Package sqlite stores each database in its own SQLite file. Tables are
// rows of kv_tables and items live in a single kv_items table keyed by
// (table, key).
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zdnscloud/kvsession/backend"
)

const (
	fileSuffix       = ".sqlite"
	busyTimeoutMilli = 5000
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv_meta (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS kv_tables (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS kv_items (
		tbl   TEXT NOT NULL,
		key   BLOB NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (tbl, key)
	)`,
}

type Driver struct {
	dir string
}

var _ backend.Driver = &Driver{}

func New(dir string) (*Driver, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data dir %s failed: %w", dir, err)
	}
	return &Driver{dir: dir}, nil
}

func (d *Driver) path(name string) string {
	return filepath.Join(d.dir, name+fileSuffix)
}

//writers take the lock at BEGIN, readers start deferred so a reader
//never waits on the writer under WAL
func (d *Driver) Open(name string) (backend.DB, error) {
	write, err := d.openHandle(name, "immediate")
	if err != nil {
		return nil, err
	}
	for _, stmt := range schema {
		if _, err := write.Exec(stmt); err != nil {
			write.Close()
			return nil, fmt.Errorf("init sqlite schema for %s failed: %w", name, err)
		}
	}

	read, err := d.openHandle(name, "deferred")
	if err != nil {
		write.Close()
		return nil, err
	}
	return &sqliteDB{write: write, read: read}, nil
}

func (d *Driver) openHandle(name, txlock string) (*sql.DB, error) {
	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL&_txlock=%s",
		d.path(name), busyTimeoutMilli, txlock)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("open sqlite file for %s failed: %w", name, err)
	}
	return db, nil
}

func (d *Driver) Remove(name string) error {
	p := d.path(name)
	for _, f := range []string{p, p + "-wal", p + "-shm"} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}

type sqliteDB struct {
	write *sql.DB
	read  *sql.DB
}

func (s *sqliteDB) Version() (uint64, error) {
	return queryVersion(s.read.QueryRow(`SELECT value FROM kv_meta WHERE name = 'version'`))
}

func queryVersion(row *sql.Row) (uint64, error) {
	var version uint64
	err := row.Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

func (s *sqliteDB) Begin(writable bool) (backend.Transaction, error) {
	db := s.read
	if writable {
		db = s.write
	}
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, writable: writable}, nil
}

func (s *sqliteDB) Close() error {
	err := s.read.Close()
	if werr := s.write.Close(); werr != nil {
		err = werr
	}
	return err
}

type sqliteTx struct {
	tx       *sql.Tx
	writable bool
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTx) SetVersion(version uint64) error {
	if !t.writable {
		return backend.ErrReadOnly
	}
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO kv_meta (name, value) VALUES ('version', ?)`, int64(version))
	return err
}

func (t *sqliteTx) Tables() ([]string, error) {
	rows, err := t.tx.Query(`SELECT name FROM kv_tables ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (t *sqliteTx) HasTable(name string) (bool, error) {
	var n int
	err := t.tx.QueryRow(`SELECT COUNT(*) FROM kv_tables WHERE name = ?`, name).Scan(&n)
	return n > 0, err
}

func (t *sqliteTx) CreateTable(name string) error {
	if !t.writable {
		return backend.ErrReadOnly
	}
	exists, err := t.HasTable(name)
	if err != nil {
		return err
	}
	if exists {
		return backend.ErrTableExists
	}
	_, err = t.tx.Exec(`INSERT INTO kv_tables (name) VALUES (?)`, name)
	return err
}

func (t *sqliteTx) checkTable(name string, write bool) error {
	if write && !t.writable {
		return backend.ErrReadOnly
	}
	exists, err := t.HasTable(name)
	if err != nil {
		return err
	}
	if !exists {
		return backend.ErrTableNotFound
	}
	return nil
}

func (t *sqliteTx) Put(table string, key, value []byte) error {
	if err := t.checkTable(table, true); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO kv_items (tbl, key, value) VALUES (?, ?, ?)`, table, key, value)
	return err
}

func (t *sqliteTx) Get(table string, key []byte) ([]byte, error) {
	if err := t.checkTable(table, false); err != nil {
		return nil, err
	}
	var value []byte
	err := t.tx.QueryRow(`SELECT value FROM kv_items WHERE tbl = ? AND key = ?`, table, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (t *sqliteTx) Delete(table string, key []byte) error {
	if err := t.checkTable(table, true); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM kv_items WHERE tbl = ? AND key = ?`, table, key)
	return err
}

func (t *sqliteTx) List(table string) ([]backend.KV, error) {
	if err := t.checkTable(table, false); err != nil {
		return nil, err
	}
	rows, err := t.tx.Query(`SELECT key, value FROM kv_items WHERE tbl = ? ORDER BY key`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kvs []backend.KV
	for rows.Next() {
		var kv backend.KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, err
		}
		if kv.Value == nil {
			kv.Value = []byte{}
		}
		kvs = append(kvs, kv)
	}
	return kvs, rows.Err()
}

func (t *sqliteTx) Clear(table string) error {
	if err := t.checkTable(table, true); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM kv_items WHERE tbl = ?`, table)
	return err
}
