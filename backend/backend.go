// Package backend defines the synchronous storage layer the engine runs
// its transactions on. A Driver owns many named databases; each database
// holds a schema version and a set of tables.
package backend

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("key doesn't exist")
	ErrTableNotFound = errors.New("table doesn't exist")
	ErrTableExists   = errors.New("table already exists")
	ErrReadOnly      = errors.New("write in read only transaction")
)

type Driver interface {
	//open or create
	Open(name string) (DB, error)
	//remove non-exist database returns nil, the database must be closed
	Remove(name string) error
	Close() error
}

type DB interface {
	//0 for a database never upgraded
	Version() (uint64, error)
	Begin(writable bool) (Transaction, error)
	Close() error
}

type KV struct {
	Key   []byte
	Value []byte
}

type Transaction interface {
	Commit() error
	Rollback() error

	SetVersion(uint64) error
	//sorted
	Tables() ([]string, error)
	HasTable(string) (bool, error)
	//create exist table returns ErrTableExists
	CreateTable(string) error

	//insert or replace
	Put(table string, key, value []byte) error
	//get non-exist key returns ErrNotFound
	Get(table string, key []byte) ([]byte, error)
	//delete non-exist key returns nil
	Delete(table string, key []byte) error
	//in key order
	List(table string) ([]KV, error)
	Clear(table string) error
}
