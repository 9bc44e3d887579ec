// Package kvsession defines the capability surface of an asynchronous,
// schema-versioned key-value engine and the request/response Store
// contract built on top of it.
//
// Engine handlers run on the engine's event loop. Requests settle once;
// handlers registered after settlement still fire once.
package kvsession

import (
	"context"
)

type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "readonly"
	case ReadWrite:
		return "readwrite"
	default:
		return "unknown"
	}
}

type Engine interface {
	//false when the platform cannot provide storage
	Supported() bool
	//version 0 means the stored version, or 1 for a new database
	//upgrade runs on the loop when the version has to grow
	OpenDatabase(name string, version uint64, upgrade UpgradeFunc) OpenRequest
	//delete non-exist database succeeds
	DeleteDatabase(name string) Request
	//run fn on the event loop, transactions created inside fn
	//can issue requests until fn returns
	Dispatch(fn func())
}

type UpgradeFunc func(schema Schema, oldVersion, newVersion uint64) error

type Schema interface {
	HasCollection(string) bool
	//create exist collection returns ErrCollectionExists
	CreateCollection(string) error
	Collections() []string
}

type OpenRequest interface {
	OnSuccess(func(Connection))
	OnError(func(error))
}

type Connection interface {
	Name() string
	Version() uint64
	Collections() []string
	Transaction(collection string, mode Mode) (Transaction, error)
	//close is idempotent, the connection goes away once its
	//transactions finish
	Close()
}

type Transaction interface {
	Mode() Mode
	Collection(string) (Collection, error)
	OnComplete(func())
	OnAbort(func(error))
	Abort()
}

type Collection interface {
	Name() string
	//insert or replace, result is the key
	Put(item []byte, key Key) Request
	//result is nil for non-exist key
	Get(Key) Request
	//result is [][]byte in key order
	GetAll() Request
	//delete non-exist key succeeds
	Delete(Key) Request
	Clear() Request
}

type Request interface {
	OnSuccess(func(interface{}))
	OnError(func(error))
}

// Store is the linear contract exposed to callers, implemented locally
// by session.Session and remotely by client.Client.
type Store interface {
	Write(ctx context.Context, database, collection string, item []byte, key Key) error
	ReadOne(ctx context.Context, database, collection string, key Key) ([]byte, bool, error)
	ReadAll(ctx context.Context, database, collection string) ([][]byte, error)
	//upsert, missing key behaves like Write
	Update(ctx context.Context, database, collection string, item []byte, key Key) error
	RemoveOne(ctx context.Context, database, collection string, key Key) error
	ClearAll(ctx context.Context, database, collection string) error
	//bump schema version and create collection seeded with item
	AddCollection(ctx context.Context, database, collection string, item []byte, key Key) error
	CurrentVersion(ctx context.Context, database string) (uint64, error)
	DeleteDatabase(ctx context.Context, database string) error
}
