// Package engine implements kvsession.Engine over a backend.Driver.
//
// All engine state lives on one event loop goroutine. Opens and deletes
// of a database are queued in order; an open that must upgrade the schema,
// and a delete, wait until the database has no open connection.
// Transactions of a database run one at a time, each auto-commits once
// it has no pending request after the task that settled its last one.
package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend"
)

// Hooks observe connection lifecycle, OnClose fires on every Close call.
type Hooks struct {
	OnOpen  func(database string, version uint64)
	OnClose func(database string)
}

type Option func(*Engine)

func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

type Engine struct {
	driver backend.Driver
	loop   *loop
	hooks  Hooks
	closed int32

	//owned by the loop
	dbs    map[string]*database
	nextID uint64
}

var _ kvsession.Engine = &Engine{}

func New(driver backend.Driver, opts ...Option) *Engine {
	e := &Engine{
		driver: driver,
		loop:   newLoop(),
		dbs:    make(map[string]*database),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type opKind int

const (
	opOpen opKind = iota
	opDelete
)

type pendingOp struct {
	kind    opKind
	version uint64
	upgrade kvsession.UpgradeFunc
	req     *request
}

type database struct {
	name    string
	store   backend.DB
	conns   map[uint64]*connection
	pending []*pendingOp

	txs    []*transaction
	active *transaction
}

func (e *Engine) Supported() bool {
	return e.driver != nil && !e.isClosed()
}

func (e *Engine) isClosed() bool {
	return atomic.LoadInt32(&e.closed) == 1
}

func (e *Engine) Dispatch(fn func()) {
	if !e.loop.post(fn) {
		fn()
	}
}

func (e *Engine) OpenDatabase(name string, version uint64, upgrade kvsession.UpgradeFunc) kvsession.OpenRequest {
	req := newRequest(e.loop)
	e.enqueue(name, &pendingOp{
		kind:    opOpen,
		version: version,
		upgrade: upgrade,
		req:     req,
	})
	return openRequest{req}
}

func (e *Engine) DeleteDatabase(name string) kvsession.Request {
	req := newRequest(e.loop)
	e.enqueue(name, &pendingOp{
		kind: opDelete,
		req:  req,
	})
	return req
}

func (e *Engine) enqueue(name string, op *pendingOp) {
	if !e.Supported() {
		op.req.settleLater(nil, kvsession.ErrCapabilityUnavailable)
		return
	}

	if err := kvsession.ValidateDatabaseName(name); err != nil {
		op.req.settleLater(nil, err)
		return
	}

	e.Dispatch(func() {
		if e.isClosed() {
			op.req.settle(nil, kvsession.ErrClosed)
			return
		}
		db := e.database(name)
		db.pending = append(db.pending, op)
		e.processPending(db)
	})
}

func (e *Engine) database(name string) *database {
	db, ok := e.dbs[name]
	if !ok {
		db = &database{
			name:  name,
			conns: make(map[uint64]*connection),
		}
		e.dbs[name] = db
	}
	return db
}

func (e *Engine) storeOf(db *database) (backend.DB, error) {
	if db.store == nil {
		store, err := e.driver.Open(db.name)
		if err != nil {
			return nil, err
		}
		db.store = store
	}
	return db.store, nil
}

//runs queued opens and deletes in order until one has to wait
func (e *Engine) processPending(db *database) {
	for len(db.pending) > 0 {
		op := db.pending[0]
		var ready bool
		switch op.kind {
		case opDelete:
			ready = e.runDelete(db, op)
		case opOpen:
			ready = e.runOpen(db, op)
		}
		if !ready {
			return
		}
		db.pending[0] = nil
		db.pending = db.pending[1:]
	}
}

func (e *Engine) runDelete(db *database, op *pendingOp) bool {
	if len(db.conns) > 0 {
		log.Debugf("delete database %s waits for %d connections", db.name, len(db.conns))
		return false
	}

	if db.store != nil {
		if err := db.store.Close(); err != nil {
			log.Warnf("close database %s before delete failed: %s", db.name, err.Error())
		}
		db.store = nil
	}

	err := e.driver.Remove(db.name)
	if err != nil {
		log.Warnf("delete database %s failed: %s", db.name, err.Error())
	} else {
		log.Debugf("database %s deleted", db.name)
	}
	op.req.settle(nil, err)
	return true
}

//returns false when the open must wait for other connections to close
func (e *Engine) runOpen(db *database, op *pendingOp) bool {
	store, err := e.storeOf(db)
	if err != nil {
		op.req.settle(nil, err)
		return true
	}

	current, err := store.Version()
	if err != nil {
		op.req.settle(nil, err)
		return true
	}

	target := op.version
	if target == 0 {
		target = current
		if target == 0 {
			target = 1
		}
	}

	if target < current {
		op.req.settle(nil, fmt.Errorf("%w: requested %d, stored %d", kvsession.ErrVersion, target, current))
		return true
	}

	if target > current {
		if len(db.conns) > 0 {
			log.Debugf("upgrade of %s to version %d waits for %d connections", db.name, target, len(db.conns))
			return false
		}

		if err := e.upgrade(db, store, op.upgrade, current, target); err != nil {
			log.Warnf("upgrade of %s from version %d to %d failed: %s", db.name, current, target, err.Error())
			op.req.settle(nil, err)
			return true
		}
	}

	collections, err := storedCollections(store)
	if err != nil {
		op.req.settle(nil, err)
		return true
	}

	e.nextID += 1
	conn := newConnection(e, db, e.nextID, target, collections)
	db.conns[conn.id] = conn
	if e.hooks.OnOpen != nil {
		e.hooks.OnOpen(db.name, target)
	}
	op.req.settle(conn, nil)
	return true
}

func (e *Engine) upgrade(db *database, store backend.DB, fn kvsession.UpgradeFunc, oldVersion, newVersion uint64) error {
	tx, err := store.Begin(true)
	if err != nil {
		return err
	}

	if fn != nil {
		if err := fn(&schema{tx: tx}, oldVersion, newVersion); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.SetVersion(newVersion); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debugf("database %s upgraded from version %d to %d", db.name, oldVersion, newVersion)
	return nil
}

func storedCollections(store backend.DB) ([]string, error) {
	tx, err := store.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	return tx.Tables()
}

//called on the loop once a connection is closed and idle
func (e *Engine) detach(c *connection) {
	delete(c.db.conns, c.id)
	e.processPending(c.db)
}

func (e *Engine) scheduleTx(db *database) {
	if db.active != nil || len(db.txs) == 0 {
		return
	}
	tx := db.txs[0]
	db.txs[0] = nil
	db.txs = db.txs[1:]
	db.active = tx
	tx.begin()
}

// Close waits for queued work, fails what is still waiting with
// ErrClosed, then closes every database file. It must not be called from
// an engine handler.
func (e *Engine) Close() error {
	if !atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		return nil
	}

	done := make(chan error, 1)
	e.loop.post(func() {
		for _, db := range e.dbs {
			e.failWaiting(db)
		}

		var firstErr error
		for _, db := range e.dbs {
			if db.store == nil {
				continue
			}
			if err := db.store.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			db.store = nil
		}
		if e.driver != nil {
			if err := e.driver.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		done <- firstErr
	})
	err := <-done
	e.loop.stop()
	return err
}

//settles the opens, deletes and transactions of db that would otherwise
//wait forever once the engine is closed
func (e *Engine) failWaiting(db *database) {
	pending := db.pending
	db.pending = nil
	txs := db.txs
	db.txs = nil

	if db.active != nil {
		db.active.abort(kvsession.ErrClosed)
	}
	for _, tx := range txs {
		tx.abort(kvsession.ErrClosed)
	}
	for _, op := range pending {
		op.req.settle(nil, kvsession.ErrClosed)
	}
	if n := len(pending) + len(txs); n > 0 {
		log.Debugf("engine closed with %d waiting operations on %s", n, db.name)
	}
}
