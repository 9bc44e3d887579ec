// Package memory keeps databases in process memory. Write transactions
// work on a copy of the database state that replaces it on commit.
package memory

import (
	"bytes"
	"sort"
	"sync"

	"github.com/zdnscloud/kvsession/backend"
)

type Driver struct {
	lock sync.Mutex
	dbs  map[string]*memDB
}

var _ backend.Driver = &Driver{}

func New() *Driver {
	return &Driver{
		dbs: make(map[string]*memDB),
	}
}

func (d *Driver) Open(name string) (backend.DB, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	db, ok := d.dbs[name]
	if !ok {
		db = &memDB{state: newState()}
		d.dbs[name] = db
	}
	return &handle{db: db}, nil
}

func (d *Driver) Remove(name string) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.dbs, name)
	return nil
}

func (d *Driver) Close() error {
	return nil
}

type state struct {
	version uint64
	tables  map[string]map[string][]byte
}

func newState() *state {
	return &state{tables: make(map[string]map[string][]byte)}
}

func (s *state) clone() *state {
	c := &state{
		version: s.version,
		tables:  make(map[string]map[string][]byte, len(s.tables)),
	}
	for name, t := range s.tables {
		ct := make(map[string][]byte, len(t))
		for k, v := range t {
			ct[k] = v
		}
		c.tables[name] = ct
	}
	return c
}

type memDB struct {
	lock  sync.RWMutex
	state *state
	//serializes writers, never held by Version or readers
	writer sync.Mutex
}

type handle struct {
	db *memDB
}

func (h *handle) Version() (uint64, error) {
	h.db.lock.RLock()
	defer h.db.lock.RUnlock()
	return h.db.state.version, nil
}

func (h *handle) Begin(writable bool) (backend.Transaction, error) {
	if writable {
		h.db.writer.Lock()
	}
	h.db.lock.RLock()
	s := h.db.state
	h.db.lock.RUnlock()

	tx := &memTx{db: h.db, writable: writable, state: s}
	if writable {
		tx.state = s.clone()
	}
	return tx, nil
}

func (h *handle) Close() error {
	return nil
}

type memTx struct {
	db       *memDB
	writable bool
	done     bool
	state    *state
}

func (tx *memTx) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true
	if tx.writable {
		tx.db.lock.Lock()
		tx.db.state = tx.state
		tx.db.lock.Unlock()
		tx.db.writer.Unlock()
	}
	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	if tx.writable {
		tx.db.writer.Unlock()
	}
	return nil
}

func (tx *memTx) SetVersion(v uint64) error {
	if !tx.writable {
		return backend.ErrReadOnly
	}
	tx.state.version = v
	return nil
}

func (tx *memTx) Tables() ([]string, error) {
	names := make([]string, 0, len(tx.state.tables))
	for name := range tx.state.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (tx *memTx) HasTable(name string) (bool, error) {
	_, ok := tx.state.tables[name]
	return ok, nil
}

func (tx *memTx) CreateTable(name string) error {
	if !tx.writable {
		return backend.ErrReadOnly
	}
	if _, ok := tx.state.tables[name]; ok {
		return backend.ErrTableExists
	}
	tx.state.tables[name] = make(map[string][]byte)
	return nil
}

func (tx *memTx) table(name string) (map[string][]byte, error) {
	t, ok := tx.state.tables[name]
	if !ok {
		return nil, backend.ErrTableNotFound
	}
	return t, nil
}

func (tx *memTx) Put(table string, key, value []byte) error {
	if !tx.writable {
		return backend.ErrReadOnly
	}
	t, err := tx.table(table)
	if err != nil {
		return err
	}
	t[string(key)] = append([]byte{}, value...)
	return nil
}

func (tx *memTx) Get(table string, key []byte) ([]byte, error) {
	t, err := tx.table(table)
	if err != nil {
		return nil, err
	}
	v, ok := t[string(key)]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return append([]byte{}, v...), nil
}

func (tx *memTx) Delete(table string, key []byte) error {
	if !tx.writable {
		return backend.ErrReadOnly
	}
	t, err := tx.table(table)
	if err != nil {
		return err
	}
	delete(t, string(key))
	return nil
}

func (tx *memTx) List(table string) ([]backend.KV, error) {
	t, err := tx.table(table)
	if err != nil {
		return nil, err
	}
	kvs := make([]backend.KV, 0, len(t))
	for k, v := range t {
		kvs = append(kvs, backend.KV{Key: []byte(k), Value: append([]byte{}, v...)})
	}
	sort.Slice(kvs, func(i, j int) bool {
		return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs, nil
}

func (tx *memTx) Clear(table string) error {
	if !tx.writable {
		return backend.ErrReadOnly
	}
	if _, err := tx.table(table); err != nil {
		return err
	}
	tx.state.tables[table] = make(map[string][]byte)
	return nil
}
