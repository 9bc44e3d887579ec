package engine

import (
	"fmt"
	"sync"

	"github.com/zdnscloud/kvsession"
)

type connection struct {
	engine      *Engine
	db          *database
	id          uint64
	version     uint64
	collections []string

	lock     sync.Mutex
	closing  bool
	detached bool
	liveTxs  int
}

var _ kvsession.Connection = &connection{}

func newConnection(e *Engine, db *database, id, version uint64, collections []string) *connection {
	return &connection{
		engine:      e,
		db:          db,
		id:          id,
		version:     version,
		collections: collections,
	}
}

func (c *connection) Name() string {
	return c.db.name
}

func (c *connection) Version() uint64 {
	return c.version
}

func (c *connection) Collections() []string {
	return append([]string{}, c.collections...)
}

func (c *connection) hasCollection(name string) bool {
	for _, n := range c.collections {
		if n == name {
			return true
		}
	}
	return false
}

func (c *connection) Transaction(collection string, mode kvsession.Mode) (kvsession.Transaction, error) {
	if mode != kvsession.ReadOnly && mode != kvsession.ReadWrite {
		return nil, fmt.Errorf("unknown transaction mode %d", mode)
	}

	if !c.hasCollection(collection) {
		return nil, fmt.Errorf("%w: %s in database %s", kvsession.ErrCollectionNotFound, collection, c.db.name)
	}

	c.lock.Lock()
	if c.closing || !c.engine.Supported() {
		c.lock.Unlock()
		return nil, kvsession.ErrClosed
	}
	c.liveTxs += 1
	c.lock.Unlock()

	tx := newTransaction(c, collection, mode)
	c.engine.Dispatch(func() {
		if c.engine.isClosed() {
			tx.abort(kvsession.ErrClosed)
			return
		}
		c.db.txs = append(c.db.txs, tx)
		c.engine.scheduleTx(c.db)
	})
	return tx, nil
}

func (c *connection) Close() {
	if c.engine.hooks.OnClose != nil {
		c.engine.hooks.OnClose(c.db.name)
	}

	c.lock.Lock()
	c.closing = true
	detach := c.liveTxs == 0 && !c.detached
	if detach {
		c.detached = true
	}
	c.lock.Unlock()

	if detach {
		c.engine.Dispatch(func() {
			c.engine.detach(c)
		})
	}
}

//called on the loop when one of the connection's transactions finishes
func (c *connection) txDone() {
	c.lock.Lock()
	c.liveTxs -= 1
	detach := c.closing && c.liveTxs == 0 && !c.detached
	if detach {
		c.detached = true
	}
	c.lock.Unlock()

	if detach {
		c.engine.detach(c)
	}
}
