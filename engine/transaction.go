package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend"
)

type txState int

const (
	txPending txState = iota
	txActive
	txCommitting
	txDone
)

type operation func(tx backend.Transaction) (interface{}, error)

type pendingRequest struct {
	req *request
	run operation
}

type transaction struct {
	conn  *connection
	scope string
	mode  kvsession.Mode
	//settles nil on complete, with the cause on abort
	outcome *request

	lock           sync.Mutex
	state          txState
	queue          []*pendingRequest
	abortRequested bool

	//owned by the loop
	btx backend.Transaction
}

var _ kvsession.Transaction = &transaction{}

func newTransaction(c *connection, scope string, mode kvsession.Mode) *transaction {
	return &transaction{
		conn:    c,
		scope:   scope,
		mode:    mode,
		outcome: newRequest(c.engine.loop),
	}
}

func (t *transaction) loop() *loop {
	return t.conn.engine.loop
}

func (t *transaction) Mode() kvsession.Mode {
	return t.mode
}

func (t *transaction) Collection(name string) (kvsession.Collection, error) {
	if name != t.scope {
		return nil, fmt.Errorf("%w: %s isn't in transaction scope", kvsession.ErrCollectionNotFound, name)
	}
	return &collection{tx: t, name: name}, nil
}

func (t *transaction) OnComplete(fn func()) {
	t.outcome.OnSuccess(func(interface{}) {
		fn()
	})
}

func (t *transaction) OnAbort(fn func(error)) {
	t.outcome.OnError(fn)
}

func (t *transaction) Abort() {
	t.lock.Lock()
	t.abortRequested = true
	t.lock.Unlock()
}

func (t *transaction) issue(run operation) kvsession.Request {
	req := newRequest(t.loop())
	t.lock.Lock()
	if t.state >= txCommitting {
		t.lock.Unlock()
		req.settleLater(nil, kvsession.ErrTransactionInactive)
		return req
	}
	t.queue = append(t.queue, &pendingRequest{req: req, run: run})
	t.lock.Unlock()
	return req
}

//called on the loop when the transaction reaches the head of its
//database queue
func (t *transaction) begin() {
	btx, err := t.conn.db.store.Begin(t.mode == kvsession.ReadWrite)
	if err != nil {
		t.abort(err)
		return
	}
	t.btx = btx

	t.lock.Lock()
	t.state = txActive
	t.lock.Unlock()
	t.loop().post(t.step)
}

//runs one request per task so handlers of a settled request can issue
//the next one before the transaction decides to commit
func (t *transaction) step() {
	t.lock.Lock()
	if t.state != txActive {
		t.lock.Unlock()
		return
	}

	if t.abortRequested {
		t.lock.Unlock()
		t.abort(kvsession.ErrAborted)
		return
	}

	if len(t.queue) == 0 {
		t.state = txCommitting
		t.lock.Unlock()
		t.commit()
		return
	}

	p := t.queue[0]
	t.queue[0] = nil
	t.queue = t.queue[1:]
	t.lock.Unlock()

	result, err := p.run(t.btx)
	if err != nil {
		p.req.settle(nil, err)
		t.abort(err)
		return
	}
	p.req.settle(result, nil)
	t.loop().post(t.step)
}

func (t *transaction) commit() {
	err := t.btx.Commit()

	t.lock.Lock()
	t.state = txDone
	t.lock.Unlock()

	if err != nil {
		log.Warnf("commit transaction on %s/%s failed: %s", t.conn.db.name, t.scope, err.Error())
		t.outcome.settle(nil, err)
	} else {
		t.outcome.settle(nil, nil)
	}
	t.finish()
}

func (t *transaction) abort(cause error) {
	t.lock.Lock()
	t.state = txDone
	rest := t.queue
	t.queue = nil
	t.lock.Unlock()

	if t.btx != nil {
		t.btx.Rollback()
	}
	for _, p := range rest {
		p.req.settle(nil, kvsession.ErrAborted)
	}
	log.Debugf("transaction on %s/%s aborted: %s", t.conn.db.name, t.scope, cause.Error())
	t.outcome.settle(nil, cause)
	t.finish()
}

func (t *transaction) finish() {
	db := t.conn.db
	if db.active == t {
		db.active = nil
	}
	t.conn.txDone()
	t.conn.engine.scheduleTx(db)
}

type collection struct {
	tx   *transaction
	name string
}

var _ kvsession.Collection = &collection{}

func (c *collection) Name() string {
	return c.name
}

func (c *collection) writable() error {
	if c.tx.mode != kvsession.ReadWrite {
		return kvsession.ErrReadOnly
	}
	return nil
}

func (c *collection) Put(item []byte, key kvsession.Key) kvsession.Request {
	k, keyErr := kvsession.EncodeKey(key)
	value := append([]byte{}, item...)
	return c.tx.issue(func(tx backend.Transaction) (interface{}, error) {
		if keyErr != nil {
			return nil, keyErr
		}
		if err := c.writable(); err != nil {
			return nil, err
		}
		if err := tx.Put(c.name, k, value); err != nil {
			return nil, mapError(err)
		}
		return key, nil
	})
}

func (c *collection) Get(key kvsession.Key) kvsession.Request {
	k, keyErr := kvsession.EncodeKey(key)
	return c.tx.issue(func(tx backend.Transaction) (interface{}, error) {
		if keyErr != nil {
			return nil, keyErr
		}
		v, err := tx.Get(c.name, k)
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		} else if err != nil {
			return nil, mapError(err)
		}
		return v, nil
	})
}

func (c *collection) GetAll() kvsession.Request {
	return c.tx.issue(func(tx backend.Transaction) (interface{}, error) {
		kvs, err := tx.List(c.name)
		if err != nil {
			return nil, mapError(err)
		}
		items := make([][]byte, 0, len(kvs))
		for _, kv := range kvs {
			items = append(items, kv.Value)
		}
		return items, nil
	})
}

func (c *collection) Delete(key kvsession.Key) kvsession.Request {
	k, keyErr := kvsession.EncodeKey(key)
	return c.tx.issue(func(tx backend.Transaction) (interface{}, error) {
		if keyErr != nil {
			return nil, keyErr
		}
		if err := c.writable(); err != nil {
			return nil, err
		}
		return nil, mapError(tx.Delete(c.name, k))
	})
}

func (c *collection) Clear() kvsession.Request {
	return c.tx.issue(func(tx backend.Transaction) (interface{}, error) {
		if err := c.writable(); err != nil {
			return nil, err
		}
		return nil, mapError(tx.Clear(c.name))
	})
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, backend.ErrTableNotFound):
		return kvsession.ErrCollectionNotFound
	case errors.Is(err, backend.ErrReadOnly):
		return kvsession.ErrReadOnly
	default:
		return err
	}
}
