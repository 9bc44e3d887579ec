package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zdnscloud/cement/log"
	ut "github.com/zdnscloud/cement/unittest"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend/memory"
)

func init() {
	log.InitLogger(log.Debug)
}

const waitTimeout = 5 * time.Second

type outcome struct {
	value interface{}
	err   error
}

func wait(t *testing.T, ch <-chan outcome) outcome {
	select {
	case o := <-ch:
		return o
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for engine")
		return outcome{}
	}
}

func openConn(t *testing.T, e *Engine, name string, version uint64, upgrade kvsession.UpgradeFunc) (kvsession.Connection, error) {
	ch := make(chan outcome, 1)
	req := e.OpenDatabase(name, version, upgrade)
	req.OnSuccess(func(c kvsession.Connection) { ch <- outcome{value: c} })
	req.OnError(func(err error) { ch <- outcome{err: err} })
	o := wait(t, ch)
	if o.err != nil {
		return nil, o.err
	}
	return o.value.(kvsession.Connection), nil
}

func createCollection(name string) kvsession.UpgradeFunc {
	return func(s kvsession.Schema, oldVersion, newVersion uint64) error {
		if s.HasCollection(name) {
			return nil
		}
		return s.CreateCollection(name)
	}
}

// runOnLoop creates a transaction and lets fn issue requests inside the
// same loop task, then waits for the transaction to finish.
func runOnLoop(t *testing.T, e *Engine, conn kvsession.Connection, coll string, mode kvsession.Mode, fn func(kvsession.Transaction, kvsession.Collection)) error {
	ch := make(chan outcome, 1)
	e.Dispatch(func() {
		tx, err := conn.Transaction(coll, mode)
		if err != nil {
			ch <- outcome{err: err}
			return
		}
		tx.OnComplete(func() { ch <- outcome{} })
		tx.OnAbort(func(err error) { ch <- outcome{err: err} })
		store, err := tx.Collection(coll)
		if err != nil {
			ch <- outcome{err: err}
			return
		}
		fn(tx, store)
	})
	return wait(t, ch).err
}

func TestOpenCreatesVersionOne(t *testing.T) {
	e := New(memory.New())
	defer e.Close()

	var calls []uint64
	conn, err := openConn(t, e, "fresh", 0, func(s kvsession.Schema, oldVersion, newVersion uint64) error {
		calls = append(calls, oldVersion, newVersion)
		return s.CreateCollection("items")
	})
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(1))
	ut.Equal(t, conn.Collections(), []string{"items"})
	ut.Equal(t, calls, []uint64{0, 1})
	conn.Close()

	//same version, no upgrade
	conn, err = openConn(t, e, "fresh", 1, func(kvsession.Schema, uint64, uint64) error {
		t.Fatal("upgrade must not run")
		return nil
	})
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(1))
	conn.Close()
}

func TestOpenVersionRules(t *testing.T) {
	e := New(memory.New())
	defer e.Close()

	conn, err := openConn(t, e, "versions", 3, createCollection("a"))
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(3))
	conn.Close()

	_, err = openConn(t, e, "versions", 2, nil)
	ut.Assert(t, errors.Is(err, kvsession.ErrVersion), "expect version error but %v", err)

	conn, err = openConn(t, e, "versions", 0, nil)
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(3))
	conn.Close()

	_, err = openConn(t, e, ".bad", 0, nil)
	ut.Assert(t, errors.Is(err, kvsession.ErrInvalidName), "")
}

func TestUpgradeFailureKeepsVersion(t *testing.T) {
	e := New(memory.New())
	defer e.Close()

	conn, err := openConn(t, e, "db", 0, createCollection("a"))
	ut.Equal(t, err, nil)
	conn.Close()

	_, err = openConn(t, e, "db", 2, func(s kvsession.Schema, oldVersion, newVersion uint64) error {
		return s.CreateCollection("a")
	})
	ut.Assert(t, errors.Is(err, kvsession.ErrCollectionExists), "expect exists error but %v", err)

	conn, err = openConn(t, e, "db", 0, nil)
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(1))
	conn.Close()
}

func TestTransactionAutoCommit(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)
	defer conn.Close()

	var results []interface{}
	err = runOnLoop(t, e, conn, "items", kvsession.ReadWrite, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Put([]byte("v1"), "k1").OnSuccess(func(v interface{}) {
			results = append(results, v)
			//chained inside the handler, still in the same transaction
			store.Put([]byte("v2"), "k2").OnSuccess(func(v interface{}) {
				results = append(results, v)
			})
		})
	})
	ut.Equal(t, err, nil)
	ut.Equal(t, results, []interface{}{"k1", "k2"})

	var all interface{}
	err = runOnLoop(t, e, conn, "items", kvsession.ReadOnly, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.GetAll().OnSuccess(func(v interface{}) { all = v })
	})
	ut.Equal(t, err, nil)
	ut.Equal(t, all, [][]byte{[]byte("v1"), []byte("v2")})
}

func TestRequestAfterCompletionIsInactive(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)
	defer conn.Close()

	var store kvsession.Collection
	err = runOnLoop(t, e, conn, "items", kvsession.ReadWrite, func(tx kvsession.Transaction, c kvsession.Collection) {
		store = c
	})
	ut.Equal(t, err, nil)

	ch := make(chan outcome, 1)
	req := store.Put([]byte("late"), "k")
	req.OnError(func(err error) { ch <- outcome{err: err} })
	req.OnSuccess(func(v interface{}) { ch <- outcome{value: v} })
	o := wait(t, ch)
	ut.Equal(t, o.err, kvsession.ErrTransactionInactive)
}

func TestRequestErrorAborts(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)
	defer conn.Close()

	var requestErr, followErr error
	err = runOnLoop(t, e, conn, "items", kvsession.ReadWrite, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Put([]byte("kept?"), "k1")
		store.Put([]byte("bad"), struct{}{}).OnError(func(err error) { requestErr = err })
		store.Put([]byte("never"), "k3").OnError(func(err error) { followErr = err })
	})
	ut.Assert(t, errors.Is(err, kvsession.ErrInvalidKey), "abort cause should be invalid key but %v", err)
	ut.Assert(t, errors.Is(requestErr, kvsession.ErrInvalidKey), "")
	ut.Equal(t, followErr, kvsession.ErrAborted)

	var got interface{} = "unset"
	err = runOnLoop(t, e, conn, "items", kvsession.ReadOnly, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Get("k1").OnSuccess(func(v interface{}) { got = v })
	})
	ut.Equal(t, err, nil)
	ut.Equal(t, got, nil)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)
	defer conn.Close()

	err = runOnLoop(t, e, conn, "items", kvsession.ReadOnly, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Clear()
	})
	ut.Equal(t, err, kvsession.ErrReadOnly)
}

func TestExplicitAbort(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)
	defer conn.Close()

	err = runOnLoop(t, e, conn, "items", kvsession.ReadWrite, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Put([]byte("v"), "k").OnSuccess(func(interface{}) { tx.Abort() })
	})
	ut.Equal(t, err, kvsession.ErrAborted)

	var got interface{} = "unset"
	runOnLoop(t, e, conn, "items", kvsession.ReadOnly, func(tx kvsession.Transaction, store kvsession.Collection) {
		store.Get("k").OnSuccess(func(v interface{}) { got = v })
	})
	ut.Equal(t, got, nil)
}

func TestTransactionErrors(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 0, createCollection("items"))
	ut.Equal(t, err, nil)

	_, err = conn.Transaction("missing", kvsession.ReadOnly)
	ut.Assert(t, errors.Is(err, kvsession.ErrCollectionNotFound), "")
	tx, err := conn.Transaction("items", kvsession.ReadOnly)
	ut.Equal(t, err, nil)
	_, err = tx.Collection("other")
	ut.Assert(t, errors.Is(err, kvsession.ErrCollectionNotFound), "")

	conn.Close()
	_, err = conn.Transaction("items", kvsession.ReadOnly)
	ut.Equal(t, err, kvsession.ErrClosed)
}

func TestUpgradeWaitsForConnections(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	first, err := openConn(t, e, "db", 0, createCollection("a"))
	ut.Equal(t, err, nil)

	ch := make(chan outcome, 1)
	req := e.OpenDatabase("db", 2, createCollection("b"))
	req.OnSuccess(func(c kvsession.Connection) { ch <- outcome{value: c} })
	req.OnError(func(err error) { ch <- outcome{err: err} })

	select {
	case <-ch:
		t.Fatal("upgrade must wait for the open connection")
	case <-time.After(100 * time.Millisecond):
	}

	first.Close()
	o := wait(t, ch)
	ut.Equal(t, o.err, nil)
	second := o.value.(kvsession.Connection)
	ut.Equal(t, second.Version(), uint64(2))
	ut.Equal(t, second.Collections(), []string{"a", "b"})
	second.Close()
}

func TestDeleteDatabase(t *testing.T) {
	e := New(memory.New())
	defer e.Close()
	conn, err := openConn(t, e, "db", 4, createCollection("a"))
	ut.Equal(t, err, nil)

	ch := make(chan outcome, 1)
	req := e.DeleteDatabase("db")
	req.OnSuccess(func(interface{}) { ch <- outcome{} })
	req.OnError(func(err error) { ch <- outcome{err: err} })
	conn.Close()
	ut.Equal(t, wait(t, ch).err, nil)

	conn, err = openConn(t, e, "db", 0, nil)
	ut.Equal(t, err, nil)
	ut.Equal(t, conn.Version(), uint64(1))
	ut.Equal(t, len(conn.Collections()), 0)
	conn.Close()
}

func TestCloseHook(t *testing.T) {
	var lock sync.Mutex
	opens, closes := 0, 0
	e := New(memory.New(), WithHooks(Hooks{
		OnOpen: func(string, uint64) {
			lock.Lock()
			opens += 1
			lock.Unlock()
		},
		OnClose: func(string) {
			lock.Lock()
			closes += 1
			lock.Unlock()
		},
	}))
	defer e.Close()

	conn, err := openConn(t, e, "db", 0, nil)
	ut.Equal(t, err, nil)
	conn.Close()
	conn.Close()

	lock.Lock()
	defer lock.Unlock()
	ut.Equal(t, opens, 1)
	ut.Equal(t, closes, 2)
}

func TestLateHandlerStillFires(t *testing.T) {
	e := New(memory.New())
	defer e.Close()

	req := e.OpenDatabase("db", 0, nil)
	time.Sleep(50 * time.Millisecond)
	ch := make(chan outcome, 1)
	req.OnSuccess(func(c kvsession.Connection) { ch <- outcome{value: c} })
	o := wait(t, ch)
	ut.Equal(t, o.err, nil)
	o.value.(kvsession.Connection).Close()
}

func TestClosedEngine(t *testing.T) {
	e := New(memory.New())
	ut.Assert(t, e.Supported(), "")
	ut.Equal(t, e.Close(), nil)
	ut.Assert(t, e.Supported() == false, "")
	_, err := openConn(t, e, "db", 0, nil)
	ut.Equal(t, err, kvsession.ErrCapabilityUnavailable)

	ut.Assert(t, New(nil).Supported() == false, "")
}

func TestCloseFailsWaitingOperations(t *testing.T) {
	e := New(memory.New())
	holder, err := openConn(t, e, "db", 0, createCollection("a"))
	ut.Equal(t, err, nil)

	upgraded := make(chan outcome, 1)
	req := e.OpenDatabase("db", 2, createCollection("b"))
	req.OnSuccess(func(c kvsession.Connection) { upgraded <- outcome{value: c} })
	req.OnError(func(err error) { upgraded <- outcome{err: err} })
	deleted := make(chan outcome, 1)
	del := e.DeleteDatabase("db")
	del.OnSuccess(func(interface{}) { deleted <- outcome{} })
	del.OnError(func(err error) { deleted <- outcome{err: err} })

	select {
	case <-upgraded:
		t.Fatal("upgrade must wait for the open connection")
	case <-deleted:
		t.Fatal("delete must wait for the open connection")
	case <-time.After(100 * time.Millisecond):
	}

	ut.Equal(t, e.Close(), nil)
	ut.Equal(t, wait(t, upgraded).err, kvsession.ErrClosed)
	ut.Equal(t, wait(t, deleted).err, kvsession.ErrClosed)

	_, err = holder.Transaction("a", kvsession.ReadOnly)
	ut.Equal(t, err, kvsession.ErrClosed)
	holder.Close()
}
