package session

import (
	"context"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
)

// Op issues exactly one request against the collection and returns it.
// It runs on the engine loop right after the transaction is created.
type Op func(kvsession.Collection) kvsession.Request

type bridgeDone func(value interface{}, err error)

//runTransaction must be called on the engine loop. conn is closed once
//the transaction completes or aborts, and done runs after that
func runTransaction(conn kvsession.Connection, collection string, mode kvsession.Mode, op Op, done bridgeDone) {
	fail := func(err error) {
		conn.Close()
		done(nil, &kvsession.RequestError{Database: conn.Name(), Collection: collection, Cause: err})
	}

	tx, err := conn.Transaction(collection, mode)
	if err != nil {
		fail(err)
		return
	}
	store, err := tx.Collection(collection)
	if err != nil {
		tx.Abort()
		fail(err)
		return
	}

	var (
		succeeded bool
		value     interface{}
		reqErr    error
	)
	req := op(store)
	req.OnSuccess(func(v interface{}) {
		succeeded = true
		value = v
	})
	req.OnError(func(err error) {
		reqErr = err
	})

	finish := func(txErr error) {
		conn.Close()
		switch {
		case succeeded:
			if txErr != nil {
				log.Warnf("transaction on %s/%s ended with %s after its request succeeded", conn.Name(), collection, txErr.Error())
			}
			done(value, nil)
		case reqErr != nil:
			done(nil, &kvsession.RequestError{Database: conn.Name(), Collection: collection, Cause: reqErr})
		default:
			if txErr == nil {
				txErr = kvsession.ErrAborted
			}
			done(nil, &kvsession.RequestError{Database: conn.Name(), Collection: collection, Cause: txErr})
		}
	}
	tx.OnComplete(func() {
		finish(nil)
	})
	tx.OnAbort(finish)
}

// RunTransaction runs op in a transaction on conn and closes conn once
// the transaction is over. The request outcome decides the result.
func (s *Session) RunTransaction(ctx context.Context, conn kvsession.Connection, collection string, mode kvsession.Mode, op Op) (interface{}, error) {
	if !s.supported() {
		conn.Close()
		return nil, kvsession.ErrCapabilityUnavailable
	}

	p := newPromise()
	s.engine.Dispatch(func() {
		runTransaction(conn, collection, mode, op, func(v interface{}, err error) {
			p.settle(v, err)
		})
	})
	return p.wait(ctx)
}
