package session

import (
	"context"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
)

//do opens database at the stored version and runs op in one transaction
func (s *Session) do(name, database, collection string, mode kvsession.Mode, op Op, done bridgeDone) {
	id := newOpID()
	log.Debugf("[%s] %s on %s/%s", id, name, database, collection)
	s.open(database, collection, 0, func(conn kvsession.Connection, err error) {
		if err != nil {
			log.Debugf("[%s] %s failed: %s", id, name, err.Error())
			done(nil, err)
			return
		}
		runTransaction(conn, collection, mode, op, func(v interface{}, err error) {
			if err != nil {
				log.Debugf("[%s] %s failed: %s", id, name, err.Error())
			}
			done(v, err)
		})
	})
}

func (s *Session) await(ctx context.Context, name, database, collection string, mode kvsession.Mode, op Op) (interface{}, error) {
	p := newPromise()
	s.do(name, database, collection, mode, op, func(v interface{}, err error) {
		p.settle(v, err)
	})
	return p.wait(ctx)
}

func (s *Session) Write(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	_, err := s.await(ctx, "write", database, collection, kvsession.ReadWrite, func(store kvsession.Collection) kvsession.Request {
		return store.Put(item, key)
	})
	return err
}

func (s *Session) ReadOne(ctx context.Context, database, collection string, key kvsession.Key) ([]byte, bool, error) {
	v, err := s.await(ctx, "read one", database, collection, kvsession.ReadOnly, func(store kvsession.Collection) kvsession.Request {
		return store.Get(key)
	})
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (s *Session) ReadAll(ctx context.Context, database, collection string) ([][]byte, error) {
	v, err := s.await(ctx, "read all", database, collection, kvsession.ReadOnly, func(store kvsession.Collection) kvsession.Request {
		return store.GetAll()
	})
	if err != nil {
		return nil, err
	}
	return v.([][]byte), nil
}

func (s *Session) Update(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	_, err := s.await(ctx, "update", database, collection, kvsession.ReadWrite, func(store kvsession.Collection) kvsession.Request {
		return newUpsert(store, item, key)
	})
	return err
}

func (s *Session) RemoveOne(ctx context.Context, database, collection string, key kvsession.Key) error {
	_, err := s.await(ctx, "remove one", database, collection, kvsession.ReadWrite, func(store kvsession.Collection) kvsession.Request {
		return store.Delete(key)
	})
	return err
}

func (s *Session) ClearAll(ctx context.Context, database, collection string) error {
	_, err := s.await(ctx, "clear all", database, collection, kvsession.ReadWrite, func(store kvsession.Collection) kvsession.Request {
		return store.Clear()
	})
	return err
}

func (s *Session) DeleteDatabase(ctx context.Context, database string) error {
	if !s.supported() {
		return kvsession.ErrCapabilityUnavailable
	}

	log.Debugf("[%s] delete database %s", newOpID(), database)
	p := newPromise()
	req := s.engine.DeleteDatabase(database)
	req.OnSuccess(func(interface{}) {
		p.settle(nil, nil)
	})
	req.OnError(func(err error) {
		p.settle(nil, &kvsession.DeleteError{Database: database, Cause: err})
	})
	_, err := p.wait(ctx)
	return err
}
