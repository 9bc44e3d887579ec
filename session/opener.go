package session

import (
	"context"

	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
)

type openDone func(conn kvsession.Connection, err error)

//open asks the engine for a connection. done runs on the engine loop,
//except when the capability is missing, then it runs in place.
//collection is created by the upgrade when absent, "" creates nothing
func (s *Session) open(database, collection string, version uint64, done openDone) {
	if !s.supported() {
		done(nil, kvsession.ErrCapabilityUnavailable)
		return
	}

	upgrade := func(schema kvsession.Schema, oldVersion, newVersion uint64) error {
		if collection == "" || schema.HasCollection(collection) {
			return nil
		}
		log.Debugf("create collection %s in %s during upgrade %d -> %d", collection, database, oldVersion, newVersion)
		return schema.CreateCollection(collection)
	}

	req := s.engine.OpenDatabase(database, version, upgrade)
	req.OnSuccess(func(conn kvsession.Connection) {
		done(conn, nil)
	})
	req.OnError(func(err error) {
		done(nil, &kvsession.OpenError{Database: database, Cause: err})
	})
}

// Open returns a connection to database at version, 0 means the stored
// one, creating collection during the upgrade when it is absent. The
// caller owns the connection and must close it. If ctx ends first, the
// connection is closed as soon as it arrives.
func (s *Session) Open(ctx context.Context, database, collection string, version uint64) (kvsession.Connection, error) {
	p := newPromise()
	s.open(database, collection, version, func(conn kvsession.Connection, err error) {
		if err != nil {
			p.settle(nil, err)
			return
		}
		if !p.settle(conn, nil) {
			log.Debugf("close abandoned connection to %s", database)
			conn.Close()
		}
	})

	v, err := p.wait(ctx)
	if err != nil {
		return nil, err
	}
	return v.(kvsession.Connection), nil
}
