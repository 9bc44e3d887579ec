package session

import (
	"context"

	"github.com/zdnscloud/kvsession"
)

//a missing database is created at version 1
func (s *Session) currentVersion(database string, done func(uint64, error)) {
	s.open(database, "", 0, func(conn kvsession.Connection, err error) {
		if err != nil {
			done(0, err)
			return
		}
		version := conn.Version()
		conn.Close()
		done(version, nil)
	})
}

func (s *Session) CurrentVersion(ctx context.Context, database string) (uint64, error) {
	p := newPromise()
	s.currentVersion(database, func(version uint64, err error) {
		p.settle(version, err)
	})
	v, err := p.wait(ctx)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}
