// Package session implements kvsession.Store over an asynchronous
// kvsession.Engine.
//
// Every operation opens its own connection, runs one transaction holding
// one request (two for Update) and closes the connection exactly once,
// whether the request succeeds or not. Schema migrations go through a
// coordinator, so AddCollection calls against the same database never
// race each other for the next version.
package session

import (
	"github.com/google/uuid"

	"github.com/zdnscloud/kvsession"
)

const DefaultMigrationRetries = 3

type Session struct {
	engine     kvsession.Engine
	lockDir    string
	retries    int
	migrations *coordinator
}

var _ kvsession.Store = &Session{}

type Option func(*Session)

// WithMigrationLockDir makes migrations also take a lock file under dir,
// which serializes them across processes sharing the same databases.
func WithMigrationLockDir(dir string) Option {
	return func(s *Session) {
		s.lockDir = dir
	}
}

// WithMigrationRetries sets how many times AddCollection retries after
// the version moved between reading it and opening at the next one.
func WithMigrationRetries(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.retries = n
		}
	}
}

func New(e kvsession.Engine, opts ...Option) *Session {
	s := &Session{
		engine:  e,
		retries: DefaultMigrationRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.migrations = newCoordinator(s.lockDir)
	return s
}

func (s *Session) supported() bool {
	return s.engine != nil && s.engine.Supported()
}

func newOpID() string {
	return uuid.New().String()[:8]
}
