package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
)

const lockRetryDelay = 20 * time.Millisecond

// coordinator serializes migrations per database, within the process by
// a slot channel and across processes by a lock file when lockDir is set.
type coordinator struct {
	lockDir string

	lock  sync.Mutex
	slots map[string]chan struct{}
}

func newCoordinator(lockDir string) *coordinator {
	return &coordinator{
		lockDir: lockDir,
		slots:   make(map[string]chan struct{}),
	}
}

func (c *coordinator) slot(database string) chan struct{} {
	c.lock.Lock()
	defer c.lock.Unlock()
	slot, ok := c.slots[database]
	if !ok {
		slot = make(chan struct{}, 1)
		c.slots[database] = slot
	}
	return slot
}

func (c *coordinator) lockFile(database string) string {
	return filepath.Join(c.lockDir, database+".migrate.lock")
}

func (c *coordinator) acquire(ctx context.Context, database string) (func(), error) {
	slot := c.slot(database)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if c.lockDir == "" {
		return func() { <-slot }, nil
	}

	if err := os.MkdirAll(c.lockDir, 0755); err != nil {
		<-slot
		return nil, err
	}
	fl := flock.New(c.lockFile(database))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		<-slot
		if err == nil {
			err = ctx.Err()
		}
		return nil, err
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			log.Warnf("unlock %s failed: %s", fl.Path(), err.Error())
		}
		<-slot
	}, nil
}

// AddCollection bumps the schema version of database by one, creating
// collection during the upgrade, and writes item at key into it. The
// version is read again and the open retried when another writer moved
// it in between.
func (s *Session) AddCollection(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	if !s.supported() {
		return kvsession.ErrCapabilityUnavailable
	}
	if err := kvsession.ValidateDatabaseName(database); err != nil {
		return &kvsession.OpenError{Database: database, Cause: err}
	}

	id := newOpID()
	release, err := s.migrations.acquire(ctx, database)
	if err != nil {
		return err
	}

	p := newPromise()
	go func() {
		defer release()
		p.settle(nil, s.migrate(id, database, collection, item, key))
	}()
	_, err = p.wait(ctx)
	return err
}

func (s *Session) migrate(id, database, collection string, item []byte, key kvsession.Key) error {
	for attempt := 0; ; attempt++ {
		err := s.migrateOnce(id, database, collection, item, key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvsession.ErrVersion) || attempt >= s.retries {
			log.Warnf("[%s] add collection %s to %s failed: %s", id, collection, database, err.Error())
			return err
		}
		log.Infof("[%s] version of %s moved during migration, retry %d", id, database, attempt+1)
	}
}

func (s *Session) migrateOnce(id, database, collection string, item []byte, key kvsession.Key) error {
	p := newPromise()
	s.currentVersion(database, func(version uint64, err error) {
		if err != nil {
			p.settle(nil, err)
			return
		}
		log.Debugf("[%s] migrate %s from version %d to %d for collection %s", id, database, version, version+1, collection)
		s.open(database, collection, version+1, func(conn kvsession.Connection, err error) {
			if err != nil {
				p.settle(nil, err)
				return
			}
			runTransaction(conn, collection, kvsession.ReadWrite, func(store kvsession.Collection) kvsession.Request {
				return store.Put(item, key)
			}, func(_ interface{}, err error) {
				p.settle(nil, err)
			})
		})
	})
	_, err := p.wait(context.Background())
	return err
}
