package server

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zdnscloud/cement/log"
	ut "github.com/zdnscloud/cement/unittest"

	"github.com/zdnscloud/kvsession"
	"github.com/zdnscloud/kvsession/backend/bolt"
	"github.com/zdnscloud/kvsession/client"
	"github.com/zdnscloud/kvsession/engine"
	"github.com/zdnscloud/kvsession/session"
)

func init() {
	log.InitLogger(log.Debug)
}

func newLocalStore(t *testing.T) kvsession.Store {
	driver, err := bolt.New(t.TempDir())
	ut.Equal(t, err, nil)
	e := engine.New(driver)
	t.Cleanup(func() {
		e.Close()
	})
	return session.New(e)
}

func withLocalStore(t *testing.T, test func(t *testing.T, store kvsession.Store)) {
	test(t, newLocalStore(t))
}

func serve(t *testing.T, store kvsession.Store) *client.KVSessionClient {
	srv, err := New("127.0.0.1:0", store)
	ut.Equal(t, err, nil)
	go srv.Start()

	cli, err := client.New(srv.Addr())
	ut.Equal(t, err, nil)
	t.Cleanup(func() {
		cli.Close()
		srv.Stop()
	})
	return cli
}

func withRemoteStore(t *testing.T, test func(t *testing.T, store kvsession.Store)) {
	test(t, serve(t, newLocalStore(t)))
}

func TestLocalCRUD(t *testing.T) {
	withLocalStore(t, testCRUD)
}

func TestRemoteCRUD(t *testing.T) {
	withRemoteStore(t, testCRUD)
}

func TestLocalMigration(t *testing.T) {
	withLocalStore(t, testMigration)
}

func TestRemoteMigration(t *testing.T) {
	withRemoteStore(t, testMigration)
}

func TestLocalErrors(t *testing.T) {
	withLocalStore(t, testErrors)
}

func TestRemoteErrors(t *testing.T) {
	withRemoteStore(t, testErrors)
}

func TestRemoteCapabilityUnavailable(t *testing.T) {
	cli := serve(t, session.New(nil))
	ctx := context.Background()
	ut.Equal(t, cli.Write(ctx, "db", "items", []byte("a"), "a"), kvsession.ErrCapabilityUnavailable)
	_, err := cli.CurrentVersion(ctx, "db")
	ut.Equal(t, err, kvsession.ErrCapabilityUnavailable)
}

func testCRUD(t *testing.T, store kvsession.Store) {
	ctx := context.Background()
	db, coll := "testDB", "testStore"

	ut.Equal(t, store.Write(ctx, db, coll, []byte(`{"id":1,"name":"nkia"}`), "init"), nil)
	item, found, err := store.ReadOne(ctx, db, coll, "init")
	ut.Equal(t, err, nil)
	ut.Assert(t, found, "")
	ut.Equal(t, string(item), `{"id":1,"name":"nkia"}`)

	ut.Equal(t, store.Update(ctx, db, coll, []byte(`{"id":1,"name":"nkia222"}`), "init"), nil)
	item, _, err = store.ReadOne(ctx, db, coll, "init")
	ut.Equal(t, err, nil)
	ut.Equal(t, string(item), `{"id":1,"name":"nkia222"}`)

	ut.Equal(t, store.RemoveOne(ctx, db, coll, "init"), nil)
	_, found, err = store.ReadOne(ctx, db, coll, "init")
	ut.Equal(t, err, nil)
	ut.Assert(t, found == false, "removed item still found")

	for i := 0; i < 10; i++ {
		ut.Equal(t, store.Write(ctx, db, coll, []byte(fmt.Sprintf("v%d", i)), i), nil)
	}
	ut.Equal(t, store.Write(ctx, db, coll, []byte{}, "empty"), nil)
	items, err := store.ReadAll(ctx, db, coll)
	ut.Equal(t, err, nil)
	ut.Equal(t, len(items), 11)
	ut.Equal(t, string(items[0]), "v0")
	ut.Equal(t, string(items[9]), "v9")
	ut.Equal(t, items[10], []byte{})

	ut.Equal(t, store.ClearAll(ctx, db, coll), nil)
	items, err = store.ReadAll(ctx, db, coll)
	ut.Equal(t, err, nil)
	ut.Equal(t, len(items), 0)
}

func testMigration(t *testing.T, store kvsession.Store) {
	ctx := context.Background()
	db := "migration"

	before, err := store.CurrentVersion(ctx, db)
	ut.Equal(t, err, nil)
	ut.Equal(t, before, uint64(1))

	ut.Equal(t, store.AddCollection(ctx, db, "people", []byte("seed"), 1), nil)
	ut.Equal(t, store.AddCollection(ctx, db, "people", []byte("seed2"), 2), nil)
	after, err := store.CurrentVersion(ctx, db)
	ut.Equal(t, err, nil)
	ut.Equal(t, after, uint64(3))

	items, err := store.ReadAll(ctx, db, "people")
	ut.Equal(t, err, nil)
	ut.Equal(t, items, [][]byte{[]byte("seed"), []byte("seed2")})

	ut.Equal(t, store.DeleteDatabase(ctx, db), nil)
	version, err := store.CurrentVersion(ctx, db)
	ut.Equal(t, err, nil)
	ut.Equal(t, version, uint64(1))
}

func testErrors(t *testing.T, store kvsession.Store) {
	ctx := context.Background()
	ut.Equal(t, store.Write(ctx, "errors", "items", []byte("a"), "a"), nil)

	_, err := store.ReadAll(ctx, "errors", "missing")
	var requestErr *kvsession.RequestError
	ut.Assert(t, errors.As(err, &requestErr), "expect request error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrCollectionNotFound), "expect collection not found but %v", err)
	ut.Equal(t, requestErr.Collection, "missing")

	err = store.Write(ctx, "errors", "items", []byte("a"), struct{}{})
	ut.Assert(t, errors.Is(err, kvsession.ErrInvalidKey), "expect invalid key but %v", err)

	_, err = store.CurrentVersion(ctx, ".bad")
	var openErr *kvsession.OpenError
	ut.Assert(t, errors.As(err, &openErr), "expect open error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrInvalidName), "")

	err = store.DeleteDatabase(ctx, ".bad")
	var deleteErr *kvsession.DeleteError
	ut.Assert(t, errors.As(err, &deleteErr), "expect delete error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrInvalidName), "")
}

//brokenStore fails the calls it implements with fixed errors
type brokenStore struct {
	kvsession.Store
	openErr    error
	requestErr error
	deleteErr  error
}

func (s *brokenStore) Write(context.Context, string, string, []byte, kvsession.Key) error {
	return s.requestErr
}

func (s *brokenStore) CurrentVersion(context.Context, string) (uint64, error) {
	return 0, s.openErr
}

func (s *brokenStore) DeleteDatabase(context.Context, string) error {
	return s.deleteErr
}

func TestRemoteTypedErrorWrapsCapability(t *testing.T) {
	ctx := context.Background()
	cli := serve(t, &brokenStore{
		openErr:    &kvsession.OpenError{Database: "db", Cause: kvsession.ErrCapabilityUnavailable},
		requestErr: &kvsession.RequestError{Database: "db", Collection: "items", Cause: kvsession.ErrCapabilityUnavailable},
		deleteErr:  &kvsession.DeleteError{Database: "db", Cause: kvsession.ErrCapabilityUnavailable},
	})

	_, err := cli.CurrentVersion(ctx, "db")
	var openErr *kvsession.OpenError
	ut.Assert(t, errors.As(err, &openErr), "expect open error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrCapabilityUnavailable), "")
	ut.Equal(t, openErr.Database, "db")

	err = cli.Write(ctx, "db", "items", []byte("a"), "a")
	var requestErr *kvsession.RequestError
	ut.Assert(t, errors.As(err, &requestErr), "expect request error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrCapabilityUnavailable), "")
	ut.Equal(t, requestErr.Collection, "items")

	err = cli.DeleteDatabase(ctx, "db")
	var deleteErr *kvsession.DeleteError
	ut.Assert(t, errors.As(err, &deleteErr), "expect delete error but %v", err)
	ut.Assert(t, errors.Is(err, kvsession.ErrCapabilityUnavailable), "")
}
