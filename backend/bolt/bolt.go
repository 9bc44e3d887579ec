// Package bolt stores each database in its own bolt file under a
// directory, one bucket per table plus a meta bucket for the version.
package bolt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/zdnscloud/kvsession/backend"
)

const (
	fileSuffix  = ".db"
	openTimeout = 5 * time.Second
)

var (
	//collection names can't hold control chars, so this never clashes
	metaBucket = []byte("\x00meta")
	versionKey = []byte("version")
)

type Driver struct {
	dir string
}

var _ backend.Driver = &Driver{}

func New(dir string) (*Driver, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data dir %s failed: %w", dir, err)
	}
	return &Driver{dir: dir}, nil
}

func (d *Driver) path(name string) string {
	return filepath.Join(d.dir, name+fileSuffix)
}

func (d *Driver) Open(name string) (backend.DB, error) {
	db, err := bolt.Open(d.path(name), 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt file for %s failed: %w", name, err)
	}
	return &boltDB{db: db}, nil
}

func (d *Driver) Remove(name string) error {
	err := os.Remove(d.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}

type boltDB struct {
	db *bolt.DB
}

func (b *boltDB) Version() (uint64, error) {
	var version uint64
	err := b.db.View(func(tx *bolt.Tx) error {
		version = readVersion(tx)
		return nil
	})
	return version, err
}

func (b *boltDB) Begin(writable bool) (backend.Transaction, error) {
	tx, err := b.db.Begin(writable)
	if err != nil {
		return nil, err
	}
	return &boltTx{tx: tx}, nil
}

func (b *boltDB) Close() error {
	return b.db.Close()
}

func readVersion(tx *bolt.Tx) uint64 {
	meta := tx.Bucket(metaBucket)
	if meta == nil {
		return 0
	}
	v := meta.Get(versionKey)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) Commit() error {
	if !t.tx.Writable() {
		return t.tx.Rollback()
	}
	return t.tx.Commit()
}

func (t *boltTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *boltTx) SetVersion(version uint64) error {
	if !t.tx.Writable() {
		return backend.ErrReadOnly
	}
	meta, err := t.tx.CreateBucketIfNotExists(metaBucket)
	if err != nil {
		return err
	}
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, version)
	return meta.Put(versionKey, v)
}

func (t *boltTx) Tables() ([]string, error) {
	var names []string
	err := t.tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
		if string(name) != string(metaBucket) {
			names = append(names, string(name))
		}
		return nil
	})
	return names, err
}

func (t *boltTx) HasTable(name string) (bool, error) {
	return t.tx.Bucket([]byte(name)) != nil, nil
}

func (t *boltTx) CreateTable(name string) error {
	if !t.tx.Writable() {
		return backend.ErrReadOnly
	}
	_, err := t.tx.CreateBucket([]byte(name))
	if err == bolt.ErrBucketExists {
		return backend.ErrTableExists
	}
	return err
}

func (t *boltTx) bucket(table string) (*bolt.Bucket, error) {
	b := t.tx.Bucket([]byte(table))
	if b == nil {
		return nil, backend.ErrTableNotFound
	}
	return b, nil
}

func (t *boltTx) writableBucket(table string) (*bolt.Bucket, error) {
	if !t.tx.Writable() {
		return nil, backend.ErrReadOnly
	}
	return t.bucket(table)
}

func (t *boltTx) Put(table string, key, value []byte) error {
	b, err := t.writableBucket(table)
	if err != nil {
		return err
	}
	return b.Put(key, value)
}

func (t *boltTx) Get(table string, key []byte) ([]byte, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, err
	}
	//Get can't tell an empty value from a missing key
	k, v := b.Cursor().Seek(key)
	if k == nil || !bytes.Equal(k, key) {
		return nil, backend.ErrNotFound
	}
	//bolt memory is only valid during the transaction
	return append([]byte{}, v...), nil
}

func (t *boltTx) Delete(table string, key []byte) error {
	b, err := t.writableBucket(table)
	if err != nil {
		return err
	}
	return b.Delete(key)
}

func (t *boltTx) List(table string) ([]backend.KV, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, err
	}
	var kvs []backend.KV
	err = b.ForEach(func(k, v []byte) error {
		kvs = append(kvs, backend.KV{
			Key:   append([]byte{}, k...),
			Value: append([]byte{}, v...),
		})
		return nil
	})
	return kvs, err
}

func (t *boltTx) Clear(table string) error {
	if _, err := t.writableBucket(table); err != nil {
		return err
	}
	if err := t.tx.DeleteBucket([]byte(table)); err != nil {
		return err
	}
	_, err := t.tx.CreateBucket([]byte(table))
	return err
}
