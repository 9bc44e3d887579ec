package session

import (
	"github.com/zdnscloud/kvsession"
)

type upsertState int

const (
	awaitingRead upsertState = iota
	awaitingWrite
	upsertDone
)

func (s upsertState) String() string {
	switch s {
	case awaitingRead:
		return "awaiting-read"
	case awaitingWrite:
		return "awaiting-write"
	default:
		return "done"
	}
}

// upsert reads key, then writes item at key from inside the read's
// success handler so both requests share the transaction. The read
// result is ignored. It settles with the write's outcome, or with the
// read's error if the read fails.
type upsert struct {
	store kvsession.Collection
	item  []byte
	key   kvsession.Key
	state upsertState

	settled   bool
	result    interface{}
	err       error
	onSuccess func(interface{})
	onError   func(error)
}

var _ kvsession.Request = &upsert{}

func newUpsert(store kvsession.Collection, item []byte, key kvsession.Key) *upsert {
	u := &upsert{
		store: store,
		item:  item,
		key:   key,
		state: awaitingRead,
	}
	read := store.Get(key)
	read.OnSuccess(u.readDone)
	read.OnError(u.fail)
	return u
}

func (u *upsert) readDone(interface{}) {
	if u.state != awaitingRead {
		return
	}
	u.state = awaitingWrite
	write := u.store.Put(u.item, u.key)
	write.OnSuccess(u.writeDone)
	write.OnError(u.fail)
}

func (u *upsert) writeDone(v interface{}) {
	if u.state != awaitingWrite {
		return
	}
	u.finish(v, nil)
}

func (u *upsert) fail(err error) {
	if u.state == upsertDone {
		return
	}
	u.finish(nil, err)
}

func (u *upsert) finish(v interface{}, err error) {
	u.state = upsertDone
	u.settled = true
	u.result = v
	u.err = err
	if err == nil && u.onSuccess != nil {
		u.onSuccess(v)
	} else if err != nil && u.onError != nil {
		u.onError(err)
	}
}

//handlers are registered on the loop, so a settled upsert delivers in place
func (u *upsert) OnSuccess(fn func(interface{})) {
	u.onSuccess = fn
	if u.settled && u.err == nil {
		fn(u.result)
	}
}

func (u *upsert) OnError(fn func(error)) {
	u.onError = fn
	if u.settled && u.err != nil {
		fn(u.err)
	}
}
