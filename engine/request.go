package engine

import (
	"sync"

	"github.com/zdnscloud/kvsession"
)

// request settles once. Settlement runs the matching handler in place,
// which is always on the loop; a handler registered later is posted.
type request struct {
	loop *loop

	lock      sync.Mutex
	settled   bool
	fired     bool
	result    interface{}
	err       error
	onSuccess func(interface{})
	onError   func(error)
}

var _ kvsession.Request = &request{}

func newRequest(l *loop) *request {
	return &request{loop: l}
}

func (r *request) OnSuccess(fn func(interface{})) {
	r.lock.Lock()
	r.onSuccess = fn
	late := r.settled && r.err == nil && !r.fired
	if late {
		r.fired = true
	}
	result := r.result
	r.lock.Unlock()

	if late {
		r.deliver(func() { fn(result) })
	}
}

func (r *request) OnError(fn func(error)) {
	r.lock.Lock()
	r.onError = fn
	late := r.settled && r.err != nil && !r.fired
	if late {
		r.fired = true
	}
	err := r.err
	r.lock.Unlock()

	if late {
		r.deliver(func() { fn(err) })
	}
}

func (r *request) deliver(fn func()) {
	if !r.loop.post(fn) {
		fn()
	}
}

//returns false if already settled
func (r *request) settle(result interface{}, err error) bool {
	r.lock.Lock()
	if r.settled {
		r.lock.Unlock()
		return false
	}
	r.settled = true
	r.result = result
	r.err = err
	var onSuccess func(interface{})
	var onError func(error)
	if err == nil && r.onSuccess != nil {
		onSuccess = r.onSuccess
		r.fired = true
	} else if err != nil && r.onError != nil {
		onError = r.onError
		r.fired = true
	}
	r.lock.Unlock()

	if onSuccess != nil {
		onSuccess(result)
	} else if onError != nil {
		onError(err)
	}
	return true
}

//settle from outside the loop
func (r *request) settleLater(result interface{}, err error) {
	r.deliver(func() { r.settle(result, err) })
}

type openRequest struct {
	*request
}

var _ kvsession.OpenRequest = openRequest{}

func (r openRequest) OnSuccess(fn func(kvsession.Connection)) {
	r.request.OnSuccess(func(v interface{}) {
		fn(v.(kvsession.Connection))
	})
}
