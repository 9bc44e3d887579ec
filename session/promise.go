package session

import (
	"context"
	"sync"
)

type outcome struct {
	value interface{}
	err   error
}

// promise is a single-fire result slot. Whoever settles first wins, a
// waiter whose context ends settles it with the context error so a late
// result can tell it was abandoned.
type promise struct {
	once sync.Once
	ch   chan outcome
}

func newPromise() *promise {
	return &promise{ch: make(chan outcome, 1)}
}

func (p *promise) settle(value interface{}, err error) bool {
	won := false
	p.once.Do(func() {
		won = true
		p.ch <- outcome{value: value, err: err}
	})
	return won
}

func (p *promise) wait(ctx context.Context) (interface{}, error) {
	select {
	case o := <-p.ch:
		return o.value, o.err
	case <-ctx.Done():
		if p.settle(nil, ctx.Err()) {
			<-p.ch
			return nil, ctx.Err()
		}
		o := <-p.ch
		return o.value, o.err
	}
}
