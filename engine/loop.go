package engine

import (
	"sync"
)

// loop runs posted tasks one at a time on a single goroutine. Posting
// never blocks, so tasks may post more tasks.
type loop struct {
	lock     sync.Mutex
	tasks    []func()
	wake     chan struct{}
	done     chan struct{}
	stopping bool
	stopped  bool
}

func newLoop() *loop {
	l := &loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *loop) post(fn func()) bool {
	l.lock.Lock()
	if l.stopped {
		l.lock.Unlock()
		return false
	}
	l.tasks = append(l.tasks, fn)
	l.lock.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

func (l *loop) run() {
	defer close(l.done)
	for {
		l.lock.Lock()
		for len(l.tasks) == 0 {
			if l.stopping {
				l.stopped = true
				l.lock.Unlock()
				return
			}
			l.lock.Unlock()
			<-l.wake
			l.lock.Lock()
		}
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.lock.Unlock()
		fn()
	}
}

//stop waits for queued tasks, including the ones they post, then exits.
//must not be called from a task
func (l *loop) stop() {
	l.lock.Lock()
	l.stopping = true
	l.lock.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}
