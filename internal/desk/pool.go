package desk

import "sync"

// workerPool bounds how many items are processed concurrently. Remote API
// rate limits are the real constraint, so the pool stays small.
type workerPool struct {
	sem chan struct{}
}

func newWorkerPool(size int) *workerPool {
	if size <= 0 {
		size = 4
	}
	return &workerPool{sem: make(chan struct{}, size)}
}

// run executes fn with a pool slot held.
func (p *workerPool) run(fn func()) {
	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	fn()
}

// itemLocks serializes mutations per item number. The workflow holds an
// item's lock while reconciling it; the linked-item closer takes the target
// item's lock for the duration of a close. Locks are never nested, so
// mutually-referencing items cannot deadlock.
type itemLocks struct {
	mu    sync.Mutex
	items map[int]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{items: map[int]*sync.Mutex{}}
}

// lock acquires the mutex for the given item number and returns its
// release function.
func (l *itemLocks) lock(number int) func() {
	l.mu.Lock()
	m, ok := l.items[number]
	if !ok {
		m = &sync.Mutex{}
		l.items[number] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
