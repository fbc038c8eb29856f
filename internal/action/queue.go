package action

import "sync"

// Sink accepts actions from any goroutine
type Sink interface {
	Send(a Action)
}

// Queue is an unbounded multi-producer single-consumer FIFO.
// Send never blocks; the consumer waits on Ready and drains with Next.
type Queue struct {
	mu    sync.Mutex
	items []Action
	ready chan struct{}
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Send appends an action and wakes the consumer
func (q *Queue) Send(a Action) {
	if a == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Next removes the oldest action. It reports false when the queue is empty.
func (q *Queue) Next() (Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	a := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return a, true
}

// Len returns the number of pending actions
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Ready is signalled after Send. A signal may cover several actions.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
