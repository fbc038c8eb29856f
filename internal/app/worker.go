package app

import (
	"context"
	"sync"

	log "github.com/go-pkgz/lgr"
)

// job runs on the storage worker goroutine
type job struct {
	name string
	run  func(ctx context.Context)
}

// worker serializes every storage call on one goroutine. Jobs are queued
// without bound so the dispatch loop never blocks on submit.
type worker struct {
	mu     sync.Mutex
	jobs   []job
	notify chan struct{}
	busy   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorker() *worker {
	return &worker{notify: make(chan struct{}, 1)}
}

// start launches the goroutine. Jobs see a context derived from ctx.
func (w *worker) start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.loop()
}

// stop cancels the running job, drops the pending ones and waits for the
// goroutine to exit
func (w *worker) stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()

	w.mu.Lock()
	if n := len(w.jobs); n > 0 {
		log.Printf("[DEBUG] storage worker dropped %d pending jobs", n)
	}
	w.jobs = nil
	w.mu.Unlock()
}

func (w *worker) submit(name string, run func(ctx context.Context)) {
	w.mu.Lock()
	w.jobs = append(w.jobs, job{name: name, run: run})
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// idle reports whether no job is queued or running
func (w *worker) idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.busy && len(w.jobs) == 0
}

func (w *worker) next() (job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.jobs) == 0 {
		w.busy = false
		return job{}, false
	}
	j := w.jobs[0]
	w.jobs[0] = job{}
	w.jobs = w.jobs[1:]
	w.busy = true
	return j, true
}

func (w *worker) loop() {
	defer w.wg.Done()
	for {
		for {
			if w.ctx.Err() != nil {
				return
			}
			j, ok := w.next()
			if !ok {
				break
			}
			log.Printf("[DEBUG] storage job %s", j.name)
			j.run(w.ctx)
		}

		select {
		case <-w.notify:
		case <-w.ctx.Done():
			return
		}
	}
}
