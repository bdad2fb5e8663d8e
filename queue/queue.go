package queue

import (
	"context"
	"fmt"
	"sync"
)

/*
Task is a unit of work run by a worker of a Queue. The context it receives
is cancelled once any task of the queue fails.
*/
type Task func(ctx context.Context) error

/*
Queue is a queue where tasks are sent to be run by a fixed number of
workers.
*/
type Queue struct {
	workers    chan *worker
	tasks      chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	results    chan error
	wg         *sync.WaitGroup
	result     chan error
}

/*
worker holds the data for a goroutine
that takes tasks from a queue to
run them
*/
type worker struct {
	*Queue
	id    string
	tasks chan Task
}

/*
DefaultMaxConcurrency defines the number of workers of a
Queue created without a positive number of workers.
*/
const DefaultMaxConcurrency = 10

/*
New takes a context and a number of workers and returns a Queue whose tasks
are run by that many workers. The queue is stopped when the context is
cancelled.
*/
func New(ctx context.Context, workers int) *Queue {
	if workers < 1 {
		workers = DefaultMaxConcurrency
	}
	wc := make(chan *worker)
	tasks := make(chan Task)
	ctx, cancelFunc := context.WithCancel(ctx)
	results := make(chan error)
	wg := &sync.WaitGroup{}
	result := make(chan error, 1)
	q := &Queue{wc, tasks, ctx, cancelFunc, results, wg, result}
	go q.run()
	go q.processTaskResults()
	for i := 0; i < workers; i++ {
		newWorker(fmt.Sprintf("worker%d", i), q)
	}
	return q
}

func (q *Queue) stop() {
	q.cancelFunc()
}

// Add enqueues a task to be run by the next free worker.
func (q *Queue) Add(t Task) {
	q.wg.Add(1)
	go func(t Task) {
		select {
		case <-q.ctx.Done():
			q.wg.Done()
		case q.tasks <- t:
		}
	}(t)
}

/*
Wait blocks until every added task has run or the queue has been stopped by a
failing task, stops the queue, and returns the first error a task returned,
or the error of the context given to New if it was cancelled. The queue
cannot be used after Wait returns.
*/
func (q *Queue) Wait() error {
	q.wg.Wait()
	parentErr := q.ctx.Err()
	q.stop()
	err := <-q.result
	if err == nil && parentErr != nil {
		return parentErr
	}
	return err
}

func (q *Queue) run() {
	var finished bool
	for !finished {
		select {
		case <-q.ctx.Done():
			finished = true
		case w := <-q.workers:
			select {
			case t := <-q.tasks:
				go q.assignTask(t, w)
			case <-q.ctx.Done():
				finished = true
			}
		}
	}
}

func (q *Queue) assignTask(t Task, w *worker) {
	select {
	case w.tasks <- t:
	case <-q.ctx.Done():
		q.wg.Done()
	}
}

func newWorker(id string, q *Queue) *worker {
	w := &worker{q, id, make(chan Task)}
	go w.run()
	return w
}

func (w *worker) run() {
	var finished bool
	select {
	case w.Queue.workers <- w:
	case <-w.Queue.ctx.Done():
		finished = true
	}
	for !finished {
		select {
		case t := <-w.tasks:
			w.process(t)
		case <-w.Queue.ctx.Done():
			finished = true
		}
		if finished {
			break
		}
		select {
		case w.Queue.workers <- w:
		case <-w.Queue.ctx.Done():
			finished = true
		}
	}
}

func (w *worker) process(t Task) {
	err := t(w.Queue.ctx)
	if err != nil {
		select {
		case <-w.Queue.ctx.Done():
		case w.Queue.results <- err:
		}
	}
	w.Queue.wg.Done()
}

func (q *Queue) processTaskResults() {
	var finished bool
	for !finished {
		select {
		case err := <-q.results:
			if err != nil {
				q.stop()
				q.result <- err
				finished = true
			}
		case <-q.ctx.Done():
			finished = true
		}
	}
	close(q.result)
}
