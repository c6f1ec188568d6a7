// Package worker runs the deferred part of the photo-login flow: after a
// successful face authorization the emotion analysis happens off the request
// path. Fire-and-forget; nothing is reported back to the caller.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"pulse/pkg/imagenorm"
)

type FeedbackTask struct {
	UserID uuid.UUID
	Image  *imagenorm.Image
}

type Handler func(ctx context.Context, task FeedbackTask) error

type Enqueuer interface {
	Enqueue(task FeedbackTask) bool
}

type FeedbackQueue struct {
	tasks   chan FeedbackTask
	handler Handler

	mu      sync.Mutex
	started bool
	closed  bool

	stopOnce sync.Once
	done     chan struct{}
}

func NewFeedbackQueue(handler Handler, buffer int) *FeedbackQueue {
	if buffer <= 0 {
		buffer = 64
	}
	return &FeedbackQueue{
		tasks:   make(chan FeedbackTask, buffer),
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Enqueue never blocks the request path. A full or stopped queue drops the
// task; the deferred feedback is best-effort. The closed check and the send
// happen under the same lock so a late request during shutdown is rejected
// instead of hitting a closed channel.
func (q *FeedbackQueue) Enqueue(task FeedbackTask) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		log.Printf("feedback queue stopped, dropping task for user %s", task.UserID)
		return false
	}

	select {
	case q.tasks <- task:
		return true
	default:
		log.Printf("feedback queue full, dropping task for user %s", task.UserID)
		return false
	}
}

func (q *FeedbackQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.run()
}

// Stop closes intake and waits for queued tasks to drain. Safe to call before
// Start; the wait only applies when a worker actually ran.
func (q *FeedbackQueue) Stop() {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		started := q.started
		close(q.tasks)
		q.mu.Unlock()

		if started {
			<-q.done
		}
	})
}

func (q *FeedbackQueue) run() {
	defer close(q.done)
	for task := range q.tasks {
		if err := q.handler(context.Background(), task); err != nil {
			log.Printf("deferred feedback for user %s failed: %v", task.UserID, err)
		}
	}
}
