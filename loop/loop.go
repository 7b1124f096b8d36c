// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package loop provides the single-threaded execution affinity that per-call
// dispatch state is pinned to.
//
// An EventLoop runs queued work on one dedicated goroutine in submission
// order. The dispatch core schedules every plugin hook, handler invocation,
// and deferred continuation for a call onto that call's loop, so per-call
// state needs no locking. A process typically runs one loop per connection
// or worker; calls on different loops execute concurrently.
package loop

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed indicates work was scheduled on a loop after Close.
var ErrClosed = errors.New("loop: event loop is closed")

// defaultQueueSize is the task buffer per loop. Schedule blocks (applying
// backpressure to producers) when the buffer is full.
const defaultQueueSize = 256

// EventLoop executes submitted functions sequentially on one goroutine.
//
// All exported methods are safe for concurrent use. Work submitted from the
// loop goroutine itself is queued, not run inline, preserving submission
// order.
type EventLoop struct {
	name  string
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates an EventLoop and starts its goroutine.
// The name appears in diagnostics only.
func New(name string) *EventLoop {
	l := &EventLoop{
		name:  name,
		tasks: make(chan func(), defaultQueueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Name returns the diagnostic name of the loop.
func (l *EventLoop) Name() string { return l.name }

func (l *EventLoop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			// Drain work accepted before Close so no continuation is
			// silently dropped.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Schedule queues fn for execution on the loop goroutine.
// Returns ErrClosed if the loop has been closed.
func (l *EventLoop) Schedule(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.mu.Unlock()

	select {
	case l.tasks <- fn:
		return nil
	case <-l.quit:
		return ErrClosed
	}
}

// ScheduleAfter runs fn on the loop goroutine after delay d.
// The returned timer may be stopped to cancel the callback; a callback whose
// loop closed before it fires is dropped.
func (l *EventLoop) ScheduleAfter(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		// Best effort: a closed loop has no pending calls left to serve.
		_ = l.Schedule(fn)
	})
}

// Close stops the loop after running all previously accepted work.
// It blocks until the loop goroutine exits. Close is idempotent.
func (l *EventLoop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.mu.Unlock()

	close(l.quit)
	<-l.done
}
