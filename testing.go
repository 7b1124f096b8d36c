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

package dispatch

import (
	"sync"

	"rivaas.dev/dispatch/loop"
	"rivaas.dev/dispatch/route"
)

// RecordingListener is a Listener that captures lifecycle events for
// assertions in tests. Tokens are sequential integers starting at 1.
type RecordingListener struct {
	mu       sync.Mutex
	next     int
	starts   []StartEvent
	succeeds []SucceedEvent
	fails    []FailEvent
}

// StartEvent records one OnStart invocation.
type StartEvent struct {
	Route *route.Route
	Loop  *loop.EventLoop
	Token int
}

// SucceedEvent records one OnSucceed invocation.
type SucceedEvent struct {
	Token  int
	Result any
}

// FailEvent records one OnFail invocation.
type FailEvent struct {
	Token  int
	Reason error
}

// NewRecordingListener creates an empty RecordingListener.
func NewRecordingListener() *RecordingListener {
	return &RecordingListener{}
}

// OnStart implements Listener.
func (l *RecordingListener) OnStart(lp *loop.EventLoop, rt *route.Route) any {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.starts = append(l.starts, StartEvent{Route: rt, Loop: lp, Token: l.next})
	return l.next
}

// OnSucceed implements Listener.
func (l *RecordingListener) OnSucceed(c *Context, result any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	token, _ := c.ID().(int)
	l.succeeds = append(l.succeeds, SucceedEvent{Token: token, Result: result})
}

// OnFail implements Listener.
func (l *RecordingListener) OnFail(c *Context, reason error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	token, _ := c.ID().(int)
	l.fails = append(l.fails, FailEvent{Token: token, Reason: reason})
}

// Starts returns a copy of the recorded OnStart events.
func (l *RecordingListener) Starts() []StartEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]StartEvent(nil), l.starts...)
}

// Succeeds returns a copy of the recorded OnSucceed events.
func (l *RecordingListener) Succeeds() []SucceedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SucceedEvent(nil), l.succeeds...)
}

// Fails returns a copy of the recorded OnFail events.
func (l *RecordingListener) Fails() []FailEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]FailEvent(nil), l.fails...)
}
