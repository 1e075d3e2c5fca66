// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned by Post and Do once the loop has stopped.
var ErrLoopClosed = errors.New("event loop closed")

// Loop runs tasks one at a time on a single goroutine. All reads and
// writes of a Document's nodes must happen inside a task.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates a loop whose queue holds up to buffer pending tasks
// before Post blocks.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run drains the queue until ctx is done or Close is called.
// Pending tasks are dropped when the loop stops.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case task := <-l.tasks:
			task()
		}
	}
}

// Post enqueues task without waiting for it to run.
func (l *Loop) Post(task func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case <-l.done:
		return ErrLoopClosed
	case l.tasks <- task:
		return nil
	}
}

// Do enqueues task and waits until it has run. Calling Do from inside a
// task deadlocks.
func (l *Loop) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		task()
	})
	if err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Safe to call more than once.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed once the loop has stopped accepting work.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
