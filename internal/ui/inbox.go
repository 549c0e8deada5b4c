package ui

import (
	"context"
	"sync"

	"github.com/KirkDiggler/spix/internal/errors"
)

// Inbox hands input from a network reader to a game loop. It holds at most
// one message: newer input replaces older input that nobody asked for.
//
// One goroutine pushes (and eventually closes), one goroutine pops.
type Inbox struct {
	ch   chan string
	done chan struct{}
	once sync.Once
}

// NewInbox creates an open inbox
func NewInbox() *Inbox {
	return &Inbox{
		ch:   make(chan string, 1),
		done: make(chan struct{}),
	}
}

// Push offers a message, replacing any unread one. It reports false once
// the inbox is closed.
func (b *Inbox) Push(msg string) bool {
	select {
	case <-b.done:
		return false
	default:
	}

	for {
		select {
		case b.ch <- msg:
			return true
		default:
		}
		// full: drop the stale message and try again
		select {
		case <-b.ch:
		default:
		}
	}
}

// Drain throws away any unread message
func (b *Inbox) Drain() {
	select {
	case <-b.ch:
	default:
	}
}

// Pop blocks until a message arrives. After Close it returns an error with
// errors.CodeDisconnected; a cancelled context returns errors.CodeCanceled.
func (b *Inbox) Pop(ctx context.Context) (string, error) {
	select {
	case msg := <-b.ch:
		return msg, nil
	case <-b.done:
		return "", errors.Disconnected("input closed")
	case <-ctx.Done():
		return "", errors.Canceled(ctx.Err().Error())
	}
}

// Close wakes any pending Pop. Safe to call more than once.
func (b *Inbox) Close() {
	b.once.Do(func() {
		close(b.done)
	})
}

// Closed reports whether Close has been called
func (b *Inbox) Closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
