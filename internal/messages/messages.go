// Package messages implements per-session flash messages: text queued while
// handling one request and shown on the next page render.
package messages

import (
	"context"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Level classifies a message for display
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one queued notice. Text is already HTML-sanitized.
type Message struct {
	Level Level
	Text  string
}

// Message text usually embeds record names typed by users
var textPolicy = bluemonday.StrictPolicy()

// Queue accumulates messages for one session. Safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []Message
	// onFirstAdd runs once, outside the lock, after the first Add
	onFirstAdd func(*Queue)
}

// Add sanitizes text and appends it at the given level
func (q *Queue) Add(level Level, text string) {
	msg := Message{Level: level, Text: textPolicy.Sanitize(text)}

	q.mu.Lock()
	q.items = append(q.items, msg)
	hook := q.onFirstAdd
	q.onFirstAdd = nil
	q.mu.Unlock()

	if hook != nil {
		hook(q)
	}
}

// prepend puts items ahead of the pending messages
func (q *Queue) prepend(items []Message) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(append([]Message(nil), items...), q.items...)
}

func (q *Queue) Info(text string)    { q.Add(LevelInfo, text) }
func (q *Queue) Success(text string) { q.Add(LevelSuccess, text) }
func (q *Queue) Warning(text string) { q.Add(LevelWarning, text) }
func (q *Queue) Error(text string)   { q.Add(LevelError, text) }

// Len returns the number of pending messages
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes and returns all pending messages in insertion order
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

type queueKey struct{}

// NewContext returns a copy of ctx carrying q
func NewContext(ctx context.Context, q *Queue) context.Context {
	return context.WithValue(ctx, queueKey{}, q)
}

// FromContext returns the queue attached to ctx. Without one, a fresh queue is
// returned whose messages are dropped once the caller lets go of it.
func FromContext(ctx context.Context) *Queue {
	if q, ok := ctx.Value(queueKey{}).(*Queue); ok {
		return q
	}
	return &Queue{}
}
