// Package notify is the in-process notification center: an ordered,
// in-memory mailbox of user-facing notifications with read-state
// tracking. Nothing here touches the network or disk — the collection is
// lost when the client exits, by design.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vitalink-health/vitalink/pkg/domain"
)

// Center holds the process-wide notification collection. Any part of the
// app may Add; the bell overlay consumes. All operations are no-fail:
// mutating an unknown id is a no-op, never an error.
type Center struct {
	mu    sync.Mutex
	items []domain.Notification
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// Add appends a new unread notification and returns it. Identical titles
// are allowed to coexist as distinct entries.
func (c *Center) Add(title, description string) domain.Notification {
	n := domain.Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
	return n
}

// Toast implements the session manager's toast surface by recording the
// message as a notification.
func (c *Center) Toast(title, description string) {
	c.Add(title, description)
}

// MarkAsRead marks the matching entry read.
func (c *Center) MarkAsRead(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return
		}
	}
}

// MarkAllAsRead marks every entry read.
func (c *Center) MarkAllAsRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Read = true
	}
}

// Remove deletes the matching entry.
func (c *Center) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// ClearAll empties the collection.
func (c *Center) ClearAll() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// UnreadCount is always derived from the collection, never stored.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.items {
		if !c.items[i].Read {
			n++
		}
	}
	return n
}

// Items returns a copy of the collection in insertion order.
func (c *Center) Items() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of notifications, read or not.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
