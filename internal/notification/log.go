// Package notification keeps the in-memory, newest-first notification log.
package notification

import (
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
)

// Log is append-only; entries are never removed, only marked read.
type Log struct {
	mu      sync.RWMutex
	entries []models.Notification
	now     func() time.Time
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append prepends an unread notification and returns it
func (l *Log) Append(notificationType, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		Type:      notificationType,
		Message:   message,
		Read:      false,
		CreatedAt: l.now(),
	}

	l.mu.Lock()
	entries := make([]models.Notification, 0, len(l.entries)+1)
	entries = append(entries, n)
	l.entries = append(entries, l.entries...)
	l.mu.Unlock()

	util.NotificationsTotal.WithLabelValues(notificationType).Inc()
	return n
}

// MarkRead flips read to true. Unknown ids and already-read entries are no-ops.
func (l *Log) MarkRead(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Read = true
			return
		}
	}
}

// UnreadCount returns the number of unread entries
func (l *Log) UnreadCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, n := range l.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

// List returns a copy of all entries, newest first
func (l *Log) List() []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Notification, len(l.entries))
	copy(out, l.entries)
	return out
}
