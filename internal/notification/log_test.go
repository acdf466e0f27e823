package notification

import (
	"sync"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_NewestFirst(t *testing.T) {
	log := NewLog()

	first := log.Append(models.NotificationOrderPlaced, "first")
	second := log.Append(models.NotificationCreditAdded, "second")

	entries := log.List()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.False(t, entries[0].Read)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, log.UnreadCount())
}

func TestMarkRead_Idempotent(t *testing.T) {
	log := NewLog()
	n := log.Append(models.NotificationError, "boom")
	log.Append(models.NotificationOrderPlaced, "other")

	log.MarkRead(n.ID)
	once := log.List()

	log.MarkRead(n.ID)
	twice := log.List()

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, log.UnreadCount())
}

func TestMarkRead_UnknownID(t *testing.T) {
	log := NewLog()
	log.Append(models.NotificationError, "boom")

	log.MarkRead("missing")

	assert.Equal(t, 1, log.UnreadCount())
}

func TestList_ReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append(models.NotificationError, "boom")

	entries := log.List()
	entries[0].Read = true

	assert.Equal(t, 1, log.UnreadCount())
}

func TestAppend_Concurrent(t *testing.T) {
	log := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(models.NotificationOrderPlaced, "concurrent")
		}()
	}
	wg.Wait()

	assert.Len(t, log.List(), 50)
	assert.Equal(t, 50, log.UnreadCount())
}
