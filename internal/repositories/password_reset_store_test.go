package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayvcodr/internal/models"
)

func TestMemoryResetStoreIssueConsume(t *testing.T) {
	store := NewMemoryResetStore()

	token, err := store.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := store.Consume(token)
	require.NoError(t, err)
	assert.Equal(t, 42, accountID)

	t.Run("second consume fails", func(t *testing.T) {
		_, err := store.Consume(token)
		assert.ErrorIs(t, err, models.ErrInvalidOrExpired)
	})

	t.Run("unknown token fails with same error", func(t *testing.T) {
		_, err := store.Consume("never-issued")
		assert.ErrorIs(t, err, models.ErrInvalidOrExpired)
	})
}

func TestMemoryResetStoreExpiry(t *testing.T) {
	store := NewMemoryResetStore().(*memoryResetStore)

	now := time.Now()
	store.now = func() time.Time { return now }

	token, err := store.Issue(7)
	require.NoError(t, err)

	// за секунду до истечения токен ещё живой
	store.now = func() time.Time { return now.Add(ResetTokenTTL - time.Second) }
	accountID, err := store.Consume(token)
	require.NoError(t, err)
	assert.Equal(t, 7, accountID)

	store.now = func() time.Time { return now }
	token2, err := store.Issue(7)
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(ResetTokenTTL + time.Second) }
	_, err = store.Consume(token2)
	assert.ErrorIs(t, err, models.ErrInvalidOrExpired)
}

func TestMemoryResetStoreConcurrentConsume(t *testing.T) {
	store := NewMemoryResetStore()

	token, err := store.Issue(1)
	require.NoError(t, err)

	const workers = 16
	var (
		wg        sync.WaitGroup
		successes int64
		mu        sync.Mutex
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(token); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes, "токен должен быть использован ровно один раз")
}
