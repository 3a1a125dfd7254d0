package session

import (
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	userID := uuid.New()

	_, err := store.Get(userID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	session := entity.NewCheckoutSession(userID)
	store.Put(session)

	got, err := store.Get(userID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	store.Delete(userID)
	_, err = store.Get(userID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestMemoryStore_OneSessionPerUser(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	userID := uuid.New()

	first := entity.NewCheckoutSession(userID)
	second := entity.NewCheckoutSession(userID)
	store.Put(first)
	store.Put(second)

	got, err := store.Get(userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	userID := uuid.New()
	store.Put(entity.NewCheckoutSession(userID))

	current = current.Add(time.Minute + time.Second)

	_, err := store.Get(userID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
