package session

import (
	"errors"
	"sync"
	"testing"

	"aguagas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()
	created, err := store.Create(domain.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, got.Role)
	assert.NotNil(t, got.Stamps)
	assert.NotNil(t, got.Countdowns)
}

func TestStoreCreateRejectsInvalidRole(t *testing.T) {
	_, err := NewStore().Create("admin")
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestStoreGetMissing(t *testing.T) {
	_, err := NewStore().Get("nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUpdateFailureLeavesStateUntouched(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(domain.RoleCustomer)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Update(sess.ID, func(s *Session) error {
		s.Stamps["1"] = 5
		s.Cart.Items = append(s.Cart.Items, domain.CartItem{Quantity: 1})
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Stamps)
	assert.True(t, got.Cart.IsEmpty())
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(domain.RoleCustomer)
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	got.Stamps["1"] = 3

	again, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Stamps["1"])
}

func TestStoreSetRole(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(domain.RoleCustomer)
	require.NoError(t, err)

	updated, err := store.SetRole(sess.ID, domain.RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupplier, updated.Role)

	_, err = store.SetRole(sess.ID, "")
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := NewStore()
	sess, err := store.Create(domain.RoleCustomer)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(sess.ID, func(s *Session) error {
				s.Stamps["1"]++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Stamps["1"])
	assert.Equal(t, 1, store.Len())
}
