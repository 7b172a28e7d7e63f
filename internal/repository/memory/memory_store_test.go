package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-service/internal/repository"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Create(ctx, repository.CategoryTokens, "abc", []byte(`{"id":"abc"}`)))
	assert.ErrorIs(t, s.Create(ctx, repository.CategoryTokens, "abc", []byte(`{}`)), repository.ErrAlreadyExists)

	v, err := s.Read(ctx, repository.CategoryTokens, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc"}`, string(v))

	require.NoError(t, s.Update(ctx, repository.CategoryTokens, "abc", []byte(`{"id":"abc","n":1}`)))
	require.NoError(t, s.Delete(ctx, repository.CategoryTokens, "abc"))
	_, err = s.Read(ctx, repository.CategoryTokens, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Create(ctx, repository.CategoryUsers, "u", []byte("original")))

	v, err := s.Read(ctx, repository.CategoryUsers, "u")
	require.NoError(t, err)
	v[0] = 'X'

	again, err := s.Read(ctx, repository.CategoryUsers, "u")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestStore_CreateRaceHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s := New()

	const writers = 32
	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Create(ctx, repository.CategoryCarts, "contested", []byte(fmt.Sprintf(`{"writer":%d}`, i)))
			if err == nil {
				atomic.AddInt64(&wins, 1)
			} else {
				assert.ErrorIs(t, err, repository.ErrAlreadyExists)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
}
