package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/famly-backend/internal/domain"
	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
)

func TestUserRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and finds user", func(t *testing.T) {
		repo := memory.NewUserRepo()
		user := entity.NewUser("test@example.com", "hash")

		require.NoError(t, repo.Create(ctx, user))

		byEmail, err := repo.GetByEmail(ctx, "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", byID.Email)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := memory.NewUserRepo()
		require.NoError(t, repo.Create(ctx, entity.NewUser("dup@example.com", "hash")))

		err := repo.Create(ctx, entity.NewUser("dup@example.com", "other"))

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("emails are case sensitive", func(t *testing.T) {
		repo := memory.NewUserRepo()
		require.NoError(t, repo.Create(ctx, entity.NewUser("case@example.com", "hash")))

		assert.NoError(t, repo.Create(ctx, entity.NewUser("CASE@example.com", "hash")))
	})

	t.Run("rejects nil id", func(t *testing.T) {
		repo := memory.NewUserRepo()

		err := repo.Create(ctx, &entity.User{ID: uuid.Nil, Email: "nil@example.com", PasswordHash: "hash"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("stored copy is not aliased", func(t *testing.T) {
		repo := memory.NewUserRepo()
		user := entity.NewUser("alias@example.com", "hash")
		require.NoError(t, repo.Create(ctx, user))

		user.PasswordHash = "mutated"

		found, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("concurrent creates for one email", func(t *testing.T) {
		repo := memory.NewUserRepo()

		const callers = 32
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
		)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Create(ctx, entity.NewUser("race@example.com", "hash"))
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					created++
				} else if errors.Is(err, domain.ErrUserAlreadyExists) {
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, callers-1, conflicts)
		assert.Equal(t, 1, repo.Count())
	})
}

func TestUserRepo_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepo()

	t.Run("not found by email", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "missing@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("not found by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("exists by email", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, entity.NewUser("exists@example.com", "hash")))

		exists, err := repo.ExistsByEmail(ctx, "exists@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nope@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.GetByEmail(cctx, "exists@example.com")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, repo.Ping(cctx), context.Canceled)
	})
}
