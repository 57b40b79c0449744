package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/famly-backend/internal/domain"
	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
)

func TestIntegrationUserRepo_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewUserRepo(db.Pool)
	ctx := context.Background()

	t.Run("creates user successfully", func(t *testing.T) {
		db.Truncate(t, "users")

		user := entity.NewUser("test@example.com", "hashedpassword")
		err := repo.Create(ctx, user)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("fails with duplicate email", func(t *testing.T) {
		db.Truncate(t, "users")

		user1 := entity.NewUser("duplicate@example.com", "hashedpassword")
		err := repo.Create(ctx, user1)
		require.NoError(t, err)

		user2 := entity.NewUser("duplicate@example.com", "otherhash")
		err = repo.Create(ctx, user2)

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("email comparison is case sensitive", func(t *testing.T) {
		db.Truncate(t, "users")

		require.NoError(t, repo.Create(ctx, entity.NewUser("case@example.com", "hash")))
		err := repo.Create(ctx, entity.NewUser("Case@example.com", "hash"))

		assert.NoError(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		db.Truncate(t, "users")

		err := repo.Create(ctx, entity.NewUser("nohash@example.com", ""))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("only one concurrent insert wins", func(t *testing.T) {
		db.Truncate(t, "users")

		const callers = 8
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, entity.NewUser("race@example.com", "hash"))
			}(i)
		}
		wg.Wait()

		var created, conflicts int
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
			conflicts++
		}
		assert.Equal(t, 1, created)
		assert.Equal(t, callers-1, conflicts)

		var count int
		err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, "race@example.com").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestIntegrationUserRepo_GetByID(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewUserRepo(db.Pool)
	ctx := context.Background()

	t.Run("returns user by ID", func(t *testing.T) {
		db.Truncate(t, "users")

		user := entity.NewUser("test@example.com", "hashedpassword")
		err := repo.Create(ctx, user)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "test@example.com", found.Email)
		assert.Equal(t, "hashedpassword", found.PasswordHash)
		assert.WithinDuration(t, user.CreatedAt, found.CreatedAt, time.Millisecond)
	})

	t.Run("returns not found error", func(t *testing.T) {
		db.Truncate(t, "users")

		user := entity.NewUser("test@example.com", "hashedpassword")

		found, err := repo.GetByID(ctx, user.ID)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestIntegrationUserRepo_GetByEmail(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewUserRepo(db.Pool)
	ctx := context.Background()

	t.Run("returns user by email", func(t *testing.T) {
		db.Truncate(t, "users")

		user := entity.NewUser("test@example.com", "hashedpassword")
		err := repo.Create(ctx, user)
		require.NoError(t, err)

		found, err := repo.GetByEmail(ctx, "test@example.com")

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "test@example.com", found.Email)
	})

	t.Run("returns not found error", func(t *testing.T) {
		db.Truncate(t, "users")

		found, err := repo.GetByEmail(ctx, "notfound@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestIntegrationUserRepo_ExistsByEmail(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewUserRepo(db.Pool)
	ctx := context.Background()

	t.Run("returns true if email exists", func(t *testing.T) {
		db.Truncate(t, "users")

		user := entity.NewUser("exists@example.com", "hashedpassword")
		err := repo.Create(ctx, user)
		require.NoError(t, err)

		exists, err := repo.ExistsByEmail(ctx, "exists@example.com")

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("returns false if email does not exist", func(t *testing.T) {
		db.Truncate(t, "users")

		exists, err := repo.ExistsByEmail(ctx, "notexists@example.com")

		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestIntegrationUserRepo_Ping(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewUserRepo(db.Pool)

	assert.NoError(t, repo.Ping(context.Background()))
}
