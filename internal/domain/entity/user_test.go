package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
)

func TestNewUser(t *testing.T) {
	before := time.Now().UTC()
	user := entity.NewUser("a@x.com", "hash")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.Before(before))
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
}

func TestNewUser_GeneratesDistinctIDs(t *testing.T) {
	a := entity.NewUser("a@x.com", "hash")
	b := entity.NewUser("a@x.com", "hash")

	assert.NotEqual(t, a.ID, b.ID)
}
