package users

import (
	"context"
	"testing"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client, testPasswordConfig(), nil)
	require.NoError(t, err)
	return svc, repo
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	created, err := svc.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin", admin.PasswordHash)
	ok, err := security.VerifyPassword("admin", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	user, err := svc.Create(ctx, CreateUserInput{Username: " clerk ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "clerk", user.Username)

	_, err = svc.Create(ctx, CreateUserInput{Username: "clerk", Password: "other"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)

	_, err = svc.Create(ctx, CreateUserInput{Username: "x", Password: "pw"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, CreateUserInput{Username: "cashier", Password: ""})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	caller, err := svc.Create(ctx, CreateUserInput{Username: "owner", Password: "pw"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, CreateUserInput{Username: "clerk", Password: "pw"})
	require.NoError(t, err)

	err = svc.Delete(ctx, caller.ID, caller.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	require.NoError(t, svc.Delete(ctx, caller.ID, other.ID))

	err = svc.Delete(ctx, caller.ID, other.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.Delete(ctx, caller.ID, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "owner", list[0].Username)
}

func TestExistsTracksDeletion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	user, err := svc.Create(ctx, CreateUserInput{Username: "clerk", Password: "pw"})
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, uuid.New(), user.ID))
	ok, err = svc.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
