package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("not a hash", "correct horse battery staple"))
}

func TestAccounts_InsertDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))

	assert.Equal(t, model.AccountStatusActive, acct.Status)
	assert.Equal(t, []string{}, acct.RoleIDs)
	assert.Nil(t, acct.LoginOn)
}

func TestAccounts_GetByEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))

	got, err := store.Accounts.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, acct.ID, got.ID)

	missing, err := store.Accounts.GetByEmail(ctx, "charles@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccounts_SetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))

	updated, err := store.Accounts.SetPassword(ctx, acct.ID, "difference engine")
	require.NoError(t, err)
	assert.True(t, CheckPassword(updated.Hash, "difference engine"))

	// Persisted, not just returned
	got, err := store.Accounts.Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, CheckPassword(got.Hash, "difference engine"))

	_, err = store.Accounts.SetPassword(ctx, "account:missing", "whatever")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestAccounts_RecordLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Accounts.now = func() time.Time { return stamp }

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))
	require.Nil(t, acct.LoginOn)

	updated, err := store.Accounts.RecordLogin(ctx, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LoginOn)
	assert.Equal(t, stamp, *updated.LoginOn)

	got, err := store.Accounts.Get(ctx, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LoginOn)
	assert.Equal(t, stamp, *got.LoginOn)
}

func TestAccounts_HashSurvivesRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	hash, err := HashPassword("difference engine")
	require.NoError(t, err)

	acct := &model.Account{Email: "ada@example.com", Hash: hash}
	require.NoError(t, store.Accounts.Insert(ctx, acct))

	got, err := store.Accounts.Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, got.Hash)

	// The public view never carries the hash
	pub := got.ToPublic()
	assert.Equal(t, got.Email, pub.Email)
	assert.Equal(t, got.ID, pub.ID)
}
