package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jrsteele09/go-cognito-local/accounts"
	"github.com/jrsteele09/go-cognito-local/accounts/sqlite"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounts.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestCreateAndGet(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	err := store.Create(ctx, &accounts.Account{
		Username: "alice",
		Password: "pw",
		Email:    "a@x.com",
	})
	require.NoError(t, err)

	account, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", account.Username)
	require.Equal(t, "pw", account.Password)
	require.Equal(t, "a@x.com", account.Email)
	require.False(t, account.CreatedAt.IsZero())
}

func TestGetMissingAccount(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestCreateDuplicateUsername(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &accounts.Account{Username: "alice", Password: "pw", Email: "a@x.com"}))

	err := store.Create(ctx, &accounts.Account{Username: "alice", Password: "other", Email: "b@x.com"})
	require.ErrorIs(t, err, accounts.ErrAlreadyExists)

	// The first registration is untouched.
	account, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", account.Email)
}

func TestAccountsSurviveReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &accounts.Account{Username: "alice", Password: "pw", Email: "a@x.com"}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	account, err := reopened.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", account.Email)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	store, _ := openTestStore(t)

	const writers = 64
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Create(context.Background(), &accounts.Account{
				Username: "alice",
				Password: "pw",
				Email:    "a@x.com",
			})
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, accounts.ErrAlreadyExists)
	}
	require.Equal(t, 1, won)
}
