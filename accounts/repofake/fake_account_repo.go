package fakeaccountrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-cognito-local/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

// FakeAccountRepo is an in-memory account store for tests.
type FakeAccountRepo struct {
	accounts map[string]*accounts.Account
	lock     sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
	}
}

func (ar *FakeAccountRepo) Create(_ context.Context, account *accounts.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if _, ok := ar.accounts[account.Username]; ok {
		return accounts.ErrAlreadyExists
	}
	copied := *account
	ar.accounts[account.Username] = &copied
	return nil
}

func (ar *FakeAccountRepo) Get(_ context.Context, username string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	account, ok := ar.accounts[username]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	copied := *account
	return &copied, nil
}
