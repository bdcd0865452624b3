package accounts

import (
	"context"
	"errors"
)

var (
	ErrAlreadyExists = errors.New("account already exists")
	ErrNotFound      = errors.New("account not found")
)

// Repo is the account store contract. Create is insert-only: a second
// Create for the same username must fail with ErrAlreadyExists, even
// under concurrent callers (at most one writer wins).
type Repo interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, username string) (*Account, error)
}
