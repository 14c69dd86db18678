// Package auth registers and authenticates accounts and mints bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/crucial707/loanapp/internal/models"
	"github.com/crucial707/loanapp/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountStore is the persistence the gate needs. *repo.AccountRepo satisfies it.
type AccountStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Gate hashes and verifies passwords against an AccountStore.
type Gate struct {
	Accounts AccountStore
	Secret   []byte
	// Cost is the bcrypt work factor.
	Cost int
}

func NewGate(accounts AccountStore, secret []byte) *Gate {
	return &Gate{Accounts: accounts, Secret: secret, Cost: bcrypt.DefaultCost}
}

// Register stores a new account and returns a token for it.
// The existence check and the insert are not atomic; a concurrent insert that
// wins the race is still reported as ErrDuplicateUsername by the unique index.
func (g *Gate) Register(ctx context.Context, username, password string) (string, error) {
	_, err := g.Accounts.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return "", ErrDuplicateUsername
	case !errors.Is(err, repo.ErrAccountNotFound):
		return "", fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if _, err := g.Accounts.Create(ctx, username, string(hash)); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return "", ErrDuplicateUsername
		}
		return "", fmt.Errorf("create account: %w", err)
	}

	return NewToken(g.Secret, username)
}

// Login checks the password for username and returns a token on success.
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	account, err := g.Accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup account: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	return NewToken(g.Secret, username)
}

// ParseToken verifies a token minted by this gate and returns its username.
func (g *Gate) ParseToken(token string) (string, error) {
	return ParseToken(g.Secret, token)
}
