package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/loanapp/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrAccountNotFound is returned when no row matches the username.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUsername is returned when the unique constraint on username fires.
	ErrDuplicateUsername = errors.New("username already exists")
)

// pq error code for unique_violation.
const uniqueViolation = "23505"

// ==========================
// AccountRepo
// ==========================
type AccountRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db}
}

// ==========================
// Create Account
// ==========================
func (r *AccountRepo) Create(ctx context.Context, username, passwordHash string) (*models.Account, error) {
	query := `
		INSERT INTO "user" (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password
	`

	account := &models.Account{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&account.ID, &account.Username, &account.Password)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// ==========================
// Get By Username
// ==========================
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password
		FROM "user"
		WHERE username = $1
	`

	account := &models.Account{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&account.ID, &account.Username, &account.Password)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
