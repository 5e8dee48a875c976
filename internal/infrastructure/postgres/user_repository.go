package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
	"github.com/userkit/account-service/internal/domain/valueobject"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, disabled, is_email_verified, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*entity.User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}

// Create stages a new row in the caller's transaction. A unique constraint
// conflict is surfaced as *repository.UniqueViolationError so the application
// layer can map it to the right domain conflict.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, disabled, is_email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID(), u.Username(), u.Email(), u.HashedPassword(), u.Disabled(), u.IsEmailVerified(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		if uv := uniqueViolation(err); uv != nil {
			return uv
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Update stages changes to an existing row in the caller's transaction.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, disabled = $5, is_email_verified = $6, updated_at = $7
		WHERE id = $1
	`, u.ID(), u.Username(), u.Email(), u.HashedPassword(), u.Disabled(), u.IsEmailVerified(), u.UpdatedAt())
	if err != nil {
		if uv := uniqueViolation(err); uv != nil {
			return uv
		}
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerr.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id            uuid.UUID
		username      string
		email         string
		passwordHash  string
		disabled      bool
		emailVerified bool
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(&id, &username, &email, &passwordHash, &disabled, &emailVerified, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	identity, err := valueobject.NewIdentity(username, email)
	if err != nil {
		return nil, fmt.Errorf("rehydrating user %s: %w", id, err)
	}
	security := valueobject.RehydrateSecurity(passwordHash, disabled, emailVerified)
	return entity.Rehydrate(id, identity, security, createdAt.UTC(), updatedAt.UTC()), nil
}

func uniqueViolation(err error) *repository.UniqueViolationError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &repository.UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
