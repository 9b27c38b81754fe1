package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/uid"
)

var (
	// ErrNotFound indicates no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate indicates a unique constraint (email or username) was hit.
	ErrDuplicate = errors.New("email or username already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id uid.UID) (User, error)
	FindByIdentifier(ctx context.Context, identifier string) (User, error)
	UpdatePassword(ctx context.Context, id uid.UID, passwordHash string) error
	SetActive(ctx context.Context, id uid.UID, active bool) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, username, first_name, last_name, phone_number, currency, password_hash, is_active, created_at, updated_at`

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.UUID(user.ID), user.Email, user.Username, user.FirstName, user.LastName,
		user.PhoneNumber, user.Currency, user.PasswordHash, user.IsActive,
		user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// FindByID fetches a user by canonical identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id uid.UID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(id))
	return scanUser(row)
}

// FindByIdentifier fetches a user by email or username.
func (r *PostgresRepository) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1`, identifier)
	return scanUser(row)
}

// UpdatePassword replaces the stored credential hash wholesale.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id uid.UID, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), uuid.UUID(id))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive toggles the account active flag.
func (r *PostgresRepository) SetActive(ctx context.Context, id uid.UID, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now().UTC(), uuid.UUID(id))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id   uuid.UUID
		user User
	)
	err := row.Scan(&id, &user.Email, &user.Username, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Currency, &user.PasswordHash, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	user.ID = uid.UID(id)
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
