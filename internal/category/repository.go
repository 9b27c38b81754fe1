package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/uid"
)

// ErrNotFound indicates the category does not exist for the user.
var ErrNotFound = errors.New("category not found")

// Repository persists budget categories.
type Repository interface {
	Create(ctx context.Context, cat Category) error
	Get(ctx context.Context, userID, id uid.UID) (Category, error)
	ListByUser(ctx context.Context, userID uid.UID) ([]Category, error)
	Update(ctx context.Context, cat Category) error
	Delete(ctx context.Context, userID, id uid.UID) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const catColumns = `id, user_id, name, budget_limit, kind, description, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, cat Category) error {
	_, err := r.db.Exec(ctx, `INSERT INTO budget_categories (`+catColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(cat.ID), uuid.UUID(cat.UserID), cat.Name, cat.BudgetLimit,
		string(cat.Kind), cat.Description, cat.CreatedAt.UTC(), cat.UpdatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uid.UID) (Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+catColumns+` FROM budget_categories WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	return scanCategory(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uid.UID) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+catColumns+` FROM budget_categories WHERE user_id = $1 ORDER BY created_at`,
		uuid.UUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, cat Category) error {
	cmd, err := r.db.Exec(ctx, `UPDATE budget_categories
        SET name = $1, budget_limit = $2, kind = $3, description = $4, updated_at = $5
        WHERE id = $6 AND user_id = $7`,
		cat.Name, cat.BudgetLimit, string(cat.Kind), cat.Description, time.Now().UTC(),
		uuid.UUID(cat.ID), uuid.UUID(cat.UserID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id uid.UID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM budget_categories WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (Category, error) {
	var (
		id, userID uuid.UUID
		kind       string
		cat        Category
	)
	err := row.Scan(&id, &userID, &cat.Name, &cat.BudgetLimit, &kind, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	cat.ID = uid.UID(id)
	cat.UserID = uid.UID(userID)
	cat.Kind = Kind(kind)
	cat.CreatedAt = cat.CreatedAt.UTC()
	cat.UpdatedAt = cat.UpdatedAt.UTC()
	return cat, nil
}
