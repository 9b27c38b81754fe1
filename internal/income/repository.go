package income

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/uid"
)

// ErrNotFound indicates the income record does not exist for the user.
var ErrNotFound = errors.New("income not found")

// Repository persists income records.
type Repository interface {
	Create(ctx context.Context, inc Income) error
	Get(ctx context.Context, userID, id uid.UID) (Income, error)
	ListByUser(ctx context.Context, userID uid.UID) ([]Income, error)
	Update(ctx context.Context, inc Income) error
	Delete(ctx context.Context, userID, id uid.UID) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed income repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const incColumns = `id, user_id, category_id, source, amount, frequency, received_at, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, inc Income) error {
	_, err := r.db.Exec(ctx, `INSERT INTO incomes (`+incColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(inc.ID), uuid.UUID(inc.UserID), uuid.UUID(inc.CategoryID), string(inc.Source),
		inc.AmountCents, string(inc.Frequency), inc.ReceivedAt.UTC(), inc.CreatedAt.UTC(), inc.UpdatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uid.UID) (Income, error) {
	row := r.db.QueryRow(ctx, `SELECT `+incColumns+` FROM incomes WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	return scanIncome(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uid.UID) ([]Income, error) {
	rows, err := r.db.Query(ctx, `SELECT `+incColumns+` FROM incomes WHERE user_id = $1 ORDER BY received_at DESC`,
		uuid.UUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incs []Income
	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incs = append(incs, inc)
	}
	return incs, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, inc Income) error {
	cmd, err := r.db.Exec(ctx, `UPDATE incomes
        SET category_id = $1, source = $2, amount = $3, frequency = $4, received_at = $5, updated_at = $6
        WHERE id = $7 AND user_id = $8`,
		uuid.UUID(inc.CategoryID), string(inc.Source), inc.AmountCents, string(inc.Frequency),
		inc.ReceivedAt.UTC(), time.Now().UTC(), uuid.UUID(inc.ID), uuid.UUID(inc.UserID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id uid.UID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM incomes WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIncome(row pgx.Row) (Income, error) {
	var (
		id, userID, categoryID uuid.UUID
		source, frequency      string
		inc                    Income
	)
	err := row.Scan(&id, &userID, &categoryID, &source, &inc.AmountCents, &frequency,
		&inc.ReceivedAt, &inc.CreatedAt, &inc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Income{}, ErrNotFound
		}
		return Income{}, err
	}
	inc.ID = uid.UID(id)
	inc.UserID = uid.UID(userID)
	inc.CategoryID = uid.UID(categoryID)
	inc.Source = Source(source)
	inc.Frequency = Frequency(frequency)
	inc.ReceivedAt = inc.ReceivedAt.UTC()
	inc.CreatedAt = inc.CreatedAt.UTC()
	inc.UpdatedAt = inc.UpdatedAt.UTC()
	return inc, nil
}
