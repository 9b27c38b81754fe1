package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/uid"
)

// ErrNotFound indicates the expense does not exist for the user.
var ErrNotFound = errors.New("expense not found")

// Repository persists expenses.
type Repository interface {
	Create(ctx context.Context, exp Expense) error
	Get(ctx context.Context, userID, id uid.UID) (Expense, error)
	ListByUser(ctx context.Context, userID uid.UID) ([]Expense, error)
	Update(ctx context.Context, exp Expense) error
	Delete(ctx context.Context, userID, id uid.UID) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed expense repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const expColumns = `id, user_id, category_id, name, amount, remark, is_essential, payment_method, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, exp Expense) error {
	_, err := r.db.Exec(ctx, `INSERT INTO expenses (`+expColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(exp.ID), uuid.UUID(exp.UserID), uuid.UUID(exp.CategoryID), exp.Name,
		exp.AmountCents, exp.Remark, exp.IsEssential, string(exp.PaymentMethod),
		exp.CreatedAt.UTC(), exp.UpdatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uid.UID) (Expense, error) {
	row := r.db.QueryRow(ctx, `SELECT `+expColumns+` FROM expenses WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	return scanExpense(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uid.UID) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expColumns+` FROM expenses WHERE user_id = $1 ORDER BY created_at DESC`,
		uuid.UUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, exp Expense) error {
	cmd, err := r.db.Exec(ctx, `UPDATE expenses
        SET category_id = $1, name = $2, amount = $3, remark = $4, is_essential = $5, payment_method = $6, updated_at = $7
        WHERE id = $8 AND user_id = $9`,
		uuid.UUID(exp.CategoryID), exp.Name, exp.AmountCents, exp.Remark, exp.IsEssential,
		string(exp.PaymentMethod), time.Now().UTC(), uuid.UUID(exp.ID), uuid.UUID(exp.UserID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id uid.UID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		id, userID, categoryID uuid.UUID
		method                 string
		exp                    Expense
	)
	err := row.Scan(&id, &userID, &categoryID, &exp.Name, &exp.AmountCents, &exp.Remark,
		&exp.IsEssential, &method, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrNotFound
		}
		return Expense{}, err
	}
	exp.ID = uid.UID(id)
	exp.UserID = uid.UID(userID)
	exp.CategoryID = uid.UID(categoryID)
	exp.PaymentMethod = PaymentMethod(method)
	exp.CreatedAt = exp.CreatedAt.UTC()
	exp.UpdatedAt = exp.UpdatedAt.UTC()
	return exp, nil
}
