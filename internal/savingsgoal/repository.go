package savingsgoal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/uid"
)

// ErrNotFound indicates the goal does not exist for the user.
var ErrNotFound = errors.New("savings goal not found")

// Repository persists savings goals.
type Repository interface {
	Create(ctx context.Context, goal Goal) error
	Get(ctx context.Context, userID, id uid.UID) (Goal, error)
	ListByUser(ctx context.Context, userID uid.UID) ([]Goal, error)
	Update(ctx context.Context, goal Goal) error
	Delete(ctx context.Context, userID, id uid.UID) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed goal repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, saved_amount, deadline, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, goal Goal) error {
	_, err := r.db.Exec(ctx, `INSERT INTO savings_goals (`+goalColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(goal.ID), uuid.UUID(goal.UserID), goal.Name, goal.TargetCents,
		goal.SavedCents, goal.Deadline.UTC(), goal.CreatedAt.UTC(), goal.UpdatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uid.UID) (Goal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM savings_goals WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	return scanGoal(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uid.UID) ([]Goal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 ORDER BY deadline`,
		uuid.UUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, goal Goal) error {
	cmd, err := r.db.Exec(ctx, `UPDATE savings_goals
        SET name = $1, target_amount = $2, saved_amount = $3, deadline = $4, updated_at = $5
        WHERE id = $6 AND user_id = $7`,
		goal.Name, goal.TargetCents, goal.SavedCents, goal.Deadline.UTC(), time.Now().UTC(),
		uuid.UUID(goal.ID), uuid.UUID(goal.UserID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id uid.UID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`,
		uuid.UUID(id), uuid.UUID(userID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (Goal, error) {
	var (
		id, userID uuid.UUID
		goal       Goal
	)
	err := row.Scan(&id, &userID, &goal.Name, &goal.TargetCents, &goal.SavedCents,
		&goal.Deadline, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	goal.ID = uid.UID(id)
	goal.UserID = uid.UID(userID)
	goal.Deadline = goal.Deadline.UTC()
	goal.CreatedAt = goal.CreatedAt.UTC()
	goal.UpdatedAt = goal.UpdatedAt.UTC()
	return goal, nil
}
