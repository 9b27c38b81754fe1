package savingsgoal

import (
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

// Goal is a savings target owned by a user.
type Goal struct {
	ID          uid.UID
	UserID      uid.UID
	Name        string
	TargetCents int64
	SavedCents  int64
	Deadline    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Achieved reports whether the saved amount has reached the target.
func (g Goal) Achieved() bool {
	return g.SavedCents >= g.TargetCents
}
