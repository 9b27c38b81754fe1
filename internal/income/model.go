package income

import (
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

// Source labels where the money came from.
type Source string

const (
	SourceSalary     Source = "Salary"
	SourceFreelance  Source = "Freelance"
	SourceDividend   Source = "Dividend"
	SourceBonus      Source = "Bonus"
	SourceInvestment Source = "Investment"
	SourceOther      Source = "Other"
)

// Valid reports whether the source is a known value.
func (s Source) Valid() bool {
	switch s {
	case SourceSalary, SourceFreelance, SourceDividend, SourceBonus, SourceInvestment, SourceOther:
		return true
	}
	return false
}

// Frequency describes how often the income recurs.
type Frequency string

const (
	FrequencyMonthly  Frequency = "Monthly"
	FrequencyWeekly   Frequency = "Weekly"
	FrequencyBiweekly Frequency = "Biweekly"
	FrequencyOneTime  Frequency = "One-time"
)

// Valid reports whether the frequency is a known value.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyBiweekly, FrequencyOneTime:
		return true
	}
	return false
}

// Income is a single earning record tied to a user and a budget category.
type Income struct {
	ID          uid.UID
	UserID      uid.UID
	CategoryID  uid.UID
	Source      Source
	AmountCents int64
	Frequency   Frequency
	ReceivedAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
