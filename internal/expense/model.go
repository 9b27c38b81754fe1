package expense

import (
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

// PaymentMethod records how an expense was paid.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard     PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentMobilePayment PaymentMethod = "MOBILE_PAYMENT"
	PaymentOther         PaymentMethod = "OTHER"
)

// Valid reports whether the payment method is a known value.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentMobilePayment, PaymentOther:
		return true
	}
	return false
}

// Expense is a single spend record tied to a user and a budget category.
type Expense struct {
	ID            uid.UID
	UserID        uid.UID
	CategoryID    uid.UID
	Name          string
	AmountCents   int64
	Remark        string
	IsEssential   bool
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
