package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type identifies the direction of a transaction. The numeric values match
// the type_id column and are part of the wire contract.
type Type int

const (
	TypeIncome  Type = 1
	TypeExpense Type = 2
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t Type) String() string {
	switch t {
	case TypeIncome:
		return "income"
	case TypeExpense:
		return "expense"
	}

	return "unknown"
}

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidParams = errors.New("invalid transaction params")
)

// Transaction represents a financial transaction owned by a single user.
// Value is stored in minor currency units (cents) and is always positive;
// direction is encoded exclusively by Type.
type Transaction struct {
	ID          int64
	Value       int64 // minor units, always > 0
	Type        Type
	CategoryID  int64
	Description string
	ReceiptURL  string
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// MajorValue converts the stored minor-unit amount into major currency units.
func (t *Transaction) MajorValue() float64 {
	return float64(t.Value) / 100.0
}

// Category is a row of the static transaction_categories reference set.
type Category struct {
	ID   int64
	Name string
}
