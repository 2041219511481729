package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valid payment methods for an Expense.
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// IsValidPaymentMethod reports whether s is one of the accepted payment methods.
func IsValidPaymentMethod(s string) bool {
	switch s {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Expense is a money-out record for a centre.
//
// Timestamp is the authoritative ordering key (set server-side on create and
// refreshed on update). Date is the user-editable "occurred on" date and has
// no enforced relation to Timestamp.
type Expense struct {
	ID            string
	Amount        decimal.Decimal // non-negative
	Category      string          // open set, user-extensible
	Item          string
	Centre        string // tenant/location: "Lucknow", "Gorakhpur", ...
	PaymentMethod string // cash, upi, card
	Timestamp     time.Time
	Date          time.Time
	CreatedBy     string // email of the authoring user
	Note          string
	Attachments   []Attachment // stored as JSONB
}
