package invoice

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Invoice bills one enrollment
type Invoice struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	EnrollmentID  int64           `json:"enrollment_id"`
	ParticipantID int64           `json:"participant_id"`
	Participant   string          `json:"participant"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          decimal.Decimal `json:"paid"`
	Currency      string          `json:"currency"`
	Status        Status          `json:"status"`
	IssuedOn      string          `json:"issued_on"`
	DueOn         string          `json:"due_on"`
}

// Status represents invoice settlement state
type Status string

const (
	StatusDraft   Status = "draft"
	StatusUnpaid  Status = "unpaid"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusVoid    Status = "void"
)

var Statuses = []Status{StatusDraft, StatusUnpaid, StatusPartial, StatusPaid, StatusVoid}

// Balance is the amount still owed, never negative
func (i Invoice) Balance() decimal.Decimal {
	b := i.Amount.Sub(i.Paid)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// SettlementStatus derives the status from amounts; draft and void are
// manual states and are kept as they are.
func (i Invoice) SettlementStatus() Status {
	switch {
	case i.Status == StatusDraft || i.Status == StatusVoid:
		return i.Status
	case i.Balance().IsZero():
		return StatusPaid
	case i.Paid.IsPositive():
		return StatusPartial
	}
	return StatusUnpaid
}

func (i Invoice) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(i.ID, 10)
	case "number":
		return i.Number
	case "participant":
		return i.Participant
	case "amount":
		return i.Amount.StringFixed(2) + " " + i.Currency
	case "paid":
		return i.Paid.StringFixed(2)
	case "balance":
		return i.Balance().StringFixed(2)
	case "status":
		return string(i.Status)
	case "issued_on":
		return i.IssuedOn
	case "due_on":
		return i.DueOn
	}
	return ""
}
