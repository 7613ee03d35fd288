package entry

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/refdata"
)

// ErrNotFound is returned when no entry matches the requested id.
var ErrNotFound = errors.New("entry not found")

// Status represents the approval state of an entry. There is no enforced
// transition graph: any status may be set directly to any other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}

	return false
}

// Entry represents one petty-cash disbursement.
//
// Category and Requester are copies taken from the reference tables at
// creation time, not live references: later changes to the tables do not
// touch stored entries.
type Entry struct {
	ID          uuid.UUID
	Date        time.Time // expense date, distinct from record timestamps
	Amount      decimal.Decimal
	Description string
	Category    refdata.Category
	Requester   refdata.Requester
	Status      Status
	ReceiptURL  string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
