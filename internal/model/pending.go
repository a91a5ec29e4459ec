package model

import (
	"time"

	"github.com/google/uuid"
)

// Pending-delivery statuses. "not_set" is synthetic: it never reaches the
// table, it is what the resolver reports for books with no record at all.
const (
	PendingStatusPending = "pending"
	PendingStatusClear   = "clear"
	PendingStatusNotSet  = "not_set"
)

// PendingRecord tracks whether a book has been delivered to a school, per
// branch. Unique per (customer, book, branch). Exactly one of PendingDate /
// ClearedDate is non-null, matching Status.
type PendingRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_pending_customer_book_branch"`
	BookID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_pending_customer_book_branch"`
	BranchID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_pending_customer_book_branch"`
	Status      string     `gorm:"type:varchar(20);not null"` // "pending" | "clear"
	PendingDate *time.Time
	ClearedDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Book     *Book     `gorm:"foreignKey:BookID"`
	Branch   *Branch   `gorm:"foreignKey:BranchID"`
}

// Stamp sets Status and the matching date pair: pending ⇒ PendingDate=now,
// ClearedDate=nil; clear ⇒ the inverse. Re-stamping the same status refreshes
// the timestamp (the upsert is idempotent content-wise, not time-wise).
func (r *PendingRecord) Stamp(status string, now time.Time) {
	r.Status = status
	if status == PendingStatusClear {
		r.ClearedDate = &now
		r.PendingDate = nil
		return
	}
	r.PendingDate = &now
	r.ClearedDate = nil
}
