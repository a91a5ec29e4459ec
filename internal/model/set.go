package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line statuses for set book/stationery lines.
const (
	LineStatusActive  = "active"
	LineStatusPending = "pending"
	LineStatusClear   = "clear"
)

// lineTransitions encodes the per-line status machine:
// active → pending → clear, clear → pending. A line never returns to active.
var lineTransitions = map[string]map[string]bool{
	LineStatusActive:  {LineStatusPending: true},
	LineStatusPending: {LineStatusClear: true},
	LineStatusClear:   {LineStatusPending: true},
}

// ValidLineTransition reports whether from → to is an allowed status change.
func ValidLineTransition(from, to string) bool {
	return lineTransitions[from][to]
}

// ValidLineStatus reports whether s is a known line status.
func ValidLineStatus(s string) bool {
	_, ok := lineTransitions[s]
	return ok
}

// Set is the book-and-stationery bundle assembled for one (customer, class)
// pair. The pair is unique: a second set for the same pair is a conflict.
// Quantity mirrors the SetQuantity ledger row for the same pair.
type Set struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_sets_customer_class"`
	ClassName  string    `gorm:"not null;uniqueIndex:idx_sets_customer_class"`
	Quantity   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer   *Customer           `gorm:"foreignKey:CustomerID"`
	Books      []SetBookLine       `gorm:"foreignKey:SetID"`
	Stationery []SetStationeryLine `gorm:"foreignKey:SetID"`
}

// SetBookLine is one book entry in a set. Price is the value captured when the
// line was created (or re-resolved on copy); NULL means the copy could not
// resolve a per-class price for the target class and the line awaits repair.
type SetBookLine struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SetID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	BookID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity  int              `gorm:"not null"`
	Price     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Status    string           `gorm:"type:varchar(20);not null;default:'active'"`
	ClearedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Book *Book `gorm:"foreignKey:BookID"`
}

// SetStationeryLine is one stationery entry in a set.
type SetStationeryLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SetID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;default:'active'"`
	ClearedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Item *StationeryItem `gorm:"foreignKey:ItemID"`
}

// ApplyLineStatus validates and applies a status transition, maintaining the
// ClearedAt stamp: set on entering "clear", wiped on leaving it.
func ApplyLineStatus(current string, clearedAt *time.Time, to string, now time.Time) (string, *time.Time, error) {
	if !ValidLineStatus(to) {
		return "", nil, fmt.Errorf("unknown line status %q", to)
	}
	if !ValidLineTransition(current, to) {
		return "", nil, fmt.Errorf("invalid status transition %s → %s", current, to)
	}
	if to == LineStatusClear {
		return to, &now, nil
	}
	return to, nil, nil
}

// SetQuantity is the desired bundle multiplier per (customer, class), tracked
// apart from Set so the back office can bulk-edit quantities for a whole
// school in one screen. Existing Sets mirror the value after each upsert.
type SetQuantity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_set_quantities_customer_class"`
	ClassName  string    `gorm:"not null;uniqueIndex:idx_set_quantities_customer_class"`
	Quantity   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName keeps the plural explicit (GORM would produce "set_quantities" anyway,
// but the name is load-bearing for the raw upsert in the repository).
func (SetQuantity) TableName() string { return "set_quantities" }
