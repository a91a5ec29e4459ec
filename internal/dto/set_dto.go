package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SetBookLineRequest supplies the captured price for a book line. The price is
// trusted as-is at set creation time; orders re-check against the catalog,
// sets deliberately do not.
type SetBookLineRequest struct {
	BookID   string          `json:"book_id"  validate:"required,uuid"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
}

type SetStationeryLineRequest struct {
	ItemID   string          `json:"item_id"  validate:"required,uuid"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
}

type CreateSetRequest struct {
	CustomerID string                     `json:"customer_id" validate:"required,uuid"`
	ClassName  string                     `json:"class_name"  validate:"required"`
	Books      []SetBookLineRequest       `json:"books"       validate:"required,min=1,dive"`
	Stationery []SetStationeryLineRequest `json:"stationery"  validate:"omitempty,dive"`
	Quantity   *int                       `json:"quantity"    validate:"omitempty,min=0"`
}

// UpdateSetRequest replaces the full line content of a set.
type UpdateSetRequest struct {
	Books      []SetBookLineRequest       `json:"books"      validate:"required,min=1,dive"`
	Stationery []SetStationeryLineRequest `json:"stationery" validate:"omitempty,dive"`
	Quantity   *int                       `json:"quantity"   validate:"omitempty,min=0"`
}

type CopySetRequest struct {
	TargetCustomerID  string `json:"target_customer_id" validate:"required,uuid"`
	TargetClassName   string `json:"target_class_name"  validate:"required"`
	IncludeStationery bool   `json:"include_stationery"`
}

// LineStatusRequest drives the per-line status machine.
type LineStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending clear"`
}

type SetFilter struct {
	CustomerID string `form:"customer_id"`
	ClassName  string `form:"class_name"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ClassQuantityEntry is one (class, quantity) pair of a bulk quantity update.
type ClassQuantityEntry struct {
	ClassName string `json:"class_name" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"min=0"`
}

// SetQuantitiesRequest bulk-upserts the quantity ledger for one customer.
// The whole batch is validated before any write: one bad entry rejects all.
type SetQuantitiesRequest struct {
	CustomerID string               `json:"customer_id" validate:"required,uuid"`
	Quantities []ClassQuantityEntry `json:"quantities"  validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SetBookLineResponse struct {
	LineID   string           `json:"line_id"`
	BookID   string           `json:"book_id"`
	Book     string           `json:"book,omitempty"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	// PriceUnresolved flags copy results where the target class had no
	// per-class price; such lines need manual repair before use.
	PriceUnresolved bool    `json:"price_unresolved,omitempty"`
	Status          string  `json:"status"`
	ClearedAt       *string `json:"cleared_at,omitempty"`
}

type SetStationeryLineResponse struct {
	LineID    string          `json:"line_id"`
	ItemID    string          `json:"item_id"`
	Item      string          `json:"item,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	ClearedAt *string         `json:"cleared_at,omitempty"`
}

type SetResponse struct {
	ID         string                      `json:"id"`
	CustomerID string                      `json:"customer_id"`
	Customer   string                      `json:"customer,omitempty"`
	ClassName  string                      `json:"class_name"`
	Quantity   int                         `json:"quantity"`
	Books      []SetBookLineResponse       `json:"books"`
	Stationery []SetStationeryLineResponse `json:"stationery"`
	CreatedAt  string                      `json:"created_at"`
}

type SetListResponse struct {
	Data  []SetResponse `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// SetQuantitiesResponse reports the bulk sync outcome per class.
type SetQuantitiesResponse struct {
	Updated     int      `json:"updated"`
	MirroredTo  int      `json:"mirrored_to_sets"`
	SkippedSets []string `json:"skipped_classes,omitempty"` // classes with no Set yet
}
