package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SetPendingStatusRequest upserts one delivery-status record.
type SetPendingStatusRequest struct {
	CustomerID string  `json:"customer_id" validate:"required,uuid"`
	BookID     string  `json:"book_id"     validate:"required,uuid"`
	BranchID   *string `json:"branch_id"   validate:"omitempty,uuid"`
	Status     string  `json:"status"      validate:"required,oneof=pending clear"`
}

// PendingBooksFilter is bound from the query string of GET /v1/pending/books.
type PendingBooksFilter struct {
	CustomerID string `form:"customer_id" validate:"required,uuid"`
	BranchID   string `form:"branch_id"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// BookStatusRow is one row of the pending-delivery report: every active book
// appears exactly once; books with no record get status "not_set".
type BookStatusRow struct {
	BookID      string  `json:"book_id"`
	Name        string  `json:"name"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Status      string  `json:"status"`
	PendingDate *string `json:"pending_date,omitempty"`
	ClearedDate *string `json:"cleared_date,omitempty"`
}

type PendingBooksResponse struct {
	Rows  []BookStatusRow `json:"rows"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type PendingRecordResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	BookID      string  `json:"book_id"`
	BranchID    *string `json:"branch_id,omitempty"`
	Status      string  `json:"status"`
	PendingDate *string `json:"pending_date,omitempty"`
	ClearedDate *string `json:"cleared_date,omitempty"`
}
