package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrderItemRequest is one submitted order line. ClassName may be omitted only
// for common-priced books; the validator rejects per-class books without it.
type OrderItemRequest struct {
	BookID      string          `json:"book_id"      validate:"required,uuid"`
	ClassName   *string         `json:"class_name"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"        validate:"min=0"`
	DiscountPct decimal.Decimal `json:"discount_pct" validate:"min=0,max=100"`
}

type SubmitOrderRequest struct {
	CustomerID    string             `json:"customer_id"    validate:"required,uuid"`
	PublicationID string             `json:"publication_id" validate:"required,uuid"`
	SubtitleID    *string            `json:"subtitle_id"    validate:"omitempty,uuid"`
	Remark        *string            `json:"remark"         validate:"omitempty,max=500"`
	Items         []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
	// NotifyEmail: optional — when present, a confirmation mail job is enqueued.
	NotifyEmail *string `json:"notify_email" validate:"omitempty,email"`
}

type OrderFilter struct {
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	BookID      string          `json:"book_id"`
	Book        string          `json:"book,omitempty"`
	ClassName   *string         `json:"class_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   int                 `json:"order_number"`
	CustomerID    string              `json:"customer_id"`
	CustomerType  string              `json:"customer_type"`
	PublicationID string              `json:"publication_id"`
	SubtitleID    *string             `json:"subtitle_id,omitempty"`
	Remark        *string             `json:"remark,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
