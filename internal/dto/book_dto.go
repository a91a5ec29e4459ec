package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ClassPriceEntry is one row of a per-class price table in requests and
// responses. ISBN travels alongside the price because each class edition has
// its own ISBN.
type ClassPriceEntry struct {
	ClassName string          `json:"class_name" validate:"required"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
	ISBN      *string         `json:"isbn"       validate:"omitempty,max=20"`
}

// CreateBookRequest declares exactly one pricing shape via PriceMode.
// The service rejects requests where the other shape's data is populated.
type CreateBookRequest struct {
	Name          string  `json:"name"           validate:"required,min=1,max=200"`
	PublicationID string  `json:"publication_id" validate:"required,uuid"`
	SubtitleID    *string `json:"subtitle_id"    validate:"omitempty,uuid"`
	LanguageID    *string `json:"language_id"    validate:"omitempty,uuid"`
	PriceMode     string  `json:"price_mode"     validate:"required,oneof=common per_class"`

	CommonPrice *decimal.Decimal  `json:"common_price" validate:"omitempty,min=0"`
	CommonISBN  *string           `json:"common_isbn"  validate:"omitempty,max=20"`
	ClassPrices []ClassPriceEntry `json:"class_prices" validate:"omitempty,dive"`

	DiscountPct decimal.Decimal `json:"discount_pct" validate:"min=0,max=100"`
	GSTPct      decimal.Decimal `json:"gst_pct"      validate:"min=0,max=100"`
}

// UpdateBookRequest carries the full replacement state of a book.
type UpdateBookRequest struct {
	Name          string  `json:"name"           validate:"required,min=1,max=200"`
	PublicationID string  `json:"publication_id" validate:"required,uuid"`
	SubtitleID    *string `json:"subtitle_id"    validate:"omitempty,uuid"`
	LanguageID    *string `json:"language_id"    validate:"omitempty,uuid"`
	PriceMode     string  `json:"price_mode"     validate:"required,oneof=common per_class"`

	CommonPrice *decimal.Decimal  `json:"common_price" validate:"omitempty,min=0"`
	CommonISBN  *string           `json:"common_isbn"  validate:"omitempty,max=20"`
	ClassPrices []ClassPriceEntry `json:"class_prices" validate:"omitempty,dive"`

	DiscountPct decimal.Decimal `json:"discount_pct" validate:"min=0,max=100"`
	GSTPct      decimal.Decimal `json:"gst_pct"      validate:"min=0,max=100"`
	Active      *bool           `json:"active"`
}

// BookFilter is bound from the query string of GET /v1/books.
type BookFilter struct {
	PublicationID string `form:"publication_id"`
	SubtitleID    string `form:"subtitle_id"`
	Search        string `form:"search"`
	Active        string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BookResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PublicationID string  `json:"publication_id"`
	Publication   string  `json:"publication,omitempty"`
	SubtitleID    *string `json:"subtitle_id,omitempty"`
	Subtitle      *string `json:"subtitle,omitempty"`
	LanguageID    *string `json:"language_id,omitempty"`
	PriceMode     string  `json:"price_mode"`

	CommonPrice *decimal.Decimal  `json:"common_price,omitempty"`
	CommonISBN  *string           `json:"common_isbn,omitempty"`
	ClassPrices []ClassPriceEntry `json:"class_prices,omitempty"`

	DiscountPct decimal.Decimal `json:"discount_pct"`
	GSTPct      decimal.Decimal `json:"gst_pct"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at"`
}

type BookListResponse struct {
	Data  []BookResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ResolvedPriceResponse is served by GET /v1/books/:id/price (redis-cached).
type ResolvedPriceResponse struct {
	BookID    string          `json:"book_id"`
	Name      string          `json:"name"`
	ClassName string          `json:"class_name,omitempty"`
	Price     decimal.Decimal `json:"price"`
	ISBN      *string         `json:"isbn,omitempty"`
}
