package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a validated, fully-priced school/dealer order. OrderNumber comes
// from the orders_order_number_seq Postgres sequence inside the insert
// transaction, so concurrent submissions can never collide (gaps on rollback
// are accepted).
type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber   int        `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerType  string     `gorm:"type:varchar(20);not null"` // snapshot at submission time
	PublicationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubtitleID    *uuid.UUID `gorm:"type:uuid"`
	Remark        *string
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Customer    *Customer    `gorm:"foreignKey:CustomerID"`
	Publication *Publication `gorm:"foreignKey:PublicationID"`
	Subtitle    *Subtitle    `gorm:"foreignKey:SubtitleID"`
	Items       []OrderItem  `gorm:"foreignKey:OrderID"`
}

// OrderItem is one accepted order line. Price is the submitted unit price that
// survived catalog validation; LineTotal = Price × Quantity × (1 − DiscountPct/100).
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClassName   *string         `gorm:"type:varchar(40)"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time

	Book *Book `gorm:"foreignKey:BookID"`
}
