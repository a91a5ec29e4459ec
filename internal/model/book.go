package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a sellable catalog entry. PriceMode decides which pricing columns
// are populated: CommonPrice/CommonISBN for "common", ClassPrices rows for
// "per_class". Exclusivity is enforced by the service layer on create/update.
// (name, publication, subtitle) is unique across the catalog.
type Book struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `gorm:"not null;uniqueIndex:idx_books_name_pub_sub"`
	PublicationID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_books_name_pub_sub"`
	SubtitleID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_books_name_pub_sub"`
	LanguageID    *uuid.UUID `gorm:"type:uuid;index"`
	PriceMode     string     `gorm:"type:varchar(20);not null"` // "common" | "per_class"

	CommonPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CommonISBN  *string          `gorm:"type:varchar(20)"`

	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	GSTPct      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Publication *Publication     `gorm:"foreignKey:PublicationID"`
	Subtitle    *Subtitle        `gorm:"foreignKey:SubtitleID"`
	Language    *Language        `gorm:"foreignKey:LanguageID"`
	ClassPrices []BookClassPrice `gorm:"foreignKey:BookID"`
}

// BookClassPrice is one row of a per-class price table. Each row carries its
// own ISBN because publishers assign separate ISBNs per class edition.
type BookClassPrice struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_book_class_prices_book_class"`
	ClassName string          `gorm:"not null;uniqueIndex:idx_book_class_prices_book_class"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ISBN      *string         `gorm:"type:varchar(20)"`
}

// PriceSpec assembles the pricing union from the persisted columns.
// Requires ClassPrices to be preloaded for per-class books.
func (b *Book) PriceSpec() (PriceSpec, error) {
	switch b.PriceMode {
	case PriceModeCommon:
		if b.CommonPrice == nil {
			return PriceSpec{}, errors.New("book declares common pricing but has no common price")
		}
		return NewCommonPrice(*b.CommonPrice)
	case PriceModePerClass:
		amounts := make(map[string]decimal.Decimal, len(b.ClassPrices))
		for _, cp := range b.ClassPrices {
			amounts[cp.ClassName] = cp.Price
		}
		return NewPerClassPrice(amounts)
	default:
		return PriceSpec{}, errors.New("book has unknown price mode " + b.PriceMode)
	}
}
