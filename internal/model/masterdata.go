package model

import (
	"time"

	"github.com/google/uuid"
)

// Reference entities maintained by the back-office master-data screens.
// The pricing engine only reads them to resolve foreign keys.

// Publication is a publisher imprint (e.g. "Oxford", "NCERT").
type Publication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtitle is a series/edition label under one publication.
type Subtitle struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null;uniqueIndex:idx_subtitles_name_pub"`
	PublicationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subtitles_name_pub"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Publication *Publication `gorm:"foreignKey:PublicationID"`
}

// Language classifies the medium of instruction of a book.
type Language struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SchoolClass is the catalog of valid class names ("Class1"…"Class12").
// Per-class price tables and set ledgers key on ClassName, not on this row's
// id, so renames require a data migration.
type SchoolClass struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer types.
const (
	CustomerTypeSchool = "school"
	CustomerTypeDealer = "dealer"
)

// Customer is a school or dealer account that owns sets and places orders.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Type      string    `gorm:"type:varchar(20);not null"` // "school" | "dealer"
	City      *string
	Phone     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch is a store branch used to scope pending-delivery records.
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StationeryItem is a non-book sellable (notebooks, uniforms, geometry boxes).
type StationeryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
