package repository

import (
	"context"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRepository defines the data access contract for catalog books.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BookRepository interface {
	Create(ctx context.Context, b *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// FindByNamePubSub checks the (name, publication, subtitle) uniqueness key.
	FindByNamePubSub(ctx context.Context, name string, pubID uuid.UUID, subID *uuid.UUID) (*model.Book, error)
	List(ctx context.Context, filter dto.BookFilter) ([]model.Book, int64, error)
	Update(ctx context.Context, b *model.Book) error
	ReplaceClassPrices(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, prices []model.BookClassPrice) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// CountReferences returns how many set lines and order items point at the
	// book; a referenced book must never be removed from the catalog.
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type bookRepo struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) BookRepository { return &bookRepo{db: db} }

func (r *bookRepo) DB() *gorm.DB { return r.db }

func (r *bookRepo) Create(ctx context.Context, b *model.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).
		Preload("ClassPrices").
		Preload("Publication").
		Preload("Subtitle").
		First(&b, id).Error
	return &b, err
}

func (r *bookRepo) FindByNamePubSub(ctx context.Context, name string, pubID uuid.UUID, subID *uuid.UUID) (*model.Book, error) {
	q := r.db.WithContext(ctx).Where("name = ? AND publication_id = ?", name, pubID)
	if subID != nil {
		q = q.Where("subtitle_id = ?", *subID)
	} else {
		q = q.Where("subtitle_id IS NULL")
	}
	var b model.Book
	err := q.First(&b).Error
	return &b, err
}

func (r *bookRepo) List(ctx context.Context, filter dto.BookFilter) ([]model.Book, int64, error) {
	var books []model.Book
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Book{})

	// Active filter: "false" = inactive, "all" = everything, default active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.PublicationID != "" {
		q = q.Where("publication_id = ?", filter.PublicationID)
	}
	if filter.SubtitleID != "" {
		q = q.Where("subtitle_id = ?", filter.SubtitleID)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("ClassPrices").
		Preload("Publication").
		Preload("Subtitle").
		Order("name ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&books).Error
	return books, total, err
}

func (r *bookRepo) Update(ctx context.Context, b *model.Book) error {
	return r.db.WithContext(ctx).Omit("ClassPrices").Save(b).Error
}

func (r *bookRepo) ReplaceClassPrices(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, prices []model.BookClassPrice) error {
	db := tx
	if db == nil {
		db = r.db
	}
	if err := db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&model.BookClassPrice{}).Error; err != nil {
		return err
	}
	if len(prices) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&prices).Error
}

func (r *bookRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Update("active", false).Error
}

func (r *bookRepo) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var setLines, orderItems int64
	if err := r.db.WithContext(ctx).Model(&model.SetBookLine{}).
		Where("book_id = ?", id).Count(&setLines).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("book_id = ?", id).Count(&orderItems).Error; err != nil {
		return 0, err
	}
	return setLines + orderItems, nil
}
