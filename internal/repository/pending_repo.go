package repository

import (
	"context"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookStatusJoinRow is the scan target of the left-join status query.
type BookStatusJoinRow struct {
	BookID      uuid.UUID
	Name        string
	Subtitle    *string
	Status      *string
	PendingDate *time.Time
	ClearedDate *time.Time
}

type PendingRepository interface {
	// FindByKey looks up the record for (customer, book, branch); branch nil
	// matches the branch-less record.
	FindByKey(ctx context.Context, customerID, bookID uuid.UUID, branchID *uuid.UUID) (*model.PendingRecord, error)
	Save(ctx context.Context, rec *model.PendingRecord) error
	// ListBookStatus left-joins every active book against at most one pending
	// record for (customer, branch). Books without a record come back with a
	// NULL status. Sorted by book name, paginated, with an unpaginated count.
	ListBookStatus(ctx context.Context, customerID uuid.UUID, branchID *uuid.UUID, filter dto.PendingBooksFilter) ([]BookStatusJoinRow, int64, error)
	DB() *gorm.DB
}

type pendingRepo struct{ db *gorm.DB }

func NewPendingRepository(db *gorm.DB) PendingRepository { return &pendingRepo{db: db} }

func (r *pendingRepo) DB() *gorm.DB { return r.db }

func (r *pendingRepo) FindByKey(ctx context.Context, customerID, bookID uuid.UUID, branchID *uuid.UUID) (*model.PendingRecord, error) {
	q := r.db.WithContext(ctx).Where("customer_id = ? AND book_id = ?", customerID, bookID)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	} else {
		q = q.Where("branch_id IS NULL")
	}
	var rec model.PendingRecord
	err := q.First(&rec).Error
	return &rec, err
}

func (r *pendingRepo) Save(ctx context.Context, rec *model.PendingRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *pendingRepo) ListBookStatus(ctx context.Context, customerID uuid.UUID, branchID *uuid.UUID, filter dto.PendingBooksFilter) ([]BookStatusJoinRow, int64, error) {
	joinCond := "pending_records.book_id = books.id AND pending_records.customer_id = ?"
	joinArgs := []any{customerID}
	if branchID != nil {
		joinCond += " AND pending_records.branch_id = ?"
		joinArgs = append(joinArgs, *branchID)
	} else {
		joinCond += " AND pending_records.branch_id IS NULL"
	}

	base := r.db.WithContext(ctx).
		Table("books").
		Joins("LEFT JOIN pending_records ON "+joinCond, joinArgs...).
		Joins("LEFT JOIN subtitles ON subtitles.id = books.subtitle_id").
		Where("books.active = true")

	if filter.Search != "" {
		base = base.Where("books.name ILIKE ? OR subtitles.name ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var rows []BookStatusJoinRow
	err := base.
		Select(`books.id AS book_id,
			books.name AS name,
			subtitles.name AS subtitle,
			pending_records.status AS status,
			pending_records.pending_date AS pending_date,
			pending_records.cleared_date AS cleared_date`).
		Order("books.name ASC").
		Limit(filter.Limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}
