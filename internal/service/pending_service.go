package service

import (
	"context"
	"errors"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingService reports and maintains per-book delivery status for a school.
type PendingService interface {
	ListBooksWithStatus(ctx context.Context, filter dto.PendingBooksFilter) (*dto.PendingBooksResponse, error)
	SetStatus(ctx context.Context, req dto.SetPendingStatusRequest) (*dto.PendingRecordResponse, error)
}

type pendingService struct {
	repo     repository.PendingRepository
	bookRepo repository.BookRepository
	master   repository.MasterDataRepository
}

func NewPendingService(
	repo repository.PendingRepository,
	bookRepo repository.BookRepository,
	master repository.MasterDataRepository,
) PendingService {
	return &pendingService{repo: repo, bookRepo: bookRepo, master: master}
}

// ListBooksWithStatus is a left outer join: every active book appears exactly
// once; books with no record for (customer, branch) resolve to "not_set".
func (s *pendingService) ListBooksWithStatus(ctx context.Context, filter dto.PendingBooksFilter) (*dto.PendingBooksResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	customerID, err := uuid.Parse(filter.CustomerID)
	if err != nil {
		return nil, apierror.Invalidf("invalid customer_id")
	}
	if _, err := s.master.FindCustomer(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("customer %s", filter.CustomerID)
		}
		return nil, err
	}

	var branchID *uuid.UUID
	if filter.BranchID != "" {
		id, err := uuid.Parse(filter.BranchID)
		if err != nil {
			return nil, apierror.Invalidf("invalid branch_id")
		}
		branchID = &id
	}

	joined, total, err := s.repo.ListBookStatus(ctx, customerID, branchID, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.BookStatusRow, 0, len(joined))
	for _, j := range joined {
		status := model.PendingStatusNotSet
		if j.Status != nil {
			status = *j.Status
		}
		rows = append(rows, dto.BookStatusRow{
			BookID:      j.BookID.String(),
			Name:        j.Name,
			Subtitle:    j.Subtitle,
			Status:      status,
			PendingDate: formatTimePtr(j.PendingDate),
			ClearedDate: formatTimePtr(j.ClearedDate),
		})
	}
	return &dto.PendingBooksResponse{Rows: rows, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// SetStatus upserts the record for (customer, book, branch). The upsert is
// idempotent content-wise; re-stamping the same status refreshes the date.
func (s *pendingService) SetStatus(ctx context.Context, req dto.SetPendingStatusRequest) (*dto.PendingRecordResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apierror.Invalidf("invalid customer_id")
	}
	if _, err := s.master.FindCustomer(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("customer %s", req.CustomerID)
		}
		return nil, err
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, apierror.Invalidf("invalid book_id")
	}
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("book %s", req.BookID)
		}
		return nil, err
	}

	var branchID *uuid.UUID
	if req.BranchID != nil {
		id, err := uuid.Parse(*req.BranchID)
		if err != nil {
			return nil, apierror.Invalidf("invalid branch_id")
		}
		if _, err := s.master.FindBranch(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFoundf("branch %s", *req.BranchID)
			}
			return nil, err
		}
		branchID = &id
	}

	rec, err := s.repo.FindByKey(ctx, customerID, bookID, branchID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rec = &model.PendingRecord{
			CustomerID: customerID,
			BookID:     bookID,
			BranchID:   branchID,
		}
	}
	rec.Stamp(req.Status, time.Now().UTC())

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return pendingToResponse(rec), nil
}

func pendingToResponse(rec *model.PendingRecord) *dto.PendingRecordResponse {
	resp := &dto.PendingRecordResponse{
		ID:          rec.ID.String(),
		CustomerID:  rec.CustomerID.String(),
		BookID:      rec.BookID.String(),
		Status:      rec.Status,
		PendingDate: formatTimePtr(rec.PendingDate),
		ClearedDate: formatTimePtr(rec.ClearedDate),
	}
	if rec.BranchID != nil {
		id := rec.BranchID.String()
		resp.BranchID = &id
	}
	return resp
}
