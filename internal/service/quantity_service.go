package service

import (
	"context"
	"errors"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuantityService bulk-maintains the set-quantity ledger and mirrors it onto
// existing sets.
type QuantityService interface {
	SetQuantities(ctx context.Context, req dto.SetQuantitiesRequest) (*dto.SetQuantitiesResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.ClassQuantityEntry, error)
}

type quantityService struct {
	qtyRepo repository.SetQuantityRepository
	setRepo repository.SetRepository
	master  repository.MasterDataRepository
}

func NewQuantityService(
	qtyRepo repository.SetQuantityRepository,
	setRepo repository.SetRepository,
	master repository.MasterDataRepository,
) QuantityService {
	return &quantityService{qtyRepo: qtyRepo, setRepo: setRepo, master: master}
}

// SetQuantities validates the whole batch before any write — one invalid
// entry rejects everything. On success each pair is upserted and the value is
// mirrored onto the matching set inside the same transaction; pairs without a
// set yet are skipped, not created.
func (s *quantityService) SetQuantities(ctx context.Context, req dto.SetQuantitiesRequest) (*dto.SetQuantitiesResponse, error) {
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

	// Up-front validation pass
	seen := make(map[string]bool, len(req.Quantities))
	for _, entry := range req.Quantities {
		if entry.Quantity < 0 {
			return nil, apierror.Invalidf("quantity for class %q must not be negative", entry.ClassName)
		}
		if seen[entry.ClassName] {
			return nil, apierror.Invalidf("duplicate class %q in batch", entry.ClassName)
		}
		seen[entry.ClassName] = true
		if _, err := s.master.FindClassByName(ctx, entry.ClassName); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalidf("unknown class %q", entry.ClassName)
			}
			return nil, err
		}
	}

	resp := &dto.SetQuantitiesResponse{}
	txErr := runTx(ctx, s.qtyRepo.DB(), func(tx *gorm.DB) error {
		for _, entry := range req.Quantities {
			if err := s.qtyRepo.Upsert(ctx, tx, customerID, entry.ClassName, entry.Quantity); err != nil {
				return err
			}
			resp.Updated++

			affected, err := s.setRepo.UpdateQuantityByPair(ctx, tx, customerID, entry.ClassName, entry.Quantity)
			if err != nil {
				return err
			}
			if affected > 0 {
				resp.MirroredTo++
			} else {
				resp.SkippedSets = append(resp.SkippedSets, entry.ClassName)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *quantityService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.ClassQuantityEntry, error) {
	rows, err := s.qtyRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.ClassQuantityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.ClassQuantityEntry{ClassName: row.ClassName, Quantity: row.Quantity})
	}
	return entries, nil
}
