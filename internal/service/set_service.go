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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SetService assembles and maintains per-(customer, class) bundles.
type SetService interface {
	Create(ctx context.Context, req dto.CreateSetRequest) (*dto.SetResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SetResponse, error)
	List(ctx context.Context, filter dto.SetFilter) (*dto.SetListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSetRequest) (*dto.SetResponse, error)
	Copy(ctx context.Context, sourceID uuid.UUID, req dto.CopySetRequest) (*dto.SetResponse, error)
	SetLineStatus(ctx context.Context, setID, lineID uuid.UUID, status string) (*dto.SetResponse, error)
	RemoveLine(ctx context.Context, setID, lineID uuid.UUID) error
}

type setService struct {
	repo     repository.SetRepository
	qtyRepo  repository.SetQuantityRepository
	bookRepo repository.BookRepository
	master   repository.MasterDataRepository
}

func NewSetService(
	repo repository.SetRepository,
	qtyRepo repository.SetQuantityRepository,
	bookRepo repository.BookRepository,
	master repository.MasterDataRepository,
) SetService {
	return &setService{repo: repo, qtyRepo: qtyRepo, bookRepo: bookRepo, master: master}
}

// buildLines validates references and converts request lines to models.
// Supplied prices are trusted as-is: sets capture a price snapshot at build
// time, only orders re-derive against the live catalog.
func (s *setService) buildLines(ctx context.Context, books []dto.SetBookLineRequest, stationery []dto.SetStationeryLineRequest) ([]model.SetBookLine, []model.SetStationeryLine, error) {
	bookLines := make([]model.SetBookLine, 0, len(books))
	for _, b := range books {
		bookID, err := uuid.Parse(b.BookID)
		if err != nil {
			return nil, nil, apierror.Invalidf("invalid book_id %q", b.BookID)
		}
		if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apierror.NotFoundf("book %s", b.BookID)
			}
			return nil, nil, err
		}
		price := b.Price
		bookLines = append(bookLines, model.SetBookLine{
			BookID:   bookID,
			Quantity: b.Quantity,
			Price:    &price,
			Status:   model.LineStatusActive,
		})
	}

	statLines := make([]model.SetStationeryLine, 0, len(stationery))
	for _, it := range stationery {
		itemID, err := uuid.Parse(it.ItemID)
		if err != nil {
			return nil, nil, apierror.Invalidf("invalid item_id %q", it.ItemID)
		}
		if _, err := s.master.FindStationeryItem(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apierror.NotFoundf("stationery item %s", it.ItemID)
			}
			return nil, nil, err
		}
		statLines = append(statLines, model.SetStationeryLine{
			ItemID:   itemID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Status:   model.LineStatusActive,
		})
	}
	return bookLines, statLines, nil
}

func (s *setService) Create(ctx context.Context, req dto.CreateSetRequest) (*dto.SetResponse, error) {
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
	if _, err := s.master.FindClassByName(ctx, req.ClassName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalidf("unknown class %q", req.ClassName)
		}
		return nil, err
	}

	// One set per (customer, class): second create is a conflict, never an overwrite.
	if _, err := s.repo.FindByCustomerClass(ctx, customerID, req.ClassName); err == nil {
		return nil, apierror.Conflictf("set already exists for customer %s class %s — use update", req.CustomerID, req.ClassName)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bookLines, statLines, err := s.buildLines(ctx, req.Books, req.Stationery)
	if err != nil {
		return nil, err
	}

	qty := 0
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	set := &model.Set{
		CustomerID: customerID,
		ClassName:  req.ClassName,
		Quantity:   qty,
		Books:      bookLines,
		Stationery: statLines,
	}

	// Set insert + ledger upsert + mirror run in one transaction so the ledger
	// and the cached quantity cannot drift apart on a crash mid-sequence.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, set); err != nil {
			return err
		}
		return s.qtyRepo.Upsert(ctx, tx, customerID, req.ClassName, qty)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(ctx, set.ID)
}

func (s *setService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SetResponse, error) {
	set, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("set %s", id)
		}
		return nil, err
	}
	return setToResponse(set), nil
}

func (s *setService) List(ctx context.Context, filter dto.SetFilter) (*dto.SetListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SetResponse, 0, len(sets))
	for i := range sets {
		items = append(items, *setToResponse(&sets[i]))
	}
	return &dto.SetListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *setService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSetRequest) (*dto.SetResponse, error) {
	set, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("set %s", id)
		}
		return nil, err
	}

	bookLines, statLines, err := s.buildLines(ctx, req.Books, req.Stationery)
	if err != nil {
		return nil, err
	}
	for i := range bookLines {
		bookLines[i].SetID = set.ID
	}
	for i := range statLines {
		statLines[i].SetID = set.ID
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceLines(ctx, tx, set.ID, bookLines, statLines); err != nil {
			return err
		}
		if req.Quantity != nil {
			if err := s.repo.UpdateQuantity(ctx, tx, set.ID, *req.Quantity); err != nil {
				return err
			}
			return s.qtyRepo.Upsert(ctx, tx, set.CustomerID, set.ClassName, *req.Quantity)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(ctx, set.ID)
}

// Copy clones a set onto (targetCustomer, targetClass). Common-price books
// carry their captured price; per-class books are re-resolved against the
// target class, and when the target class is absent from the price table the
// line is created with a NULL price for manual repair. An existing target set
// is not pre-checked — the unique (customer, class) index surfaces it as a
// storage-level conflict.
func (s *setService) Copy(ctx context.Context, sourceID uuid.UUID, req dto.CopySetRequest) (*dto.SetResponse, error) {
	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("source set %s", sourceID)
		}
		return nil, err
	}

	targetCustomerID, err := uuid.Parse(req.TargetCustomerID)
	if err != nil {
		return nil, apierror.Invalidf("invalid target_customer_id")
	}
	if _, err := s.master.FindCustomer(ctx, targetCustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("customer %s", req.TargetCustomerID)
		}
		return nil, err
	}
	if _, err := s.master.FindClassByName(ctx, req.TargetClassName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalidf("unknown class %q", req.TargetClassName)
		}
		return nil, err
	}

	bookLines := make([]model.SetBookLine, 0, len(source.Books))
	for _, line := range source.Books {
		book := line.Book
		if book == nil {
			b, err := s.bookRepo.FindByID(ctx, line.BookID)
			if err != nil {
				return nil, err
			}
			book = b
		}

		newLine := model.SetBookLine{
			BookID:   line.BookID,
			Quantity: line.Quantity,
			Status:   model.LineStatusActive,
		}
		if book.PriceMode == model.PriceModeCommon {
			newLine.Price = line.Price
		} else {
			spec, err := book.PriceSpec()
			if err != nil {
				return nil, err
			}
			if price, err := spec.Resolve(req.TargetClassName); err == nil {
				p := price
				newLine.Price = &p
			} else {
				// Target class absent from the table: keep the line with no
				// price so the operator can repair it before use.
				log.Warn().
					Str("book_id", line.BookID.String()).
					Str("target_class", req.TargetClassName).
					Msg("set copy: price unresolved for target class")
			}
		}
		bookLines = append(bookLines, newLine)
	}

	var statLines []model.SetStationeryLine
	if req.IncludeStationery {
		statLines = make([]model.SetStationeryLine, 0, len(source.Stationery))
		for _, line := range source.Stationery {
			statLines = append(statLines, model.SetStationeryLine{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Price:    line.Price,
				Status:   model.LineStatusActive,
			})
		}
	}

	// Target quantity comes from the target pair's ledger, defaulting to 0.
	qty := 0
	if sq, err := s.qtyRepo.FindByPair(ctx, targetCustomerID, req.TargetClassName); err == nil {
		qty = sq.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	target := &model.Set{
		CustomerID: targetCustomerID,
		ClassName:  req.TargetClassName,
		Quantity:   qty,
		Books:      bookLines,
		Stationery: statLines,
	}
	if err := s.repo.Create(ctx, nil, target); err != nil {
		// The unique (customer, class) index is the only guard against a
		// concurrent create of the target pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflictf("set already exists for customer %s class %s", req.TargetCustomerID, req.TargetClassName)
		}
		return nil, err
	}
	return s.GetByID(ctx, target.ID)
}

// SetLineStatus drives the per-line status machine. The line is looked up in
// both line tables; book lines win when ids ever collide (they cannot — both
// are uuid v4 primary keys).
func (s *setService) SetLineStatus(ctx context.Context, setID, lineID uuid.UUID, status string) (*dto.SetResponse, error) {
	now := time.Now().UTC()

	if line, err := s.repo.FindBookLine(ctx, setID, lineID); err == nil {
		newStatus, clearedAt, err := model.ApplyLineStatus(line.Status, line.ClearedAt, status, now)
		if err != nil {
			return nil, apierror.Invalidf("%s", err.Error())
		}
		line.Status = newStatus
		line.ClearedAt = clearedAt
		if err := s.repo.SaveBookLine(ctx, line); err != nil {
			return nil, err
		}
		return s.GetByID(ctx, setID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line, err := s.repo.FindStationeryLine(ctx, setID, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("line %s in set %s", lineID, setID)
		}
		return nil, err
	}
	newStatus, clearedAt, err := model.ApplyLineStatus(line.Status, line.ClearedAt, status, now)
	if err != nil {
		return nil, apierror.Invalidf("%s", err.Error())
	}
	line.Status = newStatus
	line.ClearedAt = clearedAt
	if err := s.repo.SaveStationeryLine(ctx, line); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, setID)
}

// RemoveLine deletes a line outright regardless of its status.
func (s *setService) RemoveLine(ctx context.Context, setID, lineID uuid.UUID) error {
	affected, err := s.repo.DeleteBookLine(ctx, setID, lineID)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	affected, err = s.repo.DeleteStationeryLine(ctx, setID, lineID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierror.NotFoundf("line %s in set %s", lineID, setID)
	}
	return nil
}

func setToResponse(set *model.Set) *dto.SetResponse {
	books := make([]dto.SetBookLineResponse, 0, len(set.Books))
	for _, line := range set.Books {
		name := ""
		if line.Book != nil {
			name = line.Book.Name
		}
		books = append(books, dto.SetBookLineResponse{
			LineID:          line.ID.String(),
			BookID:          line.BookID.String(),
			Book:            name,
			Quantity:        line.Quantity,
			Price:           line.Price,
			PriceUnresolved: line.Price == nil,
			Status:          line.Status,
			ClearedAt:       formatTimePtr(line.ClearedAt),
		})
	}
	stationery := make([]dto.SetStationeryLineResponse, 0, len(set.Stationery))
	for _, line := range set.Stationery {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		stationery = append(stationery, dto.SetStationeryLineResponse{
			LineID:    line.ID.String(),
			ItemID:    line.ItemID.String(),
			Item:      name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Status:    line.Status,
			ClearedAt: formatTimePtr(line.ClearedAt),
		})
	}
	customerName := ""
	if set.Customer != nil {
		customerName = set.Customer.Name
	}
	return &dto.SetResponse{
		ID:         set.ID.String(),
		CustomerID: set.CustomerID.String(),
		Customer:   customerName,
		ClassName:  set.ClassName,
		Quantity:   set.Quantity,
		Books:      books,
		Stationery: stationery,
		CreatedAt:  set.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
