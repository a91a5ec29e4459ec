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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookService defines the business logic contract for catalog books.
type BookService interface {
	Create(ctx context.Context, req dto.CreateBookRequest) (*dto.BookResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BookResponse, error)
	List(ctx context.Context, filter dto.BookFilter) (*dto.BookListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBookRequest) (*dto.BookResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// ResolvePrice answers "what does the catalog say this book costs for this
	// class" — the single pricing source of truth shared with order validation.
	ResolvePrice(ctx context.Context, id uuid.UUID, className string) (*dto.ResolvedPriceResponse, error)
}

type bookService struct {
	repo   repository.BookRepository
	master repository.MasterDataRepository
}

func NewBookService(repo repository.BookRepository, master repository.MasterDataRepository) BookService {
	return &bookService{repo: repo, master: master}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// validatePricing enforces pricing-mode exclusivity: the declared mode's
// data must be present and the other mode's data must be absent.
func (s *bookService) validatePricing(ctx context.Context, mode string, common *decimal.Decimal, commonISBN *string, classPrices []dto.ClassPriceEntry) error {
	switch mode {
	case model.PriceModeCommon:
		if common == nil {
			return apierror.Invalidf("common_price is required for common pricing")
		}
		if common.IsNegative() {
			return apierror.Invalidf("common_price must not be negative")
		}
		if len(classPrices) > 0 {
			return apierror.Invalidf("class_prices must be empty for common pricing")
		}
	case model.PriceModePerClass:
		if common != nil || commonISBN != nil {
			return apierror.Invalidf("common_price/common_isbn must be absent for per-class pricing")
		}
		if len(classPrices) == 0 {
			return apierror.Invalidf("class_prices must contain at least one class")
		}
		seen := make(map[string]bool, len(classPrices))
		for _, cp := range classPrices {
			if seen[cp.ClassName] {
				return apierror.Invalidf("duplicate class %q in class_prices", cp.ClassName)
			}
			seen[cp.ClassName] = true
			if cp.Price.IsNegative() {
				return apierror.Invalidf("price for class %q must not be negative", cp.ClassName)
			}
			if _, err := s.master.FindClassByName(ctx, cp.ClassName); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.Invalidf("unknown class %q", cp.ClassName)
				}
				return err
			}
		}
	default:
		return apierror.Invalidf("unknown price_mode %q", mode)
	}
	return nil
}

// resolveRefs checks publication/subtitle/language references and the
// subtitle-belongs-to-publication rule.
func (s *bookService) resolveRefs(ctx context.Context, pubIDStr string, subIDStr, langIDStr *string) (uuid.UUID, *uuid.UUID, *uuid.UUID, error) {
	pubID, err := uuid.Parse(pubIDStr)
	if err != nil {
		return uuid.Nil, nil, nil, apierror.Invalidf("invalid publication_id")
	}
	if _, err := s.master.FindPublication(ctx, pubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, nil, apierror.NotFoundf("publication %s", pubIDStr)
		}
		return uuid.Nil, nil, nil, err
	}

	var subID *uuid.UUID
	if subIDStr != nil {
		id, err := uuid.Parse(*subIDStr)
		if err != nil {
			return uuid.Nil, nil, nil, apierror.Invalidf("invalid subtitle_id")
		}
		sub, err := s.master.FindSubtitle(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, nil, nil, apierror.NotFoundf("subtitle %s", *subIDStr)
			}
			return uuid.Nil, nil, nil, err
		}
		if sub.PublicationID != pubID {
			return uuid.Nil, nil, nil, apierror.Invalidf("subtitle %s does not belong to publication %s", *subIDStr, pubIDStr)
		}
		subID = &id
	}

	var langID *uuid.UUID
	if langIDStr != nil {
		id, err := uuid.Parse(*langIDStr)
		if err != nil {
			return uuid.Nil, nil, nil, apierror.Invalidf("invalid language_id")
		}
		if _, err := s.master.FindLanguage(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, nil, nil, apierror.NotFoundf("language %s", *langIDStr)
			}
			return uuid.Nil, nil, nil, err
		}
		langID = &id
	}

	return pubID, subID, langID, nil
}

func (s *bookService) Create(ctx context.Context, req dto.CreateBookRequest) (*dto.BookResponse, error) {
	if err := s.validatePricing(ctx, req.PriceMode, req.CommonPrice, req.CommonISBN, req.ClassPrices); err != nil {
		return nil, err
	}
	pubID, subID, langID, err := s.resolveRefs(ctx, req.PublicationID, req.SubtitleID, req.LanguageID)
	if err != nil {
		return nil, err
	}

	// (name, publication, subtitle) uniqueness
	if _, err := s.repo.FindByNamePubSub(ctx, req.Name, pubID, subID); err == nil {
		return nil, apierror.Conflictf("book %q already exists for this publication/subtitle", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	book := &model.Book{
		Name:          req.Name,
		PublicationID: pubID,
		SubtitleID:    subID,
		LanguageID:    langID,
		PriceMode:     req.PriceMode,
		CommonPrice:   req.CommonPrice,
		CommonISBN:    req.CommonISBN,
		DiscountPct:   req.DiscountPct,
		GSTPct:        req.GSTPct,
		Active:        true,
	}
	for _, cp := range req.ClassPrices {
		book.ClassPrices = append(book.ClassPrices, model.BookClassPrice{
			ClassName: cp.ClassName,
			Price:     cp.Price,
			ISBN:      cp.ISBN,
		})
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return bookToResponse(book), nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*dto.BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("book %s", id)
		}
		return nil, err
	}
	return bookToResponse(book), nil
}

func (s *bookService) List(ctx context.Context, filter dto.BookFilter) (*dto.BookListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		items = append(items, *bookToResponse(&books[i]))
	}
	return &dto.BookListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("book %s", id)
		}
		return nil, err
	}

	if err := s.validatePricing(ctx, req.PriceMode, req.CommonPrice, req.CommonISBN, req.ClassPrices); err != nil {
		return nil, err
	}
	pubID, subID, langID, err := s.resolveRefs(ctx, req.PublicationID, req.SubtitleID, req.LanguageID)
	if err != nil {
		return nil, err
	}

	// Re-check uniqueness when the identity key changed
	if req.Name != book.Name || pubID != book.PublicationID || !uuidPtrEqual(subID, book.SubtitleID) {
		if existing, err := s.repo.FindByNamePubSub(ctx, req.Name, pubID, subID); err == nil && existing.ID != id {
			return nil, apierror.Conflictf("book %q already exists for this publication/subtitle", req.Name)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	book.Name = req.Name
	book.PublicationID = pubID
	book.SubtitleID = subID
	book.LanguageID = langID
	book.PriceMode = req.PriceMode
	book.CommonPrice = req.CommonPrice
	book.CommonISBN = req.CommonISBN
	book.DiscountPct = req.DiscountPct
	book.GSTPct = req.GSTPct
	if req.Active != nil {
		book.Active = *req.Active
	}

	newPrices := make([]model.BookClassPrice, 0, len(req.ClassPrices))
	for _, cp := range req.ClassPrices {
		newPrices = append(newPrices, model.BookClassPrice{
			BookID:    book.ID,
			ClassName: cp.ClassName,
			Price:     cp.Price,
			ISBN:      cp.ISBN,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceClassPrices(ctx, tx, book.ID, newPrices); err != nil {
			return err
		}
		return s.repo.Update(ctx, book)
	})
	if txErr != nil {
		return nil, txErr
	}
	book.ClassPrices = newPrices
	return bookToResponse(book), nil
}

func (s *bookService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFoundf("book %s", id)
		}
		return err
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apierror.Conflictf("book is referenced by %d set/order line(s)", refs)
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *bookService) ResolvePrice(ctx context.Context, id uuid.UUID, className string) (*dto.ResolvedPriceResponse, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("book %s", id)
		}
		return nil, err
	}
	spec, err := book.PriceSpec()
	if err != nil {
		return nil, err
	}
	price, err := spec.Resolve(className)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrClassRequired):
			return nil, apierror.Invalidf("class_name is required for per-class priced book")
		case errors.Is(err, model.ErrPriceNotFound):
			return nil, apierror.NotFoundf("no price for class %q", className)
		default:
			return nil, err
		}
	}

	resp := &dto.ResolvedPriceResponse{
		BookID:    book.ID.String(),
		Name:      book.Name,
		ClassName: className,
		Price:     price,
	}
	if book.PriceMode == model.PriceModeCommon {
		resp.ISBN = book.CommonISBN
		resp.ClassName = ""
	} else {
		for _, cp := range book.ClassPrices {
			if cp.ClassName == className {
				resp.ISBN = cp.ISBN
				break
			}
		}
	}
	return resp, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func bookToResponse(b *model.Book) *dto.BookResponse {
	resp := &dto.BookResponse{
		ID:            b.ID.String(),
		Name:          b.Name,
		PublicationID: b.PublicationID.String(),
		PriceMode:     b.PriceMode,
		CommonPrice:   b.CommonPrice,
		CommonISBN:    b.CommonISBN,
		DiscountPct:   b.DiscountPct,
		GSTPct:        b.GSTPct,
		Active:        b.Active,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.Publication != nil {
		resp.Publication = b.Publication.Name
	}
	if b.SubtitleID != nil {
		id := b.SubtitleID.String()
		resp.SubtitleID = &id
	}
	if b.Subtitle != nil {
		resp.Subtitle = &b.Subtitle.Name
	}
	if b.LanguageID != nil {
		id := b.LanguageID.String()
		resp.LanguageID = &id
	}
	for _, cp := range b.ClassPrices {
		resp.ClassPrices = append(resp.ClassPrices, dto.ClassPriceEntry{
			ClassName: cp.ClassName,
			Price:     cp.Price,
			ISBN:      cp.ISBN,
		})
	}
	return resp
}
