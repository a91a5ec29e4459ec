package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// priceTolerance absorbs floating rounding between the client and the
// catalog, not business drift: anything past one paisa/cent is a mismatch.
var priceTolerance = decimal.NewFromFloat(0.01)

type OrderService interface {
	Submit(ctx context.Context, req dto.SubmitOrderRequest) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	bookRepo   repository.BookRepository
	master     repository.MasterDataRepository
	dispatcher *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	bookRepo repository.BookRepository,
	master repository.MasterDataRepository,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{repo: repo, bookRepo: bookRepo, master: master, dispatcher: dispatcher}
}

// ── Submit ────────────────────────────────────────────────────────────────────
// Validate-then-persist, all-or-nothing:
//   1. Resolve customer/publication/subtitle header references
//   2. For each line: resolve book, check publication/subtitle match, re-derive
//      the expected price from the live catalog, compare within tolerance
//   3. Any line failure aborts the whole order with per-line reasons
//   4. BEGIN TX: nextval order number, insert order + items
//   5. (async) enqueue confirmation email — best effort

func (s *orderService) Submit(ctx context.Context, req dto.SubmitOrderRequest) (*dto.OrderResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apierror.Invalidf("invalid customer_id")
	}
	customer, err := s.master.FindCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("customer %s", req.CustomerID)
		}
		return nil, err
	}

	publicationID, err := uuid.Parse(req.PublicationID)
	if err != nil {
		return nil, apierror.Invalidf("invalid publication_id")
	}
	if _, err := s.master.FindPublication(ctx, publicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("publication %s", req.PublicationID)
		}
		return nil, err
	}

	var subtitleID *uuid.UUID
	if req.SubtitleID != nil {
		id, err := uuid.Parse(*req.SubtitleID)
		if err != nil {
			return nil, apierror.Invalidf("invalid subtitle_id")
		}
		sub, err := s.master.FindSubtitle(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFoundf("subtitle %s", *req.SubtitleID)
			}
			return nil, err
		}
		if sub.PublicationID != publicationID {
			return nil, apierror.Invalidf("subtitle %s does not belong to publication %s", *req.SubtitleID, req.PublicationID)
		}
		subtitleID = &id
	}

	// Per-line validation against the live catalog. Every line is checked so
	// the caller gets the full rejection list in one round trip.
	type resolvedLine struct {
		bookID    uuid.UUID
		bookName  string
		className *string
		quantity  int
		price     decimal.Decimal
		discount  decimal.Decimal
		lineTotal decimal.Decimal
	}

	var (
		resolved   []resolvedLine
		rejections []apierror.LineRejection
		total      = decimal.Zero
	)

	for _, item := range req.Items {
		reject := func(reason, detail string) {
			rejections = append(rejections, apierror.LineRejection{
				BookID: item.BookID, Reason: reason, Detail: detail,
			})
		}

		bookID, err := uuid.Parse(item.BookID)
		if err != nil {
			reject(apierror.ReasonNotFound, "invalid book id")
			continue
		}
		book, err := s.bookRepo.FindByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reject(apierror.ReasonNotFound, "book not in catalog")
			} else {
				return nil, err
			}
			continue
		}

		if book.PublicationID != publicationID {
			reject(apierror.ReasonWrongPublication, "book belongs to a different publication")
			continue
		}
		if subtitleID != nil && !uuidPtrEqual(book.SubtitleID, subtitleID) {
			reject(apierror.ReasonWrongPublication, "book belongs to a different subtitle")
			continue
		}

		spec, err := book.PriceSpec()
		if err != nil {
			return nil, fmt.Errorf("book %s has corrupt pricing: %w", book.ID, err)
		}

		className := ""
		if item.ClassName != nil {
			className = *item.ClassName
		}
		if spec.Mode == model.PriceModePerClass && className == "" {
			reject(apierror.ReasonMissingClass, "class selection required for per-class priced book")
			continue
		}

		expected, err := spec.Resolve(className)
		if err != nil || !expected.IsPositive() {
			reject(apierror.ReasonInvalidPrice, fmt.Sprintf("no valid catalog price for class %q", className))
			continue
		}

		if expected.Sub(item.Price).Abs().GreaterThan(priceTolerance) {
			reject(apierror.ReasonPriceMismatch,
				fmt.Sprintf("submitted %s, catalog says %s", item.Price.String(), expected.String()))
			continue
		}

		// lineTotal = price × qty × (1 − discount/100)
		lineTotal := item.Price.
			Mul(decimal.NewFromInt(int64(item.Quantity))).
			Mul(decimal.NewFromInt(100).Sub(item.DiscountPct)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		total = total.Add(lineTotal)

		resolved = append(resolved, resolvedLine{
			bookID:    bookID,
			bookName:  book.Name,
			className: item.ClassName,
			quantity:  item.Quantity,
			price:     item.Price,
			discount:  item.DiscountPct,
			lineTotal: lineTotal,
		})
	}

	if len(rejections) > 0 {
		return nil, &apierror.OrderRejection{Rejections: rejections}
	}

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orderNumber, err := s.repo.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}

		order = model.Order{
			OrderNumber:   orderNumber,
			CustomerID:    customerID,
			CustomerType:  customer.Type,
			PublicationID: publicationID,
			SubtitleID:    subtitleID,
			Remark:        req.Remark,
			Total:         total,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				BookID:      r.bookID,
				ClassName:   r.className,
				Quantity:    r.quantity,
				Price:       r.price,
				DiscountPct: r.discount,
				LineTotal:   r.lineTotal,
			})
		}
		return s.repo.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async confirmation mail — fire & forget
	if s.dispatcher != nil && req.NotifyEmail != nil && *req.NotifyEmail != "" {
		_ = s.dispatcher.EnqueueOrderMail(ctx, worker.OrderMailPayload{
			ToEmail:     *req.NotifyEmail,
			OrderNumber: order.OrderNumber,
			Customer:    customer.Name,
			Total:       total.String(),
		})
	}

	resp := orderToResponse(&order)
	for i, r := range resolved {
		resp.Items[i].Book = r.bookName
	}
	return resp, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFoundf("order %s", id)
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Book != nil {
			name = item.Book.Name
		}
		items = append(items, dto.OrderItemResponse{
			BookID:      item.BookID.String(),
			Book:        name,
			ClassName:   item.ClassName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			DiscountPct: item.DiscountPct,
			LineTotal:   item.LineTotal,
		})
	}
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID.String(),
		CustomerType:  o.CustomerType,
		PublicationID: o.PublicationID.String(),
		Remark:        o.Remark,
		Items:         items,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.SubtitleID != nil {
		id := o.SubtitleID.String()
		resp.SubtitleID = &id
	}
	return resp
}
