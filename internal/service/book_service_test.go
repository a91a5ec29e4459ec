package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func strPtr(s string) *string { return &s }

type bookFixture struct {
	svc    service.BookService
	books  *stubBookRepo
	master *stubMasterRepo
	pubID  string
	subID  string
}

func newBookFixture(t *testing.T) *bookFixture {
	t.Helper()
	master := newStubMasterRepo()
	master.addClasses("Class1", "Class2", "Class3")
	pub := master.addPublication("NCERT")
	sub := master.addSubtitle("Science Series", pub.ID)
	books := newStubBookRepo()
	return &bookFixture{
		svc:    service.NewBookService(books, master),
		books:  books,
		master: master,
		pubID:  pub.ID.String(),
		subID:  sub.ID.String(),
	}
}

func TestCreateBookCommonPrice(t *testing.T) {
	f := newBookFixture(t)

	resp, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "Mathematics",
		PublicationID: f.pubID,
		PriceMode:     "common",
		CommonPrice:   decPtr(250),
		CommonISBN:    strPtr("978-0-00-000000-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "common", resp.PriceMode)
	require.NotNil(t, resp.CommonPrice)
	assert.True(t, resp.CommonPrice.Equal(decimal.NewFromInt(250)))
	assert.Empty(t, resp.ClassPrices)
}

func TestCreateBookPerClassPrice(t *testing.T) {
	f := newBookFixture(t)

	resp, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "General Knowledge",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
		ClassPrices: []dto.ClassPriceEntry{
			{ClassName: "Class1", Price: decimal.NewFromInt(80), ISBN: strPtr("978-1")},
			{ClassName: "Class2", Price: decimal.NewFromInt(95), ISBN: strPtr("978-2")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "per_class", resp.PriceMode)
	assert.Nil(t, resp.CommonPrice)
	assert.Len(t, resp.ClassPrices, 2)
}

func TestCreateBookPricingExclusivity(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	// Common mode with per-class rows.
	_, err := f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "Mixed A",
		PublicationID: f.pubID,
		PriceMode:     "common",
		CommonPrice:   decPtr(100),
		ClassPrices:   []dto.ClassPriceEntry{{ClassName: "Class1", Price: decimal.NewFromInt(80)}},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)

	// Per-class mode with a common price.
	_, err = f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "Mixed B",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
		CommonPrice:   decPtr(100),
		ClassPrices:   []dto.ClassPriceEntry{{ClassName: "Class1", Price: decimal.NewFromInt(80)}},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)

	// Common mode without a price.
	_, err = f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "No Price",
		PublicationID: f.pubID,
		PriceMode:     "common",
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)

	// Per-class mode with an empty table.
	_, err = f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "Empty Table",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)
}

func TestCreateBookRejectsUnknownClass(t *testing.T) {
	f := newBookFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "Atlas",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
		ClassPrices:   []dto.ClassPriceEntry{{ClassName: "Class99", Price: decimal.NewFromInt(80)}},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)
}

func TestCreateBookRejectsDuplicateClassRows(t *testing.T) {
	f := newBookFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "Atlas",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
		ClassPrices: []dto.ClassPriceEntry{
			{ClassName: "Class1", Price: decimal.NewFromInt(80)},
			{ClassName: "Class1", Price: decimal.NewFromInt(90)},
		},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)
}

func TestCreateBookDuplicateIdentityConflicts(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	req := dto.CreateBookRequest{
		Name:          "Mathematics",
		PublicationID: f.pubID,
		SubtitleID:    &f.subID,
		PriceMode:     "common",
		CommonPrice:   decPtr(250),
	}
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, apierror.ErrConflict)

	// Same name under a different subtitle is a different book.
	req.SubtitleID = nil
	_, err = f.svc.Create(ctx, req)
	assert.NoError(t, err)
}

func TestCreateBookSubtitleMustBelongToPublication(t *testing.T) {
	f := newBookFixture(t)
	otherPub := f.master.addPublication("Oxford")

	_, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "Grammar",
		PublicationID: otherPub.ID.String(),
		SubtitleID:    &f.subID, // belongs to NCERT, not Oxford
		PriceMode:     "common",
		CommonPrice:   decPtr(150),
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)
}

func TestResolvePriceCommon(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "Mathematics",
		PublicationID: f.pubID,
		PriceMode:     "common",
		CommonPrice:   decPtr(250),
		CommonISBN:    strPtr("978-0-00-000000-1"),
	})
	require.NoError(t, err)

	book, err := f.books.FindByNamePubSub(ctx, "Mathematics", mustUUID(t, f.pubID), nil)
	require.NoError(t, err)

	// Class is irrelevant for common pricing and dropped from the response.
	resp, err := f.svc.ResolvePrice(ctx, book.ID, "Class3")
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(250)))
	assert.Empty(t, resp.ClassName)
	require.NotNil(t, resp.ISBN)
	assert.Equal(t, "978-0-00-000000-1", *resp.ISBN)
	assert.Equal(t, created.ID, resp.BookID)
}

func TestResolvePricePerClass(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "General Knowledge",
		PublicationID: f.pubID,
		PriceMode:     "per_class",
		ClassPrices: []dto.ClassPriceEntry{
			{ClassName: "Class1", Price: decimal.NewFromInt(80), ISBN: strPtr("978-1")},
		},
	})
	require.NoError(t, err)

	book, err := f.books.FindByNamePubSub(ctx, "General Knowledge", mustUUID(t, f.pubID), nil)
	require.NoError(t, err)

	resp, err := f.svc.ResolvePrice(ctx, book.ID, "Class1")
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "Class1", resp.ClassName)
	require.NotNil(t, resp.ISBN)
	assert.Equal(t, "978-1", *resp.ISBN)

	// No class selected.
	_, err = f.svc.ResolvePrice(ctx, book.ID, "")
	assert.ErrorIs(t, err, apierror.ErrInvalid)

	// Class absent from the table.
	_, err = f.svc.ResolvePrice(ctx, book.ID, "Class2")
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestDeactivateReferencedBookConflicts(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.CreateBookRequest{
		Name:          "Mathematics",
		PublicationID: f.pubID,
		PriceMode:     "common",
		CommonPrice:   decPtr(250),
	})
	require.NoError(t, err)
	book, err := f.books.FindByNamePubSub(ctx, "Mathematics", mustUUID(t, f.pubID), nil)
	require.NoError(t, err)

	f.books.refCount = 3
	err = f.svc.Deactivate(ctx, book.ID)
	assert.ErrorIs(t, err, apierror.ErrConflict)
	assert.True(t, book.Active)

	f.books.refCount = 0
	require.NoError(t, f.svc.Deactivate(ctx, book.ID))
	assert.False(t, book.Active)
}

func TestBookCreatedAtIsUTC(t *testing.T) {
	f := newBookFixture(t)

	resp, err := f.svc.Create(context.Background(), dto.CreateBookRequest{
		Name:          "Science",
		PublicationID: f.pubID,
		PriceMode:     "common",
		CommonPrice:   decPtr(180),
	})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.CreatedAt)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 0, offset)
	assert.WithinDuration(t, time.Now(), parsed, 5*time.Second)
}
