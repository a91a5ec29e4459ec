package service_test

import (
	"context"
	"testing"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pendingFixture struct {
	svc     service.PendingService
	pending *stubPendingRepo
	books   *stubBookRepo
	master  *stubMasterRepo
	school  *model.Customer
	branch  *model.Branch
	book    *model.Book
}

func newPendingFixture(t *testing.T) *pendingFixture {
	t.Helper()
	master := newStubMasterRepo()
	school := master.addCustomer("Sunrise Public School", model.CustomerTypeSchool)
	branch := master.addBranch("Main Store")
	pub := master.addPublication("NCERT")

	books := newStubBookRepo()
	common := decimal.NewFromInt(250)
	book := &model.Book{
		Name: "Mathematics", PublicationID: pub.ID,
		PriceMode: model.PriceModeCommon, CommonPrice: &common, Active: true,
	}
	require.NoError(t, books.Create(context.Background(), book))

	pending := newStubPendingRepo()
	return &pendingFixture{
		svc:     service.NewPendingService(pending, books, master),
		pending: pending,
		books:   books,
		master:  master,
		school:  school,
		branch:  branch,
		book:    book,
	}
}

func TestSetStatusCreatesStampedRecord(t *testing.T) {
	f := newPendingFixture(t)

	resp, err := f.svc.SetStatus(context.Background(), dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     f.book.ID.String(),
		Status:     model.PendingStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PendingStatusPending, resp.Status)
	assert.NotNil(t, resp.PendingDate)
	assert.Nil(t, resp.ClearedDate)
	assert.Nil(t, resp.BranchID)
}

func TestSetStatusUpdatesExistingRecord(t *testing.T) {
	f := newPendingFixture(t)
	ctx := context.Background()

	first, err := f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     f.book.ID.String(),
		Status:     model.PendingStatusPending,
	})
	require.NoError(t, err)

	second, err := f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     f.book.ID.String(),
		Status:     model.PendingStatusClear,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (customer, book, branch) row is updated, not duplicated")
	assert.Equal(t, model.PendingStatusClear, second.Status)
	assert.Nil(t, second.PendingDate)
	assert.NotNil(t, second.ClearedDate)
	assert.Len(t, f.pending.records, 1)
}

func TestSetStatusBranchesAreSeparateRecords(t *testing.T) {
	f := newPendingFixture(t)
	ctx := context.Background()
	branchID := f.branch.ID.String()

	noBranch, err := f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     f.book.ID.String(),
		Status:     model.PendingStatusPending,
	})
	require.NoError(t, err)

	withBranch, err := f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     f.book.ID.String(),
		BranchID:   &branchID,
		Status:     model.PendingStatusClear,
	})
	require.NoError(t, err)

	assert.NotEqual(t, noBranch.ID, withBranch.ID)
	assert.Len(t, f.pending.records, 2)
}

func TestSetStatusValidatesReferences(t *testing.T) {
	f := newPendingFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: uuid.NewString(),
		BookID:     f.book.ID.String(),
		Status:     model.PendingStatusPending,
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = f.svc.SetStatus(ctx, dto.SetPendingStatusRequest{
		CustomerID: f.school.ID.String(),
		BookID:     uuid.NewString(),
		Status:     model.PendingStatusPending,
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestListBooksWithStatusDefaultsToNotSet(t *testing.T) {
	f := newPendingFixture(t)
	status := model.PendingStatusPending

	// The repo join yields one book with a record and one without.
	f.pending.joinRows = []repository.BookStatusJoinRow{
		{BookID: f.book.ID, Name: "Mathematics", Status: &status},
		{BookID: uuid.New(), Name: "Science"},
	}

	resp, err := f.svc.ListBooksWithStatus(context.Background(), dto.PendingBooksFilter{
		CustomerID: f.school.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, model.PendingStatusPending, resp.Rows[0].Status)
	assert.Equal(t, model.PendingStatusNotSet, resp.Rows[1].Status)
	assert.Equal(t, int64(2), resp.Total)
}

func TestListBooksWithStatusUnknownCustomer(t *testing.T) {
	f := newPendingFixture(t)

	_, err := f.svc.ListBooksWithStatus(context.Background(), dto.PendingBooksFilter{
		CustomerID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
