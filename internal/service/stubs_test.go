package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}

// In-memory repository stubs. They return gorm.ErrRecordNotFound where the
// real GORM-backed implementations would, so the services' errors.Is checks
// behave identically.

// ── MasterDataRepository ─────────────────────────────────────────────────────

type stubMasterRepo struct {
	publications map[uuid.UUID]*model.Publication
	subtitles    map[uuid.UUID]*model.Subtitle
	languages    map[uuid.UUID]*model.Language
	customers    map[uuid.UUID]*model.Customer
	branches     map[uuid.UUID]*model.Branch
	items        map[uuid.UUID]*model.StationeryItem
	classes      map[string]*model.SchoolClass
}

func newStubMasterRepo() *stubMasterRepo {
	return &stubMasterRepo{
		publications: make(map[uuid.UUID]*model.Publication),
		subtitles:    make(map[uuid.UUID]*model.Subtitle),
		languages:    make(map[uuid.UUID]*model.Language),
		customers:    make(map[uuid.UUID]*model.Customer),
		branches:     make(map[uuid.UUID]*model.Branch),
		items:        make(map[uuid.UUID]*model.StationeryItem),
		classes:      make(map[string]*model.SchoolClass),
	}
}

func (r *stubMasterRepo) addCustomer(name, typ string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: name, Type: typ, Active: true}
	r.customers[c.ID] = c
	return c
}

func (r *stubMasterRepo) addPublication(name string) *model.Publication {
	p := &model.Publication{ID: uuid.New(), Name: name, Active: true}
	r.publications[p.ID] = p
	return p
}

func (r *stubMasterRepo) addSubtitle(name string, pubID uuid.UUID) *model.Subtitle {
	s := &model.Subtitle{ID: uuid.New(), Name: name, PublicationID: pubID, Active: true}
	r.subtitles[s.ID] = s
	return s
}

func (r *stubMasterRepo) addClasses(names ...string) {
	for i, n := range names {
		r.classes[n] = &model.SchoolClass{ID: uuid.New(), Name: n, SortOrder: i + 1, Active: true}
	}
}

func (r *stubMasterRepo) addItem(name string) *model.StationeryItem {
	i := &model.StationeryItem{ID: uuid.New(), Name: name, Active: true}
	r.items[i.ID] = i
	return i
}

func (r *stubMasterRepo) addBranch(name string) *model.Branch {
	b := &model.Branch{ID: uuid.New(), Name: name, Active: true}
	r.branches[b.ID] = b
	return b
}

func (r *stubMasterRepo) FindPublication(_ context.Context, id uuid.UUID) (*model.Publication, error) {
	if p, ok := r.publications[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindSubtitle(_ context.Context, id uuid.UUID) (*model.Subtitle, error) {
	if s, ok := r.subtitles[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindLanguage(_ context.Context, id uuid.UUID) (*model.Language, error) {
	if l, ok := r.languages[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindCustomer(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindBranch(_ context.Context, id uuid.UUID) (*model.Branch, error) {
	if b, ok := r.branches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindStationeryItem(_ context.Context, id uuid.UUID) (*model.StationeryItem, error) {
	if i, ok := r.items[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) FindClassByName(_ context.Context, name string) (*model.SchoolClass, error) {
	if c, ok := r.classes[name]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMasterRepo) ListClasses(_ context.Context) ([]model.SchoolClass, error) {
	out := make([]model.SchoolClass, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubMasterRepo) CreatePublication(_ context.Context, p *model.Publication) error {
	p.ID = uuid.New()
	r.publications[p.ID] = p
	return nil
}

func (r *stubMasterRepo) CreateSubtitle(_ context.Context, s *model.Subtitle) error {
	s.ID = uuid.New()
	r.subtitles[s.ID] = s
	return nil
}

func (r *stubMasterRepo) CreateLanguage(_ context.Context, l *model.Language) error {
	l.ID = uuid.New()
	r.languages[l.ID] = l
	return nil
}

func (r *stubMasterRepo) CreateClass(_ context.Context, c *model.SchoolClass) error {
	c.ID = uuid.New()
	r.classes[c.Name] = c
	return nil
}

func (r *stubMasterRepo) CreateCustomer(_ context.Context, c *model.Customer) error {
	c.ID = uuid.New()
	r.customers[c.ID] = c
	return nil
}

func (r *stubMasterRepo) CreateBranch(_ context.Context, b *model.Branch) error {
	b.ID = uuid.New()
	r.branches[b.ID] = b
	return nil
}

func (r *stubMasterRepo) CreateStationeryItem(_ context.Context, i *model.StationeryItem) error {
	i.ID = uuid.New()
	r.items[i.ID] = i
	return nil
}

func (r *stubMasterRepo) ListPublications(_ context.Context) ([]model.Publication, error) {
	out := make([]model.Publication, 0, len(r.publications))
	for _, p := range r.publications {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubMasterRepo) ListSubtitles(_ context.Context, publicationID *uuid.UUID) ([]model.Subtitle, error) {
	out := make([]model.Subtitle, 0, len(r.subtitles))
	for _, s := range r.subtitles {
		if publicationID != nil && s.PublicationID != *publicationID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubMasterRepo) ListLanguages(_ context.Context) ([]model.Language, error) {
	out := make([]model.Language, 0, len(r.languages))
	for _, l := range r.languages {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubMasterRepo) ListCustomers(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubMasterRepo) ListBranches(_ context.Context) ([]model.Branch, error) {
	out := make([]model.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubMasterRepo) ListStationeryItems(_ context.Context) ([]model.StationeryItem, error) {
	out := make([]model.StationeryItem, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

var _ repository.MasterDataRepository = (*stubMasterRepo)(nil)

// ── BookRepository ───────────────────────────────────────────────────────────

type stubBookRepo struct {
	books    map[uuid.UUID]*model.Book
	refCount int64
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[uuid.UUID]*model.Book)}
}

func (r *stubBookRepo) Create(_ context.Context, b *model.Book) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	// Like the database would: a wall-clock stamp in server-local time.
	b.CreatedAt = time.Now().In(time.FixedZone("IST", 5*3600+1800))
	for i := range b.ClassPrices {
		b.ClassPrices[i].ID = uuid.New()
		b.ClassPrices[i].BookID = b.ID
	}
	r.books[b.ID] = b
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBookRepo) FindByNamePubSub(_ context.Context, name string, pubID uuid.UUID, subID *uuid.UUID) (*model.Book, error) {
	for _, b := range r.books {
		if !strings.EqualFold(b.Name, name) || b.PublicationID != pubID {
			continue
		}
		if (b.SubtitleID == nil) != (subID == nil) {
			continue
		}
		if subID != nil && *b.SubtitleID != *subID {
			continue
		}
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBookRepo) List(_ context.Context, _ dto.BookFilter) ([]model.Book, int64, error) {
	out := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBookRepo) Update(_ context.Context, b *model.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.books[b.ID] = b
	return nil
}

func (r *stubBookRepo) ReplaceClassPrices(_ context.Context, _ *gorm.DB, bookID uuid.UUID, prices []model.BookClassPrice) error {
	b, ok := r.books[bookID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range prices {
		prices[i].ID = uuid.New()
		prices[i].BookID = bookID
	}
	b.ClassPrices = prices
	return nil
}

func (r *stubBookRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	b, ok := r.books[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Active = false
	return nil
}

func (r *stubBookRepo) CountReferences(_ context.Context, _ uuid.UUID) (int64, error) {
	return r.refCount, nil
}

func (r *stubBookRepo) DB() *gorm.DB { return nil }

var _ repository.BookRepository = (*stubBookRepo)(nil)

// ── SetRepository ────────────────────────────────────────────────────────────

type stubSetRepo struct {
	sets map[uuid.UUID]*model.Set
}

func newStubSetRepo() *stubSetRepo {
	return &stubSetRepo{sets: make(map[uuid.UUID]*model.Set)}
}

func (r *stubSetRepo) Create(_ context.Context, _ *gorm.DB, s *model.Set) error {
	// Mimic the partial unique index on (customer_id, class_name).
	for _, existing := range r.sets {
		if existing.CustomerID == s.CustomerID && existing.ClassName == s.ClassName {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Books {
		s.Books[i].ID = uuid.New()
		s.Books[i].SetID = s.ID
	}
	for i := range s.Stationery {
		s.Stationery[i].ID = uuid.New()
		s.Stationery[i].SetID = s.ID
	}
	r.sets[s.ID] = s
	return nil
}

func (r *stubSetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Set, error) {
	if s, ok := r.sets[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSetRepo) FindByCustomerClass(_ context.Context, customerID uuid.UUID, className string) (*model.Set, error) {
	for _, s := range r.sets {
		if s.CustomerID == customerID && s.ClassName == className {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSetRepo) List(_ context.Context, _ dto.SetFilter) ([]model.Set, int64, error) {
	out := make([]model.Set, 0, len(r.sets))
	for _, s := range r.sets {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSetRepo) ReplaceLines(_ context.Context, _ *gorm.DB, setID uuid.UUID, books []model.SetBookLine, stationery []model.SetStationeryLine) error {
	s, ok := r.sets[setID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range books {
		books[i].ID = uuid.New()
	}
	for i := range stationery {
		stationery[i].ID = uuid.New()
	}
	s.Books = books
	s.Stationery = stationery
	return nil
}

func (r *stubSetRepo) UpdateQuantity(_ context.Context, _ *gorm.DB, setID uuid.UUID, qty int) error {
	s, ok := r.sets[setID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Quantity = qty
	return nil
}

func (r *stubSetRepo) UpdateQuantityByPair(_ context.Context, _ *gorm.DB, customerID uuid.UUID, className string, qty int) (int64, error) {
	for _, s := range r.sets {
		if s.CustomerID == customerID && s.ClassName == className {
			s.Quantity = qty
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubSetRepo) FindBookLine(_ context.Context, setID, lineID uuid.UUID) (*model.SetBookLine, error) {
	s, ok := r.sets[setID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range s.Books {
		if s.Books[i].ID == lineID {
			return &s.Books[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSetRepo) FindStationeryLine(_ context.Context, setID, lineID uuid.UUID) (*model.SetStationeryLine, error) {
	s, ok := r.sets[setID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range s.Stationery {
		if s.Stationery[i].ID == lineID {
			return &s.Stationery[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSetRepo) SaveBookLine(_ context.Context, line *model.SetBookLine) error {
	s, ok := r.sets[line.SetID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range s.Books {
		if s.Books[i].ID == line.ID {
			s.Books[i] = *line
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSetRepo) SaveStationeryLine(_ context.Context, line *model.SetStationeryLine) error {
	s, ok := r.sets[line.SetID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range s.Stationery {
		if s.Stationery[i].ID == line.ID {
			s.Stationery[i] = *line
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSetRepo) DeleteBookLine(_ context.Context, setID, lineID uuid.UUID) (int64, error) {
	s, ok := r.sets[setID]
	if !ok {
		return 0, nil
	}
	for i := range s.Books {
		if s.Books[i].ID == lineID {
			s.Books = append(s.Books[:i], s.Books[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubSetRepo) DeleteStationeryLine(_ context.Context, setID, lineID uuid.UUID) (int64, error) {
	s, ok := r.sets[setID]
	if !ok {
		return 0, nil
	}
	for i := range s.Stationery {
		if s.Stationery[i].ID == lineID {
			s.Stationery = append(s.Stationery[:i], s.Stationery[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubSetRepo) DB() *gorm.DB { return nil }

var _ repository.SetRepository = (*stubSetRepo)(nil)

// ── SetQuantityRepository ────────────────────────────────────────────────────

type stubQtyRepo struct {
	rows map[string]*model.SetQuantity
}

func newStubQtyRepo() *stubQtyRepo {
	return &stubQtyRepo{rows: make(map[string]*model.SetQuantity)}
}

func qtyKey(customerID uuid.UUID, className string) string {
	return customerID.String() + "|" + className
}

func (r *stubQtyRepo) Upsert(_ context.Context, _ *gorm.DB, customerID uuid.UUID, className string, qty int) error {
	key := qtyKey(customerID, className)
	if row, ok := r.rows[key]; ok {
		row.Quantity = qty
		return nil
	}
	r.rows[key] = &model.SetQuantity{
		ID: uuid.New(), CustomerID: customerID, ClassName: className, Quantity: qty,
	}
	return nil
}

func (r *stubQtyRepo) FindByPair(_ context.Context, customerID uuid.UUID, className string) (*model.SetQuantity, error) {
	if row, ok := r.rows[qtyKey(customerID, className)]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubQtyRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.SetQuantity, error) {
	var out []model.SetQuantity
	for _, row := range r.rows {
		if row.CustomerID == customerID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubQtyRepo) DB() *gorm.DB { return nil }

var _ repository.SetQuantityRepository = (*stubQtyRepo)(nil)

// ── OrderRepository ──────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	orderSeq int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.orderSeq++
	return r.orderSeq, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── PendingRepository ────────────────────────────────────────────────────────

type stubPendingRepo struct {
	records  []*model.PendingRecord
	joinRows []repository.BookStatusJoinRow
}

func newStubPendingRepo() *stubPendingRepo { return &stubPendingRepo{} }

func (r *stubPendingRepo) FindByKey(_ context.Context, customerID, bookID uuid.UUID, branchID *uuid.UUID) (*model.PendingRecord, error) {
	for _, rec := range r.records {
		if rec.CustomerID != customerID || rec.BookID != bookID {
			continue
		}
		if (rec.BranchID == nil) != (branchID == nil) {
			continue
		}
		if branchID != nil && *rec.BranchID != *branchID {
			continue
		}
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPendingRepo) Save(_ context.Context, rec *model.PendingRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
		r.records = append(r.records, rec)
	}
	return nil
}

func (r *stubPendingRepo) ListBookStatus(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ dto.PendingBooksFilter) ([]repository.BookStatusJoinRow, int64, error) {
	return r.joinRows, int64(len(r.joinRows)), nil
}

func (r *stubPendingRepo) DB() *gorm.DB { return nil }

var _ repository.PendingRepository = (*stubPendingRepo)(nil)
