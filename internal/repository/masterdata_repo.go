package repository

import (
	"context"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterDataRepository covers the routine reference entities the pricing
// engine resolves FKs against. The maintenance screens are simple CRUD, so a
// single repository keeps the surface small.
type MasterDataRepository interface {
	FindPublication(ctx context.Context, id uuid.UUID) (*model.Publication, error)
	FindSubtitle(ctx context.Context, id uuid.UUID) (*model.Subtitle, error)
	FindLanguage(ctx context.Context, id uuid.UUID) (*model.Language, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	FindStationeryItem(ctx context.Context, id uuid.UUID) (*model.StationeryItem, error)
	FindClassByName(ctx context.Context, name string) (*model.SchoolClass, error)
	ListClasses(ctx context.Context) ([]model.SchoolClass, error)

	CreatePublication(ctx context.Context, p *model.Publication) error
	CreateSubtitle(ctx context.Context, s *model.Subtitle) error
	CreateLanguage(ctx context.Context, l *model.Language) error
	CreateClass(ctx context.Context, c *model.SchoolClass) error
	CreateCustomer(ctx context.Context, c *model.Customer) error
	CreateBranch(ctx context.Context, b *model.Branch) error
	CreateStationeryItem(ctx context.Context, i *model.StationeryItem) error

	ListPublications(ctx context.Context) ([]model.Publication, error)
	ListSubtitles(ctx context.Context, publicationID *uuid.UUID) ([]model.Subtitle, error)
	ListLanguages(ctx context.Context) ([]model.Language, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
	ListStationeryItems(ctx context.Context) ([]model.StationeryItem, error)
}

type masterDataRepo struct{ db *gorm.DB }

func NewMasterDataRepository(db *gorm.DB) MasterDataRepository { return &masterDataRepo{db: db} }

func (r *masterDataRepo) FindPublication(ctx context.Context, id uuid.UUID) (*model.Publication, error) {
	var p model.Publication
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *masterDataRepo) FindSubtitle(ctx context.Context, id uuid.UUID) (*model.Subtitle, error) {
	var s model.Subtitle
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *masterDataRepo) FindLanguage(ctx context.Context, id uuid.UUID) (*model.Language, error) {
	var l model.Language
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *masterDataRepo) FindCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *masterDataRepo) FindBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var b model.Branch
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *masterDataRepo) FindStationeryItem(ctx context.Context, id uuid.UUID) (*model.StationeryItem, error) {
	var i model.StationeryItem
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *masterDataRepo) FindClassByName(ctx context.Context, name string) (*model.SchoolClass, error) {
	var c model.SchoolClass
	err := r.db.WithContext(ctx).Where("name = ? AND active = true", name).First(&c).Error
	return &c, err
}

func (r *masterDataRepo) ListClasses(ctx context.Context) ([]model.SchoolClass, error) {
	var rows []model.SchoolClass
	err := r.db.WithContext(ctx).Where("active = true").Order("sort_order ASC, name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) CreatePublication(ctx context.Context, p *model.Publication) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *masterDataRepo) CreateSubtitle(ctx context.Context, s *model.Subtitle) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *masterDataRepo) CreateLanguage(ctx context.Context, l *model.Language) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *masterDataRepo) CreateClass(ctx context.Context, c *model.SchoolClass) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *masterDataRepo) CreateCustomer(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *masterDataRepo) CreateBranch(ctx context.Context, b *model.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *masterDataRepo) CreateStationeryItem(ctx context.Context, i *model.StationeryItem) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *masterDataRepo) ListPublications(ctx context.Context) ([]model.Publication, error) {
	var rows []model.Publication
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) ListSubtitles(ctx context.Context, publicationID *uuid.UUID) ([]model.Subtitle, error) {
	q := r.db.WithContext(ctx).Where("active = true")
	if publicationID != nil {
		q = q.Where("publication_id = ?", *publicationID)
	}
	var rows []model.Subtitle
	err := q.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) ListLanguages(ctx context.Context) ([]model.Language, error) {
	var rows []model.Language
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var rows []model.Customer
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) ListBranches(ctx context.Context) ([]model.Branch, error) {
	var rows []model.Branch
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *masterDataRepo) ListStationeryItems(ctx context.Context) ([]model.StationeryItem, error) {
	var rows []model.StationeryItem
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error
	return rows, err
}
