package repository

import (
	"context"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SetRepository persists (customer, class) bundles and their lines.
type SetRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Set) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Set, error)
	FindByCustomerClass(ctx context.Context, customerID uuid.UUID, className string) (*model.Set, error)
	List(ctx context.Context, filter dto.SetFilter) ([]model.Set, int64, error)
	// ReplaceLines swaps the full line content of a set inside tx.
	ReplaceLines(ctx context.Context, tx *gorm.DB, setID uuid.UUID, books []model.SetBookLine, stationery []model.SetStationeryLine) error
	UpdateQuantity(ctx context.Context, tx *gorm.DB, setID uuid.UUID, qty int) error
	// UpdateQuantityByPair mirrors a ledger value onto the matching set, if one
	// exists. Returns gorm.ErrRecordNotFound semantics via RowsAffected == 0.
	UpdateQuantityByPair(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, className string, qty int) (int64, error)

	FindBookLine(ctx context.Context, setID, lineID uuid.UUID) (*model.SetBookLine, error)
	FindStationeryLine(ctx context.Context, setID, lineID uuid.UUID) (*model.SetStationeryLine, error)
	SaveBookLine(ctx context.Context, line *model.SetBookLine) error
	SaveStationeryLine(ctx context.Context, line *model.SetStationeryLine) error
	DeleteBookLine(ctx context.Context, setID, lineID uuid.UUID) (int64, error)
	DeleteStationeryLine(ctx context.Context, setID, lineID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

// SetQuantityRepository is the bulk-editable quantity ledger.
type SetQuantityRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, className string, qty int) error
	FindByPair(ctx context.Context, customerID uuid.UUID, className string) (*model.SetQuantity, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.SetQuantity, error)
	DB() *gorm.DB
}

type setRepo struct{ db *gorm.DB }

func NewSetRepository(db *gorm.DB) SetRepository { return &setRepo{db: db} }

func (r *setRepo) DB() *gorm.DB { return r.db }

func (r *setRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Set) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Create(s).Error
}

func (r *setRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Set, error) {
	var s model.Set
	err := r.db.WithContext(ctx).
		Preload("Books.Book").
		Preload("Stationery.Item").
		Preload("Customer").
		First(&s, id).Error
	return &s, err
}

func (r *setRepo) FindByCustomerClass(ctx context.Context, customerID uuid.UUID, className string) (*model.Set, error) {
	var s model.Set
	err := r.db.WithContext(ctx).
		Preload("Books.Book").
		Preload("Stationery.Item").
		Where("customer_id = ? AND class_name = ?", customerID, className).
		First(&s).Error
	return &s, err
}

func (r *setRepo) List(ctx context.Context, filter dto.SetFilter) ([]model.Set, int64, error) {
	var sets []model.Set
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Set{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.ClassName != "" {
		q = q.Where("class_name = ?", filter.ClassName)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Books.Book").
		Preload("Stationery.Item").
		Preload("Customer").
		Order("class_name ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&sets).Error
	return sets, total, err
}

func (r *setRepo) ReplaceLines(ctx context.Context, tx *gorm.DB, setID uuid.UUID, books []model.SetBookLine, stationery []model.SetStationeryLine) error {
	db := tx
	if db == nil {
		db = r.db
	}
	if err := db.WithContext(ctx).Where("set_id = ?", setID).Delete(&model.SetBookLine{}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("set_id = ?", setID).Delete(&model.SetStationeryLine{}).Error; err != nil {
		return err
	}
	if len(books) > 0 {
		if err := db.WithContext(ctx).Create(&books).Error; err != nil {
			return err
		}
	}
	if len(stationery) > 0 {
		if err := db.WithContext(ctx).Create(&stationery).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *setRepo) UpdateQuantity(ctx context.Context, tx *gorm.DB, setID uuid.UUID, qty int) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Model(&model.Set{}).Where("id = ?", setID).Update("quantity", qty).Error
}

func (r *setRepo) UpdateQuantityByPair(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, className string, qty int) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	res := db.WithContext(ctx).Model(&model.Set{}).
		Where("customer_id = ? AND class_name = ?", customerID, className).
		Update("quantity", qty)
	return res.RowsAffected, res.Error
}

func (r *setRepo) FindBookLine(ctx context.Context, setID, lineID uuid.UUID) (*model.SetBookLine, error) {
	var line model.SetBookLine
	err := r.db.WithContext(ctx).Where("set_id = ? AND id = ?", setID, lineID).First(&line).Error
	return &line, err
}

func (r *setRepo) FindStationeryLine(ctx context.Context, setID, lineID uuid.UUID) (*model.SetStationeryLine, error) {
	var line model.SetStationeryLine
	err := r.db.WithContext(ctx).Where("set_id = ? AND id = ?", setID, lineID).First(&line).Error
	return &line, err
}

func (r *setRepo) SaveBookLine(ctx context.Context, line *model.SetBookLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *setRepo) SaveStationeryLine(ctx context.Context, line *model.SetStationeryLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *setRepo) DeleteBookLine(ctx context.Context, setID, lineID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("set_id = ? AND id = ?", setID, lineID).Delete(&model.SetBookLine{})
	return res.RowsAffected, res.Error
}

func (r *setRepo) DeleteStationeryLine(ctx context.Context, setID, lineID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("set_id = ? AND id = ?", setID, lineID).Delete(&model.SetStationeryLine{})
	return res.RowsAffected, res.Error
}

// ── Quantity ledger ──────────────────────────────────────────────────────────

type setQuantityRepo struct{ db *gorm.DB }

func NewSetQuantityRepository(db *gorm.DB) SetQuantityRepository { return &setQuantityRepo{db: db} }

func (r *setQuantityRepo) DB() *gorm.DB { return r.db }

// Upsert relies on the unique (customer_id, class_name) index; the raw
// ON CONFLICT keeps ledger writes single-statement and race-free.
func (r *setQuantityRepo) Upsert(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, className string, qty int) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(`
		INSERT INTO set_quantities (id, customer_id, class_name, quantity, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, now(), now())
		ON CONFLICT (customer_id, class_name)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`,
		customerID, className, qty).Error
}

func (r *setQuantityRepo) FindByPair(ctx context.Context, customerID uuid.UUID, className string) (*model.SetQuantity, error) {
	var sq model.SetQuantity
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND class_name = ?", customerID, className).
		First(&sq).Error
	return &sq, err
}

func (r *setQuantityRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.SetQuantity, error) {
	var rows []model.SetQuantity
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("class_name ASC").
		Find(&rows).Error
	return rows, err
}
