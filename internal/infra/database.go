package infra

import (
	"fmt"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches GORM
// cannot express (the order-number sequence, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Publication{},
		&model.Subtitle{},
		&model.Language{},
		&model.SchoolClass{},
		&model.Customer{},
		&model.Branch{},
		&model.StationeryItem{},
		&model.Book{},
		&model.BookClassPrice{},
		&model.Set{},
		&model.SetBookLine{},
		&model.SetStationeryLine{},
		&model.SetQuantity{},
		&model.Order{},
		&model.OrderItem{},
		&model.PendingRecord{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Atomic order numbering — nextval() inside the insert transaction.
		`CREATE SEQUENCE IF NOT EXISTS orders_order_number_seq START 1`,
		// The (customer, book) pair with NULL branch must also be unique;
		// a plain unique index treats NULLs as distinct.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pending_customer_book_nobranch') THEN
		    CREATE UNIQUE INDEX idx_pending_customer_book_nobranch
		        ON pending_records (customer_id, book_id)
		        WHERE branch_id IS NULL;
		  END IF;
		END $$`,
		// Same rule for catalog identity with no subtitle.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_books_name_pub_nosub') THEN
		    CREATE UNIQUE INDEX idx_books_name_pub_nosub
		        ON books (name, publication_id)
		        WHERE subtitle_id IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
