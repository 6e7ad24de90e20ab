package infra

import (
	"fmt"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all models, then applies the idempotent SQL patches that GORM cannot
// express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

// RunMigrations creates/updates all tables and indexes. Also used by
// integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Pastoral{},
		&model.Bem{},
		&model.RetiradaEmprestimo{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that backs the loan invariants:
//   - at most one open retirada (data_entrega IS NULL) per bem, enforced by
//     the database even under concurrent checkouts
//   - a partial index speeding up the "current loan" lookup
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS retiradas_emprestimos_one_open_per_bem
		   ON retiradas_emprestimos (id_bem)
		   WHERE data_entrega IS NULL`,
		`CREATE INDEX IF NOT EXISTS retiradas_emprestimos_open_bem_data_retirada
		   ON retiradas_emprestimos (id_bem, data_retirada DESC)
		   WHERE data_entrega IS NULL`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
