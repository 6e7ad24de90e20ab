package repository

import (
	"context"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BemRepository defines the data access contract for bens.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BemRepository interface {
	Create(ctx context.Context, b *model.Bem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bem, error)
	FindByIDWithEmprestimos(ctx context.Context, id uuid.UUID) (*model.Bem, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Bem, error)
	// List preloads only the open loan (data_entrega IS NULL) of each bem so
	// callers can compute availability without a second query.
	List(ctx context.Context, filter dto.BemFilter) ([]model.Bem, error)
	Update(ctx context.Context, b *model.Bem) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEmprestimosAbertos(ctx context.Context, id uuid.UUID) (int64, error)

	// Dashboard aggregations
	Count(ctx context.Context) (int64, error)
	CountPorEstado(ctx context.Context) (map[string]int64, error)
	SumValor(ctx context.Context) (decimal.Decimal, error)

	// Used inside transactions — callers must pass the tx instance
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Bem, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type bemRepo struct{ db *gorm.DB }

func NewBemRepository(db *gorm.DB) BemRepository { return &bemRepo{db: db} }

func (r *bemRepo) Create(ctx context.Context, b *model.Bem) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bem, error) {
	var b model.Bem
	err := r.db.WithContext(ctx).
		Preload("Emprestimos", "data_entrega IS NULL").
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bemRepo) FindByIDWithEmprestimos(ctx context.Context, id uuid.UUID) (*model.Bem, error) {
	var b model.Bem
	err := r.db.WithContext(ctx).
		Preload("Emprestimos", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_retirada DESC")
		}).
		Preload("Emprestimos.Pastoral").
		Preload("Emprestimos.Retirante").
		Preload("Emprestimos.Recebedor").
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bemRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Bem, error) {
	var b model.Bem
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&b).Error
	return &b, err
}

func (r *bemRepo) List(ctx context.Context, filter dto.BemFilter) ([]model.Bem, error) {
	q := r.db.WithContext(ctx).Model(&model.Bem{}).
		Preload("Emprestimos", "data_entrega IS NULL")

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("nome_bem ILIKE ? OR codigo ILIKE ?", like, like)
	}

	var bens []model.Bem
	err := q.Order("nome_bem ASC").Find(&bens).Error
	return bens, err
}

func (r *bemRepo) Update(ctx context.Context, b *model.Bem) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Closed loan history goes with the bem; history retention binds
	// usuarios, not bens.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_bem = ?", id).Delete(&model.RetiradaEmprestimo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Bem{}, "id = ?", id).Error
	})
}

func (r *bemRepo) CountEmprestimosAbertos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Where("id_bem = ? AND data_entrega IS NULL", id).
		Count(&n).Error
	return n, err
}

func (r *bemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Bem{}).Count(&n).Error
	return n, err
}

func (r *bemRepo) CountPorEstado(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Estado string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Bem{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Estado] = rw.Total
	}
	return out, nil
}

func (r *bemRepo) SumValor(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Bem{}).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *bemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Bem, error) {
	var b model.Bem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bemRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Bem{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *bemRepo) DB() *gorm.DB { return r.db }
