package repository

import (
	"context"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TopPastoralRow is one row of the dashboard's "pastorais with most active
// loans" aggregation.
type TopPastoralRow struct {
	ID     uuid.UUID
	Nome   string
	Ativos int64
}

// EmprestimoRepository defines the data access contract for retiradas e
// devoluções. The Tx methods run inside the service-opened transaction that
// protects the loan state machine.
type EmprestimoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.RetiradaEmprestimo, error)
	List(ctx context.Context, filter dto.EmprestimoFilter) ([]model.RetiradaEmprestimo, error)
	// ListPeriodo backs the emprestimos report: optional pastoral and
	// data_retirada range filters, newest first.
	ListPeriodo(ctx context.Context, pastoralID *uuid.UUID, inicio, fim *time.Time) ([]model.RetiradaEmprestimo, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, e *model.RetiradaEmprestimo) error
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RetiradaEmprestimo, error)
	CountAbertosPorBemTx(tx *gorm.DB, bemID uuid.UUID) (int64, error)
	UpdateTx(tx *gorm.DB, e *model.RetiradaEmprestimo) error

	// Dashboard aggregations
	Count(ctx context.Context) (int64, error)
	CountAbertos(ctx context.Context) (int64, error)
	CountRetiradasDesde(ctx context.Context, desde time.Time) (int64, error)
	ListDatasRetiradaDesde(ctx context.Context, desde time.Time) ([]time.Time, error)
	TopPastoraisAtivas(ctx context.Context, limite int) ([]TopPastoralRow, error)

	DB() *gorm.DB
}

type emprestimoRepo struct{ db *gorm.DB }

func NewEmprestimoRepository(db *gorm.DB) EmprestimoRepository { return &emprestimoRepo{db: db} }

func (r *emprestimoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RetiradaEmprestimo, error) {
	var e model.RetiradaEmprestimo
	err := r.db.WithContext(ctx).
		Preload("Bem").
		Preload("Pastoral").
		Preload("Retirante").
		Preload("Recebedor").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *emprestimoRepo) List(ctx context.Context, filter dto.EmprestimoFilter) ([]model.RetiradaEmprestimo, error) {
	q := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Preload("Bem").
		Preload("Pastoral").
		Preload("Retirante").
		Preload("Recebedor").
		Order("data_retirada DESC")

	switch filter.Ativo {
	case "true":
		q = q.Where("data_entrega IS NULL")
	case "false":
		q = q.Where("data_entrega IS NOT NULL")
	}
	if filter.IDPastoral != "" {
		q = q.Where("id_pastoral = ?", filter.IDPastoral)
	}
	if filter.IDBem != "" {
		q = q.Where("id_bem = ?", filter.IDBem)
	}

	var emprestimos []model.RetiradaEmprestimo
	err := q.Find(&emprestimos).Error
	return emprestimos, err
}

func (r *emprestimoRepo) ListPeriodo(ctx context.Context, pastoralID *uuid.UUID, inicio, fim *time.Time) ([]model.RetiradaEmprestimo, error) {
	q := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Preload("Bem").
		Preload("Pastoral").
		Preload("Retirante").
		Preload("Recebedor").
		Order("data_retirada DESC")

	if pastoralID != nil {
		q = q.Where("id_pastoral = ?", *pastoralID)
	}
	if inicio != nil {
		q = q.Where("data_retirada >= ?", *inicio)
	}
	if fim != nil {
		q = q.Where("data_retirada <= ?", *fim)
	}

	var emprestimos []model.RetiradaEmprestimo
	err := q.Find(&emprestimos).Error
	return emprestimos, err
}

func (r *emprestimoRepo) CreateTx(tx *gorm.DB, e *model.RetiradaEmprestimo) error {
	return tx.Create(e).Error
}

func (r *emprestimoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RetiradaEmprestimo, error) {
	var e model.RetiradaEmprestimo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *emprestimoRepo) CountAbertosPorBemTx(tx *gorm.DB, bemID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.RetiradaEmprestimo{}).
		Where("id_bem = ? AND data_entrega IS NULL", bemID).
		Count(&n).Error
	return n, err
}

func (r *emprestimoRepo) UpdateTx(tx *gorm.DB, e *model.RetiradaEmprestimo) error {
	return tx.Save(e).Error
}

func (r *emprestimoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).Count(&n).Error
	return n, err
}

func (r *emprestimoRepo) CountAbertos(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Where("data_entrega IS NULL").
		Count(&n).Error
	return n, err
}

func (r *emprestimoRepo) CountRetiradasDesde(ctx context.Context, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Where("data_retirada >= ?", desde).
		Count(&n).Error
	return n, err
}

func (r *emprestimoRepo) ListDatasRetiradaDesde(ctx context.Context, desde time.Time) ([]time.Time, error) {
	var datas []time.Time
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Where("data_retirada >= ?", desde).
		Pluck("data_retirada", &datas).Error
	return datas, err
}

func (r *emprestimoRepo) TopPastoraisAtivas(ctx context.Context, limite int) ([]TopPastoralRow, error) {
	var rows []TopPastoralRow
	err := r.db.WithContext(ctx).
		Table("pastorais p").
		Select(`p.id AS id, p.nome_pastoral AS nome,
		        COUNT(r.id) FILTER (WHERE r.data_entrega IS NULL) AS ativos`).
		Joins("LEFT JOIN retiradas_emprestimos r ON r.id_pastoral = p.id").
		Group("p.id, p.nome_pastoral").
		Order("ativos DESC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}

func (r *emprestimoRepo) DB() *gorm.DB { return r.db }
