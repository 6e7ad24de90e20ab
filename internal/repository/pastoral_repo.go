package repository

import (
	"context"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PastoralRepository defines the data access contract for pastorais.
type PastoralRepository interface {
	Create(ctx context.Context, p *model.Pastoral) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pastoral, error)
	FindByNome(ctx context.Context, nome string) (*model.Pastoral, error)
	List(ctx context.Context) ([]model.Pastoral, error)
	// ListComEmprestimos preloads membros and full loan history — the
	// pastorais report needs both.
	ListComEmprestimos(ctx context.Context) ([]model.Pastoral, error)
	Update(ctx context.Context, p *model.Pastoral) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEmprestimos(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)

	DB() *gorm.DB
}

type pastoralRepo struct{ db *gorm.DB }

func NewPastoralRepository(db *gorm.DB) PastoralRepository { return &pastoralRepo{db: db} }

func (r *pastoralRepo) Create(ctx context.Context, p *model.Pastoral) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pastoralRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pastoral, error) {
	var p model.Pastoral
	err := r.db.WithContext(ctx).Preload("Membros").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pastoralRepo) FindByNome(ctx context.Context, nome string) (*model.Pastoral, error) {
	var p model.Pastoral
	err := r.db.WithContext(ctx).Where("nome_pastoral = ?", nome).First(&p).Error
	return &p, err
}

func (r *pastoralRepo) List(ctx context.Context) ([]model.Pastoral, error) {
	var pastorais []model.Pastoral
	err := r.db.WithContext(ctx).Preload("Membros").Order("nome_pastoral ASC").Find(&pastorais).Error
	return pastorais, err
}

func (r *pastoralRepo) ListComEmprestimos(ctx context.Context) ([]model.Pastoral, error) {
	var pastorais []model.Pastoral
	err := r.db.WithContext(ctx).
		Preload("Membros").
		Preload("Emprestimos").
		Order("nome_pastoral ASC").
		Find(&pastorais).Error
	return pastorais, err
}

func (r *pastoralRepo) Update(ctx context.Context, p *model.Pastoral) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pastoralRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pastoral{}, "id = ?", id).Error
}

func (r *pastoralRepo) CountEmprestimos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RetiradaEmprestimo{}).
		Where("id_pastoral = ?", id).
		Count(&n).Error
	return n, err
}

func (r *pastoralRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Pastoral{}).Count(&n).Error
	return n, err
}

func (r *pastoralRepo) DB() *gorm.DB { return r.db }
