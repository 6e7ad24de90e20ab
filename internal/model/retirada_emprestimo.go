package model

import (
	"time"

	"github.com/google/uuid"
)

// FinalidadeUso values
const (
	FinalidadeMatriz  = "MATRIZ"
	FinalidadeCapela  = "CAPELA"
	FinalidadePessoal = "PESSOAL"
)

// RetiradaEmprestimo is one checkout-to-return cycle for one bem.
// A row with DataEntrega == nil is an open loan; the partial unique index
// created in infra guarantees at most one open row per bem. Once set,
// DataEntrega is never cleared and the row is never deleted while the
// retirante exists (historical retention).
type RetiradaEmprestimo struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	IDBem        uuid.UUID  `gorm:"type:uuid;index;not null"`
	IDRetirante  uuid.UUID  `gorm:"type:uuid;index;not null"`
	IDEntregador *uuid.UUID `gorm:"type:uuid"`
	IDPastoral   uuid.UUID  `gorm:"type:uuid;index;not null"`

	DataRetirada            time.Time `gorm:"index;not null"`
	EstadoRetirada          string    `gorm:"type:varchar(20);not null"`
	DescricaoMotivoRetirada *string
	NomeRetirante           *string
	EmailRetirante          *string
	FinalidadeUso           *string `gorm:"type:varchar(20)"`
	DataEstimadaDevolucao   *time.Time

	// Return side — set atomically on devolução, all at once
	DataEntrega               *time.Time `gorm:"index"`
	EstadoDevolucao           *string    `gorm:"type:varchar(20)"`
	JustificativaAvaria       *string
	IDRecebedor               *uuid.UUID `gorm:"type:uuid"`
	NomeResponsavelDevolucao  *string
	EmailResponsavelDevolucao *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Bem       *Bem      `gorm:"foreignKey:IDBem"`
	Pastoral  *Pastoral `gorm:"foreignKey:IDPastoral"`
	Retirante *Usuario  `gorm:"foreignKey:IDRetirante"`
	Recebedor *Usuario  `gorm:"foreignKey:IDRecebedor"`
}

func (RetiradaEmprestimo) TableName() string { return "retiradas_emprestimos" }

// Aberto reports whether the loan is still open (bem not yet returned).
func (r *RetiradaEmprestimo) Aberto() bool { return r.DataEntrega == nil }
