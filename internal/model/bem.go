package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoBem values. The same set is used for estado_retirada and
// estado_devolucao on RetiradaEmprestimo.
const (
	EstadoNovo       = "NOVO"
	EstadoUsado      = "USADO"
	EstadoQuebrado   = "QUEBRADO"
	EstadoManutencao = "EM_MANUTENCAO"
)

// Bem is a physical asset owned by the parish, tracked by unique code.
// Estado always reflects the most recent known condition: a devolução whose
// estado_devolucao differs from the stored value overwrites it.
type Bem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeBem string    `gorm:"index;not null"`
	Codigo  string    `gorm:"uniqueIndex;not null"`
	Estado  string    `gorm:"type:varchar(20);not null;default:'USADO'"`
	// Valor is the acquisition value; nil when unknown
	Valor *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Local: "MATRIZ" | "CAPELA"
	Local     *string `gorm:"type:varchar(20)"`
	Marca     *string
	Modelo    *string
	Foto      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Emprestimos []RetiradaEmprestimo `gorm:"foreignKey:IDBem"`
}

func (Bem) TableName() string { return "bens" }
