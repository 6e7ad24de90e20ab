package model

import (
	"time"

	"github.com/google/uuid"
)

// Pastoral is a ministry group. Membership is role-based: usuarios carry
// id_pastoral + funcao_pastoral (the legacy free-text coordinator columns
// from the first schema generation are not used).
type Pastoral struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomePastoral string    `gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Membros     []Usuario            `gorm:"foreignKey:IDPastoral"`
	Emprestimos []RetiradaEmprestimo `gorm:"foreignKey:IDPastoral"`
}

func (Pastoral) TableName() string { return "pastorais" }
