package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoUser values
const (
	TipoADM   = "ADM"
	TipoComum = "COMUM"
)

// FuncaoPastoral values, quota-limited per pastoral:
// at most 4 coordenadores and 2 vice-coordenadores.
const (
	FuncaoCoordenador     = "COORDENADOR"
	FuncaoViceCoordenador = "VICE_COORDENADOR"
	MaxCoordenadores      = 4
	MaxViceCoordenadores  = 2
)

// Usuario stores system users with role-based access.
// TipoUser: "ADM" | "COMUM"
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	SenhaHash string    `gorm:"not null"`
	TipoUser  string    `gorm:"type:varchar(10);not null;default:'COMUM'"`
	// Membership in exactly one pastoral; nil = no pastoral
	IDPastoral     *uuid.UUID `gorm:"type:uuid;index"`
	FuncaoPastoral *string    `gorm:"type:varchar(20)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Pastoral *Pastoral `gorm:"foreignKey:IDPastoral"`
}

func (Usuario) TableName() string { return "usuarios" }
