package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarBemRequest struct {
	NomeBem string           `json:"nome_bem" validate:"required,min=3,max=120"`
	Codigo  string           `json:"codigo"   validate:"required,min=1,max=60"`
	Estado  string           `json:"estado"   validate:"omitempty,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	Valor   *decimal.Decimal `json:"valor"`
	Local   *string          `json:"local"    validate:"omitempty,oneof=MATRIZ CAPELA"`
	Marca   *string          `json:"marca"`
	Modelo  *string          `json:"modelo"`
	Foto    *string          `json:"foto"     validate:"omitempty,url"`
}

type AtualizarBemRequest struct {
	NomeBem *string          `json:"nome_bem" validate:"omitempty,min=3,max=120"`
	Codigo  *string          `json:"codigo"   validate:"omitempty,min=1,max=60"`
	Estado  *string          `json:"estado"   validate:"omitempty,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	Valor   *decimal.Decimal `json:"valor"`
	Local   *string          `json:"local"    validate:"omitempty,oneof=MATRIZ CAPELA"`
	Marca   *string          `json:"marca"`
	Modelo  *string          `json:"modelo"`
	Foto    *string          `json:"foto"     validate:"omitempty,url"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// BemFilter drives GET /v1/bens. Disponivel: "true" = only available,
// "false" = only on loan, "" = no availability filter.
type BemFilter struct {
	Estado     string `form:"estado"     validate:"omitempty,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	Search     string `form:"search"`
	Disponivel string `form:"disponivel" validate:"omitempty,oneof=true false"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BemResponse struct {
	ID         string           `json:"id_bem"`
	NomeBem    string           `json:"nome_bem"`
	Codigo     string           `json:"codigo"`
	Estado     string           `json:"estado"`
	Valor      *decimal.Decimal `json:"valor"`
	Local      *string          `json:"local"`
	Marca      *string          `json:"marca"`
	Modelo     *string          `json:"modelo"`
	Foto       *string          `json:"foto"`
	Disponivel bool             `json:"disponivel"`
}

// BemDetalheResponse adds the full loan history of the bem.
type BemDetalheResponse struct {
	BemResponse
	Emprestimos []EmprestimoResponse `json:"emprestimos"`
}
