package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarRetiradaRequest struct {
	IDBem                   string     `json:"id_bem"          validate:"required,uuid"`
	IDRetirante             string     `json:"id_retirante"    validate:"required,uuid"`
	IDPastoral              string     `json:"id_pastoral"     validate:"required,uuid"`
	EstadoRetirada          string     `json:"estado_retirada" validate:"required,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	DescricaoMotivoRetirada *string    `json:"descricao_motivo_retirada"`
	NomeRetirante           *string    `json:"nome_retirante"`
	EmailRetirante          *string    `json:"email_retirante" validate:"omitempty,email"`
	FinalidadeUso           *string    `json:"finalidade_uso"  validate:"omitempty,oneof=MATRIZ CAPELA PESSOAL"`
	DataEstimadaDevolucao   *time.Time `json:"data_estimada_devolucao"`
}

type RegistrarDevolucaoRequest struct {
	IDRecebedor               string  `json:"id_recebedor"     validate:"required,uuid"`
	EstadoDevolucao           string  `json:"estado_devolucao" validate:"required,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	JustificativaAvaria       *string `json:"justificativa_avaria"`
	NomeResponsavelDevolucao  *string `json:"nome_responsavel_devolucao"`
	EmailResponsavelDevolucao *string `json:"email_responsavel_devolucao" validate:"omitempty,email"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// EmprestimoFilter drives GET /v1/emprestimos. Ativo: "true" = open loans
// only, "false" = returned only, "" = all.
type EmprestimoFilter struct {
	Ativo      string `form:"ativo"       validate:"omitempty,oneof=true false"`
	IDPastoral string `form:"id_pastoral" validate:"omitempty,uuid"`
	IDBem      string `form:"id_bem"      validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ParticipanteResponse struct {
	ID    string `json:"id_user"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type EmprestimoResponse struct {
	ID                        string                `json:"id"`
	Bem                       *BemResponse          `json:"bem,omitempty"`
	Pastoral                  *PastoralResponse     `json:"pastoral,omitempty"`
	Retirante                 *ParticipanteResponse `json:"retirante,omitempty"`
	Recebedor                 *ParticipanteResponse `json:"recebedor,omitempty"`
	DataRetirada              time.Time             `json:"data_retirada"`
	EstadoRetirada            string                `json:"estado_retirada"`
	DescricaoMotivoRetirada   *string               `json:"descricao_motivo_retirada"`
	NomeRetirante             *string               `json:"nome_retirante"`
	EmailRetirante            *string               `json:"email_retirante"`
	FinalidadeUso             *string               `json:"finalidade_uso"`
	DataEstimadaDevolucao     *time.Time            `json:"data_estimada_devolucao"`
	DataEntrega               *time.Time            `json:"data_entrega"`
	EstadoDevolucao           *string               `json:"estado_devolucao"`
	JustificativaAvaria       *string               `json:"justificativa_avaria"`
	NomeResponsavelDevolucao  *string               `json:"nome_responsavel_devolucao"`
	EmailResponsavelDevolucao *string               `json:"email_responsavel_devolucao"`
}
