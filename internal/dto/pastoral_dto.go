package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarPastoralRequest struct {
	NomePastoral string `json:"nome_pastoral" validate:"required,min=3,max=120"`
}

type AtualizarPastoralRequest struct {
	NomePastoral *string `json:"nome_pastoral" validate:"omitempty,min=3,max=120"`
}

// AdicionarMembroRequest assigns an existing usuario to the pastoral with a
// role, subject to the quota invariant (≤4 COORDENADOR, ≤2 VICE_COORDENADOR).
type AdicionarMembroRequest struct {
	IDUsuario      string `json:"id_usuario"      validate:"required,uuid"`
	FuncaoPastoral string `json:"funcao_pastoral" validate:"required,oneof=COORDENADOR VICE_COORDENADOR"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MembroResponse struct {
	ID             string `json:"id_user"`
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	FuncaoPastoral string `json:"funcao_pastoral"`
}

type PastoralResponse struct {
	ID           string           `json:"id_pastoral"`
	NomePastoral string           `json:"nome_pastoral"`
	Membros      []MembroResponse `json:"membros,omitempty"`
}
