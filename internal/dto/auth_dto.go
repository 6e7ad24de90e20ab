package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
}

type CriarUsuarioRequest struct {
	Nome           string  `json:"nome"            validate:"required,min=3,max=100"`
	Email          string  `json:"email"           validate:"required,email"`
	Senha          string  `json:"senha"           validate:"required,min=6"`
	TipoUser       string  `json:"tipo_user"       validate:"omitempty,oneof=ADM COMUM"`
	IDPastoral     *string `json:"id_pastoral"     validate:"omitempty,uuid"`
	FuncaoPastoral *string `json:"funcao_pastoral" validate:"omitempty,oneof=COORDENADOR VICE_COORDENADOR"`
}

type AtualizarUsuarioRequest struct {
	Nome           *string `json:"nome"            validate:"omitempty,min=3,max=100"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	Senha          *string `json:"senha"           validate:"omitempty,min=6"`
	TipoUser       *string `json:"tipo_user"       validate:"omitempty,oneof=ADM COMUM"`
	IDPastoral     *string `json:"id_pastoral"     validate:"omitempty,uuid"`
	FuncaoPastoral *string `json:"funcao_pastoral" validate:"omitempty,oneof=COORDENADOR VICE_COORDENADOR"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID             string  `json:"id_user"`
	Nome           string  `json:"nome"`
	Email          string  `json:"email"`
	TipoUser       string  `json:"tipo_user"`
	IDPastoral     *string `json:"id_pastoral,omitempty"`
	FuncaoPastoral *string `json:"funcao_pastoral,omitempty"`
	NomePastoral   *string `json:"nome_pastoral,omitempty"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn int             `json:"expires_in"` // seconds
	User      UsuarioResponse `json:"user"`
}
