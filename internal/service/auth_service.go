package service

import (
	"context"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore is the slice of the redis session store the service needs;
// *session.Store satisfies it, tests substitute an in-memory fake.
type SessionStore interface {
	Create(ctx context.Context, token string, data session.Data) error
	Delete(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	TTLSeconds() int
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error)

	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ObterUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	ExcluirUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo     repository.UsuarioRepository
	sessions SessionStore
}

func NewAuthService(repo repository.UsuarioRepository, sessions SessionStore) AuthService {
	return &authService{repo: repo, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierror.Auth("Credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, apierror.Auth("Credenciais inválidas")
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, token, session.Data{
		UserID:   user.ID.String(),
		Nome:     user.Nome,
		Email:    user.Email,
		TipoUser: user.TipoUser,
	}); err != nil {
		return nil, apierror.Internal("Erro ao iniciar sessão")
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: s.sessions.TTLSeconds(),
		User:      *usuarioToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apierror.Internal("Erro ao encerrar sessão")
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error) {
	return s.ObterUsuario(ctx, userID)
}

func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict("Já existe um usuário com este email")
	} else if !isNotFound(err) {
		return nil, apierror.Internal("Erro ao criar usuário")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), 12)
	if err != nil {
		return nil, apierror.Internal("Erro ao criar usuário")
	}

	tipo := req.TipoUser
	if tipo == "" {
		tipo = model.TipoComum
	}
	user := &model.Usuario{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		TipoUser:  tipo,
	}

	if req.IDPastoral != nil && req.FuncaoPastoral != nil {
		pid, err := uuid.Parse(*req.IDPastoral)
		if err != nil {
			return nil, apierror.Validation("id_pastoral inválido")
		}
		if apiErr := checarQuotaFuncao(ctx, s.repo, pid, *req.FuncaoPastoral); apiErr != nil {
			return nil, apiErr
		}
		user.IDPastoral = &pid
		user.FuncaoPastoral = req.FuncaoPastoral
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apierror.Internal("Erro ao criar usuário")
	}
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar usuários")
	}
	resp := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		resp[i] = *usuarioToResponse(&usuarios[i])
	}
	return resp, nil
}

func (s *authService) ObterUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, apierror.Internal("Erro ao buscar usuário")
	}
	return usuarioToResponse(user), nil
}

func (s *authService) AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, apierror.Internal("Erro ao atualizar usuário")
	}

	if req.Email != nil && *req.Email != user.Email {
		if existente, err := s.repo.FindByEmail(ctx, *req.Email); err == nil && existente.ID != user.ID {
			return nil, apierror.Conflict("Já existe um usuário com este email")
		} else if err != nil && !isNotFound(err) {
			return nil, apierror.Internal("Erro ao atualizar usuário")
		}
		user.Email = *req.Email
	}
	if req.Nome != nil {
		user.Nome = *req.Nome
	}
	if req.TipoUser != nil {
		user.TipoUser = *req.TipoUser
	}
	if req.Senha != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), 12)
		if err != nil {
			return nil, apierror.Internal("Erro ao atualizar usuário")
		}
		user.SenhaHash = string(hash)
	}

	if req.IDPastoral != nil && req.FuncaoPastoral != nil {
		pid, err := uuid.Parse(*req.IDPastoral)
		if err != nil {
			return nil, apierror.Validation("id_pastoral inválido")
		}
		mudou := user.IDPastoral == nil || *user.IDPastoral != pid ||
			user.FuncaoPastoral == nil || *user.FuncaoPastoral != *req.FuncaoPastoral
		if mudou {
			if apiErr := checarQuotaFuncao(ctx, s.repo, pid, *req.FuncaoPastoral); apiErr != nil {
				return nil, apiErr
			}
			user.IDPastoral = &pid
			user.FuncaoPastoral = req.FuncaoPastoral
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apierror.Internal("Erro ao atualizar usuário")
	}
	user.Pastoral = nil // avoid returning a stale preload after membership change
	return usuarioToResponse(user), nil
}

// ExcluirUsuario removes a user. Users referenced by any loan — open or
// closed — as retirante cannot be removed (historical retention). The
// self-deletion guard lives in the policy package, consulted by the handler.
func (s *authService) ExcluirUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Usuário não encontrado")
		}
		return apierror.Internal("Erro ao excluir usuário")
	}

	emprestimos, err := s.repo.CountEmprestimosComoRetirante(ctx, id)
	if err != nil {
		return apierror.Internal("Erro ao excluir usuário")
	}
	if emprestimos > 0 {
		return apierror.Conflict("Não é possível excluir um usuário com empréstimos registrados")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("Erro ao excluir usuário")
	}
	// Live sessions of the removed account are revoked immediately
	if err := s.sessions.RevokeAllForUser(ctx, user.ID.String()); err != nil {
		return apierror.Internal("Erro ao excluir usuário")
	}
	return nil
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Nome:     u.Nome,
		Email:    u.Email,
		TipoUser: u.TipoUser,
	}
	if u.IDPastoral != nil {
		id := u.IDPastoral.String()
		resp.IDPastoral = &id
	}
	resp.FuncaoPastoral = u.FuncaoPastoral
	if u.Pastoral != nil {
		resp.NomePastoral = &u.Pastoral.NomePastoral
	}
	return resp
}
