package service

import (
	"context"
	"fmt"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"

	"github.com/google/uuid"
)

type PastoralService interface {
	Criar(ctx context.Context, req dto.CriarPastoralRequest) (*dto.PastoralResponse, error)
	Listar(ctx context.Context) ([]dto.PastoralResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PastoralResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPastoralRequest) (*dto.PastoralResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	AdicionarMembro(ctx context.Context, pastoralID uuid.UUID, req dto.AdicionarMembroRequest) (*dto.PastoralResponse, error)
}

type pastoralService struct {
	repo        repository.PastoralRepository
	usuarioRepo repository.UsuarioRepository
}

func NewPastoralService(repo repository.PastoralRepository, usuarioRepo repository.UsuarioRepository) PastoralService {
	return &pastoralService{repo: repo, usuarioRepo: usuarioRepo}
}

func (s *pastoralService) Criar(ctx context.Context, req dto.CriarPastoralRequest) (*dto.PastoralResponse, error) {
	if _, err := s.repo.FindByNome(ctx, req.NomePastoral); err == nil {
		return nil, apierror.Conflict("Já existe uma pastoral com este nome")
	} else if !isNotFound(err) {
		return nil, apierror.Internal("Erro ao criar pastoral")
	}

	p := &model.Pastoral{NomePastoral: req.NomePastoral}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal("Erro ao criar pastoral")
	}
	return pastoralToResponse(p), nil
}

func (s *pastoralService) Listar(ctx context.Context) ([]dto.PastoralResponse, error) {
	pastorais, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar pastorais")
	}
	resp := make([]dto.PastoralResponse, len(pastorais))
	for i := range pastorais {
		resp[i] = *pastoralToResponse(&pastorais[i])
	}
	return resp, nil
}

func (s *pastoralService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.PastoralResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Pastoral não encontrada")
		}
		return nil, apierror.Internal("Erro ao buscar pastoral")
	}
	return pastoralToResponse(p), nil
}

func (s *pastoralService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPastoralRequest) (*dto.PastoralResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Pastoral não encontrada")
		}
		return nil, apierror.Internal("Erro ao atualizar pastoral")
	}

	if req.NomePastoral != nil && *req.NomePastoral != p.NomePastoral {
		if existente, err := s.repo.FindByNome(ctx, *req.NomePastoral); err == nil && existente.ID != p.ID {
			return nil, apierror.Conflict("Já existe uma pastoral com este nome")
		} else if err != nil && !isNotFound(err) {
			return nil, apierror.Internal("Erro ao atualizar pastoral")
		}
		p.NomePastoral = *req.NomePastoral
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal("Erro ao atualizar pastoral")
	}
	return pastoralToResponse(p), nil
}

func (s *pastoralService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Pastoral não encontrada")
		}
		return apierror.Internal("Erro ao deletar pastoral")
	}

	emprestimos, err := s.repo.CountEmprestimos(ctx, id)
	if err != nil {
		return apierror.Internal("Erro ao deletar pastoral")
	}
	if emprestimos > 0 {
		return apierror.Conflict("Não é possível deletar uma pastoral com empréstimos registrados")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("Erro ao deletar pastoral")
	}
	return nil
}

// AdicionarMembro assigns an existing usuario to the pastoral with a role,
// enforcing the role quotas at write time.
func (s *pastoralService) AdicionarMembro(ctx context.Context, pastoralID uuid.UUID, req dto.AdicionarMembroRequest) (*dto.PastoralResponse, error) {
	if _, err := s.repo.FindByID(ctx, pastoralID); err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Pastoral não encontrada")
		}
		return nil, apierror.Internal("Erro ao adicionar membro")
	}

	usuarioID, err := uuid.Parse(req.IDUsuario)
	if err != nil {
		return nil, apierror.Validation("id_usuario inválido")
	}
	u, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário não encontrado")
		}
		return nil, apierror.Internal("Erro ao adicionar membro")
	}

	// Re-adding with unchanged membership is a no-op
	if u.IDPastoral == nil || *u.IDPastoral != pastoralID ||
		u.FuncaoPastoral == nil || *u.FuncaoPastoral != req.FuncaoPastoral {

		if apiErr := checarQuotaFuncao(ctx, s.usuarioRepo, pastoralID, req.FuncaoPastoral); apiErr != nil {
			return nil, apiErr
		}

		pid := pastoralID
		funcao := req.FuncaoPastoral
		u.IDPastoral = &pid
		u.FuncaoPastoral = &funcao
		if err := s.usuarioRepo.Update(ctx, u); err != nil {
			return nil, apierror.Internal("Erro ao adicionar membro")
		}
	}

	p, err := s.repo.FindByID(ctx, pastoralID)
	if err != nil {
		return nil, apierror.Internal("Erro ao adicionar membro")
	}
	return pastoralToResponse(p), nil
}

// checarQuotaFuncao enforces the membership quotas: at most 4 coordenadores
// and 2 vice-coordenadores per pastoral, counted at write time. Shared by
// the pastoral and usuario services so both write paths use the same rule.
func checarQuotaFuncao(ctx context.Context, usuarios repository.UsuarioRepository, pastoralID uuid.UUID, funcao string) *apierror.Error {
	var limite int64
	switch funcao {
	case model.FuncaoCoordenador:
		limite = model.MaxCoordenadores
	case model.FuncaoViceCoordenador:
		limite = model.MaxViceCoordenadores
	default:
		return apierror.ValidationFields(map[string]string{
			"funcao_pastoral": "Função pastoral inválida",
		})
	}

	atuais, err := usuarios.CountPorFuncao(ctx, pastoralID, funcao)
	if err != nil {
		return apierror.Internal("Erro ao validar função pastoral")
	}
	if atuais >= limite {
		return apierror.ValidationFields(map[string]string{
			"funcao_pastoral": fmt.Sprintf("A pastoral já possui o número máximo (%d) de membros com a função %s", limite, funcao),
		})
	}
	return nil
}

func pastoralToResponse(p *model.Pastoral) *dto.PastoralResponse {
	resp := &dto.PastoralResponse{
		ID:           p.ID.String(),
		NomePastoral: p.NomePastoral,
	}
	for i := range p.Membros {
		m := &p.Membros[i]
		funcao := ""
		if m.FuncaoPastoral != nil {
			funcao = *m.FuncaoPastoral
		}
		resp.Membros = append(resp.Membros, dto.MembroResponse{
			ID:             m.ID.String(),
			Nome:           m.Nome,
			Email:          m.Email,
			FuncaoPastoral: funcao,
		})
	}
	return resp
}
