package service

import (
	"context"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"

	"github.com/google/uuid"
)

type BemService interface {
	Criar(ctx context.Context, req dto.CriarBemRequest) (*dto.BemResponse, error)
	Listar(ctx context.Context, filter dto.BemFilter) ([]dto.BemResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.BemDetalheResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarBemRequest) (*dto.BemResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type bemService struct {
	repo repository.BemRepository
}

func NewBemService(repo repository.BemRepository) BemService {
	return &bemService{repo: repo}
}

func (s *bemService) Criar(ctx context.Context, req dto.CriarBemRequest) (*dto.BemResponse, error) {
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, apierror.Conflict("Já existe um bem com este código")
	} else if !isNotFound(err) {
		return nil, apierror.Internal("Erro ao criar bem")
	}

	estado := req.Estado
	if estado == "" {
		estado = model.EstadoUsado
	}
	b := &model.Bem{
		NomeBem: req.NomeBem,
		Codigo:  req.Codigo,
		Estado:  estado,
		Valor:   req.Valor,
		Local:   req.Local,
		Marca:   req.Marca,
		Modelo:  req.Modelo,
		Foto:    req.Foto,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, apierror.Internal("Erro ao criar bem")
	}
	// A freshly created bem has no loans
	return bemToResponse(b, true), nil
}

func (s *bemService) Listar(ctx context.Context, filter dto.BemFilter) ([]dto.BemResponse, error) {
	bens, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar bens")
	}

	resp := make([]dto.BemResponse, 0, len(bens))
	for i := range bens {
		disponivel := len(bens[i].Emprestimos) == 0
		switch filter.Disponivel {
		case "true":
			if !disponivel {
				continue
			}
		case "false":
			if disponivel {
				continue
			}
		}
		resp = append(resp, *bemToResponse(&bens[i], disponivel))
	}
	return resp, nil
}

func (s *bemService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.BemDetalheResponse, error) {
	b, err := s.repo.FindByIDWithEmprestimos(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Bem não encontrado")
		}
		return nil, apierror.Internal("Erro ao buscar bem")
	}

	disponivel := true
	historico := make([]dto.EmprestimoResponse, len(b.Emprestimos))
	for i := range b.Emprestimos {
		if b.Emprestimos[i].Aberto() {
			disponivel = false
		}
		historico[i] = *emprestimoToResponse(&b.Emprestimos[i])
	}
	return &dto.BemDetalheResponse{
		BemResponse: *bemToResponse(b, disponivel),
		Emprestimos: historico,
	}, nil
}

func (s *bemService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarBemRequest) (*dto.BemResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Bem não encontrado")
		}
		return nil, apierror.Internal("Erro ao atualizar bem")
	}

	// Changing the código must not collide with another bem
	if req.Codigo != nil && *req.Codigo != b.Codigo {
		if existente, err := s.repo.FindByCodigo(ctx, *req.Codigo); err == nil && existente.ID != b.ID {
			return nil, apierror.Conflict("Já existe um bem com este código")
		} else if err != nil && !isNotFound(err) {
			return nil, apierror.Internal("Erro ao atualizar bem")
		}
		b.Codigo = *req.Codigo
	}
	if req.NomeBem != nil {
		b.NomeBem = *req.NomeBem
	}
	if req.Estado != nil {
		b.Estado = *req.Estado
	}
	if req.Valor != nil {
		b.Valor = req.Valor
	}
	if req.Local != nil {
		b.Local = req.Local
	}
	if req.Marca != nil {
		b.Marca = req.Marca
	}
	if req.Modelo != nil {
		b.Modelo = req.Modelo
	}
	if req.Foto != nil {
		b.Foto = req.Foto
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, apierror.Internal("Erro ao atualizar bem")
	}
	return bemToResponse(b, len(b.Emprestimos) == 0), nil
}

func (s *bemService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Bem não encontrado")
		}
		return apierror.Internal("Erro ao deletar bem")
	}

	abertos, err := s.repo.CountEmprestimosAbertos(ctx, id)
	if err != nil {
		return apierror.Internal("Erro ao deletar bem")
	}
	if abertos > 0 {
		return apierror.Conflict("Não é possível deletar um bem com empréstimos ativos")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("Erro ao deletar bem")
	}
	return nil
}

func bemToResponse(b *model.Bem, disponivel bool) *dto.BemResponse {
	return &dto.BemResponse{
		ID:         b.ID.String(),
		NomeBem:    b.NomeBem,
		Codigo:     b.Codigo,
		Estado:     b.Estado,
		Valor:      b.Valor,
		Local:      b.Local,
		Marca:      b.Marca,
		Modelo:     b.Modelo,
		Foto:       b.Foto,
		Disponivel: disponivel,
	}
}
