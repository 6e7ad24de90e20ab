package service

import (
	"context"
	"strings"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmprestimoService interface {
	RegistrarRetirada(ctx context.Context, entregadorID uuid.UUID, req dto.RegistrarRetiradaRequest) (*dto.EmprestimoResponse, error)
	RegistrarDevolucao(ctx context.Context, id uuid.UUID, req dto.RegistrarDevolucaoRequest) (*dto.EmprestimoResponse, error)
	Listar(ctx context.Context, filter dto.EmprestimoFilter) ([]dto.EmprestimoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EmprestimoResponse, error)
}

type emprestimoService struct {
	repo         repository.EmprestimoRepository
	bemRepo      repository.BemRepository
	usuarioRepo  repository.UsuarioRepository
	pastoralRepo repository.PastoralRepository
}

func NewEmprestimoService(
	repo repository.EmprestimoRepository,
	bemRepo repository.BemRepository,
	usuarioRepo repository.UsuarioRepository,
	pastoralRepo repository.PastoralRepository,
) EmprestimoService {
	return &emprestimoService{
		repo:         repo,
		bemRepo:      bemRepo,
		usuarioRepo:  usuarioRepo,
		pastoralRepo: pastoralRepo,
	}
}

// RegistrarRetirada opens a loan for a bem. The transaction locks the bem
// row and re-checks the open-loan count so two concurrent retiradas of the
// same bem cannot both succeed; the partial unique index on
// (id_bem) WHERE data_entrega IS NULL backs the same invariant in the
// database. The bem's own estado is not touched here — the condition at
// checkout is recorded only on the loan.
func (s *emprestimoService) RegistrarRetirada(ctx context.Context, entregadorID uuid.UUID, req dto.RegistrarRetiradaRequest) (*dto.EmprestimoResponse, error) {
	bemID, err := uuid.Parse(req.IDBem)
	if err != nil {
		return nil, apierror.Validation("id_bem inválido")
	}
	retiranteID, err := uuid.Parse(req.IDRetirante)
	if err != nil {
		return nil, apierror.Validation("id_retirante inválido")
	}
	pastoralID, err := uuid.Parse(req.IDPastoral)
	if err != nil {
		return nil, apierror.Validation("id_pastoral inválido")
	}

	// Pre-flight reference checks, outside the transaction
	if _, err := s.usuarioRepo.FindByID(ctx, retiranteID); err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Retirante não encontrado")
		}
		return nil, apierror.Internal("Erro ao registrar retirada")
	}
	if _, err := s.pastoralRepo.FindByID(ctx, pastoralID); err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Pastoral não encontrada")
		}
		return nil, apierror.Internal("Erro ao registrar retirada")
	}

	var criado *model.RetiradaEmprestimo
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.bemRepo.FindByIDForUpdateTx(tx, bemID); err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Bem não encontrado")
			}
			return err
		}

		abertos, err := s.repo.CountAbertosPorBemTx(tx, bemID)
		if err != nil {
			return err
		}
		if abertos > 0 {
			return apierror.Conflict("Bem já está emprestado")
		}

		e := &model.RetiradaEmprestimo{
			IDBem:                   bemID,
			IDRetirante:             retiranteID,
			IDEntregador:            &entregadorID,
			IDPastoral:              pastoralID,
			DataRetirada:            time.Now().UTC(),
			EstadoRetirada:          req.EstadoRetirada,
			DescricaoMotivoRetirada: req.DescricaoMotivoRetirada,
			NomeRetirante:           req.NomeRetirante,
			EmailRetirante:          req.EmailRetirante,
			FinalidadeUso:           req.FinalidadeUso,
			DataEstimadaDevolucao:   req.DataEstimadaDevolucao,
		}
		if err := s.repo.CreateTx(tx, e); err != nil {
			return err
		}
		criado = e
		return nil
	})
	if txErr != nil {
		return nil, asAPIError(txErr, "Erro ao registrar retirada")
	}

	completo, err := s.repo.FindByID(ctx, criado.ID)
	if err != nil {
		return nil, apierror.Internal("Erro ao registrar retirada")
	}
	return emprestimoToResponse(completo), nil
}

// RegistrarDevolucao closes an open loan. All return-side fields are set in
// a single transaction; a loan already closed is a conflict (closed loans
// are terminal). When the estado at return differs from the bem's stored
// estado the bem is updated to match — its estado always reflects the most
// recent known condition.
func (s *emprestimoService) RegistrarDevolucao(ctx context.Context, id uuid.UUID, req dto.RegistrarDevolucaoRequest) (*dto.EmprestimoResponse, error) {
	if req.EstadoDevolucao == model.EstadoQuebrado {
		if req.JustificativaAvaria == nil || strings.TrimSpace(*req.JustificativaAvaria) == "" {
			return nil, apierror.ValidationFields(map[string]string{
				"justificativa_avaria": "Justificativa da avaria é obrigatória quando o bem está quebrado",
			})
		}
	}

	recebedorID, err := uuid.Parse(req.IDRecebedor)
	if err != nil {
		return nil, apierror.Validation("id_recebedor inválido")
	}
	if _, err := s.usuarioRepo.FindByID(ctx, recebedorID); err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Recebedor não encontrado")
		}
		return nil, apierror.Internal("Erro ao registrar devolução")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		e, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Empréstimo não encontrado")
			}
			return err
		}
		if !e.Aberto() {
			return apierror.Conflict("Este bem já foi devolvido")
		}

		now := time.Now().UTC()
		estado := req.EstadoDevolucao
		e.DataEntrega = &now
		e.EstadoDevolucao = &estado
		e.IDRecebedor = &recebedorID
		e.JustificativaAvaria = req.JustificativaAvaria
		e.NomeResponsavelDevolucao = req.NomeResponsavelDevolucao
		e.EmailResponsavelDevolucao = req.EmailResponsavelDevolucao
		if err := s.repo.UpdateTx(tx, e); err != nil {
			return err
		}

		// Condition propagation: the bem mirrors the latest known estado
		bem, err := s.bemRepo.FindByIDForUpdateTx(tx, e.IDBem)
		if err != nil {
			return err
		}
		if bem.Estado != estado {
			if err := s.bemRepo.UpdateEstadoTx(tx, e.IDBem, estado); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, asAPIError(txErr, "Erro ao registrar devolução")
	}

	completo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Internal("Erro ao registrar devolução")
	}
	return emprestimoToResponse(completo), nil
}

func (s *emprestimoService) Listar(ctx context.Context, filter dto.EmprestimoFilter) ([]dto.EmprestimoResponse, error) {
	emprestimos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("Erro ao buscar empréstimos")
	}
	resp := make([]dto.EmprestimoResponse, len(emprestimos))
	for i := range emprestimos {
		resp[i] = *emprestimoToResponse(&emprestimos[i])
	}
	return resp, nil
}

func (s *emprestimoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EmprestimoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Empréstimo não encontrado")
		}
		return nil, apierror.Internal("Erro ao buscar empréstimo")
	}
	return emprestimoToResponse(e), nil
}

// asAPIError passes through *apierror.Error values and wraps anything else
// as an internal error with a safe message.
func asAPIError(err error, fallback string) error {
	if apiErr, ok := err.(*apierror.Error); ok {
		return apiErr
	}
	return apierror.Internal(fallback)
}

func emprestimoToResponse(e *model.RetiradaEmprestimo) *dto.EmprestimoResponse {
	resp := &dto.EmprestimoResponse{
		ID:                        e.ID.String(),
		DataRetirada:              e.DataRetirada,
		EstadoRetirada:            e.EstadoRetirada,
		DescricaoMotivoRetirada:   e.DescricaoMotivoRetirada,
		NomeRetirante:             e.NomeRetirante,
		EmailRetirante:            e.EmailRetirante,
		FinalidadeUso:             e.FinalidadeUso,
		DataEstimadaDevolucao:     e.DataEstimadaDevolucao,
		DataEntrega:               e.DataEntrega,
		EstadoDevolucao:           e.EstadoDevolucao,
		JustificativaAvaria:       e.JustificativaAvaria,
		NomeResponsavelDevolucao:  e.NomeResponsavelDevolucao,
		EmailResponsavelDevolucao: e.EmailResponsavelDevolucao,
	}
	if e.Bem != nil {
		resp.Bem = bemToResponse(e.Bem, !e.Aberto())
	}
	if e.Pastoral != nil {
		resp.Pastoral = &dto.PastoralResponse{
			ID:           e.Pastoral.ID.String(),
			NomePastoral: e.Pastoral.NomePastoral,
		}
	}
	if e.Retirante != nil {
		resp.Retirante = participanteToResponse(e.Retirante)
	}
	if e.Recebedor != nil {
		resp.Recebedor = participanteToResponse(e.Recebedor)
	}
	return resp
}

func participanteToResponse(u *model.Usuario) *dto.ParticipanteResponse {
	return &dto.ParticipanteResponse{
		ID:    u.ID.String(),
		Nome:  u.Nome,
		Email: u.Email,
	}
}
