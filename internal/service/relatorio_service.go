package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/infra"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"

	"github.com/google/uuid"
)

type RelatorioService interface {
	Gerar(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioResponse, error)
	// GerarExcel renders the same row-set as an xlsx workbook; returns the
	// suggested filename and the file bytes.
	GerarExcel(ctx context.Context, filter dto.RelatorioFilter) (string, []byte, error)
}

type relatorioService struct {
	bemRepo        repository.BemRepository
	emprestimoRepo repository.EmprestimoRepository
	pastoralRepo   repository.PastoralRepository
}

func NewRelatorioService(
	bemRepo repository.BemRepository,
	emprestimoRepo repository.EmprestimoRepository,
	pastoralRepo repository.PastoralRepository,
) RelatorioService {
	return &relatorioService{
		bemRepo:        bemRepo,
		emprestimoRepo: emprestimoRepo,
		pastoralRepo:   pastoralRepo,
	}
}

func (s *relatorioService) Gerar(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioResponse, error) {
	var (
		dados interface{}
		total int
		err   error
	)

	switch filter.Tipo {
	case "bens":
		rows, e := s.gerarBens(ctx, filter)
		dados, total, err = rows, len(rows), e
	case "emprestimos":
		rows, e := s.gerarEmprestimos(ctx, filter)
		dados, total, err = rows, len(rows), e
	case "pastorais":
		rows, e := s.gerarPastorais(ctx)
		dados, total, err = rows, len(rows), e
	default:
		return nil, apierror.Validation("Tipo de relatório inválido")
	}
	if err != nil {
		return nil, err
	}

	return &dto.RelatorioResponse{
		Tipo:           filter.Tipo,
		DataGeracao:    time.Now().UTC().Format(time.RFC3339),
		TotalRegistros: total,
		Dados:          dados,
	}, nil
}

func (s *relatorioService) GerarExcel(ctx context.Context, filter dto.RelatorioFilter) (string, []byte, error) {
	var (
		headers []string
		rows    [][]string
	)

	switch filter.Tipo {
	case "bens":
		data, err := s.gerarBens(ctx, filter)
		if err != nil {
			return "", nil, err
		}
		headers = []string{"id_bem", "nome_bem", "codigo", "estado", "valor", "disponivel"}
		for _, r := range data {
			rows = append(rows, []string{r.IDBem, r.NomeBem, r.Codigo, r.Estado, r.Valor, r.Disponivel})
		}
	case "emprestimos":
		data, err := s.gerarEmprestimos(ctx, filter)
		if err != nil {
			return "", nil, err
		}
		headers = []string{"id", "bem", "codigo_bem", "retirante", "email_retirante", "pastoral",
			"data_retirada", "data_entrega", "estado_retirada", "estado_devolucao", "recebedor", "motivo"}
		for _, r := range data {
			rows = append(rows, []string{r.ID, r.Bem, r.CodigoBem, r.Retirante, r.EmailRetirante, r.Pastoral,
				r.DataRetirada, r.DataEntrega, r.EstadoRetirada, r.EstadoDevolucao, r.Recebedor, r.Motivo})
		}
	case "pastorais":
		data, err := s.gerarPastorais(ctx)
		if err != nil {
			return "", nil, err
		}
		headers = []string{"id_pastoral", "nome_pastoral", "coordenador", "vice_coordenador",
			"total_emprestimos", "emprestimos_ativos"}
		for _, r := range data {
			rows = append(rows, []string{r.IDPastoral, r.NomePastoral, r.Coordenador, r.ViceCoordenador,
				strconv.Itoa(r.TotalEmprestimos), strconv.Itoa(r.EmprestimosAtivos)})
		}
	default:
		return "", nil, apierror.Validation("Tipo de relatório inválido")
	}

	b, err := infra.BuildWorkbook("Relatório", headers, rows)
	if err != nil {
		return "", nil, apierror.Internal("Erro ao gerar relatório")
	}
	filename := fmt.Sprintf("relatorio_%s_%d.xlsx", filter.Tipo, time.Now().Unix())
	return filename, b, nil
}

func (s *relatorioService) gerarBens(ctx context.Context, filter dto.RelatorioFilter) ([]dto.RelatorioBemRow, error) {
	bens, err := s.bemRepo.List(ctx, dto.BemFilter{Estado: filter.Estado})
	if err != nil {
		return nil, apierror.Internal("Erro ao gerar relatório")
	}

	rows := make([]dto.RelatorioBemRow, 0, len(bens))
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

		valor := "N/A"
		if bens[i].Valor != nil {
			valor = bens[i].Valor.StringFixed(2)
		}
		label := "Não"
		if disponivel {
			label = "Sim"
		}
		rows = append(rows, dto.RelatorioBemRow{
			IDBem:      bens[i].ID.String(),
			NomeBem:    bens[i].NomeBem,
			Codigo:     bens[i].Codigo,
			Estado:     bens[i].Estado,
			Valor:      valor,
			Disponivel: label,
		})
	}
	return rows, nil
}

func (s *relatorioService) gerarEmprestimos(ctx context.Context, filter dto.RelatorioFilter) ([]dto.RelatorioEmprestimoRow, error) {
	var pastoralID *uuid.UUID
	if filter.IDPastoral != "" {
		pid, err := uuid.Parse(filter.IDPastoral)
		if err != nil {
			return nil, apierror.Validation("id_pastoral inválido")
		}
		pastoralID = &pid
	}

	var inicio, fim *time.Time
	if filter.DataInicio != "" {
		t, err := time.Parse("2006-01-02", filter.DataInicio)
		if err != nil {
			return nil, apierror.Validation("data_inicio inválida")
		}
		inicio = &t
	}
	if filter.DataFim != "" {
		t, err := time.Parse("2006-01-02", filter.DataFim)
		if err != nil {
			return nil, apierror.Validation("data_fim inválida")
		}
		// Inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		fim = &t
	}

	emprestimos, err := s.emprestimoRepo.ListPeriodo(ctx, pastoralID, inicio, fim)
	if err != nil {
		return nil, apierror.Internal("Erro ao gerar relatório")
	}

	rows := make([]dto.RelatorioEmprestimoRow, 0, len(emprestimos))
	for i := range emprestimos {
		e := &emprestimos[i]
		row := dto.RelatorioEmprestimoRow{
			ID:              e.ID.String(),
			DataRetirada:    e.DataRetirada.Format(time.RFC3339),
			DataEntrega:     "Ainda emprestado",
			EstadoRetirada:  e.EstadoRetirada,
			EstadoDevolucao: "N/A",
			Recebedor:       "N/A",
			Motivo:          "N/A",
			EmailRetirante:  "N/A",
		}
		if e.Bem != nil {
			row.Bem = e.Bem.NomeBem
			row.CodigoBem = e.Bem.Codigo
		}
		if e.Retirante != nil {
			row.Retirante = e.Retirante.Nome
		}
		if e.EmailRetirante != nil {
			row.EmailRetirante = *e.EmailRetirante
		}
		if e.Pastoral != nil {
			row.Pastoral = e.Pastoral.NomePastoral
		}
		if e.DataEntrega != nil {
			row.DataEntrega = e.DataEntrega.Format(time.RFC3339)
		}
		if e.EstadoDevolucao != nil {
			row.EstadoDevolucao = *e.EstadoDevolucao
		}
		if e.Recebedor != nil {
			row.Recebedor = e.Recebedor.Nome
		}
		if e.DescricaoMotivoRetirada != nil {
			row.Motivo = *e.DescricaoMotivoRetirada
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *relatorioService) gerarPastorais(ctx context.Context) ([]dto.RelatorioPastoralRow, error) {
	pastorais, err := s.pastoralRepo.ListComEmprestimos(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao gerar relatório")
	}

	rows := make([]dto.RelatorioPastoralRow, 0, len(pastorais))
	for i := range pastorais {
		p := &pastorais[i]
		row := dto.RelatorioPastoralRow{
			IDPastoral:       p.ID.String(),
			NomePastoral:     p.NomePastoral,
			Coordenador:      "N/A",
			ViceCoordenador:  "N/A",
			TotalEmprestimos: len(p.Emprestimos),
		}
		for j := range p.Membros {
			m := &p.Membros[j]
			if m.FuncaoPastoral == nil {
				continue
			}
			switch *m.FuncaoPastoral {
			case model.FuncaoCoordenador:
				if row.Coordenador == "N/A" {
					row.Coordenador = m.Nome
				}
			case model.FuncaoViceCoordenador:
				if row.ViceCoordenador == "N/A" {
					row.ViceCoordenador = m.Nome
				}
			}
		}
		for j := range p.Emprestimos {
			if p.Emprestimos[j].Aberto() {
				row.EmprestimosAtivos++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
