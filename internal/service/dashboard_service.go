package service

import (
	"context"
	"fmt"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"
)

const topPastoraisLimite = 5

var mesesAbrev = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	bemRepo        repository.BemRepository
	emprestimoRepo repository.EmprestimoRepository
	pastoralRepo   repository.PastoralRepository
	usuarioRepo    repository.UsuarioRepository
}

func NewDashboardService(
	bemRepo repository.BemRepository,
	emprestimoRepo repository.EmprestimoRepository,
	pastoralRepo repository.PastoralRepository,
	usuarioRepo repository.UsuarioRepository,
) DashboardService {
	return &dashboardService{
		bemRepo:        bemRepo,
		emprestimoRepo: emprestimoRepo,
		pastoralRepo:   pastoralRepo,
		usuarioRepo:    usuarioRepo,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	resp := &dto.DashboardStatsResponse{}

	totalBens, err := s.bemRepo.Count(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	porEstado, err := s.bemRepo.CountPorEstado(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	emprestados, err := s.emprestimoRepo.CountAbertos(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	resp.Bens = dto.DashboardBens{
		Total:       totalBens,
		PorEstado:   porEstado,
		Disponiveis: totalBens - emprestados,
		Emprestados: emprestados,
	}

	totalEmprestimos, err := s.emprestimoRepo.Count(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	now := time.Now().UTC()
	ultimos30, err := s.emprestimoRepo.CountRetiradasDesde(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	porMes, err := s.retiradasPorMes(ctx, now)
	if err != nil {
		return nil, err
	}
	resp.Emprestimos = dto.DashboardEmprestimos{
		Total:         totalEmprestimos,
		Ativos:        emprestados,
		Ultimos30Dias: ultimos30,
		PorMes:        porMes,
	}

	totalPastorais, err := s.pastoralRepo.Count(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	top, err := s.emprestimoRepo.TopPastoraisAtivas(ctx, topPastoraisLimite)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	resp.Pastorais = dto.DashboardPastorais{Total: totalPastorais}
	for _, row := range top {
		resp.Pastorais.TopPastorais = append(resp.Pastorais.TopPastorais, dto.TopPastoral{
			ID:                row.ID.String(),
			Nome:              row.Nome,
			EmprestimosAtivos: row.Ativos,
		})
	}

	totalUsuarios, err := s.usuarioRepo.Count(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	resp.Usuarios = dto.DashboardUsuarios{Total: totalUsuarios}

	valor, err := s.bemRepo.SumValor(ctx)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}
	resp.Patrimonio = dto.DashboardPatrimonio{ValorTotal: valor.StringFixed(2)}

	return resp, nil
}

// retiradasPorMes buckets the retiradas of the last 6 months (current month
// included) by month, keyed "abr/2026". Months with no retiradas still appear
// with a zero count.
func (s *dashboardService) retiradasPorMes(ctx context.Context, now time.Time) (map[string]int64, error) {
	inicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	datas, err := s.emprestimoRepo.ListDatasRetiradaDesde(ctx, inicio)
	if err != nil {
		return nil, apierror.Internal("Erro ao calcular estatísticas")
	}

	porMes := make(map[string]int64, 6)
	for i := 0; i < 6; i++ {
		m := inicio.AddDate(0, i, 0)
		porMes[chaveMes(m)] = 0
	}
	for _, d := range datas {
		key := chaveMes(d.UTC())
		if _, ok := porMes[key]; ok {
			porMes[key]++
		}
	}
	return porMes, nil
}

func chaveMes(t time.Time) string {
	return fmt.Sprintf("%s/%d", mesesAbrev[int(t.Month())-1], t.Year())
}
