package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBemSvc() (service.BemService, *memStore) {
	ms := newMemStore()
	return service.NewBemService(&stubBemRepo{ms: ms}), ms
}

// abreEmprestimo seeds an open loan directly into the store.
func abreEmprestimo(ms *memStore, bem *model.Bem) *model.RetiradaEmprestimo {
	retirante := seedUsuario(ms, "Retirante "+bem.Codigo, bem.Codigo+"@paroquia.org", model.TipoComum)
	pastoral := seedPastoral(ms, "Pastoral "+bem.Codigo)
	e := &model.RetiradaEmprestimo{
		ID:             uuid.New(),
		IDBem:          bem.ID,
		IDRetirante:    retirante.ID,
		IDPastoral:     pastoral.ID,
		DataRetirada:   time.Now().UTC(),
		EstadoRetirada: bem.Estado,
	}
	ms.emprestimos[e.ID] = e
	return e
}

func TestCriarBem_Defaults(t *testing.T) {
	svc, _ := buildBemSvc()
	valor := decimal.NewFromFloat(2500.50)

	resp, err := svc.Criar(context.Background(), dto.CriarBemRequest{
		NomeBem: "Projetor Epson",
		Codigo:  "PROJ-001",
		Valor:   &valor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoUsado, resp.Estado) // default when omitted
	assert.True(t, resp.Disponivel)
	assert.Equal(t, "2500.5", resp.Valor.String())
}

func TestCriarBem_CodigoDuplicado(t *testing.T) {
	svc, ms := buildBemSvc()
	seedBem(ms, "Projetor Epson", "PROJ-001", model.EstadoUsado)

	_, err := svc.Criar(context.Background(), dto.CriarBemRequest{
		NomeBem: "Outro Projetor",
		Codigo:  "PROJ-001",
	})
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.Equal(t, "Já existe um bem com este código", apiErr.Detail)
}

func TestListarBens_FiltroDisponivel(t *testing.T) {
	svc, ms := buildBemSvc()
	livre := seedBem(ms, "Caixa de Som", "SOM-001", model.EstadoNovo)
	emprestado := seedBem(ms, "Microfone", "MIC-001", model.EstadoUsado)
	abreEmprestimo(ms, emprestado)

	disponiveis, err := svc.Listar(context.Background(), dto.BemFilter{Disponivel: "true"})
	require.NoError(t, err)
	require.Len(t, disponiveis, 1)
	assert.Equal(t, livre.ID.String(), disponiveis[0].ID)
	assert.True(t, disponiveis[0].Disponivel)

	emprestados, err := svc.Listar(context.Background(), dto.BemFilter{Disponivel: "false"})
	require.NoError(t, err)
	require.Len(t, emprestados, 1)
	assert.Equal(t, emprestado.ID.String(), emprestados[0].ID)
	assert.False(t, emprestados[0].Disponivel)

	todos, err := svc.Listar(context.Background(), dto.BemFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestObterBem_ComHistorico(t *testing.T) {
	svc, ms := buildBemSvc()
	bem := seedBem(ms, "Notebook", "NOT-001", model.EstadoUsado)
	e := abreEmprestimo(ms, bem)

	resp, err := svc.ObterPorID(context.Background(), bem.ID)
	require.NoError(t, err)
	assert.False(t, resp.Disponivel)
	require.Len(t, resp.Emprestimos, 1)
	assert.Equal(t, e.ID.String(), resp.Emprestimos[0].ID)
	require.NotNil(t, resp.Emprestimos[0].Retirante)
}

func TestAtualizarBem_CodigoColide(t *testing.T) {
	svc, ms := buildBemSvc()
	seedBem(ms, "Mesa", "MES-001", model.EstadoUsado)
	outro := seedBem(ms, "Cadeira", "CAD-001", model.EstadoUsado)

	codigo := "MES-001"
	_, err := svc.Atualizar(context.Background(), outro.ID, dto.AtualizarBemRequest{Codigo: &codigo})
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
}

func TestExcluirBem_ComEmprestimoAtivo(t *testing.T) {
	svc, ms := buildBemSvc()
	bem := seedBem(ms, "Tenda", "TEN-001", model.EstadoUsado)
	abreEmprestimo(ms, bem)

	err := svc.Excluir(context.Background(), bem.ID)
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.Equal(t, "Não é possível deletar um bem com empréstimos ativos", apiErr.Detail)

	// Still there
	_, err = svc.ObterPorID(context.Background(), bem.ID)
	require.NoError(t, err)
}

func TestExcluirBem_HistoricoFechadoNaoBloqueia(t *testing.T) {
	svc, ms := buildBemSvc()
	bem := seedBem(ms, "Bebedouro", "BEB-001", model.EstadoUsado)
	e := abreEmprestimo(ms, bem)
	now := time.Now().UTC()
	estado := model.EstadoUsado
	e.DataEntrega = &now
	e.EstadoDevolucao = &estado

	require.NoError(t, svc.Excluir(context.Background(), bem.ID))

	_, err := svc.ObterPorID(context.Background(), bem.ID)
	require.Error(t, err)
	assert.Equal(t, "Bem não encontrado", err.Error())
	// Loan history of the removed bem is gone too
	assert.Empty(t, ms.emprestimos)
}
