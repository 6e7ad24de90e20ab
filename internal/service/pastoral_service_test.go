package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPastoralSvc() (service.PastoralService, *memStore) {
	ms := newMemStore()
	svc := service.NewPastoralService(&stubPastoralRepo{ms: ms}, &stubUsuarioRepo{ms: ms})
	return svc, ms
}

func TestCriarPastoral_NomeDuplicado(t *testing.T) {
	svc, ms := buildPastoralSvc()
	seedPastoral(ms, "Pastoral da Juventude")

	_, err := svc.Criar(context.Background(), dto.CriarPastoralRequest{NomePastoral: "Pastoral da Juventude"})
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
}

func TestAdicionarMembro_QuotaCoordenadores(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Liturgia")

	// Four coordenadores fit
	for i := 0; i < model.MaxCoordenadores; i++ {
		u := seedUsuario(ms, fmt.Sprintf("Coordenador %d", i), fmt.Sprintf("coord%d@paroquia.org", i), model.TipoComum)
		_, err := svc.AdicionarMembro(context.Background(), pastoral.ID, dto.AdicionarMembroRequest{
			IDUsuario:      u.ID.String(),
			FuncaoPastoral: model.FuncaoCoordenador,
		})
		require.NoError(t, err)
	}

	// The fifth is rejected
	extra := seedUsuario(ms, "Coordenador Extra", "extra@paroquia.org", model.TipoComum)
	_, err := svc.AdicionarMembro(context.Background(), pastoral.ID, dto.AdicionarMembroRequest{
		IDUsuario:      extra.ID.String(),
		FuncaoPastoral: model.FuncaoCoordenador,
	})
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
	assert.Contains(t, apiErr.Fields["funcao_pastoral"], "número máximo (4)")
}

func TestAdicionarMembro_QuotaViceCoordenadores(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Catequese")
	seedMembro(ms, "Vice Um", pastoral.ID, model.FuncaoViceCoordenador)
	seedMembro(ms, "Vice Dois", pastoral.ID, model.FuncaoViceCoordenador)

	terceiro := seedUsuario(ms, "Vice Três", "vice3@paroquia.org", model.TipoComum)
	_, err := svc.AdicionarMembro(context.Background(), pastoral.ID, dto.AdicionarMembroRequest{
		IDUsuario:      terceiro.ID.String(),
		FuncaoPastoral: model.FuncaoViceCoordenador,
	})
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Contains(t, apiErr.Fields["funcao_pastoral"], "número máximo (2)")
}

func TestAdicionarMembro_MesmaFuncaoEhNoOp(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Música")
	seedMembro(ms, "Vice Um", pastoral.ID, model.FuncaoViceCoordenador)
	repetido := seedMembro(ms, "Vice Dois", pastoral.ID, model.FuncaoViceCoordenador)

	// Re-adding an existing vice with the same role must not hit the quota
	resp, err := svc.AdicionarMembro(context.Background(), pastoral.ID, dto.AdicionarMembroRequest{
		IDUsuario:      repetido.ID.String(),
		FuncaoPastoral: model.FuncaoViceCoordenador,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Membros, 2)
}

func TestAdicionarMembro_QuotasSaoPorPastoral(t *testing.T) {
	svc, ms := buildPastoralSvc()
	cheia := seedPastoral(ms, "Cheia")
	outra := seedPastoral(ms, "Outra")
	for i := 0; i < model.MaxCoordenadores; i++ {
		seedMembro(ms, fmt.Sprintf("Coordenador %d", i), cheia.ID, model.FuncaoCoordenador)
	}

	// A full pastoral does not block another one
	novo := seedUsuario(ms, "Novo Coordenador", "novo@paroquia.org", model.TipoComum)
	_, err := svc.AdicionarMembro(context.Background(), outra.ID, dto.AdicionarMembroRequest{
		IDUsuario:      novo.ID.String(),
		FuncaoPastoral: model.FuncaoCoordenador,
	})
	require.NoError(t, err)
}

func TestAdicionarMembro_UsuarioInexistente(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Dízimo")

	_, err := svc.AdicionarMembro(context.Background(), pastoral.ID, dto.AdicionarMembroRequest{
		IDUsuario:      uuid.NewString(),
		FuncaoPastoral: model.FuncaoCoordenador,
	})
	require.Error(t, err)
	assert.Equal(t, "Usuário não encontrado", err.Error())
}

func TestExcluirPastoral_ComEmprestimos(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Eventos")
	bem := seedBem(ms, "Tenda", "TEN-001", model.EstadoUsado)
	retirante := seedUsuario(ms, "Lucas", "lucas@paroquia.org", model.TipoComum)
	e := &model.RetiradaEmprestimo{
		ID:             uuid.New(),
		IDBem:          bem.ID,
		IDRetirante:    retirante.ID,
		IDPastoral:     pastoral.ID,
		DataRetirada:   time.Now().UTC(),
		EstadoRetirada: model.EstadoUsado,
	}
	ms.emprestimos[e.ID] = e

	err := svc.Excluir(context.Background(), pastoral.ID)
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
}

func TestExcluirPastoral_SemEmprestimos(t *testing.T) {
	svc, ms := buildPastoralSvc()
	pastoral := seedPastoral(ms, "Acolhida")

	require.NoError(t, svc.Excluir(context.Background(), pastoral.ID))
	_, err := svc.ObterPorID(context.Background(), pastoral.ID)
	require.Error(t, err)
}
