package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/model"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/repository"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore is the shared in-memory backing for all stub repositories, so the
// cross-entity queries (open loans of a bem, membros of a pastoral) behave
// like the real schema without a database.
type memStore struct {
	bens        map[uuid.UUID]*model.Bem
	usuarios    map[uuid.UUID]*model.Usuario
	pastorais   map[uuid.UUID]*model.Pastoral
	emprestimos map[uuid.UUID]*model.RetiradaEmprestimo
}

func newMemStore() *memStore {
	return &memStore{
		bens:        make(map[uuid.UUID]*model.Bem),
		usuarios:    make(map[uuid.UUID]*model.Usuario),
		pastorais:   make(map[uuid.UUID]*model.Pastoral),
		emprestimos: make(map[uuid.UUID]*model.RetiradaEmprestimo),
	}
}

func (ms *memStore) emprestimosDoBem(bemID uuid.UUID, abertosOnly bool) []model.RetiradaEmprestimo {
	var out []model.RetiradaEmprestimo
	for _, e := range ms.emprestimos {
		if e.IDBem != bemID {
			continue
		}
		if abertosOnly && !e.Aberto() {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataRetirada.After(out[j].DataRetirada) })
	return out
}

func (ms *memStore) membrosDaPastoral(pastoralID uuid.UUID) []model.Usuario {
	var out []model.Usuario
	for _, u := range ms.usuarios {
		if u.IDPastoral != nil && *u.IDPastoral == pastoralID {
			out = append(out, *u)
		}
	}
	return out
}

func (ms *memStore) carregaRelacoes(e *model.RetiradaEmprestimo) *model.RetiradaEmprestimo {
	cp := *e
	if b, ok := ms.bens[cp.IDBem]; ok {
		bem := *b
		cp.Bem = &bem
	}
	if p, ok := ms.pastorais[cp.IDPastoral]; ok {
		pastoral := *p
		cp.Pastoral = &pastoral
	}
	if u, ok := ms.usuarios[cp.IDRetirante]; ok {
		usuario := *u
		cp.Retirante = &usuario
	}
	if cp.IDRecebedor != nil {
		if u, ok := ms.usuarios[*cp.IDRecebedor]; ok {
			usuario := *u
			cp.Recebedor = &usuario
		}
	}
	return &cp
}

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedBem(ms *memStore, nome, codigo, estado string) *model.Bem {
	b := &model.Bem{ID: uuid.New(), NomeBem: nome, Codigo: codigo, Estado: estado}
	ms.bens[b.ID] = b
	return b
}

func seedUsuario(ms *memStore, nome, email, tipo string) *model.Usuario {
	u := &model.Usuario{ID: uuid.New(), Nome: nome, Email: email, TipoUser: tipo}
	ms.usuarios[u.ID] = u
	return u
}

func seedMembro(ms *memStore, nome string, pastoralID uuid.UUID, funcao string) *model.Usuario {
	u := seedUsuario(ms, nome, strings.ToLower(strings.ReplaceAll(nome, " ", "."))+"@paroquia.org", model.TipoComum)
	pid := pastoralID
	f := funcao
	u.IDPastoral = &pid
	u.FuncaoPastoral = &f
	return u
}

func seedPastoral(ms *memStore, nome string) *model.Pastoral {
	p := &model.Pastoral{ID: uuid.New(), NomePastoral: nome}
	ms.pastorais[p.ID] = p
	return p
}

// ── stubBemRepo ──────────────────────────────────────────────────────────────

type stubBemRepo struct{ ms *memStore }

func (r *stubBemRepo) Create(_ context.Context, b *model.Bem) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.ms.bens[b.ID] = b
	return nil
}

func (r *stubBemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bem, error) {
	b, ok := r.ms.bens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	cp.Emprestimos = r.ms.emprestimosDoBem(id, true)
	return &cp, nil
}

func (r *stubBemRepo) FindByIDWithEmprestimos(_ context.Context, id uuid.UUID) (*model.Bem, error) {
	b, ok := r.ms.bens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	for _, e := range r.ms.emprestimosDoBem(id, false) {
		cp.Emprestimos = append(cp.Emprestimos, *r.ms.carregaRelacoes(&e))
	}
	return &cp, nil
}

func (r *stubBemRepo) FindByCodigo(_ context.Context, codigo string) (*model.Bem, error) {
	for _, b := range r.ms.bens {
		if b.Codigo == codigo {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBemRepo) List(_ context.Context, filter dto.BemFilter) ([]model.Bem, error) {
	var out []model.Bem
	for _, b := range r.ms.bens {
		if filter.Estado != "" && b.Estado != filter.Estado {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(b.NomeBem), s) &&
				!strings.Contains(strings.ToLower(b.Codigo), s) {
				continue
			}
		}
		cp := *b
		cp.Emprestimos = r.ms.emprestimosDoBem(b.ID, true)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomeBem < out[j].NomeBem })
	return out, nil
}

func (r *stubBemRepo) Update(_ context.Context, b *model.Bem) error {
	if _, ok := r.ms.bens[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	cp.Emprestimos = nil
	r.ms.bens[b.ID] = &cp
	return nil
}

func (r *stubBemRepo) Delete(_ context.Context, id uuid.UUID) error {
	for eid, e := range r.ms.emprestimos {
		if e.IDBem == id {
			delete(r.ms.emprestimos, eid)
		}
	}
	delete(r.ms.bens, id)
	return nil
}

func (r *stubBemRepo) CountEmprestimosAbertos(_ context.Context, id uuid.UUID) (int64, error) {
	return int64(len(r.ms.emprestimosDoBem(id, true))), nil
}

func (r *stubBemRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ms.bens)), nil
}

func (r *stubBemRepo) CountPorEstado(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, b := range r.ms.bens {
		out[b.Estado]++
	}
	return out, nil
}

func (r *stubBemRepo) SumValor(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.ms.bens {
		if b.Valor != nil {
			total = total.Add(*b.Valor)
		}
	}
	return total, nil
}

func (r *stubBemRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Bem, error) {
	b, ok := r.ms.bens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBemRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	b, ok := r.ms.bens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Estado = estado
	return nil
}

func (r *stubBemRepo) DB() *gorm.DB { return nil }

var _ repository.BemRepository = (*stubBemRepo)(nil)

// ── stubUsuarioRepo ──────────────────────────────────────────────────────────

type stubUsuarioRepo struct{ ms *memStore }

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.ms.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.ms.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	if cp.IDPastoral != nil {
		if p, ok := r.ms.pastorais[*cp.IDPastoral]; ok {
			pastoral := *p
			cp.Pastoral = &pastoral
		}
	}
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.ms.usuarios {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.ms.usuarios {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.ms.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	cp.Pastoral = nil
	r.ms.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ms.usuarios, id)
	return nil
}

func (r *stubUsuarioRepo) CountEmprestimosComoRetirante(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.ms.emprestimos {
		if e.IDRetirante == id {
			n++
		}
	}
	return n, nil
}

func (r *stubUsuarioRepo) CountPorFuncao(_ context.Context, pastoralID uuid.UUID, funcao string) (int64, error) {
	var n int64
	for _, u := range r.ms.usuarios {
		if u.IDPastoral != nil && *u.IDPastoral == pastoralID &&
			u.FuncaoPastoral != nil && *u.FuncaoPastoral == funcao {
			n++
		}
	}
	return n, nil
}

func (r *stubUsuarioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ms.usuarios)), nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── stubPastoralRepo ─────────────────────────────────────────────────────────

type stubPastoralRepo struct{ ms *memStore }

func (r *stubPastoralRepo) Create(_ context.Context, p *model.Pastoral) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.ms.pastorais[p.ID] = p
	return nil
}

func (r *stubPastoralRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pastoral, error) {
	p, ok := r.ms.pastorais[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Membros = r.ms.membrosDaPastoral(id)
	return &cp, nil
}

func (r *stubPastoralRepo) FindByNome(_ context.Context, nome string) (*model.Pastoral, error) {
	for _, p := range r.ms.pastorais {
		if p.NomePastoral == nome {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPastoralRepo) List(_ context.Context) ([]model.Pastoral, error) {
	var out []model.Pastoral
	for _, p := range r.ms.pastorais {
		cp := *p
		cp.Membros = r.ms.membrosDaPastoral(p.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomePastoral < out[j].NomePastoral })
	return out, nil
}

func (r *stubPastoralRepo) ListComEmprestimos(_ context.Context) ([]model.Pastoral, error) {
	pastorais, _ := r.List(context.Background())
	for i := range pastorais {
		for _, e := range r.ms.emprestimos {
			if e.IDPastoral == pastorais[i].ID {
				pastorais[i].Emprestimos = append(pastorais[i].Emprestimos, *e)
			}
		}
	}
	return pastorais, nil
}

func (r *stubPastoralRepo) Update(_ context.Context, p *model.Pastoral) error {
	if _, ok := r.ms.pastorais[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Membros = nil
	r.ms.pastorais[p.ID] = &cp
	return nil
}

func (r *stubPastoralRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ms.pastorais, id)
	return nil
}

func (r *stubPastoralRepo) CountEmprestimos(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.ms.emprestimos {
		if e.IDPastoral == id {
			n++
		}
	}
	return n, nil
}

func (r *stubPastoralRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ms.pastorais)), nil
}

func (r *stubPastoralRepo) DB() *gorm.DB { return nil }

var _ repository.PastoralRepository = (*stubPastoralRepo)(nil)

// ── stubEmprestimoRepo ───────────────────────────────────────────────────────

type stubEmprestimoRepo struct{ ms *memStore }

func (r *stubEmprestimoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RetiradaEmprestimo, error) {
	e, ok := r.ms.emprestimos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ms.carregaRelacoes(e), nil
}

func (r *stubEmprestimoRepo) List(_ context.Context, filter dto.EmprestimoFilter) ([]model.RetiradaEmprestimo, error) {
	var out []model.RetiradaEmprestimo
	for _, e := range r.ms.emprestimos {
		switch filter.Ativo {
		case "true":
			if !e.Aberto() {
				continue
			}
		case "false":
			if e.Aberto() {
				continue
			}
		}
		if filter.IDPastoral != "" && e.IDPastoral.String() != filter.IDPastoral {
			continue
		}
		if filter.IDBem != "" && e.IDBem.String() != filter.IDBem {
			continue
		}
		out = append(out, *r.ms.carregaRelacoes(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataRetirada.After(out[j].DataRetirada) })
	return out, nil
}

func (r *stubEmprestimoRepo) ListPeriodo(_ context.Context, pastoralID *uuid.UUID, inicio, fim *time.Time) ([]model.RetiradaEmprestimo, error) {
	var out []model.RetiradaEmprestimo
	for _, e := range r.ms.emprestimos {
		if pastoralID != nil && e.IDPastoral != *pastoralID {
			continue
		}
		if inicio != nil && e.DataRetirada.Before(*inicio) {
			continue
		}
		if fim != nil && e.DataRetirada.After(*fim) {
			continue
		}
		out = append(out, *r.ms.carregaRelacoes(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataRetirada.After(out[j].DataRetirada) })
	return out, nil
}

func (r *stubEmprestimoRepo) CreateTx(_ *gorm.DB, e *model.RetiradaEmprestimo) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	r.ms.emprestimos[e.ID] = &cp
	return nil
}

func (r *stubEmprestimoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.RetiradaEmprestimo, error) {
	e, ok := r.ms.emprestimos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEmprestimoRepo) CountAbertosPorBemTx(_ *gorm.DB, bemID uuid.UUID) (int64, error) {
	return int64(len(r.ms.emprestimosDoBem(bemID, true))), nil
}

func (r *stubEmprestimoRepo) UpdateTx(_ *gorm.DB, e *model.RetiradaEmprestimo) error {
	if _, ok := r.ms.emprestimos[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	r.ms.emprestimos[e.ID] = &cp
	return nil
}

func (r *stubEmprestimoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ms.emprestimos)), nil
}

func (r *stubEmprestimoRepo) CountAbertos(_ context.Context) (int64, error) {
	var n int64
	for _, e := range r.ms.emprestimos {
		if e.Aberto() {
			n++
		}
	}
	return n, nil
}

func (r *stubEmprestimoRepo) CountRetiradasDesde(_ context.Context, desde time.Time) (int64, error) {
	var n int64
	for _, e := range r.ms.emprestimos {
		if !e.DataRetirada.Before(desde) {
			n++
		}
	}
	return n, nil
}

func (r *stubEmprestimoRepo) ListDatasRetiradaDesde(_ context.Context, desde time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, e := range r.ms.emprestimos {
		if !e.DataRetirada.Before(desde) {
			out = append(out, e.DataRetirada)
		}
	}
	return out, nil
}

func (r *stubEmprestimoRepo) TopPastoraisAtivas(_ context.Context, limite int) ([]repository.TopPastoralRow, error) {
	ativos := make(map[uuid.UUID]int64)
	for _, e := range r.ms.emprestimos {
		if e.Aberto() {
			ativos[e.IDPastoral]++
		}
	}
	var rows []repository.TopPastoralRow
	for _, p := range r.ms.pastorais {
		rows = append(rows, repository.TopPastoralRow{ID: p.ID, Nome: p.NomePastoral, Ativos: ativos[p.ID]})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ativos > rows[j].Ativos })
	if len(rows) > limite {
		rows = rows[:limite]
	}
	return rows, nil
}

func (r *stubEmprestimoRepo) DB() *gorm.DB { return nil }

var _ repository.EmprestimoRepository = (*stubEmprestimoRepo)(nil)

// ── fakeSessionStore ─────────────────────────────────────────────────────────

// fakeSessionStore records session activity in memory for auth tests.
type fakeSessionStore struct {
	sessions map[string]session.Data
	revoked  []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]session.Data)}
}

func (f *fakeSessionStore) Create(_ context.Context, token string, data session.Data) error {
	f.sessions[token] = data
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) RevokeAllForUser(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	for t, d := range f.sessions {
		if d.UserID == userID {
			delete(f.sessions, t)
		}
	}
	return nil
}

func (f *fakeSessionStore) TTLSeconds() int { return 43200 }
