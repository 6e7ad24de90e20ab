package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

// RelatorioFilter drives GET /v1/relatorios.
// Tipo: bens | emprestimos | pastorais. Formato: json (default) | excel.
type RelatorioFilter struct {
	Tipo       string `form:"tipo"        validate:"required,oneof=bens emprestimos pastorais"`
	Formato    string `form:"formato"     validate:"omitempty,oneof=json excel"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=NOVO USADO QUEBRADO EM_MANUTENCAO"`
	Disponivel string `form:"disponivel"  validate:"omitempty,oneof=true false"`
	IDPastoral string `form:"id_pastoral" validate:"omitempty,uuid"`
	DataInicio string `form:"data_inicio" validate:"omitempty,datetime=2006-01-02"`
	DataFim    string `form:"data_fim"    validate:"omitempty,datetime=2006-01-02"`
}

// ─── Row shapes ──────────────────────────────────────────────────────────────

type RelatorioBemRow struct {
	IDBem      string `json:"id_bem"`
	NomeBem    string `json:"nome_bem"`
	Codigo     string `json:"codigo"`
	Estado     string `json:"estado"`
	Valor      string `json:"valor"`
	Disponivel string `json:"disponivel"` // "Sim" | "Não"
}

type RelatorioEmprestimoRow struct {
	ID              string `json:"id"`
	Bem             string `json:"bem"`
	CodigoBem       string `json:"codigo_bem"`
	Retirante       string `json:"retirante"`
	EmailRetirante  string `json:"email_retirante"`
	Pastoral        string `json:"pastoral"`
	DataRetirada    string `json:"data_retirada"`
	DataEntrega     string `json:"data_entrega"` // "Ainda emprestado" when open
	EstadoRetirada  string `json:"estado_retirada"`
	EstadoDevolucao string `json:"estado_devolucao"`
	Recebedor       string `json:"recebedor"`
	Motivo          string `json:"motivo"`
}

type RelatorioPastoralRow struct {
	IDPastoral        string `json:"id_pastoral"`
	NomePastoral      string `json:"nome_pastoral"`
	Coordenador       string `json:"coordenador"`
	ViceCoordenador   string `json:"vice_coordenador"`
	TotalEmprestimos  int    `json:"total_emprestimos"`
	EmprestimosAtivos int    `json:"emprestimos_ativos"`
}

// ─── Response envelope ───────────────────────────────────────────────────────

// RelatorioResponse is the JSON envelope; Dados holds one of the row slices.
type RelatorioResponse struct {
	Tipo           string      `json:"tipo"`
	DataGeracao    string      `json:"data_geracao"`
	TotalRegistros int         `json:"total_registros"`
	Dados          interface{} `json:"dados"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type DashboardStatsResponse struct {
	Bens        DashboardBens        `json:"bens"`
	Emprestimos DashboardEmprestimos `json:"emprestimos"`
	Pastorais   DashboardPastorais   `json:"pastorais"`
	Usuarios    DashboardUsuarios    `json:"usuarios"`
	Patrimonio  DashboardPatrimonio  `json:"patrimonio"`
}

type DashboardBens struct {
	Total       int64            `json:"total"`
	PorEstado   map[string]int64 `json:"por_estado"`
	Disponiveis int64            `json:"disponiveis"`
	Emprestados int64            `json:"emprestados"`
}

type DashboardEmprestimos struct {
	Total         int64            `json:"total"`
	Ativos        int64            `json:"ativos"`
	Ultimos30Dias int64            `json:"ultimos_30_dias"`
	PorMes        map[string]int64 `json:"por_mes"`
}

type TopPastoral struct {
	ID                string `json:"id_pastoral"`
	Nome              string `json:"nome_pastoral"`
	EmprestimosAtivos int64  `json:"emprestimos_ativos"`
}

type DashboardPastorais struct {
	Total        int64         `json:"total"`
	TopPastorais []TopPastoral `json:"top_pastorais"`
}

type DashboardUsuarios struct {
	Total int64 `json:"total"`
}

type DashboardPatrimonio struct {
	ValorTotal string `json:"valor_total"`
}
