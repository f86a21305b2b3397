// Package contas orquestra o ciclo de vida das contas a pagar:
// cadastro, aprovação, pagamento, importações em lote, conciliação
// bancária e o agregado do dashboard.
package contas

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/importer"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/money"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/reconcile"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

// Service concentra as regras de negócio sobre o gateway de
// persistência. Cada operação fala com uma tabela por vez; não há
// transação entre tabelas, e as consequências disso (cascata parcial,
// relatório degradado) são devolvidas ao chamador em vez de abortar.
type Service struct {
	store storage.Store
	log   *zap.Logger
	agora func() time.Time
}

func NewService(store storage.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, agora: time.Now}
}

// ContaQuery amplia o filtro de igualdade do store com filtros de
// texto e faixa de valor, aplicados em memória após a consulta.
type ContaQuery struct {
	storage.ContaFilter
	Descricao       string
	NumeroDocumento string
	ValorMin        *float64
	ValorMax        *float64
}

func (s *Service) ListContas(ctx context.Context, q ContaQuery) ([]domain.Conta, error) {
	contas, err := s.store.ListContas(ctx, q.ContaFilter)
	if err != nil {
		return nil, err
	}

	filtradas := contas[:0]
	for _, c := range contas {
		if q.Descricao != "" && !contemInsensivel(c.Descricao, q.Descricao) {
			continue
		}
		if q.NumeroDocumento != "" && !contemInsensivel(c.NumeroDocumento, q.NumeroDocumento) {
			continue
		}
		if q.ValorMin != nil && c.ValorPrevisto < *q.ValorMin {
			continue
		}
		if q.ValorMax != nil && c.ValorPrevisto > *q.ValorMax {
			continue
		}
		filtradas = append(filtradas, c)
	}
	return filtradas, nil
}

func contemInsensivel(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// CreateContaInput carrega os dados de uma nova conta. Fornecedor e
// categoria chegam por nome e são resolvidos (ou criados) aqui.
type CreateContaInput struct {
	Fornecedor      string
	Cnpj            string
	Categoria       string
	Descricao       string
	NumeroDocumento string
	Competencia     time.Time
	Vencimento      time.Time
	ValorPrevisto   float64
	Empresa         string
}

func (s *Service) CreateConta(ctx context.Context, in CreateContaInput) (*domain.Conta, error) {
	if strings.TrimSpace(in.Fornecedor) == "" {
		return nil, fmt.Errorf("fornecedor é obrigatório")
	}
	if in.Vencimento.IsZero() {
		return nil, fmt.Errorf("vencimento é obrigatório")
	}
	if in.ValorPrevisto < 0 {
		return nil, fmt.Errorf("valor previsto não pode ser negativo")
	}

	fornecedorID, err := s.ensureFornecedor(ctx, in.Fornecedor, in.Cnpj)
	if err != nil {
		return nil, err
	}
	categoriaID, err := s.ensureCategoria(ctx, in.Categoria)
	if err != nil {
		return nil, err
	}

	competencia := in.Competencia
	if competencia.IsZero() {
		competencia = primeiroDiaDoMes(in.Vencimento)
	}

	conta := &domain.Conta{
		FornecedorID:    fornecedorID,
		CategoriaID:     categoriaID,
		Descricao:       strings.TrimSpace(in.Descricao),
		NumeroDocumento: strings.TrimSpace(in.NumeroDocumento),
		Competencia:     competencia,
		Vencimento:      in.Vencimento,
		ValorPrevisto:   in.ValorPrevisto,
		Status:          domain.StatusProvisionado,
		Empresa:         strings.TrimSpace(in.Empresa),
		CriadoEm:        s.agora(),
	}
	id, err := s.store.InsertConta(ctx, conta)
	if err != nil {
		return nil, err
	}
	conta.ID = id
	return conta, nil
}

// ensureFornecedor resolve o fornecedor por nome (sem diferenciar
// caixa) ou por CNPJ; cria quando não existe. Um CNPJ novo para um
// fornecedor já cadastrado sem CNPJ é preenchido de volta.
func (s *Service) ensureFornecedor(ctx context.Context, nome, cnpj string) (int64, error) {
	nome = strings.TrimSpace(nome)
	cnpj = strings.TrimSpace(cnpj)

	fornecedores, err := s.store.ListFornecedores(ctx)
	if err != nil {
		return 0, err
	}
	for _, f := range fornecedores {
		if strings.EqualFold(f.Nome, nome) || (cnpj != "" && f.Cnpj == cnpj) {
			if cnpj != "" && f.Cnpj == "" {
				f.Cnpj = cnpj
				if err := s.store.UpdateFornecedor(ctx, &f); err != nil {
					s.log.Warn("não foi possível atualizar o CNPJ do fornecedor",
						zap.Int64("fornecedor_id", f.ID), zap.Error(err))
				}
			}
			return f.ID, nil
		}
	}
	return s.store.InsertFornecedor(ctx, &domain.Fornecedor{Nome: nome, Cnpj: cnpj})
}

func (s *Service) ensureCategoria(ctx context.Context, nome string) (int64, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		nome = "Geral"
	}
	cat, err := s.store.GetCategoriaPorNome(ctx, nome)
	if err != nil {
		return 0, err
	}
	if cat != nil {
		return cat.ID, nil
	}
	return s.store.InsertCategoria(ctx, nome)
}

// UpdateConta mescla os campos informados sobre a conta existente.
// O id nunca é sobrescrito; campos desconhecidos são ignorados.
func (s *Service) UpdateConta(ctx context.Context, id int64, campos map[string]any) (*domain.Conta, error) {
	if len(campos) == 0 {
		return s.store.GetConta(ctx, id)
	}
	delete(campos, "id")
	if err := s.store.UpdateContaCampos(ctx, id, campos); err != nil {
		return nil, err
	}
	return s.store.GetConta(ctx, id)
}

// PassoCascata relata o resultado de uma etapa da exclusão em cascata.
type PassoCascata struct {
	Tabela string `json:"tabela"`
	Ok     bool   `json:"ok"`
	Erro   string `json:"erro,omitempty"`
}

// DeleteConta remove pagamentos, aprovações e por fim a conta, nessa
// ordem. Sem transação: uma etapa que falha não desfaz as anteriores,
// e o resultado de cada uma é devolvido ao chamador.
func (s *Service) DeleteConta(ctx context.Context, id int64) []PassoCascata {
	passos := make([]PassoCascata, 0, 3)

	etapa := func(tabela string, fn func() error) bool {
		p := PassoCascata{Tabela: tabela, Ok: true}
		if err := fn(); err != nil {
			p.Ok = false
			p.Erro = err.Error()
			s.log.Warn("falha na exclusão em cascata",
				zap.Int64("conta_id", id), zap.String("tabela", tabela), zap.Error(err))
		}
		passos = append(passos, p)
		return p.Ok
	}

	ok := etapa("pagamentos", func() error { return s.store.DeletePagamentosDaConta(ctx, id) })
	if ok {
		ok = etapa("aprovacoes", func() error { return s.store.DeleteAprovacoesDaConta(ctx, id) })
	}
	if ok {
		etapa("contas", func() error { return s.store.DeleteConta(ctx, id) })
	}
	return passos
}

// DeleteTodasContas esvazia pagamentos, aprovações e contas. Exige a
// confirmação explícita do chamador.
func (s *Service) DeleteTodasContas(ctx context.Context, confirmado bool) (int64, error) {
	if !confirmado {
		return 0, fmt.Errorf("exclusão total exige confirmação explícita")
	}
	if err := s.store.DeleteTodosPagamentos(ctx); err != nil {
		return 0, fmt.Errorf("erro ao excluir pagamentos: %w", err)
	}
	if err := s.store.DeleteTodasAprovacoes(ctx); err != nil {
		return 0, fmt.Errorf("erro ao excluir aprovações: %w", err)
	}
	return s.store.DeleteTodasContas(ctx)
}

// Aprovar registra a aprovação e move a conta para "aprovado".
func (s *Service) Aprovar(ctx context.Context, contaID int64, aprovadoPor, observacao string) (*domain.Aprovacao, error) {
	conta, err := s.store.GetConta(ctx, contaID)
	if err != nil {
		return nil, err
	}
	if conta.Status == domain.StatusPago {
		return nil, fmt.Errorf("conta %d já está paga", contaID)
	}

	apr := &domain.Aprovacao{
		ContaID:       contaID,
		AprovadoPor:   strings.TrimSpace(aprovadoPor),
		DataAprovacao: s.agora(),
		Observacao:    strings.TrimSpace(observacao),
	}
	id, err := s.store.InsertAprovacao(ctx, apr)
	if err != nil {
		return nil, err
	}
	apr.ID = id

	if err := s.store.UpdateContaCampos(ctx, contaID, map[string]any{"status": domain.StatusAprovado}); err != nil {
		return nil, fmt.Errorf("aprovação registrada, mas o status da conta não foi atualizado: %w", err)
	}
	return apr, nil
}

// ReverterAprovacao remove a aprovação e devolve a conta para
// "provisionado". Última escrita vence; não há verificação de outras
// aprovações remanescentes.
func (s *Service) ReverterAprovacao(ctx context.Context, aprovacaoID int64) error {
	apr, err := s.store.GetAprovacao(ctx, aprovacaoID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAprovacao(ctx, aprovacaoID); err != nil {
		return err
	}
	return s.store.UpdateContaCampos(ctx, apr.ContaID, map[string]any{"status": domain.StatusProvisionado})
}

// LinhaRelatorioAprovacao junta a aprovação com a conta e o fornecedor.
type LinhaRelatorioAprovacao struct {
	Aprovacao  domain.Aprovacao `json:"aprovacao"`
	Conta      *domain.Conta    `json:"conta,omitempty"`
	Fornecedor string           `json:"fornecedor,omitempty"`
}

// RelatorioAprovacoes monta o relatório juntando três tabelas em
// memória. Falhas parciais degradam o relatório e viram avisos.
func (s *Service) RelatorioAprovacoes(ctx context.Context) ([]LinhaRelatorioAprovacao, []string, error) {
	aprovacoes, err := s.store.ListAprovacoes(ctx)
	if err != nil {
		return nil, nil, err
	}

	var avisos []string
	contasPorID := make(map[int64]domain.Conta)
	if contas, err := s.store.ListContas(ctx, storage.ContaFilter{}); err != nil {
		avisos = append(avisos, "não foi possível carregar as contas: "+err.Error())
	} else {
		for _, c := range contas {
			contasPorID[c.ID] = c
		}
	}
	fornecedoresPorID := make(map[int64]string)
	if fornecedores, err := s.store.ListFornecedores(ctx); err != nil {
		avisos = append(avisos, "não foi possível carregar os fornecedores: "+err.Error())
	} else {
		for _, f := range fornecedores {
			fornecedoresPorID[f.ID] = f.Nome
		}
	}

	linhas := make([]LinhaRelatorioAprovacao, 0, len(aprovacoes))
	for _, a := range aprovacoes {
		linha := LinhaRelatorioAprovacao{Aprovacao: a}
		if c, ok := contasPorID[a.ContaID]; ok {
			conta := c
			linha.Conta = &conta
			linha.Fornecedor = fornecedoresPorID[c.FornecedorID]
		}
		linhas = append(linhas, linha)
	}
	return linhas, avisos, nil
}

// RegistrarPagamento insere o pagamento e move a conta para "pago".
func (s *Service) RegistrarPagamento(ctx context.Context, p *domain.Pagamento) (*domain.Pagamento, error) {
	if _, err := s.store.GetConta(ctx, p.ContaID); err != nil {
		return nil, err
	}
	if p.ValorPago <= 0 {
		return nil, fmt.Errorf("valor pago deve ser positivo")
	}
	if p.DataPagamento.IsZero() {
		p.DataPagamento = s.agora()
	}

	id, err := s.store.InsertPagamento(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.store.UpdateContaCampos(ctx, p.ContaID, map[string]any{"status": domain.StatusPago}); err != nil {
		return nil, fmt.Errorf("pagamento registrado, mas o status da conta não foi atualizado: %w", err)
	}
	return p, nil
}

// Listagens de apoio expostas diretamente do store.

func (s *Service) ListPagamentos(ctx context.Context) ([]domain.Pagamento, error) {
	return s.store.ListPagamentos(ctx)
}

func (s *Service) ListFornecedores(ctx context.Context) ([]domain.Fornecedor, error) {
	return s.store.ListFornecedores(ctx)
}

func (s *Service) ListCategorias(ctx context.Context) ([]domain.Categoria, error) {
	return s.store.ListCategorias(ctx)
}

func (s *Service) ListExtrato(ctx context.Context) ([]domain.ExtratoMovimento, error) {
	return s.store.ListExtrato(ctx)
}

// RelatorioImportacaoExtrato devolve a transparência da importação:
// como o arquivo foi lido e o que aconteceu com cada grupo de linhas.
type RelatorioImportacaoExtrato struct {
	ImportID    string   `json:"import_id"`
	Encoding    string   `json:"encoding"`
	Delimitador string   `json:"delimitador"`
	Posicional  bool     `json:"posicional"`
	Avisos      []string `json:"avisos,omitempty"`
	Inseridas   int      `json:"inseridas"`
	Entradas    int      `json:"entradas_ignoradas"`
	Descartadas int      `json:"descartadas"`
}

// ImportarExtrato roda o pipeline de importação sobre o CSV e insere
// as saídas na tabela de extrato, todas marcadas com o mesmo id de
// lote. Linha que falha na inserção vira descarte com aviso; o lote
// segue.
func (s *Service) ImportarExtrato(ctx context.Context, data []byte) (*RelatorioImportacaoExtrato, error) {
	imp, err := importer.ImportarExtrato(data)
	if err != nil {
		return nil, err
	}

	rel := &RelatorioImportacaoExtrato{
		ImportID:    uuid.NewString(),
		Encoding:    imp.Encoding,
		Delimitador: imp.Delimitador,
		Posicional:  imp.Posicional,
		Avisos:      imp.Avisos,
		Entradas:    imp.Entradas,
		Descartadas: imp.Descartadas,
	}

	for _, linha := range imp.Linhas {
		mov := &domain.ExtratoMovimento{
			Data:      linha.Data,
			Historico: linha.Historico,
			Valor:     linha.Valor,
			ImportID:  rel.ImportID,
		}
		if _, err := s.store.InsertMovimento(ctx, mov); err != nil {
			rel.Descartadas++
			rel.Avisos = append(rel.Avisos, fmt.Sprintf("movimento de %s (%s) não inserido: %s",
				linha.Data.Format("02/01/2006"), money.FormatBRL(linha.Valor), err.Error()))
			continue
		}
		rel.Inseridas++
	}

	s.log.Info("extrato importado",
		zap.String("import_id", rel.ImportID),
		zap.String("encoding", rel.Encoding),
		zap.Int("inseridas", rel.Inseridas),
		zap.Int("descartadas", rel.Descartadas))
	return rel, nil
}

// RelatorioImportacaoContas resume a importação da planilha de
// provisionamento.
type RelatorioImportacaoContas struct {
	Encoding    string   `json:"encoding"`
	Delimitador string   `json:"delimitador,omitempty"`
	Posicional  bool     `json:"posicional"`
	Avisos      []string `json:"avisos,omitempty"`
	Inseridas   int      `json:"inseridas"`
	Descartadas int      `json:"descartadas"`
}

// ImportarContas lê a planilha (.xlsx, .xls ou .csv) e provisiona uma
// conta por linha válida, resolvendo fornecedor e categoria por nome.
// Linha que falha na inserção vira descarte com aviso; o lote segue.
func (s *Service) ImportarContas(ctx context.Context, data []byte, nomeArquivo string) (*RelatorioImportacaoContas, error) {
	imp, err := importer.ImportarContas(bytes.NewReader(data), nomeArquivo)
	if err != nil {
		return nil, err
	}

	rel := &RelatorioImportacaoContas{
		Encoding:    imp.Encoding,
		Delimitador: imp.Delimitador,
		Posicional:  imp.Posicional,
		Avisos:      imp.Avisos,
		Descartadas: imp.Descartadas,
	}

	for i, linha := range imp.Linhas {
		_, err := s.CreateConta(ctx, CreateContaInput{
			Fornecedor:      linha.Fornecedor,
			Cnpj:            linha.Cnpj,
			Categoria:       linha.Categoria,
			Descricao:       linha.Descricao,
			NumeroDocumento: linha.NumeroDocumento,
			Competencia:     linha.Competencia,
			Vencimento:      linha.Vencimento,
			ValorPrevisto:   linha.ValorPrevisto,
			Empresa:         linha.Empresa,
		})
		if err != nil {
			rel.Descartadas++
			rel.Avisos = append(rel.Avisos, fmt.Sprintf("linha %d (%s, %s): %s",
				i+2, linha.Fornecedor, money.FormatBRL(linha.ValorPrevisto), err.Error()))
			continue
		}
		rel.Inseridas++
	}

	s.log.Info("planilha de contas importada",
		zap.String("arquivo", nomeArquivo),
		zap.Int("inseridas", rel.Inseridas),
		zap.Int("descartadas", rel.Descartadas))
	return rel, nil
}

// SugestaoConciliacao é a resposta da geração de candidatos.
type SugestaoConciliacao struct {
	Janela     int                     `json:"janela"`
	Candidatos []domain.MatchCandidate `json:"candidatos"`
}

// SugerirConciliacao gera candidatos pareando o extrato com as contas
// em aberto (provisionado ou aprovado), restritas pelos filtros.
func (s *Service) SugerirConciliacao(ctx context.Context, janela int, empresa string, fornecedorID int64) (*SugestaoConciliacao, error) {
	movimentos, err := s.store.ListExtrato(ctx)
	if err != nil {
		return nil, err
	}
	candidatas, err := s.store.ListContas(ctx, storage.ContaFilter{
		Empresa:      empresa,
		Status:       []string{domain.StatusProvisionado, domain.StatusAprovado},
		FornecedorID: fornecedorID,
	})
	if err != nil {
		return nil, err
	}

	janela = reconcile.NormalizarJanela(janela)
	candidatos := reconcile.Match(movimentos, candidatas, janela)

	// nome do fornecedor só para exibição; falha aqui não degrada o match
	if fornecedores, err := s.store.ListFornecedores(ctx); err == nil {
		nomes := make(map[int64]string, len(fornecedores))
		for _, f := range fornecedores {
			nomes[f.ID] = f.Nome
		}
		porConta := make(map[int64]int64, len(candidatas))
		for _, c := range candidatas {
			porConta[c.ID] = c.FornecedorID
		}
		for i := range candidatos {
			candidatos[i].ContaFornecedor = nomes[porConta[candidatos[i].ContaID]]
		}
	}

	return &SugestaoConciliacao{Janela: janela, Candidatos: candidatos}, nil
}

// FalhaConfirmacao relata um candidato cuja confirmação não completou.
type FalhaConfirmacao struct {
	ExtratoID int64  `json:"extrato_id"`
	ContaID   int64  `json:"conta_id"`
	Erro      string `json:"erro"`
}

// ResultadoConfirmacao resume a confirmação da conciliação.
type ResultadoConfirmacao struct {
	Confirmadas int                `json:"confirmadas"`
	Duplicadas  int                `json:"duplicadas_descartadas"`
	Falhas      []FalhaConfirmacao `json:"falhas,omitempty"`
}

// ConfirmarConciliacao materializa os candidatos aceitos: deduplica
// por movimento de extrato, insere um pagamento conciliado por
// candidato e marca a conta como paga. Cada candidato é independente;
// falhas são anotadas e o restante segue.
func (s *Service) ConfirmarConciliacao(ctx context.Context, candidatos []domain.MatchCandidate) *ResultadoConfirmacao {
	unicos := reconcile.Dedupe(candidatos)
	res := &ResultadoConfirmacao{Duplicadas: len(candidatos) - len(unicos)}

	for _, c := range unicos {
		pag := &domain.Pagamento{
			ContaID:        c.ContaID,
			DataPagamento:  c.ExtratoData,
			ValorPago:      math.Abs(c.ExtratoValor),
			FormaPagamento: "Extrato/Conciliação",
			Conciliado:     true,
		}
		if _, err := s.store.InsertPagamento(ctx, pag); err != nil {
			res.Falhas = append(res.Falhas, FalhaConfirmacao{ExtratoID: c.ExtratoID, ContaID: c.ContaID, Erro: err.Error()})
			continue
		}
		if err := s.store.UpdateContaCampos(ctx, c.ContaID, map[string]any{"status": domain.StatusPago}); err != nil {
			res.Falhas = append(res.Falhas, FalhaConfirmacao{
				ExtratoID: c.ExtratoID, ContaID: c.ContaID,
				Erro: "pagamento inserido, mas o status não foi atualizado: " + err.Error(),
			})
			continue
		}
		res.Confirmadas++
	}

	s.log.Info("conciliação confirmada",
		zap.Int("confirmadas", res.Confirmadas),
		zap.Int("duplicadas", res.Duplicadas),
		zap.Int("falhas", len(res.Falhas)))
	return res
}

// SerieMensal é um ponto da série de vencimentos por mês.
type SerieMensal struct {
	Mes   string  `json:"mes"` // AAAA-MM
	Total float64 `json:"total"`
}

// TotalCategoria agrega o previsto por categoria.
type TotalCategoria struct {
	Categoria string  `json:"categoria"`
	Total     float64 `json:"total"`
}

// Dashboard é o agregado da página inicial.
type Dashboard struct {
	TotalPrevisto  float64          `json:"total_previsto"`
	TotalPago      float64          `json:"total_pago"`
	TotalEmAberto  float64          `json:"total_em_aberto"`
	PercentualPago float64          `json:"percentual_pago"`
	PorStatus      map[string]int   `json:"por_status"`
	VencimentosMes []SerieMensal    `json:"vencimentos_por_mes"`
	PorCategoria   []TotalCategoria `json:"por_categoria_90_dias"`
	ContasVencidas []domain.Conta   `json:"contas_vencidas"`
	Avisos         []string         `json:"avisos,omitempty"`
}

// MontarDashboard calcula os agregados em memória. Falhas de consulta
// degradam a seção correspondente e viram avisos; a página nunca
// falha por inteiro.
func (s *Service) MontarDashboard(ctx context.Context) *Dashboard {
	d := &Dashboard{PorStatus: make(map[string]int)}
	hoje := truncarDia(s.agora())

	contas, err := s.store.ListContas(ctx, storage.ContaFilter{})
	if err != nil {
		d.Avisos = append(d.Avisos, "não foi possível carregar as contas: "+err.Error())
		contas = nil
	}
	pagamentos, err := s.store.ListPagamentos(ctx)
	if err != nil {
		d.Avisos = append(d.Avisos, "não foi possível carregar os pagamentos: "+err.Error())
		pagamentos = nil
	}

	for _, p := range pagamentos {
		d.TotalPago += p.ValorPago
	}

	limiteSerie := hoje.AddDate(0, 6, 0)
	inicioCategoria := hoje.AddDate(0, 0, -90)
	porMes := make(map[string]float64)
	porCategoriaID := make(map[int64]float64)

	for _, c := range contas {
		d.TotalPrevisto += c.ValorPrevisto
		d.PorStatus[c.Status]++

		if c.EmAberto() {
			d.TotalEmAberto += c.ValorPrevisto
			if !c.Vencimento.Before(hoje) && c.Vencimento.Before(limiteSerie) {
				porMes[c.Vencimento.Format("2006-01")] += c.ValorPrevisto
			}
		}

		if c.Status != domain.StatusPago && c.Status != domain.StatusCancelado &&
			truncarDia(c.Vencimento).Before(hoje) {
			d.ContasVencidas = append(d.ContasVencidas, c)
		}

		if !c.Vencimento.Before(inicioCategoria) && !c.Vencimento.After(hoje.AddDate(0, 0, 1)) {
			porCategoriaID[c.CategoriaID] += c.ValorPrevisto
		}
	}

	if d.TotalPrevisto > 0 {
		d.PercentualPago = 100 * d.TotalPago / d.TotalPrevisto
	}

	// série contínua: 6 meses a partir do mês corrente, com zeros
	mes := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		chave := mes.Format("2006-01")
		d.VencimentosMes = append(d.VencimentosMes, SerieMensal{Mes: chave, Total: porMes[chave]})
		mes = mes.AddDate(0, 1, 0)
	}

	if categorias, err := s.store.ListCategorias(ctx); err != nil {
		d.Avisos = append(d.Avisos, "não foi possível carregar as categorias: "+err.Error())
	} else {
		for _, cat := range categorias {
			if total, ok := porCategoriaID[cat.ID]; ok {
				d.PorCategoria = append(d.PorCategoria, TotalCategoria{Categoria: cat.Nome, Total: total})
			}
		}
	}

	return d
}

func primeiroDiaDoMes(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
