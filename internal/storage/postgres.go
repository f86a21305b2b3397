package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore implementa Store sobre o Postgres hospedado via pgx.
// Sem retry e sem transação entre tabelas: falhas são devolvidas ao
// chamador, que degrada a resposta em vez de abortar a página.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewPostgres abre o pool de conexões, valida a conectividade e
// garante o schema.
func NewPostgres(ctx context.Context, databaseURL string, log *zap.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar a URL do banco: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pool de conexões: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	log.Info("conectado ao Postgres")
	return &PostgresStore{pool: pool, log: log}, nil
}

// Close libera o pool.
func (s *PostgresStore) Close() { s.pool.Close() }

const colunasConta = "id, fornecedor_id, categoria_id, descricao, numero_documento, competencia, vencimento, valor_previsto, status, empresa, criado_em"

func scanConta(row pgx.Row) (*domain.Conta, error) {
	var c domain.Conta
	err := row.Scan(&c.ID, &c.FornecedorID, &c.CategoriaID, &c.Descricao, &c.NumeroDocumento,
		&c.Competencia, &c.Vencimento, &c.ValorPrevisto, &c.Status, &c.Empresa, &c.CriadoEm)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) ListContas(ctx context.Context, f ContaFilter) ([]domain.Conta, error) {
	var (
		clausulas []string
		args      []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Empresa != "" {
		clausulas = append(clausulas, "empresa = "+arg(f.Empresa))
	}
	if len(f.Status) > 0 {
		clausulas = append(clausulas, "status = ANY("+arg(f.Status)+")")
	}
	if f.FornecedorID != 0 {
		clausulas = append(clausulas, "fornecedor_id = "+arg(f.FornecedorID))
	}
	if f.CategoriaID != 0 {
		clausulas = append(clausulas, "categoria_id = "+arg(f.CategoriaID))
	}

	query := "SELECT " + colunasConta + " FROM contas"
	if len(clausulas) > 0 {
		query += " WHERE " + strings.Join(clausulas, " AND ")
	}
	query += " ORDER BY criado_em DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas: %w", err)
	}
	defer rows.Close()

	var contas []domain.Conta
	for rows.Next() {
		c, err := scanConta(rows)
		if err != nil {
			return nil, err
		}
		contas = append(contas, *c)
	}
	return contas, rows.Err()
}

func (s *PostgresStore) GetConta(ctx context.Context, id int64) (*domain.Conta, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+colunasConta+" FROM contas WHERE id = $1", id)
	c, err := scanConta(row)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta %d: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) InsertConta(ctx context.Context, c *domain.Conta) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO contas (fornecedor_id, categoria_id, descricao, numero_documento, competencia, vencimento, valor_previsto, status, empresa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		c.FornecedorID, c.CategoriaID, c.Descricao, c.NumeroDocumento,
		c.Competencia, c.Vencimento, c.ValorPrevisto, c.Status, c.Empresa).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir conta: %w", err)
	}
	return id, nil
}

// UpdateContaCampos relê a linha e regrava apenas com os campos
// fornecidos mesclados. Leitura e escrita não são atômicas; edições
// concorrentes podem se perder (comportamento herdado e documentado).
func (s *PostgresStore) UpdateContaCampos(ctx context.Context, id int64, campos map[string]any) error {
	atual, err := s.GetConta(ctx, id)
	if err != nil {
		return err
	}

	for chave, valor := range campos {
		switch chave {
		case "status":
			atual.Status, _ = valor.(string)
		case "descricao":
			atual.Descricao, _ = valor.(string)
		case "numero_documento":
			atual.NumeroDocumento, _ = valor.(string)
		case "empresa":
			atual.Empresa, _ = valor.(string)
		case "valor_previsto":
			if v, ok := valor.(float64); ok {
				atual.ValorPrevisto = v
			}
		case "vencimento":
			if v, ok := valor.(time.Time); ok {
				atual.Vencimento = v
			}
		case "competencia":
			if v, ok := valor.(time.Time); ok {
				atual.Competencia = v
			}
		case "fornecedor_id":
			if v, ok := valor.(int64); ok {
				atual.FornecedorID = v
			}
		case "categoria_id":
			if v, ok := valor.(int64); ok {
				atual.CategoriaID = v
			}
		}
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE contas SET fornecedor_id = $1, categoria_id = $2, descricao = $3, numero_documento = $4,
		 competencia = $5, vencimento = $6, valor_previsto = $7, status = $8, empresa = $9 WHERE id = $10`,
		atual.FornecedorID, atual.CategoriaID, atual.Descricao, atual.NumeroDocumento,
		atual.Competencia, atual.Vencimento, atual.ValorPrevisto, atual.Status, atual.Empresa, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar conta %d: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) DeleteConta(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM contas WHERE id = $1", id)
	return err
}

func (s *PostgresStore) DeleteTodasContas(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM contas")
	if err != nil {
		return 0, fmt.Errorf("erro ao excluir contas: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) ListFornecedores(ctx context.Context) ([]domain.Fornecedor, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, nome, COALESCE(cnpj, ''), COALESCE(email, ''), COALESCE(telefone, '') FROM fornecedores ORDER BY nome")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar fornecedores: %w", err)
	}
	defer rows.Close()

	var fornecedores []domain.Fornecedor
	for rows.Next() {
		var f domain.Fornecedor
		if err := rows.Scan(&f.ID, &f.Nome, &f.Cnpj, &f.Email, &f.Telefone); err != nil {
			return nil, err
		}
		fornecedores = append(fornecedores, f)
	}
	return fornecedores, rows.Err()
}

func (s *PostgresStore) InsertFornecedor(ctx context.Context, f *domain.Fornecedor) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO fornecedores (nome, cnpj, email, telefone) VALUES ($1, $2, $3, $4) RETURNING id",
		f.Nome, f.Cnpj, f.Email, f.Telefone).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir fornecedor: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) UpdateFornecedor(ctx context.Context, f *domain.Fornecedor) error {
	_, err := s.pool.Exec(ctx,
		"UPDATE fornecedores SET nome = $1, cnpj = $2, email = $3, telefone = $4 WHERE id = $5",
		f.Nome, f.Cnpj, f.Email, f.Telefone, f.ID)
	return err
}

func (s *PostgresStore) ListCategorias(ctx context.Context) ([]domain.Categoria, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, nome FROM categorias ORDER BY nome")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar categorias: %w", err)
	}
	defer rows.Close()

	var categorias []domain.Categoria
	for rows.Next() {
		var c domain.Categoria
		if err := rows.Scan(&c.ID, &c.Nome); err != nil {
			return nil, err
		}
		categorias = append(categorias, c)
	}
	return categorias, rows.Err()
}

func (s *PostgresStore) GetCategoriaPorNome(ctx context.Context, nome string) (*domain.Categoria, error) {
	var c domain.Categoria
	err := s.pool.QueryRow(ctx, "SELECT id, nome FROM categorias WHERE nome = $1", nome).Scan(&c.ID, &c.Nome)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar categoria: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) InsertCategoria(ctx context.Context, nome string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, "INSERT INTO categorias (nome) VALUES ($1) RETURNING id", nome).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir categoria: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListAprovacoes(ctx context.Context) ([]domain.Aprovacao, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, conta_id, aprovado_por, data_aprovacao, observacao, criado_em FROM aprovacoes ORDER BY criado_em DESC")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar aprovações: %w", err)
	}
	defer rows.Close()

	var aprovacoes []domain.Aprovacao
	for rows.Next() {
		var a domain.Aprovacao
		if err := rows.Scan(&a.ID, &a.ContaID, &a.AprovadoPor, &a.DataAprovacao, &a.Observacao, &a.CriadoEm); err != nil {
			return nil, err
		}
		aprovacoes = append(aprovacoes, a)
	}
	return aprovacoes, rows.Err()
}

func (s *PostgresStore) GetAprovacao(ctx context.Context, id int64) (*domain.Aprovacao, error) {
	var a domain.Aprovacao
	err := s.pool.QueryRow(ctx,
		"SELECT id, conta_id, aprovado_por, data_aprovacao, observacao, criado_em FROM aprovacoes WHERE id = $1", id).
		Scan(&a.ID, &a.ContaID, &a.AprovadoPor, &a.DataAprovacao, &a.Observacao, &a.CriadoEm)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar aprovação %d: %w", id, err)
	}
	return &a, nil
}

func (s *PostgresStore) InsertAprovacao(ctx context.Context, a *domain.Aprovacao) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO aprovacoes (conta_id, aprovado_por, data_aprovacao, observacao) VALUES ($1, $2, $3, $4) RETURNING id",
		a.ContaID, a.AprovadoPor, a.DataAprovacao, a.Observacao).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir aprovação: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) DeleteAprovacao(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM aprovacoes WHERE id = $1", id)
	return err
}

func (s *PostgresStore) DeleteAprovacoesDaConta(ctx context.Context, contaID int64) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM aprovacoes WHERE conta_id = $1", contaID)
	return err
}

func (s *PostgresStore) DeleteTodasAprovacoes(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM aprovacoes")
	return err
}

func (s *PostgresStore) ListPagamentos(ctx context.Context) ([]domain.Pagamento, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, conta_id, data_pagamento, valor_pago, forma_pagamento, conciliado FROM pagamentos ORDER BY data_pagamento DESC")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	var pagamentos []domain.Pagamento
	for rows.Next() {
		var p domain.Pagamento
		if err := rows.Scan(&p.ID, &p.ContaID, &p.DataPagamento, &p.ValorPago, &p.FormaPagamento, &p.Conciliado); err != nil {
			return nil, err
		}
		pagamentos = append(pagamentos, p)
	}
	return pagamentos, rows.Err()
}

func (s *PostgresStore) InsertPagamento(ctx context.Context, p *domain.Pagamento) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO pagamentos (conta_id, data_pagamento, valor_pago, forma_pagamento, conciliado) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		p.ContaID, p.DataPagamento, p.ValorPago, p.FormaPagamento, p.Conciliado).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir pagamento: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) DeletePagamentosDaConta(ctx context.Context, contaID int64) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM pagamentos WHERE conta_id = $1", contaID)
	return err
}

func (s *PostgresStore) DeleteTodosPagamentos(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM pagamentos")
	return err
}

func (s *PostgresStore) ListExtrato(ctx context.Context) ([]domain.ExtratoMovimento, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, data, historico, valor, import_id FROM extrato ORDER BY data")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar extrato: %w", err)
	}
	defer rows.Close()

	var movimentos []domain.ExtratoMovimento
	for rows.Next() {
		var m domain.ExtratoMovimento
		if err := rows.Scan(&m.ID, &m.Data, &m.Historico, &m.Valor, &m.ImportID); err != nil {
			return nil, err
		}
		movimentos = append(movimentos, m)
	}
	return movimentos, rows.Err()
}

func (s *PostgresStore) InsertMovimento(ctx context.Context, m *domain.ExtratoMovimento) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO extrato (data, historico, valor, import_id) VALUES ($1, $2, $3, $4) RETURNING id",
		m.Data, m.Historico, m.Valor, m.ImportID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir movimento: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetUsuario(ctx context.Context, username string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := s.pool.QueryRow(ctx,
		"SELECT username, password_hash, admin FROM usuarios WHERE username = $1", username).
		Scan(&u.Username, &u.PasswordHash, &u.Admin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) ListUsuarios(ctx context.Context) ([]domain.Usuario, error) {
	rows, err := s.pool.Query(ctx, "SELECT username, password_hash, admin FROM usuarios ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	var usuarios []domain.Usuario
	for rows.Next() {
		var u domain.Usuario
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Admin); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (s *PostgresStore) InsertUsuario(ctx context.Context, u *domain.Usuario) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO usuarios (username, password_hash, admin) VALUES ($1, $2, $3)",
		u.Username, u.PasswordHash, u.Admin)
	if err != nil {
		return fmt.Errorf("erro ao inserir usuário: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteUsuario(ctx context.Context, username string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM usuarios WHERE username = $1", username)
	return err
}
