// Package storage é o gateway de persistência: operações por tabela
// com filtros de igualdade e ordenação, delegadas ao banco hospedado.
package storage

import (
	"context"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

// ContaFilter restringe a listagem de contas por igualdade.
type ContaFilter struct {
	Empresa      string
	Status       []string
	FornecedorID int64
	CategoriaID  int64
}

// Store expõe as operações de persistência que o núcleo consome. A
// implementação concreta fala com o Postgres hospedado; os testes usam
// um fake em memória.
type Store interface {
	ListContas(ctx context.Context, f ContaFilter) ([]domain.Conta, error)
	GetConta(ctx context.Context, id int64) (*domain.Conta, error)
	InsertConta(ctx context.Context, c *domain.Conta) (int64, error)
	// UpdateContaCampos mescla apenas os campos fornecidos sobre a
	// linha existente (read-modify-write; o id nunca é sobrescrito).
	UpdateContaCampos(ctx context.Context, id int64, campos map[string]any) error
	DeleteConta(ctx context.Context, id int64) error
	DeleteTodasContas(ctx context.Context) (int64, error)

	ListFornecedores(ctx context.Context) ([]domain.Fornecedor, error)
	InsertFornecedor(ctx context.Context, f *domain.Fornecedor) (int64, error)
	UpdateFornecedor(ctx context.Context, f *domain.Fornecedor) error

	ListCategorias(ctx context.Context) ([]domain.Categoria, error)
	GetCategoriaPorNome(ctx context.Context, nome string) (*domain.Categoria, error)
	InsertCategoria(ctx context.Context, nome string) (int64, error)

	ListAprovacoes(ctx context.Context) ([]domain.Aprovacao, error)
	GetAprovacao(ctx context.Context, id int64) (*domain.Aprovacao, error)
	InsertAprovacao(ctx context.Context, a *domain.Aprovacao) (int64, error)
	DeleteAprovacao(ctx context.Context, id int64) error
	DeleteAprovacoesDaConta(ctx context.Context, contaID int64) error
	DeleteTodasAprovacoes(ctx context.Context) error

	ListPagamentos(ctx context.Context) ([]domain.Pagamento, error)
	InsertPagamento(ctx context.Context, p *domain.Pagamento) (int64, error)
	DeletePagamentosDaConta(ctx context.Context, contaID int64) error
	DeleteTodosPagamentos(ctx context.Context) error

	ListExtrato(ctx context.Context) ([]domain.ExtratoMovimento, error)
	InsertMovimento(ctx context.Context, m *domain.ExtratoMovimento) (int64, error)

	GetUsuario(ctx context.Context, username string) (*domain.Usuario, error)
	ListUsuarios(ctx context.Context) ([]domain.Usuario, error)
	InsertUsuario(ctx context.Context, u *domain.Usuario) error
	DeleteUsuario(ctx context.Context, username string) error
}
