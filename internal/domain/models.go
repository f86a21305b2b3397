// internal/domain/models.go
package domain

import "time"

// Status possíveis de uma conta ao longo do ciclo de vida.
const (
	StatusProvisionado = "provisionado"
	StatusAprovado     = "aprovado"
	StatusPago         = "pago"
	StatusVencido      = "vencido"
	StatusCancelado    = "cancelado"
)

// Conta representa uma conta a pagar ("conta"), do provisionamento ao pagamento.
type Conta struct {
	ID              int64     `json:"id"`
	FornecedorID    int64     `json:"fornecedor_id"`
	CategoriaID     int64     `json:"categoria_id"`
	Descricao       string    `json:"descricao"`
	NumeroDocumento string    `json:"numero_documento,omitempty"`
	Competencia     time.Time `json:"competencia"`
	Vencimento      time.Time `json:"vencimento"`
	ValorPrevisto   float64   `json:"valor_previsto"`
	Status          string    `json:"status"`
	Empresa         string    `json:"empresa,omitempty"`
	CriadoEm        time.Time `json:"criado_em"`
}

// EmAberto informa se a conta ainda participa de aprovação/pagamento.
func (c Conta) EmAberto() bool {
	return c.Status == StatusProvisionado || c.Status == StatusAprovado
}

// Fornecedor cadastrado no sistema.
type Fornecedor struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Cnpj     string `json:"cnpj,omitempty"`
	Email    string `json:"email,omitempty"`
	Telefone string `json:"telefone,omitempty"`
}

// Categoria de despesa.
type Categoria struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Aprovacao vincula uma conta a quem a aprovou.
type Aprovacao struct {
	ID            int64     `json:"id"`
	ContaID       int64     `json:"conta_id"`
	AprovadoPor   string    `json:"aprovado_por"`
	DataAprovacao time.Time `json:"data_aprovacao"`
	Observacao    string    `json:"observacao,omitempty"`
	CriadoEm      time.Time `json:"criado_em"`
}

// Pagamento registra a quitação de uma conta.
type Pagamento struct {
	ID             int64     `json:"id"`
	ContaID        int64     `json:"conta_id"`
	DataPagamento  time.Time `json:"data_pagamento"`
	ValorPago      float64   `json:"valor_pago"`
	FormaPagamento string    `json:"forma_pagamento"`
	Conciliado     bool      `json:"conciliado"`
}

// ExtratoMovimento é uma linha importada do extrato bancário.
// Valor negativo indica saída de recursos.
type ExtratoMovimento struct {
	ID        int64     `json:"id"`
	Data      time.Time `json:"data"`
	Historico string    `json:"historico"`
	Valor     float64   `json:"valor"`
	ImportID  string    `json:"import_id,omitempty"`
}

// Saida informa se o movimento representa dinheiro saindo da conta.
func (m ExtratoMovimento) Saida() bool { return m.Valor < 0 }

// MatchCandidate pareia um movimento de extrato com uma conta em aberto.
// Efêmero: só vira pagamento após confirmação do usuário.
type MatchCandidate struct {
	ExtratoID        int64     `json:"extrato_id"`
	ExtratoData      time.Time `json:"extrato_data"`
	ExtratoHistorico string    `json:"extrato_historico"`
	ExtratoValor     float64   `json:"extrato_valor"`
	ContaID          int64     `json:"conta_id"`
	ContaEmpresa     string    `json:"conta_empresa,omitempty"`
	ContaFornecedor  string    `json:"conta_fornecedor,omitempty"`
	ContaDescricao   string    `json:"conta_descricao,omitempty"`
	ContaVencimento  time.Time `json:"conta_vencimento"`
	ContaValor       float64   `json:"conta_valor"`
	DiffValor        float64   `json:"diff_valor"`
	DiffDias         int       `json:"diff_dias"`
}

// Usuario do sistema. A senha nunca sai do serviço de autenticação.
type Usuario struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"admin"`
}
