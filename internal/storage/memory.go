package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

// MemoryStore é a implementação em memória do Store, usada nos testes
// e em execução local sem banco. Reproduz a semântica do Postgres:
// ids sequenciais, filtros de igualdade e contas ordenadas da mais
// recente para a mais antiga.
type MemoryStore struct {
	mu sync.Mutex

	contas       map[int64]domain.Conta
	fornecedores map[int64]domain.Fornecedor
	categorias   map[int64]domain.Categoria
	aprovacoes   map[int64]domain.Aprovacao
	pagamentos   map[int64]domain.Pagamento
	extrato      map[int64]domain.ExtratoMovimento
	usuarios     map[string]domain.Usuario

	seq int64

	// FalharEm força erro nas operações nomeadas, para exercitar os
	// caminhos degradados.
	FalharEm map[string]error
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		contas:       make(map[int64]domain.Conta),
		fornecedores: make(map[int64]domain.Fornecedor),
		categorias:   make(map[int64]domain.Categoria),
		aprovacoes:   make(map[int64]domain.Aprovacao),
		pagamentos:   make(map[int64]domain.Pagamento),
		extrato:      make(map[int64]domain.ExtratoMovimento),
		usuarios:     make(map[string]domain.Usuario),
		FalharEm:     make(map[string]error),
	}
}

func (s *MemoryStore) falha(op string) error { return s.FalharEm[op] }

func (s *MemoryStore) proximoID() int64 {
	s.seq++
	return s.seq
}

func (s *MemoryStore) ListContas(_ context.Context, f ContaFilter) ([]domain.Conta, error) {
	if err := s.falha("ListContas"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Conta
	for _, c := range s.contas {
		if f.Empresa != "" && c.Empresa != f.Empresa {
			continue
		}
		if len(f.Status) > 0 && !contemStatus(f.Status, c.Status) {
			continue
		}
		if f.FornecedorID != 0 && c.FornecedorID != f.FornecedorID {
			continue
		}
		if f.CategoriaID != 0 && c.CategoriaID != f.CategoriaID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CriadoEm.Equal(out[j].CriadoEm) {
			return out[i].CriadoEm.After(out[j].CriadoEm)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func contemStatus(lista []string, status string) bool {
	for _, s := range lista {
		if s == status {
			return true
		}
	}
	return false
}

func (s *MemoryStore) GetConta(_ context.Context, id int64) (*domain.Conta, error) {
	if err := s.falha("GetConta"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contas[id]
	if !ok {
		return nil, fmt.Errorf("conta %d não encontrada", id)
	}
	return &c, nil
}

func (s *MemoryStore) InsertConta(_ context.Context, c *domain.Conta) (int64, error) {
	if err := s.falha("InsertConta"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	copia := *c
	copia.ID = id
	if copia.CriadoEm.IsZero() {
		copia.CriadoEm = time.Now()
	}
	s.contas[id] = copia
	return id, nil
}

func (s *MemoryStore) UpdateContaCampos(_ context.Context, id int64, campos map[string]any) error {
	if err := s.falha("UpdateContaCampos"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contas[id]
	if !ok {
		return fmt.Errorf("conta %d não encontrada", id)
	}
	for chave, valor := range campos {
		switch chave {
		case "status":
			c.Status, _ = valor.(string)
		case "descricao":
			c.Descricao, _ = valor.(string)
		case "numero_documento":
			c.NumeroDocumento, _ = valor.(string)
		case "empresa":
			c.Empresa, _ = valor.(string)
		case "valor_previsto":
			if v, ok := valor.(float64); ok {
				c.ValorPrevisto = v
			}
		case "vencimento":
			if v, ok := valor.(time.Time); ok {
				c.Vencimento = v
			}
		case "competencia":
			if v, ok := valor.(time.Time); ok {
				c.Competencia = v
			}
		case "fornecedor_id":
			if v, ok := valor.(int64); ok {
				c.FornecedorID = v
			}
		case "categoria_id":
			if v, ok := valor.(int64); ok {
				c.CategoriaID = v
			}
		}
	}
	s.contas[id] = c
	return nil
}

func (s *MemoryStore) DeleteConta(_ context.Context, id int64) error {
	if err := s.falha("DeleteConta"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contas, id)
	return nil
}

func (s *MemoryStore) DeleteTodasContas(_ context.Context) (int64, error) {
	if err := s.falha("DeleteTodasContas"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.contas))
	s.contas = make(map[int64]domain.Conta)
	return n, nil
}

func (s *MemoryStore) ListFornecedores(_ context.Context) ([]domain.Fornecedor, error) {
	if err := s.falha("ListFornecedores"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Fornecedor
	for _, f := range s.fornecedores {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (s *MemoryStore) InsertFornecedor(_ context.Context, f *domain.Fornecedor) (int64, error) {
	if err := s.falha("InsertFornecedor"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	copia := *f
	copia.ID = id
	s.fornecedores[id] = copia
	return id, nil
}

func (s *MemoryStore) UpdateFornecedor(_ context.Context, f *domain.Fornecedor) error {
	if err := s.falha("UpdateFornecedor"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fornecedores[f.ID]; !ok {
		return fmt.Errorf("fornecedor %d não encontrado", f.ID)
	}
	s.fornecedores[f.ID] = *f
	return nil
}

func (s *MemoryStore) ListCategorias(_ context.Context) ([]domain.Categoria, error) {
	if err := s.falha("ListCategorias"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Categoria
	for _, c := range s.categorias {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (s *MemoryStore) GetCategoriaPorNome(_ context.Context, nome string) (*domain.Categoria, error) {
	if err := s.falha("GetCategoriaPorNome"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categorias {
		if strings.EqualFold(c.Nome, nome) {
			copia := c
			return &copia, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) InsertCategoria(_ context.Context, nome string) (int64, error) {
	if err := s.falha("InsertCategoria"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	s.categorias[id] = domain.Categoria{ID: id, Nome: nome}
	return id, nil
}

func (s *MemoryStore) ListAprovacoes(_ context.Context) ([]domain.Aprovacao, error) {
	if err := s.falha("ListAprovacoes"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Aprovacao
	for _, a := range s.aprovacoes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetAprovacao(_ context.Context, id int64) (*domain.Aprovacao, error) {
	if err := s.falha("GetAprovacao"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.aprovacoes[id]
	if !ok {
		return nil, fmt.Errorf("aprovação %d não encontrada", id)
	}
	return &a, nil
}

func (s *MemoryStore) InsertAprovacao(_ context.Context, a *domain.Aprovacao) (int64, error) {
	if err := s.falha("InsertAprovacao"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	copia := *a
	copia.ID = id
	s.aprovacoes[id] = copia
	return id, nil
}

func (s *MemoryStore) DeleteAprovacao(_ context.Context, id int64) error {
	if err := s.falha("DeleteAprovacao"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.aprovacoes, id)
	return nil
}

func (s *MemoryStore) DeleteAprovacoesDaConta(_ context.Context, contaID int64) error {
	if err := s.falha("DeleteAprovacoesDaConta"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.aprovacoes {
		if a.ContaID == contaID {
			delete(s.aprovacoes, id)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteTodasAprovacoes(_ context.Context) error {
	if err := s.falha("DeleteTodasAprovacoes"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aprovacoes = make(map[int64]domain.Aprovacao)
	return nil
}

func (s *MemoryStore) ListPagamentos(_ context.Context) ([]domain.Pagamento, error) {
	if err := s.falha("ListPagamentos"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Pagamento
	for _, p := range s.pagamentos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) InsertPagamento(_ context.Context, p *domain.Pagamento) (int64, error) {
	if err := s.falha("InsertPagamento"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	copia := *p
	copia.ID = id
	s.pagamentos[id] = copia
	return id, nil
}

func (s *MemoryStore) DeletePagamentosDaConta(_ context.Context, contaID int64) error {
	if err := s.falha("DeletePagamentosDaConta"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pagamentos {
		if p.ContaID == contaID {
			delete(s.pagamentos, id)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteTodosPagamentos(_ context.Context) error {
	if err := s.falha("DeleteTodosPagamentos"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagamentos = make(map[int64]domain.Pagamento)
	return nil
}

func (s *MemoryStore) ListExtrato(_ context.Context) ([]domain.ExtratoMovimento, error) {
	if err := s.falha("ListExtrato"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ExtratoMovimento
	for _, m := range s.extrato {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) InsertMovimento(_ context.Context, m *domain.ExtratoMovimento) (int64, error) {
	if err := s.falha("InsertMovimento"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.proximoID()
	copia := *m
	copia.ID = id
	s.extrato[id] = copia
	return id, nil
}

func (s *MemoryStore) GetUsuario(_ context.Context, username string) (*domain.Usuario, error) {
	if err := s.falha("GetUsuario"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usuarios[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) ListUsuarios(_ context.Context) ([]domain.Usuario, error) {
	if err := s.falha("ListUsuarios"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Usuario
	for _, u := range s.usuarios {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *MemoryStore) InsertUsuario(_ context.Context, u *domain.Usuario) error {
	if err := s.falha("InsertUsuario"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usuarios[u.Username] = *u
	return nil
}

func (s *MemoryStore) DeleteUsuario(_ context.Context, username string) error {
	if err := s.falha("DeleteUsuario"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.usuarios, username)
	return nil
}
