package importer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Campo é um campo semântico exigido ou aceito por um esquema de
// importação, com a lista curada de sinônimos de cabeçalho.
type Campo struct {
	Nome      string
	Sinonimos []string
}

// Esquema define os campos de uma importação tabular.
type Esquema struct {
	Nome         string
	Obrigatorios []Campo
	Opcionais    []Campo
}

// EsquemaExtrato: colunas mínimas de um extrato bancário.
var EsquemaExtrato = Esquema{
	Nome: "extrato",
	Obrigatorios: []Campo{
		{Nome: "data", Sinonimos: []string{"data", "date", "dt", "data_movimento", "data_mov", "data_transacao"}},
		{Nome: "historico", Sinonimos: []string{"historico", "history", "descricao", "description", "desc", "detalhes", "obs", "observacao"}},
		{Nome: "valor", Sinonimos: []string{"valor", "value", "vlr", "amount", "montante", "total", "preco"}},
	},
}

// EsquemaContas: formato mínimo da planilha de provisionamento.
var EsquemaContas = Esquema{
	Nome: "contas",
	Obrigatorios: []Campo{
		{Nome: "fornecedor", Sinonimos: []string{"fornecedor", "fornecedores", "supplier", "provedor", "favorecido"}},
		{Nome: "categoria", Sinonimos: []string{"categoria", "categorias", "category", "tipo"}},
		{Nome: "descricao", Sinonimos: []string{"descricao", "description", "desc", "detalhes", "historico"}},
		{Nome: "vencimento", Sinonimos: []string{"vencimento", "venc", "data_vencimento", "due_date", "vencto"}},
		{Nome: "valor_previsto", Sinonimos: []string{"valor_previsto", "valor", "vlr_previsto", "amount", "preco"}},
	},
	Opcionais: []Campo{
		{Nome: "empresa", Sinonimos: []string{"empresa", "company"}},
		{Nome: "cnpj", Sinonimos: []string{"cnpj", "cpf_cnpj", "documento_fiscal"}},
		{Nome: "numero_documento", Sinonimos: []string{"numero_documento", "num_doc", "documento", "nf", "nota"}},
	},
}

// MapaColunas é o resultado do mapeamento de cabeçalhos: índice de
// coluna por campo semântico, mais a indicação de fallback posicional.
type MapaColunas struct {
	Colunas    map[string]int
	Posicional bool
	Avisos     []string
}

// MapeamentoError relata os campos obrigatórios que não puderam ser
// resolvidos, os cabeçalhos disponíveis e sugestões aproximadas.
type MapeamentoError struct {
	Faltantes   []string
	Disponiveis []string
	Sugestoes   map[string]string
}

func (e *MapeamentoError) Error() string {
	return fmt.Sprintf("colunas obrigatórias não encontradas: %s (cabeçalhos disponíveis: %s)",
		strings.Join(e.Faltantes, ", "), strings.Join(e.Disponiveis, ", "))
}

// normalizarCabecalho: minúsculas, sem acentos, sem espaços nas pontas.
func normalizarCabecalho(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

// MapearCabecalhos resolve cada campo do esquema contra os cabeçalhos:
// (a) sinônimo exato; (b) substring em qualquer direção; (c) se ainda
// faltarem campos obrigatórios, fallback posicional estrito na ordem do
// esquema, sinalizado como aviso. Campos opcionais nunca participam do
// fallback posicional.
func MapearCabecalhos(cabecalhos []string, esq Esquema) (*MapaColunas, error) {
	normalizados := make([]string, len(cabecalhos))
	for i, c := range cabecalhos {
		normalizados[i] = normalizarCabecalho(c)
	}

	resolver := func(campo Campo) (int, bool) {
		for _, sin := range campo.Sinonimos {
			for idx, nc := range normalizados {
				if nc == sin {
					return idx, true
				}
			}
		}
		for _, sin := range campo.Sinonimos {
			for idx, nc := range normalizados {
				if nc == "" {
					continue
				}
				if strings.Contains(nc, sin) || strings.Contains(sin, nc) {
					return idx, true
				}
			}
		}
		return 0, false
	}

	mapa := &MapaColunas{Colunas: make(map[string]int)}
	for _, campo := range esq.Obrigatorios {
		if idx, ok := resolver(campo); ok {
			mapa.Colunas[campo.Nome] = idx
		}
	}

	if len(mapa.Colunas) < len(esq.Obrigatorios) {
		if len(cabecalhos) < len(esq.Obrigatorios) {
			return nil, erroMapeamento(mapa, esq, cabecalhos, normalizados)
		}
		// fallback posicional: 1ª coluna = 1º campo do esquema, e assim por diante
		mapa.Colunas = make(map[string]int)
		for i, campo := range esq.Obrigatorios {
			mapa.Colunas[campo.Nome] = i
		}
		mapa.Posicional = true
		ordem := make([]string, len(esq.Obrigatorios))
		for i, campo := range esq.Obrigatorios {
			ordem[i] = fmt.Sprintf("%s='%s'", campo.Nome, cabecalhos[i])
		}
		mapa.Avisos = append(mapa.Avisos,
			fmt.Sprintf("mapeamento automático de colunas falhou; usando mapeamento por posição: %s", strings.Join(ordem, ", ")))
	}

	for _, campo := range esq.Opcionais {
		if idx, ok := resolver(campo); ok {
			mapa.Colunas[campo.Nome] = idx
		}
	}

	return mapa, nil
}

func erroMapeamento(mapa *MapaColunas, esq Esquema, cabecalhos, normalizados []string) *MapeamentoError {
	e := &MapeamentoError{
		Disponiveis: cabecalhos,
		Sugestoes:   make(map[string]string),
	}

	var candidatos []string
	for _, nc := range normalizados {
		if nc != "" {
			candidatos = append(candidatos, nc)
		}
	}
	var cm *closestmatch.ClosestMatch
	if len(candidatos) > 0 {
		cm = closestmatch.New(candidatos, []int{2, 3, 4})
	}

	for _, campo := range esq.Obrigatorios {
		if _, ok := mapa.Colunas[campo.Nome]; ok {
			continue
		}
		e.Faltantes = append(e.Faltantes, campo.Nome)
		if cm != nil {
			if sug := cm.Closest(campo.Nome); sug != "" {
				e.Sugestoes[campo.Nome] = sug
			}
		}
	}
	return e
}
