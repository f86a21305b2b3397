// Package reconcile pareia movimentos de saída do extrato bancário com
// contas em aberto, sob tolerância de valor e janela de datas.
package reconcile

import (
	"math"
	"sort"
	"time"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

const (
	// ToleranciaValor é a diferença máxima aceita entre o valor do
	// movimento e o valor previsto da conta: exatamente 1 centavo.
	ToleranciaValor = 0.01

	// epsilonFloat absorve o ruído de representação binária na
	// comparação com ToleranciaValor: uma diferença de exatamente
	// 1 centavo deve qualificar.
	epsilonFloat = 1e-9

	// JanelaExtra amplia a janela de dias informada pelo usuário.
	JanelaExtra = 2

	// JanelaPadrao é a janela usada quando o chamador não informa uma.
	JanelaPadrao = 3

	// JanelaMaxima limita o valor aceito da UI.
	JanelaMaxima = 10
)

// NormalizarJanela aplica padrão e limites à janela vinda da UI.
func NormalizarJanela(janela int) int {
	if janela < 0 {
		return JanelaPadrao
	}
	if janela > JanelaMaxima {
		return JanelaMaxima
	}
	return janela
}

// Match gera, para cada movimento de saída, no máximo um candidato:
// a conta com menor distância de data (empate decidido pela menor
// diferença de valor, depois pela ordem original, estável). Uma mesma
// conta pode ser o melhor candidato de vários movimentos; a unicidade
// global só é aplicada na confirmação, via Dedupe.
func Match(movimentos []domain.ExtratoMovimento, candidatas []domain.Conta, janela int) []domain.MatchCandidate {
	toleranciaDias := NormalizarJanela(janela) + JanelaExtra

	var matches []domain.MatchCandidate
	for _, mov := range movimentos {
		if !mov.Saida() {
			continue
		}
		alvo := math.Abs(mov.Valor)

		type avaliada struct {
			conta     domain.Conta
			diffValor float64
			diffDias  int
		}
		var validas []avaliada
		for _, conta := range candidatas {
			dValor := math.Abs(conta.ValorPrevisto - alvo)
			dDias := diffDias(conta.Vencimento, mov.Data)
			if dValor <= ToleranciaValor+epsilonFloat && dDias <= toleranciaDias {
				validas = append(validas, avaliada{conta: conta, diffValor: dValor, diffDias: dDias})
			}
		}
		if len(validas) == 0 {
			continue
		}

		// proximidade de data domina estritamente a de valor
		sort.SliceStable(validas, func(i, j int) bool {
			if validas[i].diffDias != validas[j].diffDias {
				return validas[i].diffDias < validas[j].diffDias
			}
			return validas[i].diffValor < validas[j].diffValor
		})

		melhor := validas[0]
		matches = append(matches, domain.MatchCandidate{
			ExtratoID:        mov.ID,
			ExtratoData:      mov.Data,
			ExtratoHistorico: mov.Historico,
			ExtratoValor:     mov.Valor,
			ContaID:          melhor.conta.ID,
			ContaEmpresa:     melhor.conta.Empresa,
			ContaDescricao:   melhor.conta.Descricao,
			ContaVencimento:  melhor.conta.Vencimento,
			ContaValor:       melhor.conta.ValorPrevisto,
			DiffValor:        melhor.diffValor,
			DiffDias:         melhor.diffDias,
		})
	}
	return matches
}

// Dedupe garante um único candidato por movimento de extrato,
// mantendo o de menor diferença de valor e, em empate, o de menor
// diferença de dias. A ordem relativa dos movimentos é preservada.
func Dedupe(candidatos []domain.MatchCandidate) []domain.MatchCandidate {
	melhores := make(map[int64]domain.MatchCandidate)
	var ordem []int64
	for _, c := range candidatos {
		atual, visto := melhores[c.ExtratoID]
		if !visto {
			melhores[c.ExtratoID] = c
			ordem = append(ordem, c.ExtratoID)
			continue
		}
		if c.DiffValor < atual.DiffValor ||
			(c.DiffValor == atual.DiffValor && c.DiffDias < atual.DiffDias) {
			melhores[c.ExtratoID] = c
		}
	}

	resultado := make([]domain.MatchCandidate, 0, len(ordem))
	for _, id := range ordem {
		resultado = append(resultado, melhores[id])
	}
	return resultado
}

// diffDias retorna a diferença absoluta em dias de calendário.
func diffDias(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(au.Sub(bu).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
