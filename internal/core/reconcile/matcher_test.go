package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

func dia(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

func conta(id int64, venc time.Time, valor float64) domain.Conta {
	return domain.Conta{ID: id, Vencimento: venc, ValorPrevisto: valor, Status: domain.StatusProvisionado}
}

func mov(id int64, data time.Time, valor float64) domain.ExtratoMovimento {
	return domain.ExtratoMovimento{ID: id, Data: data, Valor: valor}
}

func TestMatchIgnoraEntradas(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{
		mov(1, dia(10), 500.00), // crédito: fora da conciliação
		mov(2, dia(10), -500.00),
	}
	contas := []domain.Conta{conta(1, dia(10), 500.00)}

	matches := Match(movimentos, contas, JanelaPadrao)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].ExtratoID)
}

func TestMatchToleranciaDeValor(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{mov(1, dia(10), -100.00)}

	// 100,01 qualifica (diferença de exatamente 1 centavo); 100,02 não
	dentro := Match(movimentos, []domain.Conta{conta(1, dia(10), 100.01)}, JanelaPadrao)
	require.Len(t, dentro, 1)
	assert.InDelta(t, 0.01, dentro[0].DiffValor, 1e-9)

	fora := Match(movimentos, []domain.Conta{conta(1, dia(10), 100.02)}, JanelaPadrao)
	assert.Empty(t, fora)
}

func TestMatchJanelaGanhaDoisDias(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{mov(1, dia(10), -100.00)}

	// janela 3 => tolerância efetiva 5 dias
	dentro := Match(movimentos, []domain.Conta{conta(1, dia(15), 100.00)}, 3)
	require.Len(t, dentro, 1)
	assert.Equal(t, 5, dentro[0].DiffDias)

	fora := Match(movimentos, []domain.Conta{conta(1, dia(16), 100.00)}, 3)
	assert.Empty(t, fora)
}

func TestMatchDataDominaValor(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{mov(1, dia(10), -100.00)}
	contas := []domain.Conta{
		conta(1, dia(12), 100.00), // valor exato, 2 dias
		conta(2, dia(10), 100.01), // 1 centavo, mesmo dia
	}

	matches := Match(movimentos, contas, JanelaPadrao)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].ContaID, "proximidade de data decide antes do valor")
}

func TestMatchEmpateDeDataDecidePorValor(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{mov(1, dia(10), -100.00)}
	contas := []domain.Conta{
		conta(1, dia(11), 100.01),
		conta(2, dia(11), 100.00),
	}

	matches := Match(movimentos, contas, JanelaPadrao)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].ContaID)
}

func TestMatchEstavelEmEmpateTotal(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{mov(1, dia(10), -100.00)}
	contas := []domain.Conta{
		conta(7, dia(11), 100.00),
		conta(8, dia(11), 100.00),
	}

	// empate completo: vence a primeira da lista, de forma determinística
	for i := 0; i < 10; i++ {
		matches := Match(movimentos, contas, JanelaPadrao)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(7), matches[0].ContaID)
	}
}

func TestMatchMesmaContaParaVariosMovimentos(t *testing.T) {
	movimentos := []domain.ExtratoMovimento{
		mov(1, dia(10), -100.00),
		mov(2, dia(11), -100.00),
	}
	contas := []domain.Conta{conta(1, dia(10), 100.00)}

	// a geração é permissiva; a unicidade só entra na confirmação
	matches := Match(movimentos, contas, JanelaPadrao)
	require.Len(t, matches, 2)
	assert.Equal(t, matches[0].ContaID, matches[1].ContaID)
}

func TestNormalizarJanela(t *testing.T) {
	assert.Equal(t, JanelaPadrao, NormalizarJanela(-1))
	assert.Equal(t, 0, NormalizarJanela(0))
	assert.Equal(t, 7, NormalizarJanela(7))
	assert.Equal(t, JanelaMaxima, NormalizarJanela(99))
}

func TestDedupeMantemMelhorCandidatoPorMovimento(t *testing.T) {
	candidatos := []domain.MatchCandidate{
		{ExtratoID: 1, ContaID: 10, DiffValor: 0.01, DiffDias: 0},
		{ExtratoID: 1, ContaID: 11, DiffValor: 0.00, DiffDias: 3},
		{ExtratoID: 2, ContaID: 12, DiffValor: 0.00, DiffDias: 1},
	}

	unicos := Dedupe(candidatos)
	require.Len(t, unicos, 2)
	// menor diferença de valor vence, mesmo com mais dias de distância
	assert.Equal(t, int64(11), unicos[0].ContaID)
	assert.Equal(t, int64(12), unicos[1].ContaID)
}

func TestDedupeEmpateDeValorDecidePorDias(t *testing.T) {
	candidatos := []domain.MatchCandidate{
		{ExtratoID: 1, ContaID: 10, DiffValor: 0.01, DiffDias: 4},
		{ExtratoID: 1, ContaID: 11, DiffValor: 0.01, DiffDias: 1},
	}

	unicos := Dedupe(candidatos)
	require.Len(t, unicos, 1)
	assert.Equal(t, int64(11), unicos[0].ContaID)
}
