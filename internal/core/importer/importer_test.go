package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDetectarPontoEVirgulaUTF8(t *testing.T) {
	data := []byte("Data;Histórico;Valor\n01/08/2025;Pgto fornecedor;-150,00\n")

	det, err := Detectar(data)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", det.Encoding)
	assert.Equal(t, ';', det.Delimitador)
	require.Len(t, det.Registros, 2)
	assert.Equal(t, "Histórico", det.Registros[0][1])
}

func TestDetectarLatin1(t *testing.T) {
	// "Histórico" codificado em latin-1 não é UTF-8 válido
	encoder := charmap.ISO8859_1.NewEncoder()
	data, err := encoder.Bytes([]byte("Data;Histórico;Valor\n01/08/2025;Café;-10,00\n"))
	require.NoError(t, err)

	det, errDet := Detectar(data)
	require.NoError(t, errDet)
	assert.Equal(t, "latin-1", det.Encoding)
	assert.Equal(t, ';', det.Delimitador)
	assert.Equal(t, "Café", det.Registros[1][1])
}

func TestDetectarVirgulaQuandoPontoEVirgulaNaoSepara(t *testing.T) {
	data := []byte("data,historico,valor\n01/08/2025,pix,-1.00\n")

	det, err := Detectar(data)
	require.NoError(t, err)
	assert.Equal(t, ',', det.Delimitador)
}

func TestDetectarFalhaRelataTentativas(t *testing.T) {
	// uma coluna só: nenhuma combinação atinge 3 colunas
	data := []byte("apenas-uma-coluna\noutra-linha\n")

	_, err := Detectar(data)
	var det *DeteccaoError
	require.ErrorAs(t, err, &det)
	// 3 codificações x 3 delimitadores
	assert.Len(t, det.Tentativas, 9)
	assert.Contains(t, det.Error(), "utf-8")
}

func TestMapearCabecalhosPorSubstring(t *testing.T) {
	mapa, err := MapearCabecalhos([]string{"Data Mov.", "Histórico da Operação", "Valor R$"}, EsquemaExtrato)
	require.NoError(t, err)

	assert.False(t, mapa.Posicional)
	assert.Equal(t, 0, mapa.Colunas["data"])
	assert.Equal(t, 1, mapa.Colunas["historico"])
	assert.Equal(t, 2, mapa.Colunas["valor"])
}

func TestMapearCabecalhosIgnoraAcentosECaixa(t *testing.T) {
	mapa, err := MapearCabecalhos([]string{"DATA", "DESCRIÇÃO", "VALOR"}, EsquemaExtrato)
	require.NoError(t, err)
	assert.Equal(t, 1, mapa.Colunas["historico"])
}

func TestMapearCabecalhosFallbackPosicional(t *testing.T) {
	mapa, err := MapearCabecalhos([]string{"A", "B", "C"}, EsquemaExtrato)
	require.NoError(t, err)

	assert.True(t, mapa.Posicional)
	require.Len(t, mapa.Avisos, 1)
	assert.Contains(t, mapa.Avisos[0], "posição")
	assert.Equal(t, 0, mapa.Colunas["data"])
	assert.Equal(t, 2, mapa.Colunas["valor"])
}

func TestMapearCabecalhosFalhaComDiagnostico(t *testing.T) {
	// menos colunas que campos obrigatórios: nem o fallback serve
	_, err := MapearCabecalhos([]string{"datta", "valr"}, EsquemaExtrato)

	var mapErr *MapeamentoError
	require.ErrorAs(t, err, &mapErr)
	assert.ElementsMatch(t, []string{"data", "historico", "valor"}, mapErr.Faltantes)
	assert.Equal(t, []string{"datta", "valr"}, mapErr.Disponiveis)
	assert.Equal(t, "datta", mapErr.Sugestoes["data"])
}

func TestImportarExtratoFiltraSaidas(t *testing.T) {
	csv := "Data;Historico;Valor\n" +
		"01/08/2025;Pgto fornecedor;-150,00\n" +
		"02/08/2025;Recebimento cliente;200,00\n" +
		"03/08/2025;Tarifa;-75,50\n"

	imp, err := ImportarExtrato([]byte(csv))
	require.NoError(t, err)

	require.Len(t, imp.Linhas, 2)
	assert.Equal(t, -150.00, imp.Linhas[0].Valor)
	assert.Equal(t, -75.50, imp.Linhas[1].Valor)
	assert.Equal(t, 1, imp.Entradas)
	assert.Equal(t, 0, imp.Descartadas)
	assert.Equal(t, "utf-8", imp.Encoding)
	assert.Equal(t, ";", imp.Delimitador)
}

func TestImportarExtratoDescartaLinhasInvalidas(t *testing.T) {
	csv := "Data;Historico;Valor\n" +
		"não-é-data;Pgto;-10,00\n" +
		"01/08/2025;Pgto;abc\n" +
		"01/08/2025;Pgto válido;-20,00\n"

	imp, err := ImportarExtrato([]byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, imp.Descartadas)
	require.Len(t, imp.Linhas, 1)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), imp.Linhas[0].Data)
}

func TestParseDataDiaPrimeiro(t *testing.T) {
	dt, ok := parseData("05/02/2025")
	require.True(t, ok)
	// 5 de fevereiro, não 2 de maio
	assert.Equal(t, time.February, dt.Month())
	assert.Equal(t, 5, dt.Day())
}

func TestParseDataSerialExcel(t *testing.T) {
	// 45870 = 01/08/2025
	dt, ok := parseData("45870")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), dt)

	_, ok = parseData("123")
	assert.False(t, ok, "serial fora do intervalo plausível não é data")
}

func TestImportarContasCSV(t *testing.T) {
	csv := "Fornecedor;Categoria;Descricao;Vencimento;Valor\n" +
		"Padaria Silva;Alimentação;Coffee break;15/09/2025;350,00\n" +
		";Aluguel;Sem fornecedor;15/09/2025;1000,00\n" +
		"Imobiliária XYZ;;Aluguel setembro;01/09/2025;2.500,00\n"

	imp, err := ImportarContas(strings.NewReader(csv), "contas.csv")
	require.NoError(t, err)

	require.Len(t, imp.Linhas, 2)
	assert.Equal(t, 1, imp.Descartadas)

	primeira := imp.Linhas[0]
	assert.Equal(t, "Padaria Silva", primeira.Fornecedor)
	assert.Equal(t, 350.00, primeira.ValorPrevisto)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), primeira.Competencia,
		"competência é o primeiro dia do mês do vencimento")

	// categoria vazia cai no padrão
	assert.Equal(t, "Geral", imp.Linhas[1].Categoria)
	assert.Equal(t, 2500.00, imp.Linhas[1].ValorPrevisto)
}

func TestImportarContasFormatoNaoSuportado(t *testing.T) {
	_, err := ImportarContas(strings.NewReader("x"), "contas.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pdf")
}
