// Package importer lê extratos bancários e planilhas de
// provisionamento de origem desconhecida: detecta encoding e
// delimitador, mapeia cabeçalhos por sinônimo e normaliza linhas.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/money"
)

// LinhaExtrato é uma linha de extrato já normalizada.
type LinhaExtrato struct {
	Data      time.Time
	Historico string
	Valor     float64
}

// ImportacaoExtrato é o resultado completo da importação de extrato:
// linhas de saída normalizadas mais a transparência sobre como o
// arquivo foi lido.
type ImportacaoExtrato struct {
	Encoding    string
	Delimitador string
	Posicional  bool
	Avisos      []string
	Linhas      []LinhaExtrato
	Descartadas int
	Entradas    int
}

// LinhaConta é uma linha da planilha de provisionamento normalizada.
type LinhaConta struct {
	Fornecedor      string
	Categoria       string
	Descricao       string
	Vencimento      time.Time
	Competencia     time.Time
	ValorPrevisto   float64
	Empresa         string
	Cnpj            string
	NumeroDocumento string
}

// ImportacaoContas é o resultado da importação de planilha de contas.
type ImportacaoContas struct {
	Encoding    string
	Delimitador string
	Posicional  bool
	Avisos      []string
	Linhas      []LinhaConta
	Descartadas int
}

var layoutsData = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
	"02.01.2006",
}

// parseData interpreta datas com precedência dia-antes-do-mês; aceita
// também serial do Excel num intervalo plausível (~1995 a ~2028).
func parseData(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layoutsData {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 35000 && serial < 47000 {
		base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}

// ImportarExtrato executa o pipeline completo do extrato: detecção de
// encoding/delimitador, mapeamento de cabeçalhos, normalização de
// linhas e filtro de saídas (valor < 0). Linhas com data ou valor
// inválido são descartadas silenciosamente, com a contagem reportada.
func ImportarExtrato(data []byte) (*ImportacaoExtrato, error) {
	det, err := Detectar(data)
	if err != nil {
		return nil, err
	}
	if len(det.Registros) < 1 {
		return nil, fmt.Errorf("arquivo de extrato vazio")
	}

	mapa, err := MapearCabecalhos(det.Registros[0], EsquemaExtrato)
	if err != nil {
		return nil, err
	}

	imp := &ImportacaoExtrato{
		Encoding:    det.Encoding,
		Delimitador: string(det.Delimitador),
		Posicional:  mapa.Posicional,
		Avisos:      mapa.Avisos,
	}

	idxData := mapa.Colunas["data"]
	idxHist := mapa.Colunas["historico"]
	idxValor := mapa.Colunas["valor"]

	for _, registro := range det.Registros[1:] {
		dt, okData := parseData(celula(registro, idxData))
		valor, okValor := money.ParseBRL(celula(registro, idxValor))
		if !okData || !okValor {
			imp.Descartadas++
			continue
		}
		if valor >= 0 {
			imp.Entradas++
			continue
		}
		imp.Linhas = append(imp.Linhas, LinhaExtrato{
			Data:      dt,
			Historico: celula(registro, idxHist),
			Valor:     valor,
		})
	}

	return imp, nil
}

// ImportarContas lê a planilha de provisionamento. Arquivos .xlsx e
// .xls são lidos nativamente; .csv passa pela detecção completa de
// encoding/delimitador.
func ImportarContas(r io.Reader, nomeArquivo string) (*ImportacaoContas, error) {
	ext := strings.ToLower(filepath.Ext(nomeArquivo))

	var registros [][]string
	imp := &ImportacaoContas{}

	switch ext {
	case ".xlsx":
		linhas, err := lerXLSX(r)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo .xlsx: %w", err)
		}
		registros = linhas
		imp.Encoding = "xlsx"
	case ".xls":
		linhas, err := lerXLS(r)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo .xls: %w", err)
		}
		registros = linhas
		imp.Encoding = "xls"
	case ".csv":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo: %w", err)
		}
		det, err := Detectar(data)
		if err != nil {
			return nil, err
		}
		registros = det.Registros
		imp.Encoding = det.Encoding
		imp.Delimitador = string(det.Delimitador)
	default:
		return nil, fmt.Errorf("formato de arquivo não suportado: %s", ext)
	}

	if len(registros) < 1 {
		return nil, fmt.Errorf("arquivo de contas vazio")
	}

	mapa, err := MapearCabecalhos(registros[0], EsquemaContas)
	if err != nil {
		return nil, err
	}
	imp.Posicional = mapa.Posicional
	imp.Avisos = mapa.Avisos

	for _, registro := range registros[1:] {
		fornecedor := strings.TrimSpace(celula(registro, mapa.Colunas["fornecedor"]))
		if fornecedor == "" {
			imp.Descartadas++
			continue
		}

		venc, okVenc := parseData(celula(registro, mapa.Colunas["vencimento"]))
		valor, okValor := money.ParseBRL(celula(registro, mapa.Colunas["valor_previsto"]))
		if !okVenc || !okValor {
			imp.Descartadas++
			continue
		}

		linha := LinhaConta{
			Fornecedor: fornecedor,
			Categoria:  strings.TrimSpace(celula(registro, mapa.Colunas["categoria"])),
			Descricao:  strings.TrimSpace(celula(registro, mapa.Colunas["descricao"])),
			Vencimento: venc,
			// competência: primeiro dia do mês de vencimento
			Competencia:   time.Date(venc.Year(), venc.Month(), 1, 0, 0, 0, 0, venc.Location()),
			ValorPrevisto: valor,
		}
		if linha.Categoria == "" {
			linha.Categoria = "Geral"
		}
		if idx, ok := mapa.Colunas["empresa"]; ok {
			linha.Empresa = strings.TrimSpace(celula(registro, idx))
		}
		if idx, ok := mapa.Colunas["cnpj"]; ok {
			linha.Cnpj = strings.TrimSpace(celula(registro, idx))
		}
		if idx, ok := mapa.Colunas["numero_documento"]; ok {
			linha.NumeroDocumento = strings.TrimSpace(celula(registro, idx))
		}

		imp.Linhas = append(imp.Linhas, linha)
	}

	return imp, nil
}

func celula(registro []string, idx int) string {
	if idx < 0 || idx >= len(registro) {
		return ""
	}
	return registro[idx]
}

func lerXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("a planilha não contém abas")
	}
	return f.GetRows(sheets[0])
}

func lerXLS(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// alguns uploads .xls são na verdade xlsx renomeado
		if linhas, errX := lerXLSX(bytes.NewReader(data)); errX == nil {
			return linhas, nil
		}
		return nil, err
	}

	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, err
	}

	var linhas [][]string
	for _, row := range sheet.GetRows() {
		var linha []string
		for _, cell := range row.GetCols() {
			linha = append(linha, cell.GetString())
		}
		linhas = append(linhas, linha)
	}
	return linhas, nil
}
