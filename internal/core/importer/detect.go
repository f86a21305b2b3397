package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Deteccao descreve a combinação encoding/delimitador aceita para um
// arquivo de extrato/planilha CSV, junto com os registros lidos.
type Deteccao struct {
	Encoding    string
	Delimitador rune
	Registros   [][]string
}

// DeteccaoError indica que nenhuma combinação de encoding e
// delimitador conseguiu ler o arquivo. Carrega todas as tentativas
// para o relatório ao usuário.
type DeteccaoError struct {
	Tentativas []string
}

func (e *DeteccaoError) Error() string {
	return fmt.Sprintf("não foi possível ler o arquivo CSV com as codificações e delimitadores testados: %s",
		strings.Join(e.Tentativas, ", "))
}

var codificacoes = []struct {
	nome string
	cm   *charmap.Charmap // nil = utf-8
}{
	{"utf-8", nil},
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// ponto e vírgula primeiro: formato brasileiro
var delimitadores = []rune{';', ',', '\t'}

// Detectar varre o produto cruzado de codificações e delimitadores
// (codificações no laço externo) e aceita a primeira combinação que
// produz ao menos 3 colunas sem erro de decodificação ou de parse.
func Detectar(data []byte) (*Deteccao, error) {
	var tentativas []string

	for _, enc := range codificacoes {
		var texto []byte
		if enc.cm == nil {
			if !utf8.Valid(data) {
				for _, d := range delimitadores {
					tentativas = append(tentativas, fmt.Sprintf("%s/%q", enc.nome, d))
				}
				continue
			}
			texto = data
		} else {
			decoded, err := enc.cm.NewDecoder().Bytes(data)
			if err != nil {
				for _, d := range delimitadores {
					tentativas = append(tentativas, fmt.Sprintf("%s/%q", enc.nome, d))
				}
				continue
			}
			texto = decoded
		}

		for _, delim := range delimitadores {
			tentativas = append(tentativas, fmt.Sprintf("%s/%q", enc.nome, delim))

			reader := csv.NewReader(bytes.NewReader(texto))
			reader.Comma = delim
			reader.LazyQuotes = true
			reader.FieldsPerRecord = -1

			registros, err := reader.ReadAll()
			if err != nil || len(registros) == 0 {
				continue
			}
			if len(registros[0]) < 3 {
				continue
			}
			return &Deteccao{Encoding: enc.nome, Delimitador: delim, Registros: registros}, nil
		}
	}

	return nil, &DeteccaoError{Tentativas: tentativas}
}
