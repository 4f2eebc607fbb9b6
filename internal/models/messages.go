package models

import "fmt"

// User-facing messages. The set is fixed; no other locale is provided.
const (
	MsgNoContent     = "Não consegui carregar o texto da lei. Verifique os arquivos."
	MsgInvalidNumber = "Digite um número de artigo válido."
	MsgEmptyQuery    = "Digite uma palavra para pesquisar."
	MsgNoTOC         = "Sumário não detectado."
	MsgTOCTitle      = "Sumário detectado"
)

// MsgNotFound reports that article n does not exist.
func MsgNotFound(n int) string {
	return fmt.Sprintf("Nenhum artigo Art. %d encontrado.", n)
}

// MsgNoResults reports a search without hits.
func MsgNoResults(q string) string {
	return fmt.Sprintf("Nenhum resultado para \"%s\".", q)
}

// MsgTruncated reports that only limit of total hits are shown.
func MsgTruncated(limit, total int) string {
	return fmt.Sprintf("Mostrando %d de %d resultados. Refine a busca.", limit, total)
}

// MsgTotalArticles reports how many articles were detected.
func MsgTotalArticles(total int) string {
	return fmt.Sprintf("Total de artigos detectados: %d", total)
}
