// Package e2e provides end-to-end tests over a large generated statute in every supported format.
package e2e

import (
	"fmt"
	"strings"
)

// StatuteArticle is one generated article with the phrase that only it contains.
type StatuteArticle struct {
	Number    int
	Signature string
	Theme     string
}

// QueryTestCase defines a keyword query and the article numbers it must return, in order.
type QueryTestCase struct {
	Query            string
	ExpectedArticles []int
	Description      string
}

// Statute is a generated law with its expected segmentation.
type Statute struct {
	Text      string
	Lines     []string
	Articles  []StatuteArticle
	Headings  []string
	TestCases []QueryTestCase
}

var themes = []string{
	"prazo processual",
	"recurso administrativo",
	"servidor público",
	"contrato de concessão",
	"pena de multa",
}

// BuildStatute returns a statute with n articles. A new TÍTULO starts every 50 articles and a
// new CAPÍTULO every 10. Articles 1-9 use the ordinal form ("Art. 1º").
func BuildStatute(n int) *Statute {
	s := &Statute{}
	s.Lines = append(s.Lines, fmt.Sprintf("LEI Nº %d, DE 2024", n), "Dispõe sobre normas gerais de teste.")
	chapter := 0
	for i := 1; i <= n; i++ {
		if (i-1)%50 == 0 {
			block := (i-1)/50 + 1
			h := "TÍTULO " + roman(block)
			s.Headings = append(s.Headings, h)
			s.Lines = append(s.Lines, h, fmt.Sprintf("DAS DISPOSIÇÕES DO BLOCO %d", block))
			chapter = 0
		}
		if (i-1)%10 == 0 {
			chapter++
			h := "CAPÍTULO " + roman(chapter)
			s.Headings = append(s.Headings, h)
			s.Lines = append(s.Lines, h)
		}
		a := StatuteArticle{
			Number:    i,
			Signature: fmt.Sprintf("marco%04dx", i),
			Theme:     themes[(i-1)%len(themes)],
		}
		s.Articles = append(s.Articles, a)
		s.Lines = append(s.Lines, fmt.Sprintf("%s O %s observará o %s.", articleLabel(i), a.Theme, a.Signature))
	}
	s.Text = strings.Join(s.Lines, "\n")
	s.TestCases = buildQueryTestCases(s.Articles)
	return s
}

func articleLabel(n int) string {
	if n < 10 {
		return fmt.Sprintf("Art. %dº", n)
	}
	return fmt.Sprintf("Art. %d.", n)
}

func buildQueryTestCases(articles []StatuteArticle) []QueryTestCase {
	var cases []QueryTestCase
	for i := 0; i < len(articles); i += 7 {
		a := articles[i]
		cases = append(cases, QueryTestCase{
			Query:            strings.ToUpper(a.Signature),
			ExpectedArticles: []int{a.Number},
			Description:      fmt.Sprintf("signature of Art. %d, upper-cased", a.Number),
		})
	}
	for _, theme := range themes {
		var want []int
		for _, a := range articles {
			if a.Theme == theme {
				want = append(want, a.Number)
			}
		}
		cases = append(cases, QueryTestCase{
			Query:            theme,
			ExpectedArticles: want,
			Description:      fmt.Sprintf("theme %q in %d articles", theme, len(want)),
		})
	}
	return cases
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
