package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hyperjump/lexbusca/internal/models"
)

func init() {
	color.NoColor = true
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteLookup_Text(t *testing.T) {
	var buf bytes.Buffer
	res := &models.LookupResult{Article: &models.Article{Number: 2, Text: "Art. 2 Texto dois."}, Total: 2}
	if err := NewWriter(&buf, OutputText).WriteLookup(res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Art. 2 Texto dois.") || !strings.Contains(out, "Total de artigos detectados: 2") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteLookup_JSON(t *testing.T) {
	var buf bytes.Buffer
	res := &models.LookupResult{Article: &models.Article{Number: 2, Text: "Art. 2 <b>"}, Total: 2}
	if err := NewWriter(&buf, OutputJSON).WriteLookup(res); err != nil {
		t.Fatal(err)
	}
	var decoded models.LookupResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Article.Number != 2 || decoded.Total != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), "Art. 2 <b>") {
		t.Error("json output should not escape HTML")
	}
}

func TestWriteSearch_Text(t *testing.T) {
	res := &models.SearchResult{
		Query: "prazo",
		Hits: []*models.SearchHit{
			{Article: &models.Article{Number: 1, Text: "Art. 1 O prazo é curto."}},
		},
		Total:     3,
		Limit:     1,
		Truncated: true,
	}
	var buf bytes.Buffer
	if err := NewWriter(&buf, OutputText).WriteSearch(res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Art. 1 O prazo é curto.") {
		t.Errorf("missing article text: %q", out)
	}
	if !strings.Contains(out, "Mostrando 1 de 3 resultados. Refine a busca.") {
		t.Errorf("missing truncation notice: %q", out)
	}
}

func TestWriteSearch_NoResults(t *testing.T) {
	var buf bytes.Buffer
	res := &models.SearchResult{Query: "xyz", Hits: []*models.SearchHit{}}
	if err := NewWriter(&buf, OutputText).WriteSearch(res); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `Nenhum resultado para "xyz".` {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteSearch_NoResultsRawQuery(t *testing.T) {
	var buf bytes.Buffer
	res := &models.SearchResult{Query: "<b>&", Hits: []*models.SearchHit{}}
	if err := NewWriter(&buf, OutputText).WriteSearch(res); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `Nenhum resultado para "<b>&".` {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteSearch_MaxChars(t *testing.T) {
	var buf bytes.Buffer
	res := &models.SearchResult{
		Query: "lei",
		Hits:  []*models.SearchHit{{Article: &models.Article{Number: 1, Text: "Art. 1 Esta lei é longa demais"}}},
		Total: 1,
	}
	w := NewWriter(&buf, OutputText)
	w.MaxChars = 10
	if err := w.WriteSearch(res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Art. 1 Est...") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteTOC(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, OutputText).WriteTOC(nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "Sumário não detectado." {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := NewWriter(&buf, OutputText).WriteTOC([]string{"TÍTULO I", "CAPÍTULO I"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• CAPÍTULO I") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := NewWriter(&buf, OutputJSON).WriteTOC(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"headings": []`) {
		t.Errorf("json output = %q", buf.String())
	}
}

func TestColorMatches(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()
	out := colorMatches("O Prazo e o prazo", "prazo")
	if strings.Count(out, "\x1b[") < 2 {
		t.Errorf("expected colored matches, got %q", out)
	}
	if colorMatches("abc", "\xff") != "abc" {
		t.Error("invalid pattern should leave text unchanged")
	}
}

func TestWriteStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	st := &models.Status{IndexID: "abc", Articles: 3, Headings: 2, Checksum: "xxh64:00", Reloads: 1}
	if err := NewWriter(&buf, OutputText).WriteStatus(st); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"index_id:     abc", "articles:     3", "checksum:     xxh64:00", "reloads:      1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}
}
