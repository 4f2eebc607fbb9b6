package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/corpus"
	"github.com/hyperjump/lexbusca/internal/extract"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/internal/search"
	"github.com/hyperjump/lexbusca/internal/server"
	"github.com/hyperjump/lexbusca/internal/watcher"
	"go.uber.org/zap"
)

const statuteSize = 120

func loadStatute(t *testing.T, ext string, s *Statute) (*corpus.Corpus, string) {
	t.Helper()
	content, err := RenderStatute(ext, s)
	if err != nil {
		t.Fatalf("RenderStatute(%s): %v", ext, err)
	}
	path := filepath.Join(t.TempDir(), "lei"+ext)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	c := corpus.New(extract.NewExtractor(), &config.SearchConfig{}, zap.NewNop())
	if err := c.Load(path, ""); err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	return c, path
}

func getJSON(t *testing.T, baseURL, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(baseURL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode
}

func TestE2E_AllFormats(t *testing.T) {
	s := BuildStatute(statuteSize)
	for _, ext := range SupportedFileExtensions {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			c, _ := loadStatute(t, ext, s)
			ts := httptest.NewServer(server.NewServer(c, &config.ServerConfig{}, zap.NewNop()).Handler())
			defer ts.Close()

			var st models.Status
			if code := getJSON(t, ts.URL, "/api/v1/status", &st); code != http.StatusOK {
				t.Fatalf("status code = %d", code)
			}
			if st.Articles != statuteSize || st.Headings != len(s.Headings) {
				t.Fatalf("status = %+v, want %d articles and %d headings", st, statuteSize, len(s.Headings))
			}

			var toc models.TOCResult
			getJSON(t, ts.URL, "/api/v1/toc", &toc)
			if !reflect.DeepEqual(toc.Headings, s.Headings) {
				t.Errorf("toc = %v, want %v", toc.Headings, s.Headings)
			}

			for _, a := range []StatuteArticle{s.Articles[0], s.Articles[8], s.Articles[9], s.Articles[statuteSize-1]} {
				var res models.LookupResult
				code := getJSON(t, ts.URL, fmt.Sprintf("/api/v1/articles/%d", a.Number), &res)
				if code != http.StatusOK || res.Article == nil {
					t.Fatalf("lookup %d: code %d", a.Number, code)
				}
				if res.Article.Number != a.Number || !strings.Contains(res.Article.Text, a.Signature) {
					t.Errorf("lookup %d returned %+v", a.Number, res.Article)
				}
			}

			hl := search.NewHighlighter(search.DefaultHighlightTag)
			for _, tc := range s.TestCases {
				var res models.SearchResult
				getJSON(t, ts.URL, "/api/v1/search?q="+url.QueryEscape(tc.Query), &res)
				var got []int
				for _, h := range res.Hits {
					got = append(got, h.Article.Number)
					if hl.StripMarkers(h.Highlighted) != search.EscapeHTML(h.Article.Text) {
						t.Errorf("%s: highlighted text of Art. %d does not strip back to the escaped text", tc.Description, h.Article.Number)
					}
				}
				if !reflect.DeepEqual(got, tc.ExpectedArticles) {
					t.Errorf("%s: got articles %v, want %v", tc.Description, got, tc.ExpectedArticles)
				}
			}
		})
	}
}

func TestE2E_PartitionCoversText(t *testing.T) {
	s := BuildStatute(statuteSize)
	c, _ := loadStatute(t, ".txt", s)
	e, err := c.Engine()
	if err != nil {
		t.Fatal(err)
	}
	idx := e.Index()
	for i, a := range idx.Articles {
		if i > 0 && idx.Articles[i-1].End != a.Start {
			t.Fatalf("gap between Art. %d and Art. %d", idx.Articles[i-1].Number, a.Number)
		}
	}
	if last := idx.Articles[len(idx.Articles)-1]; last.End != idx.Length {
		t.Errorf("last span ends at %d, text length %d", last.End, idx.Length)
	}
}

func TestE2E_HotReload(t *testing.T) {
	s := BuildStatute(20)
	c, path := loadStatute(t, ".txt", s)
	before, _ := c.Status()

	w := watcher.NewWatcher(path, func(string) {
		_ = c.Reload()
	}, watcher.WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	grown := BuildStatute(30)
	if err := os.WriteFile(path, []byte(grown.Text), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		st, err := c.Status()
		if err == nil && st.Articles == 30 {
			if st.IndexID == before.IndexID {
				t.Error("reload should publish a new index id")
			}
			if st.Reloads < 1 {
				t.Errorf("reloads = %d, want >= 1", st.Reloads)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("corpus was not reloaded after the file changed")
}

func TestE2E_FailedReloadKeepsIndex(t *testing.T) {
	s := BuildStatute(20)
	c, path := loadStatute(t, ".txt", s)
	if err := os.WriteFile(path, []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(); err == nil {
		t.Fatal("expected reload of blank file to fail")
	}
	st, err := c.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.Articles != 20 {
		t.Errorf("articles = %d, want previous index with 20", st.Articles)
	}
}
