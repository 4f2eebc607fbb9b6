package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/internal/search"
	"go.uber.org/zap"
)

type articleResponse struct {
	*models.LookupResult
	Message string `json:"message"`
}

// searchResponse messages are HTML-safe like the highlighted field, so a client may
// insert either without escaping. Query itself stays raw.
type searchResponse struct {
	*models.SearchResult
	Message string `json:"message,omitempty"`
}

type tocResponse struct {
	Headings []string `json:"headings"`
	Message  string   `json:"message,omitempty"`
}

func (s *Server) engine(w http.ResponseWriter) (*search.Engine, bool) {
	e, err := s.source.Engine()
	if err != nil {
		s.logger.Warn("no index available", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, models.MsgNoContent)
		return nil, false
	}
	return e, true
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	s.lookup(w, chi.URLParam(r, "number"))
}

func (s *Server) lookup(w http.ResponseWriter, raw string) {
	n, err := models.ParseArticleNumber(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, models.MsgInvalidNumber)
		return
	}
	e, ok := s.engine(w)
	if !ok {
		return
	}
	s.logger.Debug("article request", zap.Int("number", n))
	res, err := e.LookupByNumber(n)
	if errors.Is(err, models.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, models.MsgNotFound(n))
		return
	}
	if err != nil {
		s.logger.Error("lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, articleResponse{LookupResult: res, Message: models.MsgTotalArticles(res.Total)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	s.search(w, r.URL.Query().Get("q"), limit)
}

// search runs a keyword search; limit 0 uses the configured maximum.
func (s *Server) search(w http.ResponseWriter, q string, limit int) {
	e, ok := s.engine(w)
	if !ok {
		return
	}
	s.logger.Debug("search request", zap.String("query", q), zap.Int("limit", limit))
	var (
		res *models.SearchResult
		err error
	)
	if limit > 0 {
		res, err = e.Search(&models.KeywordQuery{Query: q, Limit: limit})
	} else {
		res, err = e.SearchByKeyword(q)
	}
	if errors.Is(err, models.ErrEmptyQuery) {
		s.respondError(w, http.StatusBadRequest, models.MsgEmptyQuery)
		return
	}
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := searchResponse{SearchResult: res}
	switch {
	case res.Total == 0:
		resp.Message = models.MsgNoResults(search.EscapeHTML(res.Query))
	case res.Truncated:
		resp.Message = models.MsgTruncated(len(res.Hits), res.Total)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	e, ok := s.engine(w)
	if !ok {
		return
	}
	toc, err := e.ListTOC()
	if errors.Is(err, models.ErrNoTOC) {
		s.respondJSON(w, http.StatusOK, tocResponse{Headings: []string{}, Message: models.MsgNoTOC})
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, tocResponse{Headings: toc})
}

// handleQuery serves the startup prefill parameters: ?art=NN looks an article up,
// otherwise ?q=word runs a keyword search.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	switch {
	case params.Has("art"):
		s.lookup(w, params.Get("art"))
	case params.Has("q"):
		s.search(w, params.Get("q"), 0)
	default:
		s.respondError(w, http.StatusBadRequest, "art or q is required")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.source.Status()
	if err != nil {
		s.respondError(w, http.StatusServiceUnavailable, models.MsgNoContent)
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
