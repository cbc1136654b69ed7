package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"senti/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Text        string `json:"text"`
	TopKeywords *int   `json:"top_keywords,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var analysis domain.Analysis
	var err error
	if req.TopKeywords != nil {
		analysis, err = s.analyze.AnalyzeWithKeywords(r.Context(), req.Text, *req.TopKeywords)
	} else {
		analysis, err = s.analyze.Analyze(r.Context(), req.Text)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlankText):
			writeError(w, http.StatusBadRequest, "text must not be blank")
		case errors.Is(err, domain.ErrUnavailable):
			writeError(w, http.StatusServiceUnavailable, "classifier unavailable, try again later")
		default:
			s.logger.Error("analyze failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// handleBatch accepts a multipart upload of a line-delimited .txt file
// and returns the per-line rows plus the aggregate payload the dashboard
// charts from.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	result, err := s.batch.RunReader(r.Context(), header.Filename, file, nil)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "classifier unavailable, try again later")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rows":    result.Rows,
		"summary": result.Summary,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	analyses, err := s.report.List(limit)
	if err != nil {
		s.logger.Error("list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": analyses})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.report.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no such analysis")
			return
		}
		s.logger.Error("get failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load result")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.report.Summarize()
	if err != nil {
		s.logger.Error("summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sentiment_results.csv"`)

	if err := s.report.ExportCSV(w); err != nil {
		// Headers are already out; just log.
		s.logger.Error("csv export failed", zap.Error(err))
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, true)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, false)
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request, signup bool) {
	if s.identity == nil {
		writeError(w, http.StatusNotFound, "authentication is disabled")
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var session domain.Session
	var err error
	if signup {
		session, err = s.identity.SignUp(r.Context(), req.Email, req.Password)
	} else {
		session, err = s.identity.SignIn(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		s.logger.Warn("identity request rejected", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}
