package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/crawling"
	"github.com/jonathan/talent-scout/internal/db"
	"github.com/jonathan/talent-scout/internal/schemas"
	"github.com/jonathan/talent-scout/internal/types"
)

// maxRequestBody caps the /get-candidate body size.
const maxRequestBody = 1 << 20

// searchRunHeader carries the recorded run ID on /get-candidate responses.
const searchRunHeader = "X-Search-Run-ID"

// handleGetCandidate runs the crawl selected by the request flag.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSearchRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ctx := r.Context()
	query := crawling.Query{
		Position: req.Position,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		Skills:   req.Skills,
	}

	runID := s.startRun(r, req)
	if runID != uuid.Nil {
		w.Header().Set(searchRunHeader, runID.String())
	}

	var (
		results any
		count   int
	)
	switch req.Flag {
	case types.FlagTarget:
		entries, crawlErr := s.searcher.CrawlTargetedTenure(ctx, req.ParentCompany, query)
		results, count, err = nonNil(entries), len(entries), crawlErr
	case types.FlagNotTarget:
		candidates, crawlErr := s.searcher.CrawlExcludingCompany(ctx, req.ParentCompany, query)
		results, count, err = nonNil(candidates), len(candidates), crawlErr
	default:
		candidates, crawlErr := s.searcher.Crawl(ctx, query)
		results, count, err = nonNil(candidates), len(candidates), crawlErr
	}

	if err != nil {
		s.finishRun(r, runID, 0, err)
		s.logger.Error("search failed",
			zap.String("flag", string(req.Flag)),
			zap.Error(err),
		)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.finishRun(r, runID, count, nil)
	s.jsonResponse(w, http.StatusOK, results)
}

// decodeSearchRequest reads, schema-checks and struct-validates the request body.
func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (*types.SearchRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		return nil, &ErrValidation{Message: fmt.Sprintf("failed to read request body: %v", err)}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &ErrValidation{Message: "request body is empty"}
	}

	if err := schemas.Validate(schemas.SearchRequest, body); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return nil, &ErrValidation{Message: schemaErr.Summary()}
		}
		return nil, err
	}

	var req types.SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ErrValidation{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := req.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag())}
		}
		return nil, &ErrValidation{Message: err.Error()}
	}

	return &req, nil
}

// startRun records the search when a run store is configured. Recording
// failures are logged and the search proceeds without a run ID.
func (s *Server) startRun(r *http.Request, req *types.SearchRequest) uuid.UUID {
	if s.runs == nil {
		return uuid.Nil
	}
	runID, err := s.runs.CreateSearchRun(r.Context(), &db.SearchRunInput{
		Flag:          string(req.Flag),
		ParentCompany: req.ParentCompany,
		Position:      req.Position,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		Skills:        req.Skills,
	})
	if err != nil {
		s.logger.Warn("failed to record search run", zap.Error(err))
		return uuid.Nil
	}
	return runID
}

func (s *Server) finishRun(r *http.Request, runID uuid.UUID, count int, runErr error) {
	if s.runs == nil || runID == uuid.Nil {
		return
	}
	// The request context may already be cancelled when the crawl failed for that reason.
	ctx := context.WithoutCancel(r.Context())
	if err := s.runs.CompleteSearchRun(ctx, runID, count, runErr); err != nil {
		s.logger.Warn("failed to complete search run",
			zap.String("run_id", runID.String()),
			zap.Error(err),
		)
	}
}

// handleGetRun returns a recorded search run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		err := &ErrRunStoreDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		verr := &ErrValidation{Field: "id", Message: "invalid run ID"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	run, err := s.runs.GetSearchRun(r.Context(), runID)
	if err != nil {
		s.logger.Error("failed to load search run", zap.String("run_id", runID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		nf := &ErrRunNotFound{RunID: runID}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
