package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/go-mathparser/internal/catalog"
	"github.com/karupanerura/go-mathparser/internal/expression"
	"github.com/karupanerura/go-mathparser/internal/types"
	"github.com/rs/zerolog"
)

const (
	postfixPath   = "/v1/postfix"
	functionsPath = "/v1/functions"
)

type postfixRequest struct {
	Expression *string               `json:"expression"`
	Tokens     []expression.TokenDef `json:"tokens"`
}

type postfixResponse struct {
	Source  string             `json:"source,omitempty"`
	Infix   []expression.Token `json:"infix"`
	Postfix []expression.Token `json:"postfix"`
}

type functionsResponse struct {
	Functions []types.FunctionInfo `json:"functions"`
}

type httpHandler struct {
	repository atomic.Value
	logger     zerolog.Logger
}

type Option struct {
	Logger zerolog.Logger
	// ReloadInterval is how often the loader is consulted again. Zero disables reloading.
	ReloadInterval time.Duration
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	}()

	switch r.URL.Path {
	case postfixPath:
		if r.Method != http.MethodPost {
			http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.convert(rw, r)

	case functionsPath:
		if r.Method != http.MethodGet {
			http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listFunctions(rw, r)

	default:
		http.Error(rw, "Not Found", http.StatusNotFound)
	}
}

func (h *httpHandler) functions() *catalog.FunctionRepository {
	return h.repository.Load().(*catalog.FunctionRepository)
}

func (h *httpHandler) convert(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req postfixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("failed to decode request body")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var res postfixResponse
	switch {
	case req.Expression != nil && req.Tokens != nil:
		h.resException(w, types.NewInvalidInputError("either expression or tokens must be given, not both"))
		return

	case req.Expression != nil:
		expr, err := expression.ParseExpr(*req.Expression, h.functions())
		if err != nil {
			h.resException(w, err)
			return
		}
		res = postfixResponse{Source: expr.Source, Infix: expr.Infix, Postfix: expr.Postfix}

	case req.Tokens != nil:
		infix, err := expression.DecodeTokenDefs(req.Tokens)
		if err != nil {
			h.resException(w, err)
			return
		}
		postfix, err := expression.ToPostfix(expression.SliceTokens(infix))
		if err != nil {
			h.resException(w, err)
			return
		}
		res = postfixResponse{Infix: infix, Postfix: postfix}

	default:
		h.resException(w, types.NewInvalidInputError("expression or tokens is required"))
		return
	}

	if err := resJSON(w, http.StatusOK, res); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (h *httpHandler) listFunctions(w http.ResponseWriter, r *http.Request) {
	res := functionsResponse{Functions: h.functions().Functions()}
	if err := resJSON(w, http.StatusOK, res); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (h *httpHandler) resException(w http.ResponseWriter, err error) {
	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		h.logger.Error().Err(err).Msg("failed to convert expression")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := http.StatusBadRequest
	if typedErr.Tag == types.ParseErrorTag {
		status = http.StatusUnprocessableEntity
	}
	if writeErr := resJSON(w, status, map[string]any{"error": typedErr.Exception()}); writeErr != nil {
		h.logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}

// NewHTTPHandler serves conversions with the functions of loader. Reloading
// stops when ctx is done.
func NewHTTPHandler(ctx context.Context, loader catalog.FunctionLoader, opt Option) (http.Handler, error) {
	repository, err := catalog.NewFunctionRepository(loader)
	if err != nil {
		return nil, err
	}

	h := &httpHandler{logger: opt.Logger}
	h.repository.Store(repository)
	if opt.ReloadInterval > 0 {
		go h.reload(ctx, loader, opt.ReloadInterval)
	}
	return h, nil
}

func (h *httpHandler) reload(ctx context.Context, loader catalog.FunctionLoader, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			repository, err := catalog.NewFunctionRepository(loader)
			if err != nil {
				h.logger.Error().Err(err).Msg("failed to reload functions")
				continue
			}
			h.repository.Store(repository)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
