package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/cluesolve/internal/logger"
	"github.com/bastiangx/cluesolve/pkg/clue"
	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/bastiangx/cluesolve/pkg/wordplay"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLimit = 10

// Backend is what the server needs from the solver.
type Backend interface {
	Solve(ctx context.Context, req solver.Request) ([]solver.Solution, error)
	RebuildLexicon(ctx context.Context) error
	RebuildWordplayDictionaries(ctx context.Context) error
	Stats() solver.Stats
}

// Server handles msgpack IPC for clue solving.
type Server struct {
	backend Backend
	cfg     config.ServerConfig
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(backend Backend, cfg config.ServerConfig) *Server {
	return NewServerWithIO(backend, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over the given streams.
func NewServerWithIO(backend Backend, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		backend: backend,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
		log:     logger.NewWithWriter("server", os.Stderr),
	}
}

// Start serves requests until the input ends or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	s.send(map[string]string{"status": "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return err
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		s.handleRequest(ctx, req)
	}
}

func (s *Server) handleRequest(ctx context.Context, req Request) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action == "" && req.Clue != "" {
		action = ActionSolve
	}
	switch action {
	case ActionSolve:
		s.handleSolve(ctx, req)
	case ActionRebuild:
		s.handleRebuild(ctx, req)
	case ActionHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.backend.Stats()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

func (s *Server) handleSolve(ctx context.Context, req Request) {
	if strings.TrimSpace(req.Clue) == "" {
		s.sendError(req.ID, "missing 'clue' parameter", 400)
		return
	}
	category, err := wordplay.ParseCategory(req.Category)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	timeout := time.Duration(req.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Duration(s.cfg.SolveTimeoutMs) * time.Millisecond
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	sols, err := s.backend.Solve(ctx, solver.Request{
		Text:         req.Clue,
		Length:       req.Length,
		Category:     category,
		KnownLetters: req.Known,
		Options: solver.Options{
			BruteForce:   req.Brute,
			SynonymDepth: req.Depth,
		},
	})
	elapsed := time.Since(start)
	if err != nil {
		code := 500
		if isValidation(err) {
			code = 400
		}
		s.sendError(req.ID, err.Error(), code)
		return
	}

	if len(sols) > limit {
		sols = sols[:limit]
	}
	items := make([]SolutionItem, len(sols))
	for i, sol := range sols {
		items[i] = SolutionItem{
			Answer:     sol.DisplayAnswer(),
			Category:   sol.CategoryName(),
			Definition: sol.DefinitionText(),
			Wordplay:   sol.WordplayText(),
			Keyword:    sol.KeywordText(),
			AppliedTo:  strings.Join(sol.AppliedTo, " "),
			Confidence: sol.Confidence,
		}
	}
	partial := ctx.Err() != nil
	if partial {
		s.log.Warn("solve timed out", "id", req.ID, "after", elapsed)
	}
	s.send(SolveResponse{
		ID:        req.ID,
		Solutions: items,
		Count:     len(items),
		TimeTaken: elapsed.Microseconds(),
		Partial:   partial,
	})
}

func (s *Server) handleRebuild(ctx context.Context, req Request) {
	var rebuild func(context.Context) error
	switch strings.ToLower(req.Target) {
	case TargetWordList:
		rebuild = s.backend.RebuildLexicon
	case TargetWordplay:
		rebuild = s.backend.RebuildWordplayDictionaries
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown rebuild target: %q", req.Target), 400)
		return
	}
	start := time.Now()
	if err := rebuild(ctx); err != nil {
		s.log.Errorf("Rebuilding %s: %v", req.Target, err)
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "ok", TimeTaken: time.Since(start).Microseconds()})
}

// isValidation reports whether err was caused by the request itself.
func isValidation(err error) bool {
	return errors.Is(err, clue.ErrUnsupportedClue) ||
		errors.Is(err, clue.ErrLengthMismatch) ||
		errors.Is(err, solver.ErrBruteForceRequiresKnownLetters)
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
