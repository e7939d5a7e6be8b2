// Package cli solves clues typed at the terminal, one per line.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bastiangx/cluesolve/pkg/config"
	"github.com/bastiangx/cluesolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Solver is what the CLI needs from the solver.
type Solver interface {
	Solve(ctx context.Context, req solver.Request) ([]solver.Solution, error)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C2E7"))
	answerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).PaddingLeft(4)
	stageStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6C7086"))
)

// InputHandler reads clues from a stream and prints ranked solutions.
type InputHandler struct {
	solver Solver
	cfg    config.CliConfig
	in     io.Reader
	out    io.Writer
	// interrupt, when true, lets Ctrl+C cancel the running solve.
	interrupt bool
}

// NewInputHandler creates a handler over stdin/stdout.
func NewInputHandler(s Solver, cfg config.CliConfig) *InputHandler {
	return &InputHandler{solver: s, cfg: cfg, in: os.Stdin, out: os.Stdout, interrupt: true}
}

// NewInputHandlerWithIO creates a handler over the given streams.
func NewInputHandlerWithIO(s Solver, cfg config.CliConfig, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{solver: s, cfg: cfg, in: in, out: out}
}

// Start reads clues until the input ends or ctx is done.
func (h *InputHandler) Start(ctx context.Context) error {
	fmt.Fprintln(h.out, headerStyle.Render("cluesolve CLI"))
	fmt.Fprintln(h.out, "type a clue and press Enter; add hints like | len=5 | cat=anagram | known=p???? | brute")
	fmt.Fprintln(h.out, "Ctrl+C cancels a running solve, Ctrl+D exits.")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(ctx, line)
	}
}

func (h *InputHandler) handleInput(ctx context.Context, line string) {
	req, err := ParseLine(line)
	if err != nil {
		log.Errorf("Invalid input: %v", err)
		return
	}
	req.Progress = func(stage string) {
		log.Debug(stageStyle.Render("generating " + stage + " wordplays"))
	}

	if h.interrupt {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	start := time.Now()
	sols, err := h.solver.Solve(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Cannot solve %q: %v", req.Text, err)
		return
	}
	if ctx.Err() != nil {
		log.Warnf("Solve cancelled, showing %d partial results", len(sols))
	}
	if len(sols) == 0 {
		log.Warnf("No solutions found for %q", req.Text)
		return
	}
	h.print(sols, elapsed)
}

func (h *InputHandler) print(sols []solver.Solution, elapsed time.Duration) {
	total := len(sols)
	if h.cfg.DefaultLimit > 0 && len(sols) > h.cfg.DefaultLimit {
		sols = sols[:h.cfg.DefaultLimit]
	}
	summary := fmt.Sprintf("Found %d solutions", total)
	if h.cfg.ShowTiming {
		summary += fmt.Sprintf(" in %v", elapsed.Round(time.Microsecond))
	}
	fmt.Fprintln(h.out, headerStyle.Render(summary))
	for i, sol := range sols {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, answerStyle.Render(strings.ToUpper(sol.DisplayAnswer())))
		fmt.Fprintln(h.out, detailStyle.Render(sol.Describe()))
	}
}
