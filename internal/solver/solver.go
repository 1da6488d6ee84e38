// Package solver adapts an external double-dummy-solver process to the
// bridge.Solver interface. The core treats the solver as an out-of-scope
// collaborator; this package is the concrete, replaceable implementation
// of that collaborator's contract, never imported by the bridge package
// itself.
package solver

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ark223/AlphaBridge/bridge"
)

// ExecSolver drives an external double-dummy-solver binary over a
// line-based stdin/stdout protocol, one process per handle — the same
// shape as a UCI/GTP engine adapter. The binary path and protocol are a
// deployment concern; this package only defines the plumbing.
type ExecSolver struct {
	// BinaryPath is the double-dummy-solver executable to invoke.
	BinaryPath string
	// Args are extra arguments passed to BinaryPath (e.g. a config flag,
	// or a wrapper script under test).
	Args []string
	Log  *logrus.Logger
}

// NewExecSolver returns an ExecSolver logging to a sane default logger.
func NewExecSolver(binaryPath string) *ExecSolver {
	return &ExecSolver{BinaryPath: binaryPath, Log: logrus.StandardLogger()}
}

// NewHandle implements bridge.Solver.
func (e *ExecSolver) NewHandle(pbnDeal string, strain bridge.Suit, leader bridge.Player) (bridge.SolverHandle, error) {
	if e.Log == nil {
		e.Log = logrus.StandardLogger()
	}
	id := uuid.New()
	cmd := exec.Command(e.BinaryPath, e.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("solver %s: stdin pipe: %w", id, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("solver %s: stdout pipe: %w", id, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("solver %s: start: %w", id, err)
	}

	h := &execHandle{
		id:     id,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		log:    e.Log,
	}

	init := fmt.Sprintf("DEAL %s STRAIN %s LEADER %s", pbnDeal, strain, leader)
	if err := h.writeLine(init); err != nil {
		h.Release()
		return nil, fmt.Errorf("solver %s: init: %w", id, err)
	}
	return h, nil
}

// execHandle is a single scoped solver session: one external process per
// handle, released on every exit path by the caller.
type execHandle struct {
	id     uuid.UUID
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	log    *logrus.Logger

	mu sync.Mutex
}

func (h *execHandle) writeLine(line string) error {
	_, err := io.WriteString(h.stdin, line+"\n")
	return err
}

func (h *execHandle) readLine() (string, error) {
	line, err := h.stdout.ReadString('\n')
	return strings.TrimSpace(line), err
}

// Command implements bridge.SolverHandle.
func (h *execHandle) Command(cards string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.writeLine("PLAY " + cards); err != nil {
		return fmt.Errorf("solver %s: command: %w", h.id, err)
	}
	if _, err := h.readLine(); err != nil {
		return fmt.Errorf("solver %s: command ack: %w", h.id, err)
	}
	return nil
}

// TricksFor implements bridge.SolverHandle.
func (h *execHandle) TricksFor(c bridge.Card) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.writeLine("SOLVE " + c.String()); err != nil {
		return 0, fmt.Errorf("solver %s: solve: %w", h.id, err)
	}
	reply, err := h.readLine()
	if err != nil {
		return 0, fmt.Errorf("solver %s: solve reply: %w", h.id, err)
	}
	var tricks int
	if _, err := fmt.Sscanf(reply, "TRICKS %d", &tricks); err != nil {
		return 0, fmt.Errorf("solver %s: malformed reply %q: %w", h.id, reply, err)
	}
	return tricks, nil
}

// Release implements bridge.SolverHandle. It is safe to call more than
// once and never returns an error — a solver process that fails to exit
// cleanly is logged, not propagated: no cleanup path is allowed to leave
// solver state half-released.
func (h *execHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = h.stdin.Close()
	if err := h.cmd.Wait(); err != nil {
		h.log.WithField("solver_id", h.id).WithError(err).Warn("solver process exited with error")
	}
}
