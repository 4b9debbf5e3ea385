package action

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/fsops"
)

// toolTimeout is the maximum time one external tool invocation may run.
const toolTimeout = 120 * time.Second

// ─── Outcomes ────────────────────────────────────────────────────────────────

// Status is the result class of one Execute call.
type Status int

const (
	StatusRan Status = iota
	StatusSkipped
	StatusDryRun
)

// Outcome reports how a request was handled. Execution failures do not get
// their own status: they are absorbed and the outcome is still StatusRan.
type Outcome struct {
	Status Status
	Reason string // set for StatusSkipped
	Freed  uint64 // bytes removed, best effort
}

// ─── Executor ────────────────────────────────────────────────────────────────

// Executor runs single actions under the run's dry-run, privilege, and
// best-effort policy. It never propagates an action failure to the caller:
// a missing cache directory or a permission-denied path must not abort the
// broader run.
type Executor struct {
	ctx *core.RunContext

	// sudoOK is a seam for tests; defaults to SudoAvailable.
	sudoOK func() bool
}

// NewExecutor creates an Executor bound to the run context.
func NewExecutor(ctx *core.RunContext) *Executor {
	return &Executor{ctx: ctx, sudoOK: SudoAvailable}
}

// Execute applies the fixed policy order: privilege check, path guard,
// dry-run, then the action itself. At most one log record is produced per
// invocation: the dry-run line, the verbose trace, or a verbose WARN when
// the action failed. Quiet successes log nothing.
func (e *Executor) Execute(req Request) Outcome {
	cfg, host := e.ctx.Config, e.ctx.Host

	if req.RequiresSudo && !host.IsRoot && !e.sudoOK() {
		if cfg.Verbose {
			e.ctx.Log.Info("skip %s: no privilege escalation", req.Describe())
		}
		return Outcome{Status: StatusSkipped, Reason: "no privilege escalation"}
	}

	if req.RequiresPath != "" && !PathExists(req.RequiresPath) {
		if cfg.Verbose {
			e.ctx.Log.Info("skip %s: path not found", req.Describe())
		}
		return Outcome{Status: StatusSkipped, Reason: "path not found"}
	}

	if cfg.DryRun {
		e.ctx.Log.Info("dry-run: %s", req.Describe())
		return Outcome{Status: StatusDryRun}
	}

	switch req.Kind {
	case RemovePath, RemoveContents:
		return e.remove(req)
	default:
		return e.runTool(req)
	}
}

// remove deletes the request target, expanding glob patterns. Individual
// failures are collected and surfaced as a single verbose WARN.
func (e *Executor) remove(req Request) Outcome {
	targets := []string{req.Path}
	if strings.ContainsAny(req.Path, "*?[") {
		matches, err := filepath.Glob(req.Path)
		if err != nil {
			matches = nil
		}
		targets = matches
	}

	var freed uint64
	var firstErr error
	for _, target := range targets {
		var n uint64
		var err error
		if req.Kind == RemoveContents {
			n, err = fsops.RemoveContents(target)
		} else {
			n, err = fsops.SafeDelete(target)
		}
		freed += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if e.ctx.Config.Verbose {
		if firstErr != nil {
			e.ctx.Log.Warn("%s: %v", req.Describe(), firstErr)
		} else {
			e.ctx.Log.Info(req.Describe())
		}
	}
	return Outcome{Status: StatusRan, Freed: freed}
}

// runTool invokes the external executable with a hard timeout. Privileged
// invocations go through "sudo -n" so a missing cached credential fails fast
// instead of blocking the single-threaded run on a password prompt.
func (e *Executor) runTool(req Request) Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	name, args := req.Tool, req.Args
	if req.RequiresSudo && !e.ctx.Host.IsRoot {
		args = append([]string{"-n", name}, args...)
		name = "sudo"
	}

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if e.ctx.Config.Verbose {
		if err != nil {
			e.ctx.Log.Warn("%s: %v", req.Describe(), wrapExitError(err, output))
		} else {
			e.ctx.Log.Info(req.Describe())
		}
	}
	return Outcome{Status: StatusRan}
}

// wrapExitError turns an exec failure into a compact, readable error,
// truncating tool output at a valid UTF-8 boundary.
func wrapExitError(err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s", toolTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out := strings.TrimSpace(string(output))
		if len(out) > 200 {
			out = out[:200]
			for len(out) > 0 && !utf8.ValidString(out) {
				out = out[:len(out)-1]
			}
			out += "..."
		}
		if out != "" {
			return fmt.Errorf("exit code %d: %s", exitErr.ExitCode(), out)
		}
		return fmt.Errorf("exit code %d", exitErr.ExitCode())
	}

	return err
}
