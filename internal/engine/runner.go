package engine

import (
	"github.com/lakshaymaurya-felt/demole/internal/action"
	"github.com/lakshaymaurya-felt/demole/internal/confirm"
	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/fsops"
	"github.com/lakshaymaurya-felt/demole/internal/ui"
)

// Dispatcher abstracts the action executor so tests can count dispatches.
type Dispatcher interface {
	Execute(req action.Request) action.Outcome
}

// Runner interprets units: one generic implementation of the
// platform-skip / confirmation / guard / dispatch sequence.
type Runner struct {
	ctx  *core.RunContext
	exec Dispatcher
	gate *confirm.Gate
}

// NewRunner builds a Runner over the given executor and confirmation gate.
func NewRunner(ctx *core.RunContext, exec Dispatcher, gate *confirm.Gate) *Runner {
	return &Runner{ctx: ctx, exec: exec, gate: gate}
}

// Run executes one unit to its terminal state. A platform mismatch returns
// before any guard check or prompt; a declined confirmation returns before
// any action; otherwise every action is dispatched and the unit completes
// with a single SUCCESS record, however many actions were skipped.
func (r *Runner) Run(u Unit) State {
	cfg, host := r.ctx.Config, r.ctx.Host

	if !u.Scope.Matches(host.Platform) {
		r.ctx.Log.Info("%s: skipped on %s", u.Name, host.Platform)
		return StatePlatformSkipped
	}

	if u.Confirm {
		prompt := u.Prompt
		if prompt == "" {
			prompt = "Clean " + u.Name + "?"
		}
		if !r.gate.Confirm(prompt) {
			r.ctx.Log.Info("%s: skipped by user", u.Name)
			return StateUserDeclined
		}
	}

	if u.RequiresTool != "" && !action.ToolAvailable(u.RequiresTool) {
		if cfg.Verbose {
			r.ctx.Log.Info("%s: %s not installed, nothing to do", u.Name, u.RequiresTool)
		}
		r.ctx.Log.Success("%s", u.Name)
		return StateCompleted
	}

	var before fsops.Sample
	measure := u.MeasurePath != "" && !cfg.DryRun
	if measure {
		before = fsops.Measure(u.MeasurePath)
	}

	for _, req := range u.Actions {
		r.exec.Execute(req)
	}

	if measure {
		after := fsops.Measure(u.MeasurePath)
		if before.Bytes > after.Bytes {
			r.ctx.Log.Clean("%s: freed %s", u.Name, ui.HumanSize(before.Bytes-after.Bytes))
		}
	}

	for _, p := range u.ReportPaths {
		if s := fsops.Measure(p); s.Bytes > 0 {
			r.ctx.Log.Clean("%s: %s", p, ui.HumanSize(s.Bytes))
		}
	}

	r.ctx.Log.Success("%s", u.Name)
	return StateCompleted
}
