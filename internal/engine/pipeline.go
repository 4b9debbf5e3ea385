package engine

import (
	"errors"

	"github.com/lakshaymaurya-felt/demole/internal/confirm"
	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/fsops"
)

// ErrAborted is returned when the operator declines to continue a run that
// started with elevated privileges. It is the only fatal condition above
// the executor.
var ErrAborted = errors.New("run aborted by user")

// Summary is assembled once after the last phase and read-only afterwards.
type Summary struct {
	FreeBefore fsops.Sample
	FreeAfter  fsops.Sample
	UnitsRun   int
}

// Pipeline owns the run lifecycle: permission check, baseline measurement,
// the fixed phase sequence, and summary assembly. Phases and units execute
// strictly in declared order; there is no reordering and no parallelism.
type Pipeline struct {
	ctx    *core.RunContext
	runner *Runner
	gate   *confirm.Gate
	phases []Phase

	freeSpace func() (fsops.Sample, error)
}

// NewPipeline builds a pipeline over the given phases.
func NewPipeline(ctx *core.RunContext, runner *Runner, gate *confirm.Gate, phases []Phase) *Pipeline {
	return &Pipeline{
		ctx:       ctx,
		runner:    runner,
		gate:      gate,
		phases:    phases,
		freeSpace: fsops.FreeSpace,
	}
}

// WithFreeSpace replaces the volume measurement function. Test seam.
func (p *Pipeline) WithFreeSpace(fn func() (fsops.Sample, error)) *Pipeline {
	p.freeSpace = fn
	return p
}

// Run drives the whole cleanup. No error from any unit reaches this level;
// the only error return is ErrAborted from the elevated-identity check.
func (p *Pipeline) Run() (*Summary, error) {
	cfg, host := p.ctx.Config, p.ctx.Host

	if host.IsRoot {
		p.ctx.Log.Warn("running as root: system paths are writable and deletions are not reversible")
		if !p.gate.Confirm("Continue as root?") {
			return nil, ErrAborted
		}
	}

	before, err := p.freeSpace()
	if err != nil {
		p.ctx.Log.Warn("free space measurement unavailable: %v", err)
	}

	unitsRun := 0
	for _, phase := range p.phases {
		p.ctx.Log.Info("─── %s ───", phase.Name)
		for _, u := range phase.Units {
			if p.runner.Run(u) == StateCompleted {
				unitsRun++
			}
		}
	}

	// In dry-run nothing was mutated, so the baseline sample stays truthful
	// as the final sample.
	after := before
	if !cfg.DryRun {
		if s, err := p.freeSpace(); err == nil {
			after = s
		}
	}

	return &Summary{FreeBefore: before, FreeAfter: after, UnitsRun: unitsRun}, nil
}
