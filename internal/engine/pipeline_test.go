package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/demole/internal/action"
	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/fsops"
)

// steppingFreeSpace returns a free-space function whose reading grows on
// every call, to prove which samples the pipeline used.
func steppingFreeSpace() func() (fsops.Sample, error) {
	n := uint64(0)
	return func() (fsops.Sample, error) {
		n += 1000
		return fsops.Sample{Path: "/", Bytes: n}, nil
	}
}

func TestPipelineRootDeclineAborts(t *testing.T) {
	ctx, out := newEngineContext(t, core.PlatformLinux, true, core.RunConfig{})
	d := &countingDispatcher{}
	gate := scriptedGate("n\n")
	r := NewRunner(ctx, d, gate)

	phases := []Phase{{
		Name: "System Cleanup",
		Units: []Unit{{
			Name:    "User caches",
			Scope:   AllPlatforms,
			Actions: []action.Request{{Kind: action.RemovePath, Path: "/x"}},
		}},
	}}

	sum, err := NewPipeline(ctx, r, gate, phases).WithFreeSpace(steppingFreeSpace()).Run()

	assert.ErrorIs(t, err, ErrAborted)
	assert.Nil(t, sum)
	assert.Empty(t, d.requests)
	assert.Contains(t, out.String(), "[WARN]")
}

func TestPipelineRootWithAutoConfirmProceeds(t *testing.T) {
	ctx, _ := newEngineContext(t, core.PlatformLinux, true, core.RunConfig{AutoConfirm: true})
	d := &countingDispatcher{}
	gate := yesGate()
	r := NewRunner(ctx, d, gate)

	sum, err := NewPipeline(ctx, r, gate, nil).WithFreeSpace(steppingFreeSpace()).Run()

	require.NoError(t, err)
	assert.Zero(t, sum.UnitsRun)
}

func TestPipelineDryRunReusesBaselineSample(t *testing.T) {
	ctx, _ := newEngineContext(t, core.PlatformLinux, false, core.RunConfig{DryRun: true, AutoConfirm: true})
	d := &countingDispatcher{}
	gate := yesGate()
	r := NewRunner(ctx, d, gate)

	phases := []Phase{{Name: "System Cleanup", Units: []Unit{{Name: "noop", Scope: AllPlatforms}}}}

	sum, err := NewPipeline(ctx, r, gate, phases).WithFreeSpace(steppingFreeSpace()).Run()

	require.NoError(t, err)
	assert.Equal(t, sum.FreeBefore, sum.FreeAfter)
	assert.Equal(t, 1, sum.UnitsRun)
}

func TestPipelineRealRunResamples(t *testing.T) {
	ctx, _ := newEngineContext(t, core.PlatformLinux, false, core.RunConfig{AutoConfirm: true})
	d := &countingDispatcher{}
	gate := yesGate()
	r := NewRunner(ctx, d, gate)

	sum, err := NewPipeline(ctx, r, gate, nil).WithFreeSpace(steppingFreeSpace()).Run()

	require.NoError(t, err)
	assert.NotEqual(t, sum.FreeBefore.Bytes, sum.FreeAfter.Bytes)
}

func TestPipelinePhaseAndUnitOrderIsFixed(t *testing.T) {
	ctx, _ := newEngineContext(t, core.PlatformLinux, false, core.RunConfig{AutoConfirm: true})
	d := &countingDispatcher{}
	gate := yesGate()
	r := NewRunner(ctx, d, gate)

	phases := []Phase{
		{Name: "one", Units: []Unit{
			{Name: "u1", Scope: AllPlatforms, Actions: []action.Request{{Kind: action.RunTool, Tool: "a"}}},
			{Name: "u2", Scope: AllPlatforms, Actions: []action.Request{{Kind: action.RunTool, Tool: "b"}}},
		}},
		{Name: "two", Units: []Unit{
			{Name: "u3", Scope: AllPlatforms, Actions: []action.Request{{Kind: action.RunTool, Tool: "c"}}},
		}},
	}

	sum, err := NewPipeline(ctx, r, gate, phases).WithFreeSpace(steppingFreeSpace()).Run()

	require.NoError(t, err)
	assert.Equal(t, 3, sum.UnitsRun)
	var tools []string
	for _, req := range d.requests {
		tools = append(tools, req.Tool)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tools)
}

// End-to-end with the real executor: a dry run must leave the filesystem
// untouched regardless of unit or confirmation outcomes.
func TestPipelineDryRunEndToEndMutatesNothing(t *testing.T) {
	ctx, _ := newEngineContext(t, core.PlatformLinux, false, core.RunConfig{DryRun: true, AutoConfirm: true})
	gate := yesGate()
	executor := action.NewExecutor(ctx)
	r := NewRunner(ctx, executor, gate)

	dir := t.TempDir()
	victim := filepath.Join(dir, "cache", "blob")
	require.NoError(t, os.MkdirAll(filepath.Dir(victim), 0o755))
	require.NoError(t, os.WriteFile(victim, []byte("precious"), 0o644))

	phases := []Phase{{
		Name: "System Cleanup",
		Units: []Unit{
			{
				Name:    "caches",
				Scope:   AllPlatforms,
				Actions: []action.Request{{Kind: action.RemoveContents, Path: dir, RequiresPath: dir}},
			},
			{
				Name:    "gated",
				Scope:   AllPlatforms,
				Confirm: true,
				Actions: []action.Request{{Kind: action.RemovePath, Path: victim, RequiresPath: victim}},
			},
		},
	}}

	sum, err := NewPipeline(ctx, r, gate, phases).WithFreeSpace(steppingFreeSpace()).Run()

	require.NoError(t, err)
	assert.Equal(t, 2, sum.UnitsRun)
	assert.FileExists(t, victim)
	assert.Equal(t, sum.FreeBefore, sum.FreeAfter)
}
