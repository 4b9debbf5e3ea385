package action

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/logging"
)

// newTestContext builds a non-root run context logging into a buffer and a
// temp session file.
func newTestContext(t *testing.T, cfg core.RunConfig) (*core.RunContext, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger, err := logging.New(t.TempDir(), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	host := &core.HostProfile{Platform: core.PlatformLinux, IsRoot: false, Home: t.TempDir()}
	return &core.RunContext{Config: &cfg, Host: host, Log: logger}, &out
}

func TestExecuteSkipsMissingRequiredPath(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)

	victim := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(victim, []byte("data"), 0o644))

	out := e.Execute(Request{
		Kind:         RemovePath,
		Path:         victim,
		RequiresPath: filepath.Join(t.TempDir(), "nope"),
	})

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, "path not found", out.Reason)
	assert.FileExists(t, victim)
}

func TestExecuteSkipsWhenSudoUnavailable(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)
	e.sudoOK = func() bool { return false }

	out := e.Execute(Request{Kind: RunTool, Tool: "true", RequiresSudo: true})

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Equal(t, "no privilege escalation", out.Reason)
}

func TestExecuteSudoCheckPrecedesDryRun(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{DryRun: true})
	e := NewExecutor(ctx)
	e.sudoOK = func() bool { return false }

	out := e.Execute(Request{Kind: RunTool, Tool: "true", RequiresSudo: true})

	// The privilege check wins over dry-run branching.
	assert.Equal(t, StatusSkipped, out.Status)
}

func TestExecuteDryRunMutatesNothing(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{DryRun: true})
	e := NewExecutor(ctx)

	victim := filepath.Join(t.TempDir(), "cache", "blob")
	require.NoError(t, os.MkdirAll(filepath.Dir(victim), 0o755))
	require.NoError(t, os.WriteFile(victim, []byte("x"), 0o644))

	out := e.Execute(Request{Kind: RemovePath, Path: filepath.Dir(victim), RequiresPath: filepath.Dir(victim)})

	assert.Equal(t, StatusDryRun, out.Status)
	assert.FileExists(t, victim)

	// The action was logged verbatim to the session file.
	data, err := os.ReadFile(ctx.Log.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "rm -rf "+filepath.Dir(victim))
}

func TestExecuteRemovePath(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)

	target := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "f"), make([]byte, 64), 0o644))

	out := e.Execute(Request{Kind: RemovePath, Path: target, RequiresPath: target})

	assert.Equal(t, StatusRan, out.Status)
	assert.Equal(t, uint64(64), out.Freed)
	assert.NoDirExists(t, target)
}

func TestExecuteRemoveContentsKeepsDir(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)

	target := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "f"), []byte("xx"), 0o644))

	out := e.Execute(Request{Kind: RemoveContents, Path: target, RequiresPath: target})

	assert.Equal(t, StatusRan, out.Status)
	assert.DirExists(t, target)
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExecuteRemoveExpandsGlobs(t *testing.T) {
	ctx, _ := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)

	base := t.TempDir()
	for _, profile := range []string{"abc.default", "xyz.dev"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, profile, "cache2"), 0o755))
	}
	pattern := filepath.Join(base, "*", "cache2")

	out := e.Execute(Request{Kind: RemovePath, Path: pattern, RequiresPath: pattern})

	assert.Equal(t, StatusRan, out.Status)
	assert.NoDirExists(t, filepath.Join(base, "abc.default", "cache2"))
	assert.NoDirExists(t, filepath.Join(base, "xyz.dev", "cache2"))
	assert.DirExists(t, filepath.Join(base, "abc.default"))
}

func TestExecuteToolFailureIsAbsorbed(t *testing.T) {
	ctx, out := newTestContext(t, core.RunConfig{Verbose: true})
	e := NewExecutor(ctx)

	res := e.Execute(Request{Kind: RunTool, Tool: "false"})

	assert.Equal(t, StatusRan, res.Status)
	assert.Contains(t, out.String(), "[WARN]")
}

func TestExecuteQuietSuccessLogsNothing(t *testing.T) {
	ctx, out := newTestContext(t, core.RunConfig{})
	e := NewExecutor(ctx)

	target := filepath.Join(t.TempDir(), "gone-quietly")
	require.NoError(t, os.MkdirAll(target, 0o755))

	e.Execute(Request{Kind: RemovePath, Path: target, RequiresPath: target})
	assert.Zero(t, out.Len())
}
