package docsite

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnixTool(t *testing.T, name string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX tools")
	}
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestBuildSucceedsOnExitZero(t *testing.T) {
	requireUnixTool(t, "true")
	err := Build(context.Background(), BuildOptions{Dir: t.TempDir(), Command: "true", Log: zerolog.Nop()})
	require.NoError(t, err)
}

func TestBuildReportsExitCode(t *testing.T) {
	requireUnixTool(t, "false")
	err := Build(context.Background(), BuildOptions{Dir: t.TempDir(), Command: "false", Log: zerolog.Nop()})
	var be *BuildError
	require.True(t, errors.As(err, &be), "got %v", err)
	assert.Equal(t, 1, be.ExitCode)
}

func TestBuildTimeout(t *testing.T) {
	requireUnixTool(t, "sleep")
	// Dir is appended last, so it doubles as the sleep duration.
	err := Build(context.Background(), BuildOptions{Dir: "5", Command: "sleep", Timeout: 50 * time.Millisecond, Log: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestBuildNeedsCommand(t *testing.T) {
	require.Error(t, Build(context.Background(), BuildOptions{Command: "  "}))
	require.ErrorContains(t, Build(context.Background(), BuildOptions{Command: `npx "vitepress build`}), "parse build command")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("  short\n", 10))
	long := strings.Repeat("line\n", 100)
	got := tail(long, 12)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.LessOrEqual(t, len(got), 15)
}
