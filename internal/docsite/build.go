package docsite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// DefaultBuildTimeout bounds the external site build.
const DefaultBuildTimeout = 5 * time.Minute

// BuildOptions configures Build.
type BuildOptions struct {
	// Dir is the docs root passed to the builder.
	Dir string
	// Command is the builder command line, e.g. "npx vitepress build".
	// Dir is appended as the last argument.
	Command string
	Timeout time.Duration
	Log     zerolog.Logger
}

// BuildError reports a builder that ran but exited non-zero.
type BuildError struct {
	ExitCode int
	Output   string
}

func (e *BuildError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("site build failed (exit code %d)", e.ExitCode)
	}
	return fmt.Sprintf("site build failed (exit code %d): %s", e.ExitCode, e.Output)
}

// Build runs the external site generator and succeeds only when it exits
// with status zero.
func Build(ctx context.Context, opts BuildOptions) error {
	fields, err := shellquote.Split(opts.Command)
	if err != nil {
		return fmt.Errorf("parse build command: %w", err)
	}
	if len(fields) == 0 {
		return errors.New("no build command configured")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(fields[1:], opts.Dir)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	opts.Log.Info().Str("cmd", fields[0]).Strs("args", args).Msg("building docs site")
	start := time.Now()
	err = cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("site build timed out after %s", timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &BuildError{ExitCode: exitErr.ExitCode(), Output: tail(out.String(), 400)}
		}
		return fmt.Errorf("run site builder: %w", err)
	}
	opts.Log.Info().Dur("took", time.Since(start)).Msg("docs site built")
	return nil
}

// tail keeps the last n bytes of s, trimmed to whole lines where possible.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	if i := strings.IndexByte(s, '\n'); i >= 0 && i < len(s)-1 {
		s = s[i+1:]
	}
	return "..." + s
}
