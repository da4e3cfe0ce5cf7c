package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// DefaultScriptTimeout bounds a single osascript invocation.
const DefaultScriptTimeout = 30 * time.Second

// DryRunOutput is what DryRunExecutor returns for every script.
const DryRunOutput = "dry-run"

// Executor runs an AppleScript program and returns its trimmed output.
type Executor interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSAScript runs scripts through the osascript binary.
type OSAScript struct {
	Binary  string
	Timeout time.Duration
}

func NewOSAScript(timeout time.Duration) *OSAScript {
	return &OSAScript{Binary: "osascript", Timeout: timeout}
}

func (o *OSAScript) Run(ctx context.Context, script string) (string, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := o.Binary
	if binary == "" {
		binary = "osascript"
	}

	cmd := exec.CommandContext(ctx, binary, "-e", script)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", ErrScriptTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output := strings.TrimSpace(stderr.String())
			if output == "" {
				output = strings.TrimSpace(stdout.String())
			}
			return "", &ScriptError{Output: output, Err: err}
		}
		return "", fmt.Errorf("failed to run %s: %w", binary, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DryRunExecutor logs scripts instead of running them.
type DryRunExecutor struct {
	logger zerolog.Logger
}

func NewDryRunExecutor(logger zerolog.Logger) *DryRunExecutor {
	return &DryRunExecutor{logger: logger}
}

func (d *DryRunExecutor) Run(_ context.Context, script string) (string, error) {
	d.logger.Info().Msgf("[DRY RUN] Would execute AppleScript:\n%s", scriptPreview(script))
	return DryRunOutput, nil
}

const previewRunes = 200

// scriptPreview shortens script to its first previewRunes characters.
func scriptPreview(script string) string {
	if utf8.RuneCountInString(script) <= previewRunes {
		return script
	}
	runes := []rune(script)
	return string(runes[:previewRunes]) + "..."
}
