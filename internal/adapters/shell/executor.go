// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed
// on context cancellation, since build tools leave compiler children behind.
const waitDelay = 5 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command with exactly the environment it carries.
// Output is line-buffered into the logger and copied to the vertex carried by ctx.
func (e *Executor) Execute(ctx context.Context, c domain.Command) error {
	stdoutLog := &logWriter{logger: e.logger, level: domain.LogLevelInfo}
	stderrLog := &logWriter{logger: e.logger, level: domain.LogLevelWarn}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	var stdout, stderr io.Writer = stdoutLog, stderrLog
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdoutLog, v.Stdout())
		stderr = io.MultiWriter(stderrLog, v.Stderr())
	}

	return e.run(ctx, c, stdout, stderr)
}

// Output runs the command and returns its standard output.
// Standard error is streamed like in Execute.
func (e *Executor) Output(ctx context.Context, c domain.Command) ([]byte, error) {
	stderrLog := &logWriter{logger: e.logger, level: domain.LogLevelWarn}
	defer func() { _ = stderrLog.Close() }()

	var stderr io.Writer = stderrLog
	if v, ok := ports.VertexFromContext(ctx); ok {
		stderr = io.MultiWriter(stderrLog, v.Stderr())
	}

	var out bytes.Buffer
	if err := e.run(ctx, c, &out, stderr); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (e *Executor) run(ctx context.Context, c domain.Command, stdout, stderr io.Writer) error {
	executable, err := resolveExecutable(c)
	if err != nil {
		return commandError(c, err, -1)
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // commands are assembled by the builder

	// Keep the name as invoked in Args[0].
	if len(cmd.Args) > 0 {
		cmd.Args[0] = c.Name
	}
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return commandError(c, err, exitCode)
	}

	return nil
}

func commandError(c domain.Command, err error, exitCode int) error {
	detail := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	detail = zerr.With(detail, "command", c.String())
	if c.Dir != "" {
		detail = zerr.With(detail, "dir", c.Dir)
	}
	return errors.Join(domain.ErrSubprocessFailure, detail)
}

// resolveExecutable resolves bare names against the command's own PATH.
// Relative paths such as "./vcpkg" are anchored at the working directory.
func resolveExecutable(c domain.Command) (string, error) {
	name := c.Name
	switch {
	case name == "":
		return "", exec.ErrNotFound
	case filepath.IsAbs(name):
		return name, nil
	case strings.ContainsRune(name, filepath.Separator):
		if c.Dir != "" {
			return filepath.Join(c.Dir, name), nil
		}
		return name, nil
	}
	return lookPath(name, c.Env)
}

// LookPath searches PATH as found in env, the way exec.LookPath searches
// the process environment.
func LookPath(file string, env []string) (string, error) {
	return lookPath(file, env)
}

func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", zerr.With(exec.ErrNotFound, "executable", file)
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(exec.ErrNotFound, "executable", file)
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

// logWriter forwards complete lines to the logger. A trailing partial line is
// held until the next newline or Close.
type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
	mu     sync.Mutex
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(bytes.TrimSuffix(w.buf[:i], []byte{'\r'})))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Close flushes any buffered partial line.
func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
	return nil
}

func (w *logWriter) emit(line string) {
	if w.level >= domain.LogLevelWarn {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}
