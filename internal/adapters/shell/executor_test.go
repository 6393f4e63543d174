package shell_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func hostEnv() []string {
	return []string{"PATH=" + os.Getenv("PATH")}
}

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("line2"),
	)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_FlushesPartialLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf 'no newline'"},
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_StderrIsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("to stderr").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo to stderr >&2"},
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_UsesExplicitEnvironmentOnly(t *testing.T) {
	t.Setenv("EXTBUILD_AMBIENT", "leaked")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("value-123|").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo \"$MY_TEST_VAR|$EXTBUILD_AMBIENT\""},
		Env:  append(hostEnv(), "MY_TEST_VAR=value-123"),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(resolved).Times(1)

	executor := shell.NewExecutor(mockLogger)
	err = executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "pwd -P"},
		Dir:  dir,
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_RelativeExecutableInDir(t *testing.T) {
	dir := t.TempDir()
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bootstrap.sh"), []byte("#!/bin/sh\necho bootstrapped\n"), 0o700))

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("bootstrapped").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "./bootstrap.sh",
		Dir:  dir,
		Env:  hostEnv(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_ResolvesAgainstCommandPath(t *testing.T) {
	binDir := t.TempDir()
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "fake-cmake"), []byte("#!/bin/sh\necho success\n"), 0o700))

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("success").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "fake-cmake",
		Env:  []string{"PATH=" + binDir},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "nonexistent-command-xyz123",
		Env:  hostEnv(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubprocessFailure)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
		Env:  hostEnv(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubprocessFailure)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(ctx, domain.Command{
		Name: "sh",
		Args: []string{"-c", "sleep 5"},
		Env:  hostEnv(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubprocessFailure)
}

func TestExecutor_Execute_WithVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("hello to stdout")
	mockLogger.EXPECT().Warn("hello to stderr")

	var stdoutBuf, stderrBuf bytes.Buffer
	mockVertex := mocks.NewMockVertex(ctrl)
	mockVertex.EXPECT().Stdout().Return(&stdoutBuf).AnyTimes()
	mockVertex.EXPECT().Stderr().Return(&stderrBuf).AnyTimes()

	ctx := ports.ContextWithVertex(context.Background(), mockVertex)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(ctx, domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello to stdout; echo hello to stderr >&2"},
		Env:  hostEnv(),
	})
	require.NoError(t, err)

	assert.Contains(t, stdoutBuf.String(), "hello to stdout")
	assert.Contains(t, stderrBuf.String(), "hello to stderr")
}

func TestExecutor_Output(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	out, err := executor.Output(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo 'cmake version 3.28.3'"},
		Env:  hostEnv(),
	})
	require.NoError(t, err)
	assert.Equal(t, "cmake version 3.28.3\n", string(out))
}

func TestLookPath(t *testing.T) {
	binDir := t.TempDir()
	tool := filepath.Join(binDir, "tool")
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "plain"), []byte("data"), 0o600))

	got, err := shell.LookPath("tool", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + binDir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = shell.LookPath("plain", []string{"PATH=" + binDir})
	require.ErrorIs(t, err, exec.ErrNotFound)

	_, err = shell.LookPath("tool", nil)
	require.ErrorIs(t, err, exec.ErrNotFound)
}
