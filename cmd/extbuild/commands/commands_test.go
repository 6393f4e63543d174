package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/cmd/extbuild/commands"
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/build"
	"go.trai.ch/extbuild/internal/core/domain"
)

type mockApp struct {
	buildFunc  func(ctx context.Context, opts app.BuildOptions) error
	cleanFunc  func(ctx context.Context, opts app.CleanOptions) error
	statusFunc func(ctx context.Context, opts app.StatusOptions) ([]domain.BuildInfo, error)
	steps      []domain.StepRecord
}

func (m *mockApp) Steps() []domain.StepRecord {
	return m.steps
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Status(ctx context.Context, opts app.StatusOptions) ([]domain.BuildInfo, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, opts)
	}
	return nil, nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		called := false

		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"-c", "ci.yaml", "build", "pyatlas",
			"--build-temp", "out/temp", "--build-lib", "out/lib",
			"-j", "8", "--debug", "--triplet", "arm64-linux",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "ci.yaml", captured.ConfigFile)
		assert.Equal(t, domain.Overrides{
			Extensions: []string{"pyatlas"},
			BuildTemp:  "out/temp",
			BuildLib:   "out/lib",
			Jobs:       8,
			Debug:      true,
			Triplet:    "arm64-linux",
		}, captured.Overrides)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, domain.ConfigFileName, captured.ConfigFile)
		assert.Empty(t, captured.Overrides.Extensions)
		assert.False(t, captured.Overrides.Debug)
		assert.Zero(t, captured.Overrides.Jobs)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("prints the steps of a failed build", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) error {
				return errors.Join(domain.ErrBuildFailed, domain.ErrSubprocessFailure)
			},
			steps: []domain.StepRecord{
				{Name: "checkout vcpkg", Outcome: domain.StepCached},
				{Name: "install x64-linux", Outcome: domain.StepFailed, Error: "exit status 1"},
			},
		}

		cli := commands.New(mock)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"build"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSubprocessFailure)
		assert.Contains(t, out.String(), "checkout vcpkg")
		assert.Contains(t, out.String(), "install x64-linux")
		assert.Contains(t, out.String(), "exit status 1")
	})

	t.Run("json logs leave out the step summary", func(t *testing.T) {
		mock := &mockApp{
			steps: []domain.StepRecord{{Name: "build pyatlas", Outcome: domain.StepDone}},
		}

		cli := commands.New(mock)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"--json", "build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.NotContains(t, out.String(), "build pyatlas")
	})

	t.Run("rejects a non-numeric job count", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "-j", "many"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		all       bool
		buildTemp string
	}{
		{name: "default", args: []string{"clean"}, all: false},
		{name: "all", args: []string{"clean", "--all"}, all: true},
		{name: "build temp", args: []string{"clean", "--build-temp", "out/temp"}, buildTemp: "out/temp"},
		{name: "short build temp", args: []string{"clean", "-a", "-t", "out/temp"}, all: true, buildTemp: "out/temp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.all, captured.All)
			assert.Equal(t, tt.buildTemp, captured.BuildTemp)
			assert.Equal(t, domain.ConfigFileName, captured.ConfigFile)
		})
	}
}

func TestCommands_Status(t *testing.T) {
	mock := &mockApp{
		statusFunc: func(_ context.Context, _ app.StatusOptions) ([]domain.BuildInfo, error) {
			return []domain.BuildInfo{{Extension: "pyatlas", Triplet: "x64-linux"}}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"status"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "pyatlas")
	assert.Contains(t, buf.String(), "x64-linux")
}

func TestCommands_JSONLogs(t *testing.T) {
	var enabled bool
	cli := commands.New(&mockApp{}, commands.WithJSONLogs(func(enable bool) {
		enabled = enable
	}))
	cli.SetArgs([]string{"--json", "clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, enabled)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
	assert.Contains(t, buf.String(), "extbuild")
}
