package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.trai.ch/extbuild/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

var testEnv = domain.Environment{OS: "linux", Arch: "amd64", Vars: []string{"PATH=/usr/bin"}}

type appFixture struct {
	root      string
	loader    *mocks.MockConfigLoader
	generator *mocks.MockBuildGenerator
	packages  *mocks.MockPackageManager
	locator   *mocks.MockArtifactLocator
	hasher    *mocks.MockHasher
	opener    *mocks.MockBuildInfoStoreOpener
	store     *mocks.MockBuildInfoStore
	telemetry *mocks.MockTelemetry
	app       *app.App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		root:      t.TempDir(),
		loader:    mocks.NewMockConfigLoader(ctrl),
		generator: mocks.NewMockBuildGenerator(ctrl),
		packages:  mocks.NewMockPackageManager(ctrl),
		locator:   mocks.NewMockArtifactLocator(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		opener:    mocks.NewMockBuildInfoStoreOpener(ctrl),
		store:     mocks.NewMockBuildInfoStore(ctrl),
	}

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	telemetry := mocks.NewMockTelemetry(ctrl)
	f.telemetry = telemetry
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	b := builder.NewBuilder(f.generator, f.packages, f.locator, f.hasher, telemetry, log)
	f.app = app.New(f.loader, b, f.opener, log).
		WithEnvironment(testEnv).
		WithWorkingDir(f.root)
	return f
}

func (f *appFixture) storePath() string {
	return filepath.Join(f.root, domain.DefaultStorePath())
}

func TestApp_Build(t *testing.T) {
	f := newAppFixture(t)
	project := domain.DefaultProject(f.root, testEnv)

	f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(project, nil)
	f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
	f.generator.EXPECT().Probe(gomock.Any(), testEnv).Return("cmake version 3.28.1", nil)
	f.packages.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(false, nil)
	f.packages.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil)
	f.packages.EXPECT().Integrate(gomock.Any(), gomock.Any()).Return(nil)
	f.generator.EXPECT().Configure(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg *domain.BuildConfig) error {
			assert.Equal(t, domain.BuildTypeDebug, cfg.BuildType)
			assert.Equal(t, 4, cfg.Jobs)
			assert.Equal(t, "arm64-osx", cfg.Triplet)
			return nil
		})
	f.generator.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil)
	f.locator.EXPECT().Locate(gomock.Any(), "pyatlas").Return([]string{"/out/pyatlas.so"}, nil)
	f.hasher.EXPECT().HashSources(gomock.Any(), f.root, gomock.Any()).Return("src", nil)
	f.hasher.EXPECT().HashManifest(gomock.Any(), "arm64-osx").Return("manifest")
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := f.app.Build(context.Background(), app.BuildOptions{
		Overrides: domain.Overrides{Debug: true, Jobs: 4, Triplet: "arm64-osx"},
	})
	require.NoError(t, err)
}

func TestApp_Build_ConfigLoaderError(t *testing.T) {
	f := newAppFixture(t)

	f.loader.EXPECT().Load(f.root, "custom.yaml", testEnv).Return(nil, errors.New("config load error"))

	err := f.app.Build(context.Background(), app.BuildOptions{ConfigFile: "custom.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "config load error")
}

func TestApp_Build_UnknownExtension(t *testing.T) {
	f := newAppFixture(t)

	f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(domain.DefaultProject(f.root, testEnv), nil)

	err := f.app.Build(context.Background(), app.BuildOptions{
		Overrides: domain.Overrides{Extensions: []string{"missing"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrExtensionNotFound.Error())
}

func TestApp_Build_ExecutionFailed(t *testing.T) {
	f := newAppFixture(t)

	f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(domain.DefaultProject(f.root, testEnv), nil)
	f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
	f.generator.EXPECT().Probe(gomock.Any(), testEnv).Return("cmake version 3.28.1", nil)
	f.packages.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(true, errors.Join(domain.ErrSubprocessFailure, errors.New("exit status 1")))

	err := f.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, domain.ErrSubprocessFailure)
}

func TestApp_Clean(t *testing.T) {
	t.Run("keeps the package manager checkout", func(t *testing.T) {
		f := newAppFixture(t)
		project := domain.DefaultProject(f.root, testEnv)
		workDir := domain.NewBuildConfig(project, project.Extensions[0], testEnv).WorkDir

		require.NoError(t, os.MkdirAll(filepath.Join(workDir, domain.PackageManagerDirName), domain.DirPerm))
		require.NoError(t, os.MkdirAll(filepath.Join(workDir, "CMakeFiles"), domain.DirPerm))
		require.NoError(t, os.WriteFile(filepath.Join(workDir, "CMakeCache.txt"), []byte("x"), domain.FilePerm))

		f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(project, nil)
		f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
		f.store.EXPECT().Reset().Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{}))

		assert.DirExists(t, filepath.Join(workDir, domain.PackageManagerDirName))
		assert.NoDirExists(t, filepath.Join(workDir, "CMakeFiles"))
		assert.NoFileExists(t, filepath.Join(workDir, "CMakeCache.txt"))
	})

	t.Run("all removes the working directory", func(t *testing.T) {
		f := newAppFixture(t)
		project := domain.DefaultProject(f.root, testEnv)
		workDir := domain.NewBuildConfig(project, project.Extensions[0], testEnv).WorkDir

		require.NoError(t, os.MkdirAll(filepath.Join(workDir, domain.PackageManagerDirName), domain.DirPerm))

		f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(project, nil)
		f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
		f.store.EXPECT().Reset().Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{All: true}))
		assert.NoDirExists(t, workDir)
	})

	t.Run("honors the build temp override", func(t *testing.T) {
		f := newAppFixture(t)
		project := domain.DefaultProject(f.root, testEnv)
		defaultWorkDir := domain.NewBuildConfig(project, project.Extensions[0], testEnv).WorkDir

		custom, err := project.Apply(domain.Overrides{BuildTemp: "out/temp"})
		require.NoError(t, err)
		customWorkDir := domain.NewBuildConfig(custom, custom.Extensions[0], testEnv).WorkDir
		require.NotEqual(t, defaultWorkDir, customWorkDir)

		require.NoError(t, os.MkdirAll(filepath.Join(defaultWorkDir, "CMakeFiles"), domain.DirPerm))
		require.NoError(t, os.MkdirAll(filepath.Join(customWorkDir, "CMakeFiles"), domain.DirPerm))

		f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(project, nil)
		f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
		f.store.EXPECT().Reset().Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{BuildTemp: "out/temp"}))

		assert.NoDirExists(t, filepath.Join(customWorkDir, "CMakeFiles"))
		assert.DirExists(t, filepath.Join(defaultWorkDir, "CMakeFiles"), "the default tree is not the one that was built")
	})

	t.Run("missing working directory", func(t *testing.T) {
		f := newAppFixture(t)

		f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(domain.DefaultProject(f.root, testEnv), nil)
		f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
		f.store.EXPECT().Reset().Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{}))
	})

	t.Run("store reset failure", func(t *testing.T) {
		f := newAppFixture(t)

		f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(domain.DefaultProject(f.root, testEnv), nil)
		f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
		f.store.EXPECT().Reset().Return(errors.New("permission denied"))

		err := f.app.Clean(context.Background(), app.CleanOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reset build records")
	})
}

func TestApp_Status(t *testing.T) {
	f := newAppFixture(t)
	records := []domain.BuildInfo{
		{Extension: "a", Triplet: "x64-linux"},
		{Extension: "b", Triplet: "x64-linux"},
	}

	f.loader.EXPECT().Load(f.root, domain.ConfigFileName, testEnv).Return(domain.DefaultProject(f.root, testEnv), nil)
	f.opener.EXPECT().Open(f.storePath()).Return(f.store, nil)
	f.store.EXPECT().List().Return(records, nil)

	infos, err := f.app.Status(context.Background(), app.StatusOptions{})
	require.NoError(t, err)
	assert.Equal(t, records, infos)
}

func TestApp_Steps(t *testing.T) {
	f := newAppFixture(t)
	steps := []domain.StepRecord{
		{Name: "preflight", Outcome: domain.StepDone},
		{Name: "checkout vcpkg", Outcome: domain.StepFailed, Error: "git clone failed"},
	}
	f.telemetry.EXPECT().Steps().Return(steps)

	assert.Equal(t, steps, f.app.Steps())
}
