package vcpkg

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/Masterminds/vcs"
	"go.trai.ch/extbuild/internal/adapters/shell"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// GitFetcher implements ports.SourceFetcher with a recursive git clone run
// through the executor, so the clone sees the build environment and is killed
// on cancellation like every other build command.
type GitFetcher struct {
	executor ports.Executor
}

var _ ports.SourceFetcher = (*GitFetcher)(nil)

// NewGitFetcher creates a GitFetcher.
func NewGitFetcher(executor ports.Executor) *GitFetcher {
	return &GitFetcher{executor: executor}
}

// Fetch clones remote into dir and checks that dir holds a git working tree.
func (f *GitFetcher) Fetch(ctx context.Context, remote, dir string, env domain.Environment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	git, err := shell.LookPath("git", env.Vars)
	if err != nil {
		return checkoutError(zerr.Wrap(err, "git is not installed"), remote, dir)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return checkoutError(zerr.Wrap(err, "mkdir failed"), remote, dir)
	}

	err = f.executor.Execute(ctx, domain.Command{
		Name: git,
		Args: []string{"clone", "--recursive", "--", remote, dir},
		Dir:  parent,
		Env:  env.Vars,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(ctxErr, err)
		}
		return checkoutError(err, remote, dir)
	}

	if kind, err := vcs.DetectVcsFromFS(dir); err != nil || kind != vcs.Git {
		return checkoutError(zerr.New("clone did not produce a git working tree"), remote, dir)
	}
	return nil
}

func checkoutError(err error, remote, dir string) error {
	detail := zerr.With(zerr.Wrap(err, "git clone failed"), "remote", remote)
	detail = zerr.With(detail, "dir", dir)
	return errors.Join(domain.ErrSubprocessFailure, domain.ErrCheckoutFailed, detail)
}
