// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"go.astrophena.name/seqgen/internal/cli"
	"go.astrophena.name/seqgen/internal/cli/envflag"
	"go.astrophena.name/seqgen/internal/cli/restrict"
	"go.astrophena.name/seqgen/internal/filelock"
	"go.astrophena.name/seqgen/internal/logger"
	"go.astrophena.name/seqgen/internal/progress"
	"go.astrophena.name/seqgen/internal/seqfile"
)

const (
	defaultDir   = "./generated_files"
	defaultCount = 500_000

	lockName = ".seqgen.lock"
)

func main() { cli.Main(new(app)) }

type app struct {
	dir      string
	count    int
	every    int
	progress string
	dry      bool
	lock     bool
	verbose  bool

	env *envflag.Set
}

var errBadEvery = errors.New("progress interval must be positive")

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.dir, "dir", defaultDir, "Generate files in `directory`.")
	fs.IntVar(&a.count, "count", defaultCount, "Stop when an allocated index reaches `number`.")
	fs.IntVar(&a.every, "every", seqfile.DefaultEvery, "Report progress every `n` indices.")
	fs.StringVar(&a.progress, "progress", string(progress.ModeLine), "Show progress as `line, bar, log or none`.")
	fs.BoolVar(&a.dry, "dry", false, "Allocate and report indices, but don't create files.")
	fs.BoolVar(&a.lock, "lock", false, "Hold an advisory lock on the directory while generating.")
	fs.BoolVar(&a.verbose, "v", false, "Enable debug logging.")

	a.env = envflag.New(fs)
	a.env.Bind("dir", "SEQGEN_DIR")
	a.env.Bind("count", "SEQGEN_COUNT")
	a.env.Bind("every", "SEQGEN_EVERY")
	a.env.Bind("progress", "SEQGEN_PROGRESS")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.env != nil {
		if err := a.env.Apply(env.Getenv); err != nil {
			return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
		}
	}
	if a.verbose {
		logger.Get(ctx).Level.Set(slog.LevelDebug)
	}

	switch len(env.Args) {
	case 0:
	case 1:
		a.dir = env.Args[0]
	default:
		return fmt.Errorf("%w: at most one directory argument is allowed", cli.ErrInvalidArgs)
	}
	if a.dir == "" {
		return fmt.Errorf("%w: directory must not be empty", cli.ErrInvalidArgs)
	}
	if a.every <= 0 {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, errBadEvery)
	}
	mode, err := progress.ParseMode(a.progress)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}

	alloc, err := seqfile.New(a.dir)
	if err != nil {
		return err
	}
	dir := alloc.Dir()
	if realdir, err := filepath.EvalSymlinks(dir); err == nil {
		dir = realdir
	}

	// Drop privileges if not in tests.
	restrict.DoUnlessTesting(ctx, restrict.WritableDir(dir))

	if a.lock {
		lock, err := filelock.Acquire(filepath.Join(dir, lockName), "pid="+strconv.Itoa(os.Getpid())+"\n")
		if err != nil {
			return err
		}
		defer release(ctx, lock)
	}

	res, err := alloc.Generate(ctx, a.count, seqfile.Options{
		Every:  a.every,
		Report: progress.New(ctx, mode, env.Stderr, a.count),
		Dry:    a.dry,
	})
	if err != nil {
		return err
	}

	attrs := []slog.Attr{
		slog.String("dir", dir),
		slog.Int("created", res.Created),
		slog.Int("last", res.Last),
	}
	if a.dry {
		logger.Info(ctx, "dry run finished", attrs...)
	} else {
		logger.Info(ctx, "generated files", attrs...)
	}
	return nil
}

// release unlocks the directory. The lock file itself stays in place, and a
// failure to unlock is logged without failing the run.
func release(ctx context.Context, lock filelock.Lock) {
	if err := lock.Release(); err != nil {
		logger.Error(ctx, "releasing lock", slog.Any("err", err))
	}
}
