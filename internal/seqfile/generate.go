// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package seqfile

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.astrophena.name/seqgen/internal/logger"
)

// DefaultEvery is the progress interval used when [Options.Every] is zero.
const DefaultEvery = 50

// Progress is a notification sent while generating files.
type Progress struct {
	// Index is the last allocated index.
	Index int
	// Done is set on the final notification.
	Done bool
}

// Options control [Allocator.Generate].
type Options struct {
	// Every is the interval of progress notifications: one is sent after each
	// allocated index divisible by Every.
	Every int
	// Report receives progress notifications. It may be nil.
	Report func(Progress)
	// Dry disables file creation. Indices are still allocated and reported.
	Dry bool
}

// Result describes a finished [Allocator.Generate] run.
type Result struct {
	// First is the index returned by the first allocation of the run.
	First int
	// Last is the index returned by the last allocation of the run.
	Last int
	// Created is the number of files created, or that would have been created
	// in dry mode.
	Created int
}

var errBadEvery = errors.New("seqfile: progress interval must be positive")

// Generate creates empty files until an allocated index reaches count.
//
// Each iteration allocates an index with [Allocator.Next]. If the index is at
// least count, generation stops; otherwise an empty file is created at
// [Allocator.Path] of that index. On an empty directory Generate(ctx, 5, ...)
// therefore creates file_2.txt through file_5.txt, and a count not above the
// current maximum creates nothing.
//
// Filesystem errors abort the run. Files created so far are kept. The context
// is checked before each allocation.
func (a *Allocator) Generate(ctx context.Context, count int, opts Options) (Result, error) {
	every := opts.Every
	if every == 0 {
		every = DefaultEvery
	}
	if every < 0 {
		return Result{}, errBadEvery
	}
	report := opts.Report
	if report == nil {
		report = func(Progress) {}
	}

	var res Result
	for first := true; ; first = false {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		idx, err := a.Next()
		if err != nil {
			return res, err
		}
		if first {
			res.First = idx
			logger.Debug(ctx, "resuming numbering",
				slog.String("dir", a.dir),
				slog.Int("max", idx),
				slog.Int("count", count),
			)
		}
		res.Last = idx
		if idx >= count {
			break
		}

		path := a.Path(idx)
		if opts.Dry {
			logger.Debug(ctx, "would create", slog.String("path", path))
		} else if err := createEmpty(path); err != nil {
			return res, err
		}
		res.Created++

		if idx%every == 0 {
			report(Progress{Index: idx})
		}
	}

	report(Progress{Index: res.Last, Done: true})
	return res, nil
}

// createEmpty creates or truncates path and closes it right away.
func createEmpty(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}
