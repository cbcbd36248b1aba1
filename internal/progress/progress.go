// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package progress renders [seqfile.Progress] notifications.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"go.astrophena.name/seqgen/internal/logger"
	"go.astrophena.name/seqgen/internal/seqfile"
)

// Mode selects how progress is shown.
type Mode string

// Supported modes.
const (
	// ModeLine rewrites a single line with the last allocated index.
	ModeLine Mode = "line"
	// ModeBar draws a progress bar towards the target count.
	ModeBar Mode = "bar"
	// ModeLog writes a log record per notification.
	ModeLog Mode = "log"
	// ModeNone shows nothing.
	ModeNone Mode = "none"
)

var modes = []Mode{ModeLine, ModeBar, ModeLog, ModeNone}

// ErrUnknownMode is returned by [ParseMode] for unsupported modes.
var ErrUnknownMode = errors.New("unknown progress mode")

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, s, strings.Join(names, ", "))
}

// New returns a function that renders notifications in the given mode. Text
// goes to w; log records go to the logger carried by ctx. count is the target
// passed to [seqfile.Allocator.Generate].
func New(ctx context.Context, mode Mode, w io.Writer, count int) func(seqfile.Progress) {
	switch mode {
	case ModeBar:
		return Bar(w, count)
	case ModeLog:
		return Log(ctx)
	case ModeNone:
		return func(seqfile.Progress) {}
	default:
		return Line(w)
	}
}

// Line overwrites one line of w with the last allocated index and ends the
// line on the final notification.
func Line(w io.Writer) func(seqfile.Progress) {
	return func(p seqfile.Progress) {
		fmt.Fprintf(w, "\rGenerated File #%d", p.Index)
		if p.Done {
			fmt.Fprintln(w)
		}
	}
}

// Bar draws a progress bar on w that fills up as indices approach count.
func Bar(w io.Writer, count int) func(seqfile.Progress) {
	bar := progressbar.NewOptions(max(count, 1),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetWriter(w),
	)
	return func(p seqfile.Progress) {
		bar.Set(min(p.Index, bar.GetMax()))
		if p.Done {
			bar.Finish()
		}
	}
}

// Log writes notifications as log records using the logger from ctx.
func Log(ctx context.Context) func(seqfile.Progress) {
	return func(p seqfile.Progress) {
		if p.Done {
			logger.Info(ctx, "generation finished", slog.Int("index", p.Index))
			return
		}
		logger.Info(ctx, "allocated", slog.Int("index", p.Index))
	}
}
