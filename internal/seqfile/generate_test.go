// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package seqfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.astrophena.name/seqgen/internal/testutil"
)

func generate(t *testing.T, a *Allocator, count int, opts Options) Result {
	t.Helper()
	res, err := a.Generate(context.Background(), count, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestGenerateEmptyDirectory(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	res := generate(t, a, 5, Options{})

	// Known quirk: the floor index 1 is allocated without a file, so
	// file_1.txt is never created and count-1 files appear.
	testutil.AssertEqual(t, testutil.ListDir(t, a.Dir()), []string{
		"file_2.txt", "file_3.txt", "file_4.txt", "file_5.txt",
	})
	testutil.AssertEqual(t, res, Result{First: 1, Last: 5, Created: 4})
}

func TestGenerateCreatesCountMinusOne(t *testing.T) {
	t.Parallel()

	for _, count := range []int{2, 3, 10, 51, 120} {
		a := newAllocator(t)
		res := generate(t, a, count, Options{})
		testutil.AssertEqual(t, res.Created, count-1)
		testutil.AssertEqual(t, len(testutil.ListDir(t, a.Dir())), count-1)
		for _, name := range seqNames(2, count) {
			if _, err := os.Stat(filepath.Join(a.Dir(), name)); err != nil {
				t.Fatalf("count %d: %v", count, err)
			}
		}
	}
}

func TestGenerateNothingToDo(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		files []string
		count int
	}{
		"count equals max":  {files: seqNames(1, 5), count: 5},
		"count below max":   {files: []string{"file_9.txt"}, count: 3},
		"count one":         {count: 1},
		"count zero":        {count: 0},
		"negative count":    {count: -10},
		"count equal floor": {files: []string{"notes.txt"}, count: 1},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a := newAllocator(t, tc.files...)
			before := testutil.ListDir(t, a.Dir())
			res := generate(t, a, tc.count, Options{})
			testutil.AssertEqual(t, res.Created, 0)
			testutil.AssertEqual(t, testutil.ListDir(t, a.Dir()), before)
		})
	}
}

func TestGenerateResumes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	generate(t, first, 10, Options{})
	testutil.AssertEqual(t, len(testutil.ListDir(t, dir)), 9)

	// A new session scans again and creates only the delta.
	second, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	res := generate(t, second, 15, Options{})
	testutil.AssertEqual(t, res, Result{First: 10, Last: 15, Created: 5})
	testutil.AssertEqual(t, len(testutil.ListDir(t, dir)), 14)
	for _, name := range seqNames(11, 15) {
		testutil.AssertContains(t, testutil.ListDir(t, dir), name)
	}
}

func TestGenerateTwiceOnOneAllocator(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	generate(t, a, 3, Options{})

	// The cache is already at 3, so the next run starts by advancing it.
	res := generate(t, a, 5, Options{})
	testutil.AssertEqual(t, res, Result{First: 4, Last: 5, Created: 1})
	testutil.AssertEqual(t, testutil.ListDir(t, a.Dir()), []string{
		"file_2.txt", "file_3.txt", "file_5.txt",
	})
}

func TestGenerateProgress(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	var got []Progress
	res := generate(t, a, 23, Options{
		Every:  5,
		Report: func(p Progress) { got = append(got, p) },
	})

	testutil.AssertEqual(t, got, []Progress{
		{Index: 5},
		{Index: 10},
		{Index: 15},
		{Index: 20},
		{Index: 23, Done: true},
	})
	testutil.AssertEqual(t, res.Last, 23)
}

func TestGenerateProgressDefaultInterval(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	var got []Progress
	generate(t, a, 120, Options{Report: func(p Progress) { got = append(got, p) }})
	testutil.AssertEqual(t, got, []Progress{
		{Index: 50},
		{Index: 100},
		{Index: 120, Done: true},
	})
}

func TestGenerateProgressWhenNothingToDo(t *testing.T) {
	t.Parallel()

	a := newAllocator(t, "file_8.txt")
	var got []Progress
	generate(t, a, 4, Options{Report: func(p Progress) { got = append(got, p) }})
	testutil.AssertEqual(t, got, []Progress{{Index: 8, Done: true}})
}

func TestGenerateBadInterval(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	_, err := a.Generate(context.Background(), 10, Options{Every: -1})
	if !errors.Is(err, errBadEvery) {
		t.Fatalf("want %v, got %v", errBadEvery, err)
	}
	testutil.AssertEqual(t, len(testutil.ListDir(t, a.Dir())), 0)
}

func TestGenerateDry(t *testing.T) {
	t.Parallel()

	a := newAllocator(t, "file_3.txt")
	var reports int
	res := generate(t, a, 10, Options{
		Dry:    true,
		Every:  1,
		Report: func(Progress) { reports++ },
	})
	testutil.AssertEqual(t, res, Result{First: 3, Last: 10, Created: 7})
	testutil.AssertEqual(t, reports, 8)
	testutil.AssertEqual(t, testutil.ListDir(t, a.Dir()), []string{"file_3.txt"})
}

func TestGenerateTruncatesExisting(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	if _, err := a.CurrentMax(); err != nil {
		t.Fatal(err)
	}
	// Appears after the scan, so the allocator doesn't know about it.
	if err := os.WriteFile(filepath.Join(a.Dir(), "file_3.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	generate(t, a, 3, Options{})
	b, err := os.ReadFile(filepath.Join(a.Dir(), "file_3.txt"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(b), 0)
}

func TestGenerateCanceled(t *testing.T) {
	t.Parallel()

	a := newAllocator(t)
	ctx, cancel := context.WithCancel(context.Background())

	res, err := a.Generate(ctx, 100, Options{
		Every: 10,
		Report: func(p Progress) {
			if p.Index == 20 {
				cancel()
			}
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	testutil.AssertEqual(t, res.Last, 20)
	testutil.AssertEqual(t, res.Created, 20)
	testutil.AssertEqual(t, len(testutil.ListDir(t, a.Dir())), 20)
}

func TestGenerateFileError(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	a := newAllocator(t)
	if err := os.Chmod(a.Dir(), 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(a.Dir(), 0o755) })

	res, err := a.Generate(context.Background(), 5, Options{})
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FileError, got %T (%v)", err, err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("want fs.ErrPermission, got %v", err)
	}
	testutil.AssertEqual(t, fe.Path, filepath.Join(a.Dir(), "file_2.txt"))
	testutil.AssertEqual(t, res.Created, 0)
}

func TestGenerateMalformedAborts(t *testing.T) {
	t.Parallel()

	a := newAllocator(t, "file_99999999999999999999999.txt")
	_, err := a.Generate(context.Background(), 5, Options{})
	var me *MalformedNameError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedNameError, got %T (%v)", err, err)
	}
	testutil.AssertEqual(t, len(testutil.ListDir(t, a.Dir())), 1)
}
