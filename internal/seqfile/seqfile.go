// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package seqfile allocates sequentially numbered file names in a directory.
//
// Files are named file_<N>.txt. An [Allocator] scans its directory once to
// find the highest N present and then hands out following indices from a
// cached counter without scanning again.
//
// An Allocator is not safe for concurrent use, and two allocators working on
// the same directory do not coordinate: both will hand out the same indices.
package seqfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Prefix and Suffix surround the index in names of managed files.
	Prefix = "file_"
	Suffix = ".txt"

	// MinIndex is returned by [Allocator.CurrentMax] when the directory has no
	// matching files.
	MinIndex = 1
)

// Allocator produces the next unused file path in a directory.
type Allocator struct {
	dir    string
	max    int
	cached bool
}

// New returns an Allocator for dir, creating the directory and its parents if
// they don't exist.
func New(dir string) (*Allocator, error) {
	a := &Allocator{dir: dir}
	if err := a.EnsureDir(); err != nil {
		return nil, err
	}
	return a, nil
}

// Dir returns the directory of a.
func (a *Allocator) Dir() string { return a.dir }

// EnsureDir creates the directory of a and its parents. It does nothing if the
// directory already exists.
func (a *Allocator) EnsureDir() error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return &DirError{Dir: a.dir, Err: err}
	}
	return nil
}

// Matching returns names of directory entries that follow the file_<N>.txt
// pattern, in no particular order. Other names are ignored.
func (a *Allocator) Matching() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, &DirError{Dir: a.dir, Err: err}
	}
	var names []string
	for _, e := range entries {
		if Match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Match reports whether name follows the file_<N>.txt pattern, where N is one
// or more decimal digits.
func Match(name string) bool {
	digits, ok := indexPart(name)
	if !ok || digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func indexPart(name string) (string, bool) {
	if len(name) < len(Prefix)+len(Suffix) {
		return "", false
	}
	if !strings.HasPrefix(name, Prefix) || !strings.HasSuffix(name, Suffix) {
		return "", false
	}
	return name[len(Prefix) : len(name)-len(Suffix)], true
}

// ParseIndex returns N from a file_<N>.txt name.
func ParseIndex(name string) (int, error) {
	digits, ok := indexPart(name)
	if !ok {
		return 0, &MalformedNameError{Name: name, Err: errNoPattern}
	}
	if !Match(name) {
		return 0, &MalformedNameError{Name: name, Err: errNotDecimal}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &MalformedNameError{Name: name, Err: err}
	}
	return n, nil
}

// CurrentMax returns the highest index in the directory, or [MinIndex] if
// there are no matching files. The directory is scanned only the first time;
// afterwards the cached value is returned.
//
// The floor applies only to an empty scan: a directory holding just
// file_0.txt yields 0.
//
// A matching name that can't be parsed fails the scan instead of being
// skipped.
func (a *Allocator) CurrentMax() (int, error) {
	if a.cached {
		return a.max, nil
	}

	names, err := a.Matching()
	if err != nil {
		return 0, err
	}
	highest := MinIndex
	for i, name := range names {
		n, err := ParseIndex(name)
		if err != nil {
			return 0, err
		}
		if i == 0 || n > highest {
			highest = n
		}
	}

	a.max, a.cached = highest, true
	return a.max, nil
}

// Next allocates an index.
//
// The first call returns [Allocator.CurrentMax] unchanged. Every following
// call increments the cached value by one and returns it.
func (a *Allocator) Next() (int, error) {
	if a.cached {
		a.max++
		return a.max, nil
	}
	return a.CurrentMax()
}

// Path returns the path of the file that follows index, that is
// file_<index+1>.txt inside the directory.
func (a *Allocator) Path(index int) string {
	return filepath.Join(a.dir, Name(index+1))
}

// Name returns the file name for index n.
func Name(n int) string {
	return Prefix + strconv.Itoa(n) + Suffix
}

// Reset forgets the cached index, so the next call to [Allocator.CurrentMax]
// or [Allocator.Next] scans the directory again.
func (a *Allocator) Reset() {
	a.max, a.cached = 0, false
}

// String implements the fmt.Stringer interface.
func (a *Allocator) String() string {
	if !a.cached {
		return fmt.Sprintf("seqfile.Allocator{dir: %q}", a.dir)
	}
	return fmt.Sprintf("seqfile.Allocator{dir: %q, max: %d}", a.dir, a.max)
}
