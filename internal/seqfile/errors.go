// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package seqfile

import "errors"

var (
	errNoPattern  = errors.New("name does not look like " + Prefix + "<N>" + Suffix)
	errNotDecimal = errors.New("index is not a decimal number")
)

// DirError records a failure to create or read the directory.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string { return "directory " + e.Dir + ": " + e.Err.Error() }
func (e *DirError) Unwrap() error { return e.Err }

// FileError records a failure to create a file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return "creating " + e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }

// MalformedNameError records a file name whose index can't be parsed.
type MalformedNameError struct {
	Name string
	Err  error
}

func (e *MalformedNameError) Error() string {
	return "malformed file name " + e.Name + ": " + e.Err.Error()
}
func (e *MalformedNameError) Unwrap() error { return e.Err }
