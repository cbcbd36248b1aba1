// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"errors"
	"flag"
	"fmt"
	"testing"

	"go.astrophena.name/seqgen/internal/testutil"
)

func TestExtractDocComment(t *testing.T) {
	t.Parallel()

	src := []byte(`// header

/*
Tool does things.

# Usage

	$ tool [flags...]
*/
package main

/*
ignored
*/
`)
	want := "Tool does things.\n\n# Usage\n\n\t$ tool [flags...]\n"
	testutil.AssertEqual(t, extractDocComment(src), want)
	testutil.AssertEqual(t, extractDocComment(nil), "")
}

func TestIsPrintableError(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err  error
		want bool
	}{
		"plain":        {errors.New("boom"), true},
		"invalid args": {fmt.Errorf("%w: nope", ErrInvalidArgs), true},
		"help":         {flag.ErrHelp, false},
		"version":      {ErrExitVersion, false},
		"flag failure": {&unprintableError{errors.New("bad flag")}, false},
		"wrapped flag": {fmt.Errorf("run: %w", &unprintableError{errors.New("x")}), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, isPrintableError(tc.err), tc.want)
		})
	}
}
