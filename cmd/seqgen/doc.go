// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Seqgen fills a directory with sequentially numbered empty files.

# Usage

	$ seqgen [flags...] [dir]

Files are named file_<N>.txt. Seqgen looks for the highest N already present
in the directory (treating an empty directory as holding index 1) and keeps
creating files after it until an allocated index reaches the -count flag. The
directory is scanned only once per run, so running seqgen again with a larger
count creates just the missing files.

The directory defaults to ./generated_files and is created if it doesn't
exist. It can be given as the only argument or with the -dir flag.

Progress is reported every -every allocated indices, by default by rewriting
a single line on standard error. Use -progress=bar for a progress bar,
-progress=log for log records and -progress=none to stay quiet.

Several seqgen processes working on one directory will hand out the same
names. Pass -lock to make a second process fail instead. The lock is held on
a .seqgen.lock file in the directory, which is left in place after the run.

# Environment

SEQGEN_DIR, SEQGEN_COUNT, SEQGEN_EVERY and SEQGEN_PROGRESS provide defaults
for the corresponding flags.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/seqgen/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
