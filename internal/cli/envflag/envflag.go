// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag lets environment variables provide values for flags that
// were not set on the command line.
package envflag

import (
	"flag"
	"fmt"
)

// Set binds flags of a [flag.FlagSet] to environment variables.
type Set struct {
	fs    *flag.FlagSet
	binds []binding
}

type binding struct {
	name, envName string
}

// New returns a Set that binds flags of fs.
func New(fs *flag.FlagSet) *Set {
	return &Set{fs: fs}
}

// Bind records that the flag name can be overridden by the environment
// variable envName and mentions it in the usage of the flag. It panics if
// there is no such flag.
func (s *Set) Bind(name, envName string) {
	f := s.fs.Lookup(name)
	if f == nil {
		panic("envflag: no such flag " + name)
	}
	f.Usage += " Can be overridden by " + envName + " environment variable."
	s.binds = append(s.binds, binding{name: name, envName: envName})
}

// Apply sets every bound flag that was not given on the command line from its
// environment variable, if the variable is not empty. It must be called after
// the flag set has been parsed.
//
// Values coming from the command line always win.
func (s *Set) Apply(getenv func(string) string) error {
	if !s.fs.Parsed() {
		return fmt.Errorf("envflag: flags are not parsed yet")
	}

	set := make(map[string]bool)
	s.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, b := range s.binds {
		if set[b.name] {
			continue
		}
		v := getenv(b.envName)
		if v == "" {
			continue
		}
		if err := s.fs.Set(b.name, v); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", v, b.envName, err)
		}
	}
	return nil
}
