// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package filelock provides non-blocking advisory file locks.
package filelock

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrAlreadyLocked indicates the lock is currently held by another process.
var ErrAlreadyLocked = errors.New("already locked")

// LockedError is returned by [Acquire] when the lock is held elsewhere. Owner
// is the payload written by the holder, if any.
type LockedError struct {
	Path  string
	Owner string
}

func (e *LockedError) Error() string {
	if e.Owner == "" {
		return e.Path + ": " + ErrAlreadyLocked.Error()
	}
	return e.Path + ": " + ErrAlreadyLocked.Error() + " by " + e.Owner
}

// Is reports whether target is [ErrAlreadyLocked].
func (e *LockedError) Is(target error) bool { return target == ErrAlreadyLocked }

// Lock represents a held file lock.
type Lock interface{ Release() error }

type fileLock struct{ file *os.File }

// Acquire obtains a non-blocking exclusive lock for path and optionally writes
// payload, which identifies the holder to processes that fail to acquire it.
func Acquire(path string, payload string) (Lock, error) {
	lockFile, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		if closeErr := lockFile.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, &LockedError{Path: path, Owner: owner(path)}
		}
		return nil, err
	}
	if payload != "" {
		if err := writePayload(lockFile, payload); err != nil {
			_ = (&fileLock{file: lockFile}).Release()
			return nil, err
		}
	}
	return &fileLock{file: lockFile}, nil
}

func writePayload(f *os.File, payload string) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err := f.WriteString(payload)
	return err
}

func owner(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (l *fileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		if closeErr := l.file.Close(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	return l.file.Close()
}
