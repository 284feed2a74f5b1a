// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error instead
// of returning it.
//
// Environment helpers (MustSetenv, MustUnsetenv, SetHomeDir) and MustChdir
// return a cleanup function that restores the previous state. File helpers
// (MustMkdirAll, MustWriteFile, MustReadFile) write under directories the
// caller owns, usually t.TempDir().
package testutil
