// Package testutil contains common test utilities.
package testutil

import "testing"

// InTempDir creates a temporary directory and changes into it for the rest of
// the test. It returns the directory.
func InTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
