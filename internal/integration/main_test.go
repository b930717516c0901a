// Package integration provides end-to-end tests for the sweepit CLI.
package integration

import (
	"testing"

	"sweepit.dev/sweepit/internal/testhelper"
)

// getSweepitBinary returns the path to the pre-built sweepit binary.
func getSweepitBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelper.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelper.GetBinaryError(); err != nil {
			t.Fatalf("failed to build sweepit binary: %v", err)
		}
		t.Fatal("sweepit binary not built")
	}
	return binaryPath
}
