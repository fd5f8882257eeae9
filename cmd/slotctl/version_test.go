package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_VersionString verifies the stamp carries version, commit and build
// date on one line.
func Test_VersionString(t *testing.T) {
	require.Equal(t, "slotctl dev (commit none, built unknown)", versionString())
}
