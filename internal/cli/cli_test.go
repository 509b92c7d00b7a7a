package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/turbarch/internal/hcl"
	"github.com/vk/turbarch/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut, hcl.NewLoader())
	return out.String(), errOut.String(), err
}

func TestExecute_Plan(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"turbojet.hcl": testutil.TurbojetHCL})

	out, _, err := execute(t, "plan", "-o", "yaml", filepath.Join(dir, "turbojet.hcl"))
	require.NoError(t, err)
	assert.Contains(t, out, "points:")
	assert.Contains(t, out, "name: comp")
}

func TestExecute_Validate(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"turbojet.hcl": testutil.TurbojetHCL})

	out, logs, err := execute(t, "--log-level", "debug", "--log-format", "json", "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "valid, 2 points, 12 modules")
	assert.Contains(t, logs, `"msg":"Architecture built."`)
}

func TestExecute_UsageErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "missing path", args: []string{"plan"}},
		{name: "too many paths", args: []string{"validate", "a.hcl", "b.hcl"}},
		{name: "unknown flag", args: []string{"plan", "--workers", "3", "a.hcl"}},
		{name: "bad output format", args: []string{"plan", "-o", "json", "a.hcl"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "validate", "a.hcl"}},
		{name: "bad thermo data", args: []string{"--thermo", "janaf", "validate", "a.hcl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestExecute_BuildErrorIsNotUsageError(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"broken.hcl": `element "duct" "d" { target = "nowhere" }`})

	_, _, err := execute(t, "validate", dir)
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExecute_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "plan")
	assert.Contains(t, out, "validate")
}
