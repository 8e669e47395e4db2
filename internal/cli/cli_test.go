package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/check"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"TALLY_COLOR", "NO_COLOR", "TALLY_EXIT_ON_FAILURE", "TALLY_TIMEOUT", "TALLY_RUN", "TALLY_DEBUG"} {
		t.Setenv(k, "")
	}
}

func fixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Add("math_add", func() error {
		check.Equal(1+1, 2, "1+1", "2")
		return nil
	}))
	require.NoError(t, c.Add("math_div", func() error { return errors.New("division by zero") }))
	require.NoError(t, c.Add("io_read", func() error { return nil }))
	return c
}

func execute(t *testing.T, c *catalog.Catalog, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, c, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_DefaultRun(t *testing.T) {
	isolate(t)
	code, out, errOut := execute(t, fixture(t))

	assert.Equal(t, ExitOK, code, "failures do not change the status by default")
	assert.Empty(t, errOut)
	want := `Running test "io_read" . . . PASS
Running test "math_add" . . . PASS
Running test "math_div" . . . EXCEPTION
- - - Failures - - -
 -> [math_div] Unexpected exception: division by zero

Total passed: [2 / 3]
`
	assert.Equal(t, want, out, "a buffer is not a terminal, so auto color is off")
}

func TestExecute_ExitOnFailure(t *testing.T) {
	isolate(t)
	code, _, _ := execute(t, fixture(t), "--exit-on-failure")
	assert.Equal(t, ExitFailures, code)

	t.Setenv("TALLY_EXIT_ON_FAILURE", "true")
	code, _, _ = execute(t, fixture(t))
	assert.Equal(t, ExitFailures, code)

	code, _, _ = execute(t, fixture(t), "--exit-on-failure=false")
	assert.Equal(t, ExitOK, code)
}

func TestExecute_ExitOnFailureAllPass(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, fixture(t), "--exit-on-failure", "--run", "*_add")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Total passed: [1 / 1]")
}

func TestExecute_ColorAlways(t *testing.T) {
	isolate(t)
	_, out, _ := execute(t, fixture(t), "--color", "always", "--run", "io_*")
	assert.Equal(t, "Running test \"io_read\" . . . \x1b[32mPASS\x1b[0m\n\nTotal passed: [1 / 1]\n", out)
}

func TestExecute_ConfigFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".tally.yaml", []byte("run: math_*\nexit_on_failure: true\n"), 0o600))

	code, out, _ := execute(t, fixture(t))
	assert.Equal(t, ExitFailures, code)
	assert.NotContains(t, out, "io_read")
	assert.Contains(t, out, "Total passed: [1 / 2]")
}

func TestExecute_UsageErrors(t *testing.T) {
	isolate(t)

	code, _, errOut := execute(t, fixture(t), "--no-such-flag")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown flag")

	code, _, errOut = execute(t, fixture(t), "--color", "sometimes")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "invalid configuration")

	code, _, _ = execute(t, fixture(t), "extra-arg")
	assert.Equal(t, ExitUsage, code)
}

func TestExecute_SealsCatalog(t *testing.T) {
	isolate(t)
	c := fixture(t)
	execute(t, c)
	assert.ErrorIs(t, c.Add("late", func() error { return nil }), catalog.ErrSealed)
}

func TestExecute_Debug(t *testing.T) {
	isolate(t)
	_, out, errOut := execute(t, fixture(t), "--debug")
	assert.Contains(t, errOut, "test finished")
	assert.NotContains(t, out, "test finished")
}

func TestList(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, fixture(t), "list")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "io_read\nmath_add\nmath_div\n", out)

	_, out, _ = execute(t, fixture(t), "list", "--run", "math_*")
	assert.Equal(t, "math_add\nmath_div\n", out)
}
