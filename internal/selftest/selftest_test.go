package selftest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/runner"
	"github.com/dkoosis/tally/pkg/style"
)

func TestSuitePasses(t *testing.T) {
	c := catalog.New()
	require.NoError(t, Register(c))

	var buf bytes.Buffer
	sum := runner.New(&buf, runner.WithStyler(style.Styler{})).RunCatalog(context.Background(), c)

	for _, f := range sum.Failures {
		t.Errorf("%s: %s", f.Name, f.Message)
	}
	assert.Equal(t, len(suite), sum.Total)
}

func TestRegister_Twice(t *testing.T) {
	c := catalog.New()
	require.NoError(t, Register(c))
	assert.ErrorIs(t, Register(c), catalog.ErrDuplicate)
}
