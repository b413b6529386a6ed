package cmd

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tasiov/mantis-raydium/errs"
)

func TestExecutionsRequiresConfiguredStore(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"executions", "--pool-id", "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2"})

	err := rootCmd.Execute()
	assert.True(t, errors.Is(err, errs.ErrConfig))
}
