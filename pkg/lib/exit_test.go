package lib

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	base := errors.New("boom")
	assert.Equal(t, 1, ExitCode(base))

	coded := WithExitCode(base, 2)
	assert.Equal(t, 2, ExitCode(coded))
	assert.ErrorIs(t, coded, base)
	assert.Equal(t, "boom", coded.Error())

	assert.Equal(t, 2, ExitCode(fmt.Errorf("wrapped: %w", coded)))
	assert.Nil(t, WithExitCode(nil, 3))
}
