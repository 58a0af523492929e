package pulse_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pulse"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pulse.Errorf(pulse.EMISSING, "snapshot %q not found", "web_data.html")

	assert.Equal(t, pulse.EMISSING, pulse.ErrorCode(err))
	assert.Equal(t, "snapshot \"web_data.html\" not found", pulse.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pulse.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pulse.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading snapshot: %w", pulse.Errorf(pulse.EMISSING, "missing"))

	assert.Equal(t, pulse.EMISSING, pulse.ErrorCode(err))
	assert.Equal(t, "missing", pulse.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, pulse.EINTERNAL, pulse.ErrorCode(err))
	assert.Equal(t, "Internal error.", pulse.ErrorMessage(err))
}
