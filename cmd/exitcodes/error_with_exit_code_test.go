package exitcodes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetInnerErrorAndExitCode verifies exit codes are resolved for nil, plain and wrapped errors.
func TestGetInnerErrorAndExitCode(t *testing.T) {
	err, code := GetInnerErrorAndExitCode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ExitCodeSuccess, code)

	plain := errors.New("boom")
	err, code = GetInnerErrorAndExitCode(plain)
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeGeneralError, code)

	withCode := NewErrorWithExitCode(plain, ExitCodeCheckFailed)
	err, code = GetInnerErrorAndExitCode(withCode)
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeCheckFailed, code)
	assert.ErrorIs(t, withCode, plain)

	err, code = GetInnerErrorAndExitCode(fmt.Errorf("check: %w", withCode))
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeCheckFailed, code)

	assert.Empty(t, NewErrorWithExitCode(nil, ExitCodeHandledError).Error())
}
