package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ExitCodeHandledError indicates an error occurred and was already logged, so it should not be printed again.
	ExitCodeHandledError = 2

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeCheckFailed indicates at least one code example of the reference failed verification.
	ExitCodeCheckFailed = 7
)
