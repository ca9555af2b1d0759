package platforms

import "fmt"

// CompilerError is returned when a compiler exits unsuccessfully. Output holds the compiler's own diagnostics,
// unmodified.
type CompilerError struct {
	// Platform is the identifier of the platform which invoked the compiler.
	Platform string

	// Command is the command line which was executed.
	Command string

	// Output is the combined stdout and stderr of the compiler.
	Output string

	// Err is the process error.
	Err error
}

// Error returns the error message string, implementing the `error` interface.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("error while executing %s:\n%v\n\nCommand Output:\n%s\n", e.Platform, e.Err, e.Output)
}

// Unwrap returns the underlying process error.
func (e *CompilerError) Unwrap() error {
	return e.Err
}
