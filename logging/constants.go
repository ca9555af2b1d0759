package logging

// These constants are used to identify the various services that may do some logging
const (
	// COMPILATION_SERVICE is the constant used to identify the compilation packages
	COMPILATION_SERVICE = "compilation"
	// HARNESS_SERVICE is the constant used to identify the compile-and-verify harness
	HARNESS_SERVICE = "harness"
	// LEDGER_SERVICE is the constant used to identify the test ledger
	LEDGER_SERVICE = "ledger"
	// REFERENCE_SERVICE is the constant used to identify the reference renderer and verifier
	REFERENCE_SERVICE = "reference"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)

// CHECK_RESULT is the structured log key under which individual check outcomes are recorded
const CHECK_RESULT = "checkResult"
